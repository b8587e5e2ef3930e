package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/ekaya-inc/fileconv/pkg/config"
	"github.com/ekaya-inc/fileconv/pkg/defaults"
	"github.com/ekaya-inc/fileconv/pkg/logging"
	"github.com/ekaya-inc/fileconv/pkg/models"
	"github.com/ekaya-inc/fileconv/pkg/prompt"
	"github.com/ekaya-inc/fileconv/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Debug("Configuration loaded",
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env),
		zap.String("data_dir", cfg.DataDir),
		zap.String("csv_root", cfg.Roots.Delimited),
		zap.String("json_root", cfg.Roots.JSON))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		logger.Error("Conversion failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run asks for a direction, resolves the column mapping of the matching root,
// optionally persists it, asks for a dataset and converts.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, in io.Reader, out io.Writer) error {
	defaultMapping, err := defaults.Load(cfg.DefaultSchemasPath)
	if err != nil {
		return err
	}

	p := prompt.New(in, out)
	direction, err := p.ChooseDirection()
	if err != nil {
		return err
	}
	root := cfg.RootFor(direction)

	registry := services.NewSchemaRegistry(cfg.DataDir, cfg.Roots.Delimited, cfg.Roots.JSON, logger)
	mapping, err := services.ResolveColumnMapping(registry, root.Name, defaultMapping, logger)
	if err != nil {
		return err
	}

	if !cfg.SkipMetadata {
		if err := services.NewMetadataWriter(cfg.DataDir, logger).Write(mapping, root.Name); err != nil {
			return err
		}
	}

	selection, err := p.ChooseDataset(mapping)
	if err != nil {
		return err
	}

	converter := services.NewConversionService(cfg.DataDir, logger)
	var report *services.ConversionReport
	switch {
	case direction == models.DelimitedToJSON && selection.All:
		report, err = converter.ConvertAllDelimitedToJSON(ctx, root.Name, mapping)
	case direction == models.DelimitedToJSON:
		report, err = converter.ConvertOneDelimitedToJSON(ctx, root.Name, mapping, selection.Dataset)
	case selection.All:
		report, err = converter.ConvertAllJSONToDelimited(ctx, root.Name, mapping)
	default:
		report, err = converter.ConvertOneJSONToDelimited(ctx, root.Name, selection.Dataset)
	}
	if report != nil {
		printReport(out, report)
	}
	return err
}

func printReport(out io.Writer, report *services.ConversionReport) {
	for _, r := range report.Converted {
		fmt.Fprintf(out, "Converted %s (%d rows) -> %s\n", r.Dataset, r.Rows, r.OutputPath)
	}
	for _, err := range report.Skipped {
		fmt.Fprintf(out, "Skipped %v\n", err)
	}
}
