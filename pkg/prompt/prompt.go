// Package prompt runs the interactive questions that pick a conversion
// direction and a dataset.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ekaya-inc/fileconv/pkg/models"
)

// AllDatasets is the answer that selects every dataset, matched case-insensitively.
const AllDatasets = "all"

// Selection is the dataset choice. Dataset is empty when All is set.
type Selection struct {
	All     bool
	Dataset string
}

// Prompter asks questions on out and reads answers line by line from in.
// Invalid answers repeat the question until a valid one arrives or input ends.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// ChooseDirection asks for one of the two numbered conversion directions.
// Returns io.EOF when input ends first.
func (p *Prompter) ChooseDirection() (models.Direction, error) {
	for {
		fmt.Fprintln(p.out, "Select a conversion:")
		fmt.Fprintln(p.out, "  1) CSV -> JSON")
		fmt.Fprintln(p.out, "  2) JSON -> CSV")
		fmt.Fprint(p.out, "> ")

		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(answer); err == nil {
			if d := models.Direction(n); d.IsValid() {
				return d, nil
			}
		}
		fmt.Fprintf(p.out, "Invalid choice %q, enter 1 or 2.\n", answer)
	}
}

// ChooseDataset asks for a dataset present in mapping or "all".
// Returns io.EOF when input ends first.
func (p *Prompter) ChooseDataset(mapping *models.ColumnMapping) (Selection, error) {
	names := mapping.Datasets()
	for {
		fmt.Fprintf(p.out, "Dataset to convert (%s, or %q for every dataset):\n", strings.Join(names, ", "), AllDatasets)
		fmt.Fprint(p.out, "> ")

		answer, err := p.readLine()
		if err != nil {
			return Selection{}, err
		}
		if strings.EqualFold(answer, AllDatasets) {
			return Selection{All: true}, nil
		}
		if mapping.Has(answer) {
			return Selection{Dataset: answer}, nil
		}
		fmt.Fprintf(p.out, "Unknown dataset %q.\n", answer)
	}
}

func (p *Prompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}
