package tabular

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/fileconv/pkg/apperrors"
)

func TestParseDelimited_InfersColumnTypes(t *testing.T) {
	input := "1,Fitness,19.99,true,\n" +
		"2,\"Golf, Outdoor\",5,FALSE,x\n" +
		"3,Café,,True,\n"
	columns := []string{"id", "name", "price", "active", "note"}

	table, err := ParseDelimited(strings.NewReader(input), columns)
	require.NoError(t, err)

	assert.Equal(t, columns, table.Columns)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, json.RawMessage(`1`), table.Rows[0][0])
	assert.Equal(t, json.RawMessage(`"Fitness"`), table.Rows[0][1])
	assert.Equal(t, json.RawMessage(`19.99`), table.Rows[0][2])
	assert.Equal(t, json.RawMessage(`true`), table.Rows[0][3])
	assert.Equal(t, json.RawMessage(`null`), table.Rows[0][4])

	assert.Equal(t, json.RawMessage(`"Golf, Outdoor"`), table.Rows[1][1])
	assert.Equal(t, json.RawMessage(`5`), table.Rows[1][2], "integer literal in a float column keeps its text")
	assert.Equal(t, json.RawMessage(`false`), table.Rows[1][3])
	assert.Equal(t, json.RawMessage(`"x"`), table.Rows[1][4])

	assert.Equal(t, json.RawMessage(`"Café"`), table.Rows[2][1])
	assert.Equal(t, json.RawMessage(`null`), table.Rows[2][2])
}

func TestParseDelimited_MixedColumnFallsBackToString(t *testing.T) {
	table, err := ParseDelimited(strings.NewReader("1\nabc\n2.5\n"), []string{"v"})
	require.NoError(t, err)

	assert.Equal(t, json.RawMessage(`"1"`), table.Rows[0][0])
	assert.Equal(t, json.RawMessage(`"abc"`), table.Rows[1][0])
	assert.Equal(t, json.RawMessage(`"2.5"`), table.Rows[2][0])
}

func TestParseDelimited_NormalizesNonJSONNumbers(t *testing.T) {
	table, err := ParseDelimited(strings.NewReader("+7,.5\n007,1.25\n"), []string{"i", "f"})
	require.NoError(t, err)

	assert.Equal(t, json.RawMessage(`7`), table.Rows[0][0])
	assert.Equal(t, json.RawMessage(`0.5`), table.Rows[0][1])
	assert.Equal(t, json.RawMessage(`7`), table.Rows[1][0])
	assert.Equal(t, json.RawMessage(`1.25`), table.Rows[1][1])
}

func TestParseDelimited_ShortRowsArePadded(t *testing.T) {
	table, err := ParseDelimited(strings.NewReader("1,a\n2\n"), []string{"id", "name"})
	require.NoError(t, err)

	assert.Equal(t, json.RawMessage(`null`), table.Rows[1][1])
}

func TestParseDelimited_LongRowIsMalformed(t *testing.T) {
	_, err := ParseDelimited(strings.NewReader("1,a\n2,b,c\n"), []string{"id", "name"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedInput)
	assert.Contains(t, err.Error(), "record 2")
}

func TestParseDelimited_BadQuotingIsMalformed(t *testing.T) {
	_, err := ParseDelimited(strings.NewReader("1,\"unterminated\n"), []string{"id", "name"})
	assert.ErrorIs(t, err, apperrors.ErrMalformedInput)
}

func TestParseDelimited_Empty(t *testing.T) {
	table, err := ParseDelimited(strings.NewReader(""), []string{"id"})
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestEncodeDelimited(t *testing.T) {
	table := &Table{
		Columns: []string{"id", "name", "price", "active"},
		Rows: [][]json.RawMessage{
			{json.RawMessage(`2`), json.RawMessage(`"Fitness, \"Gym\""`), json.RawMessage(`3.0`), json.RawMessage(`true`)},
			{json.RawMessage(`3`), nil, json.RawMessage(`null`)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeDelimited(&buf, table))

	assert.Equal(t, "id,name,price,active\n"+
		"2,\"Fitness, \"\"Gym\"\"\",3.0,true\n"+
		"3,,,\n", buf.String())
}

func TestReadDelimited_MissingFile(t *testing.T) {
	_, err := ReadDelimited(filepath.Join(t.TempDir(), "part-00000"), []string{"id"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDelimitedJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "part-00000")
	jsonOut := filepath.Join(dir, "part-00000-json")
	csvOut := filepath.Join(dir, "part-00000-csv")

	original := "1,2013-07-25 00:00:00.0,11599,CLOSED\n" +
		"2,2013-07-25 00:00:00.0,256,PENDING_PAYMENT\n"
	columns := []string{"order_id", "order_date", "order_customer_id", "order_status"}
	require.NoError(t, os.WriteFile(source, []byte(original), 0o644))

	table, err := ReadDelimited(source, columns)
	require.NoError(t, err)
	require.NoError(t, WriteJSONLines(jsonOut, table))

	back, err := ReadJSONLines(jsonOut)
	require.NoError(t, err)
	assert.Equal(t, columns, back.Columns)
	require.NoError(t, WriteDelimited(csvOut, back))

	got, err := os.ReadFile(csvOut)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(columns, ",")+"\n"+original, string(got))
}
