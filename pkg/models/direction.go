package models

// Direction selects which way a conversion runs.
type Direction int

const (
	DelimitedToJSON Direction = iota + 1
	JSONToDelimited
)

func (d Direction) String() string {
	switch d {
	case DelimitedToJSON:
		return "csv_to_json"
	case JSONToDelimited:
		return "json_to_csv"
	default:
		return "unknown"
	}
}

// OutputFileName returns the fixed name of the converted part file.
func (d Direction) OutputFileName() string {
	if d == JSONToDelimited {
		return DelimitedPartFile
	}
	return JSONPartFile
}

// IsValid reports whether d is one of the two known directions.
func (d Direction) IsValid() bool {
	return d == DelimitedToJSON || d == JSONToDelimited
}
