package records

import "fmt"

// InputMode selects how an input stream is framed into records.
type InputMode int

const (
	// ModeLine splits on '\n'.
	ModeLine InputMode = iota
	// ModeNull splits on the null byte.
	ModeNull
	// ModeParagraph groups consecutive non-empty lines; empty lines separate records.
	ModeParagraph
)

// ParseInputMode maps a command-line token to an InputMode.
// The empty string selects ModeLine.
func ParseInputMode(s string) (InputMode, error) {
	switch s {
	case "", "line", "l":
		return ModeLine, nil
	case "paragraph", "p":
		return ModeParagraph, nil
	case "null", "n", "0":
		return ModeNull, nil
	default:
		return ModeLine, fmt.Errorf("invalid input record separator %q (want line, paragraph or null)", s)
	}
}

func (m InputMode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeNull:
		return "null"
	case ModeParagraph:
		return "paragraph"
	default:
		return fmt.Sprintf("InputMode(%d)", int(m))
	}
}

// FieldSeparator delimits records within one cluster on output.
type FieldSeparator int

const (
	FieldLine FieldSeparator = iota
	FieldNull
	FieldColon
)

// ParseFieldSeparator maps a command-line token to a FieldSeparator.
// The empty string selects FieldLine.
func ParseFieldSeparator(s string) (FieldSeparator, error) {
	switch s {
	case "", "line", "l":
		return FieldLine, nil
	case "0":
		return FieldNull, nil
	case ":":
		return FieldColon, nil
	default:
		return FieldLine, fmt.Errorf("invalid output field separator %q (want 0, : or line)", s)
	}
}

// Bytes returns the separator as written to the output.
func (f FieldSeparator) Bytes() []byte {
	switch f {
	case FieldNull:
		return []byte{0}
	case FieldColon:
		return []byte(":")
	default:
		return []byte("\n")
	}
}

// RecordSeparator delimits clusters on output.
type RecordSeparator int

const (
	RecordDouble RecordSeparator = iota
	RecordLine
	RecordNull
)

// ParseRecordSeparator maps a command-line token to a RecordSeparator.
// The empty string selects RecordDouble.
func ParseRecordSeparator(s string) (RecordSeparator, error) {
	switch s {
	case "", "double", "d":
		return RecordDouble, nil
	case "line", "l":
		return RecordLine, nil
	case "0":
		return RecordNull, nil
	default:
		return RecordDouble, fmt.Errorf("invalid output record separator %q (want 0, line or double)", s)
	}
}

// Bytes returns the separator as written to the output.
func (r RecordSeparator) Bytes() []byte {
	switch r {
	case RecordNull:
		return []byte{0}
	case RecordLine:
		return []byte("\n")
	default:
		return []byte("\n\n")
	}
}
