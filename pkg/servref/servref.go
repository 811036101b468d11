package servref

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/piconlink/pkg/errors"
)

// maxRefFields caps the number of colon-separated reference fields; extra
// fields are dropped, matching the downstream link-name format.
const maxRefFields = 10

// Reference is a parsed service reference: an immutable, positional field
// sequence. field[0] is decimal, field[2] and the transport fields are hex.
type Reference struct {
	fields []string
}

// ParseReference splits a service reference into its fields, capped at
// maxRefFields.
func ParseReference(s string) Reference {
	fields := strings.Split(s, ":")
	if len(fields) > maxRefFields {
		fields = fields[:maxRefFields]
	}
	return Reference{fields: fields}
}

// Fields returns a copy of the reference fields.
func (r Reference) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// NumFields returns the number of reference fields.
func (r Reference) NumFields() int {
	return len(r.fields)
}

// String reassembles the reference in its colon-separated input form.
func (r Reference) String() string {
	return strings.Join(r.fields, ":")
}

// RefType decodes field[0] as a decimal reference-type flag.
func (r Reference) RefType() (int, error) {
	if len(r.fields) == 0 {
		return 0, errors.New(errors.ErrRecordParse, "reference has no fields")
	}
	n, err := strconv.Atoi(r.fields[0])
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrRecordParse, "reference type %q is not decimal", r.fields[0])
	}
	return n, nil
}

// ServiceType decodes field[2] as a hex service-type code.
func (r Reference) ServiceType() (int64, error) {
	return r.HexField(2)
}

// HexField decodes field[i] as hex.
func (r Reference) HexField(i int) (int64, error) {
	if i >= len(r.fields) {
		return 0, errors.Newf(errors.ErrRecordParse, "reference field %d is missing", i)
	}
	n, err := strconv.ParseInt(r.fields[i], 16, 64)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrRecordParse, "reference field %d %q is not hex", i, r.fields[i])
	}
	return n, nil
}

// WithServiceType returns a copy of the reference with field[2] replaced.
func (r Reference) WithServiceType(code string) Reference {
	fields := r.Fields()
	if len(fields) > 2 {
		fields[2] = code
	}
	return Reference{fields: fields}
}

// Record is one parsed line of the picon definitions file.
type Record struct {
	Ref         Reference
	ServiceName string
	IconKey     string
}

// StripComment removes a trailing '#' comment from a line.
func StripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// ParseLine parses one definitions line into a Record. Blank and
// comment-only lines return (nil, nil). Lines without exactly three fields
// return a per-record error; the caller skips the line.
func ParseLine(line string) (*Record, error) {
	line = strings.TrimSpace(StripComment(line))
	if line == "" {
		return nil, nil
	}

	fields, err := splitFields(line)
	if err != nil {
		return nil, err
	}
	if len(fields) > 3 {
		return nil, errors.Newf(errors.ErrRecordFields, "too many fields in service reference line: %s", line)
	}
	if len(fields) < 3 {
		return nil, errors.Newf(errors.ErrRecordFields, "too few fields in service reference line: %s", line)
	}

	return &Record{
		Ref:         ParseReference(fields[0]),
		ServiceName: fields[1],
		IconKey:     fields[2],
	}, nil
}

// splitFields splits a line on whitespace, treating a double-quoted run as
// a single field so service names may contain spaces.
func splitFields(line string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inQuote := false
	inField := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inField = true
		case !inQuote && (r == ' ' || r == '\t'):
			if inField {
				fields = append(fields, cur.String())
				cur.Reset()
				inField = false
			}
		default:
			cur.WriteRune(r)
			inField = true
		}
	}
	if inQuote {
		return nil, errors.Newf(errors.ErrRecordFields, "unterminated quote in line: %s", line)
	}
	if inField {
		fields = append(fields, cur.String())
	}
	return fields, nil
}
