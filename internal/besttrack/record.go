package besttrack

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// stormIDRe matches a storm identifier: a two-letter basin code followed
	// by six digits, e.g. "AL312020".
	stormIDRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{6}$`)

	// dataLineRe matches a fix record, which always starts with an
	// eight-digit YYYYMMDD date field.
	dataLineRe = regexp.MustCompile(`^\d{8},`)
)

// Header identifies one storm block in a combined best-track file.
type Header struct {
	ID          string // basin code + cyclone number + year, e.g. "AL312020"
	Name        string // storm name with all whitespace removed, e.g. "IOTA"
	TrackNumber string // fix-count token from the header, edge-trimmed
}

// StormFile describes one completed per-storm output file.
type StormFile struct {
	Header Header
	Path   string
	Lines  int
}

// ParseHeader reports whether line starts a new storm block and, if so,
// returns the parsed header. A line is a header when its first comma field,
// edge-trimmed, matches the storm identifier pattern. Lines with fewer than
// three comma fields never match.
func ParseHeader(line string) (Header, bool) {
	fields := strings.SplitN(line, ",", 4)
	if len(fields) < 3 {
		return Header{}, false
	}
	id := strings.TrimSpace(fields[0])
	if !stormIDRe.MatchString(id) {
		return Header{}, false
	}
	return Header{
		ID:          id,
		Name:        stripWhitespace(fields[1]),
		TrackNumber: strings.TrimSpace(fields[2]),
	}, true
}

// Filename returns the per-storm output filename, "<id>_<name>_<n>.txt".
// The name and track-number fields flow straight into a filesystem path, so
// values containing path separators, parent references, or NUL bytes are
// rejected.
func (h Header) Filename() (string, error) {
	for _, field := range []string{h.Name, h.TrackNumber} {
		if err := checkPathSafe(field); err != nil {
			return "", fmt.Errorf("storm %s: %w", h.ID, err)
		}
	}
	return h.ID + "_" + h.Name + "_" + h.TrackNumber + ".txt", nil
}

func checkPathSafe(field string) error {
	if field == ".." || strings.ContainsAny(field, "/\\\x00") {
		return fmt.Errorf("unsafe filename component %q", field)
	}
	return nil
}

// IsDataLine reports whether line is a best-track fix record.
func IsDataLine(line string) bool {
	return dataLineRe.MatchString(line)
}

// Status extracts the cyclone status code (fourth column) from a fix record.
// It returns false for lines that are not data lines or have an empty status
// field.
func Status(line string) (string, bool) {
	if !IsDataLine(line) {
		return "", false
	}
	fields := strings.SplitN(line, ",", 5)
	if len(fields) < 4 {
		return "", false
	}
	code := strings.TrimSpace(fields[3])
	if code == "" {
		return "", false
	}
	return code, true
}

// stripWhitespace removes all whitespace, internal as well as leading and
// trailing.
func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
