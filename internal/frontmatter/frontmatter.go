// Package frontmatter splits the YAML metadata block from a content file's
// body and decodes it into a generic mapping.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter is returned when a document opens a front matter
// block but never closes it.
var ErrMissingClosingDelimiter = errors.New("front matter: missing closing delimiter")

// Split separates the YAML front matter (`---` delimited) from the body.
//
// If the document does not start with a front matter delimiter, had is false
// and body is the full input.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	lines := bytes.SplitAfter(content, []byte("\n"))
	if len(lines) == 0 || !isDelimiter(lines[0]) {
		return nil, content, false, nil
	}

	offset := len(lines[0])
	for _, line := range lines[1:] {
		if isDelimiter(line) {
			fm = content[len(lines[0]):offset]
			body = content[offset+len(line):]
			return fm, body, true, nil
		}
		offset += len(line)
	}
	return nil, nil, false, ErrMissingClosingDelimiter
}

// ParseYAML decodes raw front matter (without delimiters) into a map.
func ParseYAML(fm []byte) (map[string]any, error) {
	out := map[string]any{}
	if len(bytes.TrimSpace(fm)) == 0 {
		return out, nil
	}
	if err := yaml.Unmarshal(fm, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimRight(line, "\r\n")) == "---"
}
