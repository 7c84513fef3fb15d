package prompt

import (
	"regexp"
	"strings"

	"github.com/richinex/inkwell/post"
)

// Fields maps field name (post.FieldTitle etc.) to its extracted text.
type Fields = map[string]string

// Section markers of the reply format.
const (
	MarkerTitle   = "TITLE"
	MarkerContent = "CONTENT"
	MarkerMeta    = "META"
	MarkerEnd     = "END"
)

// section is a field bounded by its own marker and the next one.
type section struct {
	field string
	start string
	end   string
}

var sections = []section{
	{post.FieldTitle, MarkerTitle, MarkerContent},
	{post.FieldContent, MarkerContent, MarkerMeta},
	{post.FieldMeta, MarkerMeta, MarkerEnd},
}

// markerPattern matches "---NAME---" with optional spaces inside the dashes
// and Markdown emphasis, heading or code marks hugging it.
var markerPattern = regexp.MustCompile("(?i)[*_#`]*[ \t]*-{3,}[ \t]*(TITLE|CONTENT|META|END)[ \t]*-{3,}[ \t]*[*_`]*")

// fencePattern matches a code fence line such as ``` or ```html.
var fencePattern = regexp.MustCompile("^`{3,}[A-Za-z0-9_-]*$")

type marker struct {
	name       string
	start, end int
}

// Parse extracts the title, content and meta sections from a generated reply.
// Each field spans from the first occurrence of its marker to the next marker,
// which must be the one that closes it. A field whose start or closing marker
// is missing is omitted, as is a field that is blank after trimming.
// Parse never fails.
func Parse(raw string) Fields {
	var markers []marker
	for _, loc := range markerPattern.FindAllStringSubmatchIndex(raw, -1) {
		markers = append(markers, marker{
			name:  strings.ToUpper(raw[loc[2]:loc[3]]),
			start: loc[0],
			end:   loc[1],
		})
	}

	fields := make(Fields)
	for _, s := range sections {
		open := find(markers, s.start)
		if open < 0 || open+1 >= len(markers) || markers[open+1].name != s.end {
			continue
		}
		value := clean(raw[markers[open].end:markers[open+1].start])
		if s.field == post.FieldTitle {
			value = cleanTitle(value)
		}
		if value != "" {
			fields[s.field] = value
		}
	}
	return fields
}

// find returns the index of the first marker called name, or -1.
func find(markers []marker, name string) int {
	for i, m := range markers {
		if m.name == name {
			return i
		}
	}
	return -1
}

// clean trims whitespace and drops code fence lines at either edge.
func clean(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for len(lines) > 0 && fencePattern.MatchString(strings.TrimSpace(lines[0])) {
		lines = lines[1:]
	}
	for len(lines) > 0 && fencePattern.MatchString(strings.TrimSpace(lines[len(lines)-1])) {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// cleanTitle strips heading marks, emphasis and wrapping quotes.
func cleanTitle(s string) string {
	s = strings.TrimSpace(strings.TrimLeft(s, "# "))
	s = strings.Trim(s, "*_")
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
