package output

import (
	"fmt"
	"strings"
)

// Annotation is a GitHub Actions workflow command that attaches a message
// to a source location.
type Annotation struct {
	Level     string // error, warning or notice
	File      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Title     string
	Message   string
}

// String formats the annotation as a workflow command line.
func (a Annotation) String() string {
	var props []string
	if a.File != "" {
		props = append(props, "file="+EscapeProperty(a.File))
	}
	if a.Line > 0 {
		props = append(props, fmt.Sprintf("line=%d", a.Line))
		if a.Column > 0 {
			props = append(props, fmt.Sprintf("col=%d", a.Column))
		}
		if a.EndLine > 0 {
			props = append(props, fmt.Sprintf("endLine=%d", a.EndLine))
			// endColumn is only meaningful on single-line annotations.
			if a.EndColumn > 0 && a.EndLine == a.Line {
				props = append(props, fmt.Sprintf("endColumn=%d", a.EndColumn))
			}
		}
	}
	if a.Title != "" {
		props = append(props, "title="+EscapeProperty(a.Title))
	}

	level := a.Level
	if level == "" {
		level = "warning"
	}
	return fmt.Sprintf("::%s %s::%s", level, strings.Join(props, ","), EscapeData(a.Message))
}

// Annotate writes an annotation to standard output.
func (r *Renderer) Annotate(a Annotation) {
	r.Println(a.String())
}

// EscapeData escapes a workflow command message.
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// EscapeProperty escapes a workflow command property value.
func EscapeProperty(s string) string {
	s = EscapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
