// Package report renders the list and time reports in the supported output
// formats.
package report

import (
	"fmt"
	"io"

	"github.com/fakeyudi/hat/internal/tracker"
)

// Renderer writes reports to w.
type Renderer interface {
	RenderList(w io.Writer, rep tracker.ListReport) error
	RenderTime(w io.Writer, rep tracker.TimeReport) error
}

// Formats lists the accepted format names.
var Formats = []string{"text", "json", "markdown"}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch format {
	case "text", "":
		return &TextRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want text, json or markdown)", format)
}
