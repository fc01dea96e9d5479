package progrock

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
)

const (
	colorSlate = "#667085"
	colorRed   = "#D93025"
	colorGreen = "#22A06B"
)

// LinearWriter is a progrock.Writer that prints vertex progress as plain,
// chronological lines prefixed with the vertex name.
type LinearWriter struct {
	w   io.Writer
	out *termenv.Output

	mu       sync.Mutex
	names    map[string]string
	started  map[string]bool
	finished map[string]bool
}

var _ progrock.Writer = (*LinearWriter)(nil)

// NewLinearWriter creates a LinearWriter printing to w. A nil writer selects stderr.
func NewLinearWriter(w io.Writer) *LinearWriter {
	if w == nil {
		w = os.Stderr
	}
	return &LinearWriter{
		w:        w,
		out:      termenv.NewOutput(w, termenv.WithProfile(colorProfile(w))),
		names:    make(map[string]string),
		started:  make(map[string]bool),
		finished: make(map[string]bool),
	}
}

func colorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if _, ok := w.(*os.File); !ok {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// WriteStatus prints the vertex transitions and log lines carried by update.
func (l *LinearWriter) WriteStatus(update *progrock.StatusUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var buf bytes.Buffer
	for _, v := range update.Vertexes {
		l.names[v.Id] = v.Name
		switch {
		case v.Completed != nil && !l.finished[v.Id]:
			l.finished[v.Id] = true
			buf.WriteString(l.completed(v))
		case v.Completed == nil && !l.started[v.Id]:
			l.started[v.Id] = true
			_, _ = fmt.Fprintf(&buf, "%s %s\n", l.styled("•", colorSlate), v.Name)
		}
	}
	for _, entry := range update.Logs {
		name := l.names[entry.Vertex]
		for _, line := range strings.Split(strings.TrimRight(string(entry.Data), "\n"), "\n") {
			if line == "" {
				continue
			}
			_, _ = fmt.Fprintf(&buf, "  %s %s\n", l.styled(name+" |", colorSlate), line)
		}
	}

	if buf.Len() == 0 {
		return nil
	}
	_, err := l.w.Write(buf.Bytes())
	return err
}

func (l *LinearWriter) completed(v *progrock.Vertex) string {
	if v.Error != nil {
		return fmt.Sprintf("%s %s: %s\n", l.styled("✗", colorRed), v.Name, *v.Error)
	}
	suffix := ""
	if v.Cached {
		suffix = " " + l.styled("(cached)", colorSlate)
	}
	return fmt.Sprintf("%s %s%s\n", l.styled("✓", colorGreen), v.Name, suffix)
}

func (l *LinearWriter) styled(text, hex string) string {
	return l.out.String(text).Foreground(l.out.Color(hex)).String()
}

// Close is a no-op; every update is written synchronously.
func (l *LinearWriter) Close() error {
	return nil
}
