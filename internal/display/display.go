package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// Spinner frames using braille characters
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Flusher is an optional interface for writers that support flushing.
type Flusher interface {
	Sync() error
}

// Display handles terminal output: the loading spinner and notification boxes.
type Display struct {
	out         io.Writer
	width       int
	interactive bool

	spinMu    sync.Mutex
	spinning  bool
	spinStop  chan struct{}
	spinDone  chan struct{}
	spinMsg   string
	spinStart time.Time
}

// New creates a display writing to out. The spinner only animates when out
// is a terminal.
func New(out io.Writer) *Display {
	d := &Display{out: out, width: 80}
	if f, ok := out.(*os.File); ok && term.IsTerminal(f.Fd()) {
		d.interactive = true
		d.width = GetTerminalWidth()
	}
	return d
}

// Width returns the usable output width.
func (d *Display) Width() int { return d.width }

// Writer returns the underlying writer.
func (d *Display) Writer() io.Writer { return d.out }

func (d *Display) flush() {
	if f, ok := d.out.(Flusher); ok {
		f.Sync()
	}
}

// StartSpinner shows a loading message until StopSpinner is called.
// On a non-terminal it prints the message once.
func (d *Display) StartSpinner(msg string) {
	d.spinMu.Lock()
	if d.spinning {
		d.spinMu.Unlock()
		return
	}
	d.spinning = true
	d.spinMsg = msg
	d.spinStart = time.Now()
	d.spinStop = make(chan struct{})
	d.spinDone = make(chan struct{})
	d.spinMu.Unlock()

	if !d.interactive {
		fmt.Fprintf(d.out, "   %s\n", msg)
		close(d.spinDone)
		return
	}

	go func() {
		defer close(d.spinDone)
		frame := 0
		first := true
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-d.spinStop:
				if !first {
					// Move up and clear the spinner line
					fmt.Fprintf(d.out, "\033[1A\r\033[K")
				}
				d.flush()
				return
			case <-ticker.C:
				elapsed := formatElapsed(time.Since(d.spinStart))
				line := fmt.Sprintf("   %s %s (%s)\n", StyleAccent.Render(spinnerFrames[frame]), d.spinMsg, elapsed)
				if first {
					fmt.Fprint(d.out, line)
					first = false
				} else {
					fmt.Fprint(d.out, "\033[1A\r\033[K"+line)
				}
				d.flush()
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// StopSpinner stops the loading spinner.
func (d *Display) StopSpinner() {
	d.spinMu.Lock()
	if !d.spinning {
		d.spinMu.Unlock()
		return
	}
	d.spinning = false
	close(d.spinStop)
	d.spinMu.Unlock()
	<-d.spinDone
}

// ShowCommandHeader prints the icon, command name and a detail line.
func (d *Display) ShowCommandHeader(command, detail string) {
	fmt.Fprintf(d.out, "%s %s", StyleCommandIcon.String(), StyleTitle.Render(command))
	if detail != "" {
		fmt.Fprintf(d.out, "  %s", StyleMuted.Render(detail))
	}
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out)
}

// ShowSuccess prints a green notification box.
func (d *Display) ShowSuccess(title, msg string) {
	d.StopSpinner()
	d.box(ColorSuccess, StyleSuccess.Render("[ok] "+title), msg)
}

// ShowError prints a red notification box.
func (d *Display) ShowError(title, msg string) {
	d.StopSpinner()
	d.box(ColorError, StyleError.Render("[!!] "+title), msg)
}

// ShowWarning prints a yellow notification box.
func (d *Display) ShowWarning(title, msg string) {
	d.StopSpinner()
	d.box(ColorWarning, StyleWarning.Render("[--] "+title), msg)
}

// ShowPanel prints content inside a box with a heading.
func (d *Display) ShowPanel(title, content string) {
	d.StopSpinner()
	d.box(ColorInfo, StyleTitle.Render(title), strings.TrimRight(content, "\n"))
}

func (d *Display) box(color lipgloss.Color, heading, body string) {
	content := heading
	if body != "" {
		content += "\n" + body
	}
	fmt.Fprintln(d.out, BoxStyle(color, d.width).Render(content))
}

// formatElapsed formats duration with fixed width (always 6 chars like " 1.04s")
func formatElapsed(d time.Duration) string {
	secs := d.Seconds()
	if secs < 10 {
		return fmt.Sprintf("%5.2fs", secs)
	} else if secs < 100 {
		return fmt.Sprintf("%5.1fs", secs)
	}
	return fmt.Sprintf("%5.0fs", secs)
}

// Truncate shortens s to max runes, ending with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
