package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/alexanderramin/freightdesk/internal/cli/formatter"
	"github.com/alexanderramin/freightdesk/internal/submit"
)

// Notifier prints submission outcomes as single styled lines.
type Notifier struct {
	mu sync.Mutex
	w  io.Writer
}

var _ submit.Notifier = (*Notifier)(nil)

func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

func (n *Notifier) Success(msg string) { n.line(formatter.StyleGreen.Render("✓"), msg) }
func (n *Notifier) Error(msg string)   { n.line(formatter.StyleRed.Render("✗"), msg) }
func (n *Notifier) Warn(msg string)    { n.line(formatter.StyleYellow.Render("!"), msg) }

func (n *Notifier) line(mark, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", mark, msg)
}
