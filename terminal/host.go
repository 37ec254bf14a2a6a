package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Teardown is what a stop-requesting step asked the host to do.
type Teardown int

const (
	TeardownNone Teardown = iota
	TeardownReload
	TeardownClose
)

func (t Teardown) String() string {
	switch t {
	case TeardownReload:
		return "reload"
	case TeardownClose:
		return "close"
	default:
		return "none"
	}
}

// Host is an engine.Host for an interactive terminal.
type Host struct {
	in     *bufio.Reader
	out    io.Writer
	styles Styles

	mu       sync.Mutex
	teardown Teardown
}

// NewHost creates a host reading answers from in and writing to out.
func NewHost(in io.Reader, out io.Writer, styles Styles) *Host {
	return &Host{
		in:     bufio.NewReader(in),
		out:    out,
		styles: styles,
	}
}

// Alert prints message and waits for Enter. End of input counts as Enter.
func (h *Host) Alert(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "%s %s\n", h.styles.Alert.Render("!"), message)
	fmt.Fprint(h.out, h.styles.Muted.Render("Press Enter to continue"))
	_, err := h.readLine()
	fmt.Fprintln(h.out)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Prompt prints message and reads one line. At end of input it reports no
// answer.
func (h *Host) Prompt(ctx context.Context, message string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	fmt.Fprintf(h.out, "%s ", h.styles.Prompt.Render(message))
	line, err := h.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(h.out)
			return "", false, nil
		}
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
	}
	return line, true, nil
}

// Reload records a reload request.
func (h *Host) Reload(context.Context) error {
	h.setTeardown(TeardownReload)
	fmt.Fprintln(h.out, h.styles.Muted.Render("reloading..."))
	return nil
}

// Close records a close request.
func (h *Host) Close(context.Context) error {
	h.setTeardown(TeardownClose)
	fmt.Fprintln(h.out, h.styles.Muted.Render("closing..."))
	return nil
}

// Teardown returns the pending teardown request.
func (h *Host) Teardown() Teardown {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.teardown
}

func (h *Host) setTeardown(t Teardown) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.teardown = t
}

func (h *Host) readLine() (string, error) {
	line, err := h.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}
