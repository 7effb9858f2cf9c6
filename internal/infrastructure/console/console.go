package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ColorMode decides when ANSI colors are written.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	red   = "31"
	green = "32"
	blue  = "34"
)

// Console writes quiz output, coloring the status labels when the
// destination can show them.
type Console struct {
	out   io.Writer
	color bool
}

// New returns a Console for w. In ColorAuto mode colors are used only when
// w is a terminal.
func New(w io.Writer, mode ColorMode) *Console {
	f, isFile := w.(*os.File)

	var color bool
	switch mode {
	case ColorAlways:
		color = true
	case ColorNever:
	default:
		color = isFile && isTerminal(f)
	}

	if color && isFile {
		return &Console{out: colorable.NewColorable(f), color: true}
	}
	return &Console{out: w, color: color}
}

// NewWriter returns a Console writing to w.
func NewWriter(w io.Writer, color bool) *Console {
	return &Console{out: w, color: color}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *Console) Colored() bool {
	return c.color
}

func (c *Console) Print(a ...any) {
	fmt.Fprint(c.out, a...)
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Success renders s in green.
func (c *Console) Success(s string) string {
	return c.paint(green, s)
}

// Failure renders s in red.
func (c *Console) Failure(s string) string {
	return c.paint(red, s)
}

// Info renders s in blue.
func (c *Console) Info(s string) string {
	return c.paint(blue, s)
}

func (c *Console) paint(code, s string) string {
	if !c.color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}
