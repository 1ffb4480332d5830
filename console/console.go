// Package console prints leveled diagnostics for para2github to stderr.
//
// Messages carry an [INFO], [OK], [WARN] or [ERROR] prefix. The prefix is
// colored only when the output is a terminal, so CI logs stay readable.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

var (
	mu    sync.Mutex
	out   io.Writer = os.Stderr
	color           = isTerminal(os.Stderr)
)

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetOutput redirects all diagnostics to w. Color is disabled unless w is
// a terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	if f, ok := w.(*os.File); ok {
		color = isTerminal(f)
	} else {
		color = false
	}
}

func emit(code, tag, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	prefix := "[" + tag + "]"
	if color {
		prefix = code + prefix + colorReset
	}
	fmt.Fprintf(out, prefix+" "+format+"\n", args...)
}

func Info(format string, args ...any) {
	emit(colorBlue, "INFO", format, args...)
}

func Success(format string, args ...any) {
	emit(colorGreen, "OK", format, args...)
}

func Warning(format string, args ...any) {
	emit(colorYellow, "WARN", format, args...)
}

func Error(format string, args ...any) {
	emit(colorRed, "ERROR", format, args...)
}
