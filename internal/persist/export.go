package persist

import (
	"bufio"
	"os"

	"github.com/dlogdev/dlog/internal/engine"
)

// Export appends one canonical definition line per live registry entry
// to the file at path, in registry iteration order. The file is created
// if absent and never truncated, so repeated exports accumulate - the
// same append-only contract the log sink follows.
func Export(path string, reg *engine.Registry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return &Error{Code: ErrCodeIO, Path: path, Message: "cannot open export file", Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, tp := range reg.Live() {
		def := Definition{
			Location:    tp.Location(),
			Template:    tp.Template(),
			Expressions: tp.Expressions(),
		}
		if _, err := w.WriteString(FormatDefinition(def) + "\n"); err != nil {
			return &Error{Code: ErrCodeIO, Path: path, Message: "write failed", Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &Error{Code: ErrCodeIO, Path: path, Message: "write failed", Err: err}
	}

	return nil
}
