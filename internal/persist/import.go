package persist

import (
	"bufio"
	"log/slog"
	"os"
	"strings"

	"github.com/dlogdev/dlog/internal/engine"
)

// Import replays an exported definitions file, reconstructing one
// tracepoint per line through the engine's normal create+add path.
//
// Import is best-effort: a malformed line aborts the remaining import
// with a PARSE error, but tracepoints created from earlier lines are NOT
// rolled back. Blank lines are skipped. Returns the number of
// tracepoints created.
func Import(path string, eng *engine.Engine) (int, error) {
	f, err := openImportFile(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	created := 0
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		def, parseErr := ParseDefinition(line)
		if parseErr != nil {
			return created, &Error{
				Code:    ErrCodeParse,
				Path:    path,
				Line:    lineNo,
				Message: parseErr.Error(),
			}
		}

		if _, err := eng.AddTracepoint(def.Location, def.Template, def.Expressions); err != nil {
			// Creation failures (arity, bind refusal) abort like parse
			// failures; earlier tracepoints stay.
			return created, err
		}
		created++
	}
	if err := scanner.Err(); err != nil {
		return created, &Error{Code: ErrCodeIO, Path: path, Message: "read failed", Err: err}
	}

	slog.Debug("imported tracepoint definitions", "path", path, "created", created)
	return created, nil
}

// ImportShared scans a generic location-list file and creates one
// tracepoint per line starting with prefix, reusing the single shared
// template and expression set for all of them. Non-matching lines are
// skipped without error.
//
// The shared template's arity is validated once against the shared
// expressions before any line is processed; a mismatch fails the whole
// import before any tracepoint is created. Returns the number of
// tracepoints created.
func ImportShared(path, prefix, template string, exprs []string, eng *engine.Engine) (int, error) {
	f, err := openImportFile(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if prefix == "" {
		prefix = DefaultScanPrefix
	}
	if placeholders := engine.CountPlaceholders(template); placeholders != len(exprs) {
		return 0, engine.NewArityError("", placeholders, len(exprs))
	}

	created := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		location := line[len(prefix):]
		if location == "" {
			continue
		}

		if _, err := eng.AddTracepoint(location, template, exprs); err != nil {
			return created, err
		}
		created++
	}
	if err := scanner.Err(); err != nil {
		return created, &Error{Code: ErrCodeIO, Path: path, Message: "read failed", Err: err}
	}

	slog.Debug("imported shared-template tracepoints",
		"path", path,
		"prefix", prefix,
		"created", created,
	)
	return created, nil
}

// openImportFile opens path for reading, mapping missing or unreadable
// paths to a NOT_FOUND error. Directories are rejected the same way.
func openImportFile(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, &Error{
			Code:    ErrCodeNotFound,
			Path:    path,
			Message: "not a valid file path or file does not exist",
			Err:     err,
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeNotFound,
			Path:    path,
			Message: "file is not readable",
			Err:     err,
		}
	}
	return f, nil
}
