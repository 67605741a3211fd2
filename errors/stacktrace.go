package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTrace returns the first stack trace carried by given error or any
// wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format works like pkg/errors, with additions.
// %s is just the error message
// %+v is the full stack trace
// %v appends a compressed [filename:line] where the error was created
func (e *wrappedError) Format(s fmt.State, verb rune) {
	// Normal output for %s and simple %v.
	if verb == 's' || (verb == 'v' && !s.Flag('+')) {
		io.WriteString(s, e.Error())
		if verb == 'v' {
			if st := callerStack(e); len(st) > 0 {
				fmt.Fprintf(s, " [%s]", trimmedFrame(st[0]))
			}
		}
		return
	}

	fmt.Fprintf(s, "%s\n%+v", e.Error(), callerStack(e))
}

// callerStack returns the stack trace carried by given error with the frames
// of this package and of the runtime trimmed off, so that the first frame is
// where the error was created.
func callerStack(err error) errors.StackTrace {
	st := stackTrace(err)
	for len(st) > 0 && matchesFile(st[0],
		// where we wrap errors
		"/errors/errors.go",
		"/errors/field.go",
		// runtime frames are added on panics
		"/runtime/") {
		st = st[1:]
	}
	for l := len(st) - 1; l >= 0 && matchesFile(st[l], "/runtime/"); l-- {
		st = st[:l]
	}
	return st
}

func matchesFile(f errors.Frame, substrs ...string) bool {
	file, _ := fileLine(f)
	for _, sub := range substrs {
		if strings.Contains(file, sub) {
			return true
		}
	}
	return false
}

func fileLine(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

// trimmedFrame returns "file:line" for a single frame, without the package
// path of the file.
func trimmedFrame(f errors.Frame) string {
	loc := fmt.Sprintf("%v", f)
	if i := strings.LastIndex(loc, "/"); i >= 0 {
		loc = loc[i+1:]
	}
	return loc
}
