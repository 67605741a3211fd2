package errors

import (
	"fmt"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrCapacity,
			wantLog:  "capacity exceeded",
			wantCode: ErrCapacity.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrOverflow, "lifetime funded"), "fund"),
			wantLog:  "fund: lifetime funded: arithmetic overflow",
			wantCode: ErrOverflow.code,
		},
		"nil is empty message": {
			err:      nil,
			wantLog:  "",
			wantCode: 0,
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      fmt.Errorf("stdlib error"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      fmt.Errorf("stdlib error"),
			debug:    true,
			wantLog:  "stdlib error",
			wantCode: 1,
		},
		"multi error exposes first code": {
			err:      Append(ErrUnauthorized, ErrNotFound),
			wantLog:  "2 errors occurred:\n\t* unauthorized\n\t* not found",
			wantCode: ErrUnauthorized.code,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic, false); ErrPanic.Is(err) {
		t.Error("reduct must not pass through panic error")
	}
	if err := Redact(ErrPanic, true); !ErrPanic.Is(err) {
		t.Error("reduct in debug mode must pass through panic error")
	}
	if err := Redact(ErrMismatch, false); !ErrMismatch.Is(err) {
		t.Error("reduct must pass through registered errors")
	}
	if err := Redact(fmt.Errorf("secret"), false); err.Error() != internalABCILog {
		t.Errorf("unregistered error not redacted: %v", err)
	}
}

func TestABCIError(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrCapacity, "commit"), false)
	err := ABCIError(code, log)
	if !ErrCapacity.Is(err) {
		t.Errorf("want capacity error, got %v", err)
	}
	if got, _ := ABCIInfo(err, false); got != code {
		t.Errorf("want %d code, got %d", code, got)
	}

	err = ABCIError(987654, "unknown")
	if got := abciCode(err); got != internalABCICode {
		t.Errorf("want internal code, got %d", got)
	}
}
