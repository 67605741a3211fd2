package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrCapacity,
			b:      ErrCapacity,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrCapacity,
			b:      ErrConfiguration,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrOverflow,
			b:      Wrap(ErrOverflow, "claim"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"multi error contains the kind": {
			a:      ErrMismatch,
			b:      Append(ErrNotFound, Wrap(ErrMismatch, "vault")),
			wantIs: true,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got: %v", got)
			}
		})
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	Register(ErrCapacity.ABCICode(), "again")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestWrapFormatting(t *testing.T) {
	err := Wrap(ErrCapacity, "commit")
	if got, want := fmt.Sprintf("%s", err), "commit: capacity exceeded"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got := fmt.Sprintf("%v", err); !strings.Contains(got, "errors_test.go") {
		t.Fatalf("creation point missing: %q", got)
	}
	if got := fmt.Sprintf("%+v", err); !strings.Contains(got, "TestWrapFormatting") {
		t.Fatalf("stack trace missing: %q", got)
	}
	if Wrap(nil, "nothing") != nil {
		t.Fatal("wrapping nil must return nil")
	}
}

func TestCreationPointSkipsWrappers(t *testing.T) {
	cases := map[string]func() error{
		"wrapf": func() error {
			return Wrapf(ErrOverflow, "amount %d", 7)
		},
		"wrap type": func() error {
			return WithType(ErrMismatch, 7)
		},
		"recovered panic": func() (err error) {
			defer Recover(&err)
			panic("boom")
		},
	}
	for testName, create := range cases {
		t.Run(testName, func(t *testing.T) {
			got := fmt.Sprintf("%v", create())
			if !strings.Contains(got, "[errors_test.go:") {
				t.Fatalf("want creation point in test file, got %q", got)
			}
		})
	}
}
