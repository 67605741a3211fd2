package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/multidist/errors"
)

type recordingTester struct {
	failed bool
}

func (r *recordingTester) Helper()                       {}
func (r *recordingTester) Fatal(...interface{})          { r.failed = true }
func (r *recordingTester) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":             {value: nil},
		"nil error":       {value: (*errors.Error)(nil)},
		"nil slice":       {value: []byte(nil)},
		"error":           {value: fmt.Errorf("x"), wantFail: true},
		"non pointer int": {value: 1, wantFail: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var rt recordingTester
			Nil(&rt, tc.value)
			if rt.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, rt.failed)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var rt recordingTester
	Equal(&rt, []uint64{1, 2}, []uint64{1, 2})
	if rt.failed {
		t.Fatal("equal values reported as different")
	}
	Equal(&rt, uint64(1), 1)
	if !rt.failed {
		t.Fatal("values of different types reported as equal")
	}
}
