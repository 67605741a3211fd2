package orm

import (
	"testing"

	"github.com/iov-one/multidist/weavetest/assert"
)

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		start  []byte
		end    []byte
	}{
		"empty": {},
		"simple": {
			prefix: []byte("abc"),
			start:  []byte("abc"),
			end:    []byte("abd"),
		},
		"carry": {
			prefix: []byte{1, 0xff},
			start:  []byte{1, 0xff},
			end:    []byte{2, 0},
		},
		"no end": {
			prefix: []byte{0xff, 0xff},
			start:  []byte{0xff, 0xff},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			start, end := PrefixRange(tc.prefix)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}
