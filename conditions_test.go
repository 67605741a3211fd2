package multidist_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/weavetest/assert"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAddressPrinting(t *testing.T) {
	Convey("address is printed as upper case hex", t, func() {
		addr := multidist.NewCondition("ledger", "vault", []byte{1, 2}).Address()
		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
		So(multidist.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("condition keeps extension and type readable", t, func() {
		cond := multidist.NewCondition("ledger", "vault", []byte{0xAB, 0xCD})
		So(cond.String(), ShouldEqual, "ledger/vault/ABCD")
		So(multidist.Condition("bad").String(), ShouldStartWith, "Invalid Condition")
	})
}

func TestConditionAddress(t *testing.T) {
	a := multidist.NewCondition("ledger", "collection", []byte("one"))
	b := multidist.NewCondition("ledger", "collection", []byte("one"))
	c := multidist.NewCondition("sigs", "collection", []byte("one"))

	assert.Nil(t, a.Validate())
	assert.Equal(t, true, a.Address().Equals(b.Address()))
	assert.Equal(t, false, a.Address().Equals(c.Address()))
	assert.Equal(t, multidist.AddressLength, len(a.Address()))

	ext, typ, data, err := a.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "ledger", ext)
	assert.Equal(t, "collection", typ)
	assert.Equal(t, []byte("one"), data)

	assert.IsErr(t, errors.ErrInput, multidist.Condition("no/data").Validate())
}

func TestAddressValidate(t *testing.T) {
	assert.IsErr(t, errors.ErrEmpty, multidist.Address(nil).Validate())
	assert.IsErr(t, errors.ErrInput, multidist.Address([]byte{1, 2, 3}).Validate())
	assert.Nil(t, multidist.NewAddress([]byte("x")).Validate())
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := multidist.NewCondition("ledger", "vault", []byte("data")).Address()
	b32, err := addr.Bech32()
	assert.Nil(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr multidist.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%s"`, addr),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, addr),
			wantAddr: addr,
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, b32),
			wantAddr: addr,
		},
		"empty string is nil": {
			json:     `""`,
			wantAddr: nil,
		},
		"invalid hex": {
			json:    `"zzzz"`,
			wantErr: errors.ErrInput,
		},
		"short address": {
			json:    `"0102"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrInput,
		},
		"not a string": {
			json:    `42`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got multidist.Address
			err := json.Unmarshal([]byte(tc.json), &got)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAddr, got)
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := multidist.NewCondition("sigs", "ed25519", []byte("key")).Address()
	raw, err := json.Marshal(addr)
	assert.Nil(t, err)
	assert.Equal(t, fmt.Sprintf(`"%s"`, addr), string(raw))

	var got multidist.Address
	assert.Nil(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}
