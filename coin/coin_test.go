package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/weavetest/assert"
)

func TestValidCurrency(t *testing.T) {
	cases := map[string]bool{
		"ABC":               true,
		"RCPT-0A1B2C3D4E5F": true,
		"ETH.USD":           true,
		"AB":                false,
		"abc":               false,
		"-ABC":              false,
		"":                  false,
	}
	for ticker, want := range cases {
		if got := IsCC(ticker); got != want {
			t.Errorf("%q: want %v", ticker, want)
		}
	}
}

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"simple": {
			a:    NewCoin(3, "ABC"),
			b:    NewCoin(4, "ABC"),
			want: NewCoin(7, "ABC"),
		},
		"empty left": {
			a:    Coin{},
			b:    NewCoin(4, "ABC"),
			want: NewCoin(4, "ABC"),
		},
		"different currency": {
			a:       NewCoin(3, "ABC"),
			b:       NewCoin(4, "XYZ"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(math.MaxUint64, "ABC"),
			b:       NewCoin(1, "ABC"),
			wantErr: errors.ErrOverflow,
		},
		"max": {
			a:    NewCoin(math.MaxUint64-1, "ABC"),
			b:    NewCoin(1, "ABC"),
			want: NewCoin(math.MaxUint64, "ABC"),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	c := NewCoin(10, "ABC")

	got, err := c.Subtract(NewCoin(10, "ABC"))
	assert.Nil(t, err)
	assert.Equal(t, true, got.IsZero())

	_, err = c.Subtract(NewCoin(11, "ABC"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	_, err = c.Subtract(NewCoin(1, "XYZ"))
	assert.IsErr(t, errors.ErrCurrency, err)

	got, err = c.Subtract(Coin{})
	assert.Nil(t, err)
	assert.Equal(t, c, got)
}

func TestCoinSerialization(t *testing.T) {
	c := NewCoin(1234, "RCPT-AB12")
	raw, err := c.Marshal()
	assert.Nil(t, err)
	var got Coin
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, c, got)
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr bool
	}{
		"simple":       {raw: "12 ABC", want: NewCoin(12, "ABC")},
		"no space":     {raw: "12ABC", want: NewCoin(12, "ABC")},
		"receipt":      {raw: "7 RCPT-FF00", want: NewCoin(7, "RCPT-FF00")},
		"negative":     {raw: "-1 ABC", wantErr: true},
		"fraction":     {raw: "1.5 ABC", wantErr: true},
		"too big":      {raw: "18446744073709551616 ABC", wantErr: true},
		"no currency":  {raw: "42", wantErr: true},
		"lowercase":    {raw: "42 abc", wantErr: true},
		"surrounding":  {raw: "  42 ABC ", want: NewCoin(42, "ABC")},
		"max possible": {raw: "18446744073709551615 ABC", want: NewCoin(math.MaxUint64, "ABC")},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("want error, got %v", got)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
			back, err := ParseHumanFormat(got.String())
			assert.Nil(t, err)
			assert.Equal(t, got, back)
		})
	}
}

func TestCoinUnmarshalJSON(t *testing.T) {
	var c Coin
	assert.Nil(t, json.Unmarshal([]byte(`"5 ABC"`), &c))
	assert.Equal(t, NewCoin(5, "ABC"), c)

	assert.Nil(t, json.Unmarshal([]byte(`{"ticker": "XYZ", "amount": 9}`), &c))
	assert.Equal(t, NewCoin(9, "XYZ"), c)
}
