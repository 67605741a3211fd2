package currency

import (
	"strings"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/errors"
)

const pathCreateMsg = "currency/create"

// ReservedPrefix starts tickers that are registered by other extensions
// through Register. They cannot be created with a CreateMsg.
const ReservedPrefix = "RCPT-"

// CreateMsg registers a new ticker. The signer becomes the owner if Mintable
// is set.
type CreateMsg struct {
	Metadata *multidist.Metadata
	Ticker   string
	Name     string
	Mintable bool
}

var _ multidist.Msg = (*CreateMsg)(nil)

func (*CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	switch {
	case !coin.IsCC(m.Ticker):
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrCurrency, "invalid ticker %q", m.Ticker))
	case strings.HasPrefix(m.Ticker, ReservedPrefix):
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrCurrency, "ticker prefix %s is reserved", ReservedPrefix))
	}
	if !isTokenName(m.Name) {
		errs = errors.Append(errs, errors.Field("Name", errors.ErrInput, "invalid token name %q", m.Name))
	}
	return errs
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	var w codec.Writer
	if m.Metadata != nil {
		w.Message(1, m.Metadata)
	}
	w.String(2, m.Ticker)
	w.String(3, m.Name)
	w.Bool(4, m.Mintable)
	return w.Result()
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	*m = CreateMsg{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			m.Metadata = &multidist.Metadata{}
			err = r.Message(m.Metadata)
		case 2:
			m.Ticker, err = r.String()
		case 3:
			m.Name, err = r.String()
		case 4:
			m.Mintable, err = r.Bool()
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}
