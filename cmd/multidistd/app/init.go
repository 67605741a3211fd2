package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/crypto"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const defaultTicker = "MDT"

// GenInitOptions produces the app_state for a development chain: one rich
// account holding the given ticker. Arguments are an optional ticker and
// an optional hex address. Without an address a new key is generated and
// printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := defaultTicker
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
		}
	}

	var addr multidist.Address
	if len(args) > 1 {
		var err error
		if addr, err = multidist.ParseAddress(args[1]); err != nil {
			return nil, err
		}
	} else {
		var (
			keys string
			err  error
		)
		if addr, keys, err = GenerateCoinKey(); err != nil {
			return nil, err
		}
		fmt.Println(keys)
	}

	state := map[string]interface{}{
		"cash": []interface{}{
			map[string]interface{}{
				"address": addr,
				"coins":   []coin.Coin{coin.NewCoin(123456789, ticker)},
			},
		},
		"currencies": []interface{}{
			map[string]interface{}{
				"ticker": ticker,
				"name":   "development token",
			},
		},
		"ledger": map[string]interface{}{
			"collections":   []interface{}{},
			"distributions": []interface{}{},
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create the application for the start command.
// Transaction metrics are registered with the default prometheus registry.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "multidist.db")
	}

	metrics := utils.NewMetrics(Name)
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, err
	}

	application, err := Application(Stack(metrics), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a new public key, along with a
// json representation of the keys. You can give coins to this address
// and import the keys in a client to use them.
func GenerateCoinKey() (multidist.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return pubKey.Address(), string(keys), nil
}
