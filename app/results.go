package app

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/errors"
)

// ResultSet is the encoding of the keys or the values returned by a query.
type ResultSet struct {
	Results [][]byte
}

func (r *ResultSet) Marshal() ([]byte, error) {
	var w codec.Writer
	w.RepeatedBytes(1, r.Results)
	return w.Result()
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	*r = ResultSet{}
	rd := codec.NewReader(raw)
	for rd.Next() {
		var err error
		switch rd.Field() {
		case 1:
			var b []byte
			if b, err = rd.Bytes(); err == nil {
				r.Results = append(r.Results, b)
			}
		default:
			err = rd.Skip()
		}
		if err != nil {
			return err
		}
	}
	return rd.Err()
}

// ResultsFromKeys returns a ResultSet of all keys of the models.
func ResultsFromKeys(models []multidist.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values of the models.
func ResultsFromValues(models []multidist.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues.
func JoinResults(keys, values *ResultSet) ([]multidist.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys and %d values", len(keys.Results), len(values.Results))
	}
	models := make([]multidist.Model, len(keys.Results))
	for i := range models {
		models[i] = multidist.Pair(keys.Results[i], values.Results[i])
	}
	return models, nil
}
