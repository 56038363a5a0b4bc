package app

import (
	amino "github.com/tendermint/go-amino"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

var cdc = amino.NewCodec()

// ResultSet is the serialized form of query results. Keys and values are
// sent as two separate sets of the same size.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

func (r *ResultSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, r)
}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []weave.Model) *ResultSet {
	return collect(models, func(m weave.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []weave.Model) *ResultSet {
	return collect(models, func(m weave.Model) []byte { return m.Value })
}

func collect(models []weave.Model, field func(weave.Model) []byte) *ResultSet {
	out := make([][]byte, len(models))
	for i, m := range models {
		out[i] = field(m)
	}
	return &ResultSet{Results: out}
}

// JoinResults pairs keys and values of a query response back into models.
func JoinResults(keys, values *ResultSet) ([]weave.Model, error) {
	if nk, nv := len(keys.Results), len(values.Results); nk != nv {
		return nil, errors.Wrapf(errors.ErrInvalidState, "%d keys and %d values", nk, nv)
	}
	models := make([]weave.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = weave.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult loads the first entry of a serialized ResultSet into
// dst. An empty set leaves dst untouched, callers that need the record
// check for a zero value.
func UnmarshalOneResult(raw []byte, dst weave.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if len(set.Results) == 0 {
		return nil
	}
	return dst.Unmarshal(set.Results[0])
}
