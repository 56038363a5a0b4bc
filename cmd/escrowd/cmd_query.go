package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/app"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x/cash"
	"github.com/iov-one/nftescrow/x/escrow"
	"github.com/iov-one/nftescrow/x/nft"
	"github.com/iov-one/nftescrow/x/sigs"
)

// queryModels maps each query path to the model its values decode into.
var queryModels = map[string]func() weave.Persistent{
	"/accounts":   func() weave.Persistent { return &cash.Account{} },
	"/currencies": func() weave.Persistent { return &cash.Currency{} },
	"/assets":     func() weave.Persistent { return &nft.Asset{} },
	"/escrows":    func() weave.Persistent { return &escrow.Escrow{} },
	"/auth":       func() weave.Persistent { return &sigs.UserData{} },
}

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `
Query the last committed state and print matching entries as JSON.

Available paths are: %s
`, strings.Join(queryPaths(), ", "))
		fl.PrintDefaults()
	}
	var (
		homeFl   = fl.String("home", defaultHome(), "Directory holding the ledger files.")
		pathFl   = fl.String("path", "/escrows", "Query path.")
		keyFl    = flHex(fl, "key", "Hex encoded key. Empty key with -prefix lists everything.")
		prefixFl = fl.Bool("prefix", false, "Match all keys starting with the given key.")
	)
	fl.Parse(args)

	newModel, ok := queryModels[*pathFl]
	if !ok {
		return fmt.Errorf("unknown query path %q", *pathFl)
	}
	path := *pathFl
	if *prefixFl {
		path += "?" + weave.PrefixQueryMod
	}

	cfg, err := LoadConfig(*homeFl)
	if err != nil {
		return err
	}
	n, err := openNodeFromConfig(*homeFl, cfg)
	if err != nil {
		return err
	}
	defer n.Close()

	res := n.Query(path, *keyFl)
	if res.Code != errors.SuccessABCICode {
		return fmt.Errorf("query failed with code %d: %s", res.Code, res.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return err
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return err
	}
	models, err := app.JoinResults(&keys, &values)
	if err != nil {
		return err
	}

	type entry struct {
		Key   string      `json:"key"`
		Value interface{} `json:"value"`
	}
	entries := make([]entry, 0, len(models))
	for _, m := range models {
		obj := newModel()
		if err := obj.Unmarshal(m.Value); err != nil {
			return errors.Wrapf(err, "key %X", m.Key)
		}
		entries = append(entries, entry{Key: fmt.Sprintf("%X", m.Key), Value: obj})
	}
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func queryPaths() []string {
	paths := make([]string, 0, len(queryModels))
	for p := range queryModels {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
