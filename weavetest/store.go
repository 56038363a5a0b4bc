package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db weave.CommitKVStore, cleanup func()) {
	t.Helper()

	dbpath, err := ioutil.TempDir("", "weavetest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	commit, err := iavl.NewCommitStore(dbpath, "db", 0)
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot open commit store: %s", err)
	}
	return commit, func() {
		commit.Close()
		os.RemoveAll(dbpath)
	}
}
