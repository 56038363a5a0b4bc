package weave

import "fmt"

// Release of the escrow ledger. Suffix is empty for tagged releases.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is injected at build time:
//
//   go build -ldflags "-X github.com/iov-one/nftescrow.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version returns the release, followed by the commit when known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit != "" {
		return v + " " + GitCommit
	}
	return v
}
