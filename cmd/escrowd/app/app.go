/*
Package app wires the cash, nft and escrow extensions into a single
application: the authenticator, the decorator chain, the message router,
the query router and the genesis initializers.
*/
package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/app"
	"github.com/iov-one/nftescrow/x"
	"github.com/iov-one/nftescrow/x/cash"
	"github.com/iov-one/nftescrow/x/escrow"
	"github.com/iov-one/nftescrow/x/nft"
	"github.com/iov-one/nftescrow/x/sigs"
	"github.com/iov-one/nftescrow/x/utils"
)

// Name is reported by the ABCI Info call.
const Name = "escrowd"

// Authenticator accepts public key signatures and the escrow authority
// granted while an escrow moves its own funds or assets.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, escrow.Authenticate{})
}

// CashController returns a controller for cash functions
func CashController(auth x.Authenticator) cash.BaseController {
	return cash.NewController(auth)
}

// NFTRegistry returns the asset registry.
func NFTRegistry(auth x.Authenticator) nft.BaseRegistry {
	return nft.NewRegistry(auth)
}

// EscrowController returns the escrow controller backed by the cash
// controller and the asset registry.
func EscrowController(auth x.Authenticator) escrow.BaseController {
	return escrow.NewController(auth, CashController(auth), NFTRegistry(auth))
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. reg may be nil to disable metrics.
func Chain(reg prometheus.Registerer) app.Decorators {
	var metrics weave.Decorator
	if reg != nil {
		metrics = utils.NewMetrics(reg)
	}
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all message handlers.
func Router(auth x.Authenticator) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, CashController(auth))
	nft.RegisterRoutes(r, auth, NFTRegistry(auth))
	escrow.RegisterRoutes(r, auth, EscrowController(auth))
	return r
}

// QueryRouter returns a query router exposing "/currencies", "/accounts",
// "/assets", "/escrows" and "/auth".
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	cash.RegisterQuery(r)
	nft.RegisterQuery(r)
	escrow.RegisterQuery(r)
	sigs.RegisterQuery(r)
	return r
}

// Stack wires up the router with the decorator chain. This can be passed
// into Application.
func Stack(reg prometheus.Registerer) weave.Handler {
	auth := Authenticator()
	return Chain(reg).WithHandler(Router(auth))
}

// Initializers returns the genesis initializers of all extensions. Currencies
// and assets are loaded before the escrow configuration that refers to them.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		nft.Initializer{},
		escrow.Initializer{},
	)
}

// Application constructs the ABCI application on top of the given store.
// If you are not sure what to use for the Handler, just use Stack().
func Application(h weave.Handler, store weave.CommitKVStore, logger log.Logger, debug bool) app.BaseApp {
	ctx := context.Background()
	s := app.NewStoreApp(Name, store, QueryRouter(), ctx).
		WithInit(Initializers()).
		WithLogger(logger)
	return app.NewBaseApp(s, TxDecoder, h, debug)
}
