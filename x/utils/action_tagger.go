package utils

import (
	weave "github.com/iov-one/nftescrow"
)

// ActionKey is the tag key under which ActionTagger stores the message path.
const ActionKey = "action"

// ActionTagger labels every delivered transaction with an
// "action=<message path>" tag, for example action=escrow/take. Clients use
// it to subscribe to a single kind of escrow operation.
type ActionTagger struct{}

var _ weave.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check does not produce tags.
func (ActionTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	// A transaction without a readable message is rejected before it runs.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, weave.Tag(ActionKey, msg.Path()))
	return res, nil
}
