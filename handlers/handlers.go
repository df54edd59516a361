// Package handlers exposes the computation core over HTTP. Handlers fetch
// snapshots from the upstream ledger, run the pure transforms and return
// view-ready aggregates; they never persist anything themselves.
package handlers

import (
	"splitsight-bff/ledger"
)

// Ledger is the upstream API client shared by all handlers, set once at
// startup.
var Ledger *ledger.Client

func Init(client *ledger.Client) {
	Ledger = client
}
