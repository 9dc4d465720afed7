package flow

import (
	"fmt"

	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
)

// IdentityResolver maps an anonymized signer key to the well-known party
// behind it. Resolution is provided by the hosting environment; the
// validators only ever see resolved parties.
type IdentityResolver interface {
	WellKnown(key string) (ledger.Party, error)
}

// StaticResolver resolves from a fixed key → party table.
type StaticResolver map[string]ledger.Party

func (r StaticResolver) WellKnown(key string) (ledger.Party, error) {
	p, ok := r[key]
	if !ok {
		return ledger.Party{}, fmt.Errorf("no well-known identity for key %s", key)
	}
	return p, nil
}
