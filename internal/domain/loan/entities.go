package loan

import (
	"errors"

	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
)

var (
	ErrNotFound = errors.New("loan record not found")
	ErrConsumed = errors.New("loan record version already consumed")
)

type Status string

const (
	StatusProposed         Status = "proposed"
	StatusAgreed           Status = "agreed"
	StatusPartiallySettled Status = "partially_settled"
	StatusSettled          Status = "settled"
)

// ProposalRecord is one version of a loan proposal under negotiation.
// Either party may play either economic role, so proposer/proposee and
// lender/borrower are tracked separately; LinearID ties all versions of one
// logical proposal together.
type ProposalRecord struct {
	Amount       int64
	ROI          int
	Installments int
	Lender       ledger.Party
	Borrower     ledger.Party
	Proposer     ledger.Party
	Proposee     ledger.Party
	LinearID     string
}

func (p ProposalRecord) Participants() []ledger.Party {
	return []ledger.Party{p.Proposer, p.Proposee}
}

// AgreementRecord is one version of an agreed loan. Amount, lender and
// borrower never change for the lifetime of the agreement; PaidAmount tracks
// cumulative settlement.
type AgreementRecord struct {
	Amount       int64
	ROI          int
	Installments int
	PaidAmount   int64
	Lender       ledger.Party
	Borrower     ledger.Party
	LinearID     string
}

func (a AgreementRecord) Participants() []ledger.Party {
	return []ledger.Party{a.Lender, a.Borrower}
}

// Outstanding is the balance still owed on the agreement.
func (a AgreementRecord) Outstanding() int64 { return a.Amount - a.PaidAmount }

// Status reports where a live agreement sits in the settlement lifecycle.
// A fully settled loan has no live version at all, so StatusSettled is never
// derived from a record.
func (a AgreementRecord) Status() Status {
	if a.PaidAmount > 0 {
		return StatusPartiallySettled
	}
	return StatusAgreed
}
