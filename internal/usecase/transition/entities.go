package transition

import (
	"time"

	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
)

type PartyInput struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

func (p PartyInput) party() ledger.Party { return ledger.Party{Name: p.Name, Key: p.Key} }

type ProposeInput struct {
	Amount       int64      `json:"amount"`
	ROI          int        `json:"roi"`
	Installments int        `json:"installments"`
	Lender       PartyInput `json:"lender"`
	Borrower     PartyInput `json:"borrower"`
	Proposer     PartyInput `json:"proposer"`
	Proposee     PartyInput `json:"proposee"`
}

type RequestInput struct {
	Amount       int64      `json:"amount"`
	ROI          int        `json:"roi"`
	Installments int        `json:"installments"`
	Lender       PartyInput `json:"lender"`
	Borrower     PartyInput `json:"borrower"`
}

type RecordDTO struct {
	LinearID     string      `json:"linear_id"`
	Kind         string      `json:"kind"`
	Status       string      `json:"status"`
	Amount       int64       `json:"amount"`
	ROI          int         `json:"roi"`
	Installments int         `json:"installments"`
	PaidAmount   int64       `json:"paid_amount"`
	Lender       PartyInput  `json:"lender"`
	Borrower     PartyInput  `json:"borrower"`
	Proposer     *PartyInput `json:"proposer,omitempty"`
	Proposee     *PartyInput `json:"proposee,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SettleDTO reports the outcome of one settlement round.
type SettleDTO struct {
	LinearID    string     `json:"linear_id"`
	Attested    int64      `json:"attested"`
	Outstanding int64      `json:"outstanding"`
	Status      string     `json:"status"`
	Remainder   *RecordDTO `json:"remainder,omitempty"`
}
