package loan

import (
	"fmt"
	"time"

	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
)

type Kind string

const (
	KindProposal  Kind = "proposal"
	KindAgreement Kind = "agreement"
)

// Version is one persisted record version. Versions are append-only: a
// committed transition inserts the outputs as fresh rows and flips Consumed
// on the inputs, it never updates record fields in place.
type Version struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	LinearID     string    `gorm:"size:36;index:idx_versions_linear_unconsumed" json:"linear_id"`
	Kind         Kind      `gorm:"size:16" json:"kind"`
	Amount       int64     `json:"amount"`
	ROI          int       `json:"roi"`
	Installments int       `json:"installments"`
	PaidAmount   int64     `json:"paid_amount"`
	LenderName   string    `gorm:"size:64" json:"lender_name"`
	LenderKey    string    `gorm:"size:32" json:"lender_key"`
	BorrowerName string    `gorm:"size:64" json:"borrower_name"`
	BorrowerKey  string    `gorm:"size:32" json:"borrower_key"`
	ProposerName string    `gorm:"size:64" json:"proposer_name,omitempty"`
	ProposerKey  string    `gorm:"size:32" json:"proposer_key,omitempty"`
	ProposeeName string    `gorm:"size:64" json:"proposee_name,omitempty"`
	ProposeeKey  string    `gorm:"size:32" json:"proposee_key,omitempty"`
	Consumed     bool      `gorm:"index:idx_versions_linear_unconsumed" json:"consumed"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Version) TableName() string { return "loan_record_versions" }

// State rehydrates the row into the contract state it stores.
func (v *Version) State() (ledger.ContractState, error) {
	switch v.Kind {
	case KindProposal:
		return ProposalRecord{
			Amount:       v.Amount,
			ROI:          v.ROI,
			Installments: v.Installments,
			Lender:       ledger.Party{Name: v.LenderName, Key: v.LenderKey},
			Borrower:     ledger.Party{Name: v.BorrowerName, Key: v.BorrowerKey},
			Proposer:     ledger.Party{Name: v.ProposerName, Key: v.ProposerKey},
			Proposee:     ledger.Party{Name: v.ProposeeName, Key: v.ProposeeKey},
			LinearID:     v.LinearID,
		}, nil
	case KindAgreement:
		return AgreementRecord{
			Amount:       v.Amount,
			ROI:          v.ROI,
			Installments: v.Installments,
			PaidAmount:   v.PaidAmount,
			Lender:       ledger.Party{Name: v.LenderName, Key: v.LenderKey},
			Borrower:     ledger.Party{Name: v.BorrowerName, Key: v.BorrowerKey},
			LinearID:     v.LinearID,
		}, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", v.Kind)
	}
}

// NewVersion flattens a contract state into a fresh unconsumed row.
func NewVersion(s ledger.ContractState) (*Version, error) {
	switch st := s.(type) {
	case ProposalRecord:
		return &Version{
			LinearID:     st.LinearID,
			Kind:         KindProposal,
			Amount:       st.Amount,
			ROI:          st.ROI,
			Installments: st.Installments,
			LenderName:   st.Lender.Name,
			LenderKey:    st.Lender.Key,
			BorrowerName: st.Borrower.Name,
			BorrowerKey:  st.Borrower.Key,
			ProposerName: st.Proposer.Name,
			ProposerKey:  st.Proposer.Key,
			ProposeeName: st.Proposee.Name,
			ProposeeKey:  st.Proposee.Key,
		}, nil
	case AgreementRecord:
		return &Version{
			LinearID:     st.LinearID,
			Kind:         KindAgreement,
			Amount:       st.Amount,
			ROI:          st.ROI,
			Installments: st.Installments,
			PaidAmount:   st.PaidAmount,
			LenderName:   st.Lender.Name,
			LenderKey:    st.Lender.Key,
			BorrowerName: st.Borrower.Name,
			BorrowerKey:  st.Borrower.Key,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported contract state %T", s)
	}
}
