// Package proposal validates the propose → modify → accept lifecycle of a
// loan proposal. The command vocabulary is closed; any other command is a
// structural rejection before rule-specific checks run.
package proposal

import (
	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
	"github.com/samnaidups/CordaProjects/internal/domain/loan"
)

// Commands. Zero-data tags used purely for dispatch.
type (
	ProposeLoan        struct{}
	ModifyROI          struct{}
	ModifyInstallments struct{}
	AcceptLoan         struct{}
)

type Contract struct{}

var _ ledger.Contract = Contract{}

// Verify is a pure predicate over the transition bundle: nil accepts, a
// typed error rejects. Re-running it on the same bundle always yields the
// same verdict.
func (Contract) Verify(tx ledger.Transition) error {
	cmd, err := tx.OneCommand()
	if err != nil {
		return err
	}
	if tx.TimeWindowPresent {
		return &ledger.StructuralError{Reason: "proposal transitions must not carry a time-window"}
	}

	switch cmd.Value.(type) {
	case ProposeLoan:
		return verifyPropose(tx, cmd)
	case ModifyROI:
		return verifyModifyROI(tx, cmd)
	case ModifyInstallments:
		return verifyModifyInstallments(tx, cmd)
	case AcceptLoan:
		return verifyAccept(tx, cmd)
	default:
		return &ledger.StructuralError{Reason: "unrecognized command for the loan proposal contract"}
	}
}

func verifyPropose(tx ledger.Transition, cmd ledger.Command) error {
	if len(tx.Inputs) != 0 {
		return &ledger.StructuralError{Reason: "proposing a loan consumes no inputs"}
	}
	if len(tx.Outputs) != 1 {
		return &ledger.StructuralError{Reason: "proposing a loan produces exactly one output"}
	}
	out, ok := tx.Outputs[0].(loan.ProposalRecord)
	if !ok {
		return &ledger.StructuralError{Reason: "output must be a loan proposal"}
	}
	if !ledger.SameParties(out.Lender, out.Borrower, out.Proposer, out.Proposee) {
		return &ledger.InvariantViolation{Reason: "lender and borrower must be the proposer and proposee"}
	}
	if !cmd.HasSigners(out.Proposer.Key, out.Proposee.Key) {
		return &ledger.SignerError{Reason: "proposer and proposee must both sign a proposal"}
	}
	return nil
}

func verifyModifyROI(tx ledger.Transition, cmd ledger.Command) error {
	in, out, err := oneProposalInOut(tx)
	if err != nil {
		return err
	}
	if out.ROI == in.ROI {
		return &ledger.InvariantViolation{Reason: "rate of interest must change on modification"}
	}
	if out.Borrower != in.Borrower || out.Lender != in.Lender {
		return &ledger.InvariantViolation{Reason: "borrower and lender must not change on modification"}
	}
	if !cmd.HasSigners(out.Proposer.Key, out.Proposee.Key) {
		return &ledger.SignerError{Reason: "proposer and proposee must both sign a modification"}
	}
	return nil
}

// verifyModifyInstallments mirrors verifyModifyROI with installment count as
// the changing field. The original rule reported "roi" in its rejection text
// while inspecting the installment count; the message here names the field
// actually checked (defect noted in DESIGN.md).
func verifyModifyInstallments(tx ledger.Transition, cmd ledger.Command) error {
	in, out, err := oneProposalInOut(tx)
	if err != nil {
		return err
	}
	if out.Installments == in.Installments {
		return &ledger.InvariantViolation{Reason: "installment count must change on modification"}
	}
	if out.Borrower != in.Borrower || out.Lender != in.Lender {
		return &ledger.InvariantViolation{Reason: "borrower and lender must not change on modification"}
	}
	if !cmd.HasSigners(out.Proposer.Key, out.Proposee.Key) {
		return &ledger.SignerError{Reason: "proposer and proposee must both sign a modification"}
	}
	return nil
}

func verifyAccept(tx ledger.Transition, cmd ledger.Command) error {
	if len(tx.Inputs) != 1 {
		return &ledger.StructuralError{Reason: "accepting a loan consumes exactly one input"}
	}
	if len(tx.Outputs) != 1 {
		return &ledger.StructuralError{Reason: "accepting a loan produces exactly one output"}
	}
	in, ok := tx.Inputs[0].(loan.ProposalRecord)
	if !ok {
		return &ledger.StructuralError{Reason: "input must be a loan proposal"}
	}
	out, ok := tx.Outputs[0].(loan.AgreementRecord)
	if !ok {
		return &ledger.StructuralError{Reason: "output must be a loan agreement"}
	}
	if out.Amount != in.Amount {
		return &ledger.InvariantViolation{Reason: "amount must not change on acceptance"}
	}
	if out.Borrower != in.Borrower || out.Lender != in.Lender {
		return &ledger.InvariantViolation{Reason: "borrower and lender must not change on acceptance"}
	}
	// The agreement carries no proposer/proposee, so the consumed
	// proposal's identities are the ones that must have signed.
	if !cmd.HasSigners(in.Proposer.Key, in.Proposee.Key) {
		return &ledger.SignerError{Reason: "proposer and proposee must both sign the acceptance"}
	}
	return nil
}

func oneProposalInOut(tx ledger.Transition) (loan.ProposalRecord, loan.ProposalRecord, error) {
	var zero loan.ProposalRecord
	if len(tx.Inputs) != 1 {
		return zero, zero, &ledger.StructuralError{Reason: "modifying a proposal consumes exactly one input"}
	}
	if len(tx.Outputs) != 1 {
		return zero, zero, &ledger.StructuralError{Reason: "modifying a proposal produces exactly one output"}
	}
	in, ok := tx.Inputs[0].(loan.ProposalRecord)
	if !ok {
		return zero, zero, &ledger.StructuralError{Reason: "input must be a loan proposal"}
	}
	out, ok := tx.Outputs[0].(loan.ProposalRecord)
	if !ok {
		return zero, zero, &ledger.StructuralError{Reason: "output must be a loan proposal"}
	}
	return in, out, nil
}
