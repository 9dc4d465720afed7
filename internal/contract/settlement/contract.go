// Package settlement validates direct loan issuance and settlement of a
// loan agreement against an externally attested payable amount.
package settlement

import (
	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
	"github.com/samnaidups/CordaProjects/internal/domain/loan"
)

// Commands. PayInterest and PayPrincipal are declared but have no
// validation rule; any bundle carrying one is rejected unconditionally.
type (
	RequestLoan  struct{}
	SettleLoan   struct{}
	PayInterest  struct{}
	PayPrincipal struct{}
)

// Contract validates issuance and settlement. Attested is the balance
// oracle's figure for the current settlement round; the runtime materializes
// it before validation so Verify stays pure and collaborator-free.
type Contract struct {
	Attested int64
}

var _ ledger.Contract = Contract{}

func (c Contract) Verify(tx ledger.Transition) error {
	cmd, err := tx.OneCommand()
	if err != nil {
		return err
	}

	switch cmd.Value.(type) {
	case RequestLoan:
		return verifyRequest(tx, cmd)
	case SettleLoan:
		return c.verifySettle(tx, cmd)
	default:
		// PayInterest and PayPrincipal land here on purpose.
		return &ledger.StructuralError{Reason: "unrecognized command for the loan settlement contract"}
	}
}

func verifyRequest(tx ledger.Transition, cmd ledger.Command) error {
	if len(tx.Inputs) != 0 {
		return &ledger.StructuralError{Reason: "requesting a loan consumes no inputs"}
	}
	if len(tx.Outputs) != 1 {
		return &ledger.StructuralError{Reason: "requesting a loan produces exactly one output"}
	}
	out, ok := tx.Outputs[0].(loan.AgreementRecord)
	if !ok {
		return &ledger.StructuralError{Reason: "output must be a loan agreement"}
	}
	if out.Amount <= 0 {
		return &ledger.BusinessRuleError{Reason: "loan amount must be positive"}
	}
	if out.Lender == out.Borrower {
		return &ledger.BusinessRuleError{Reason: "lender and borrower must differ"}
	}
	if !cmd.SignersExactly(out.Lender.Key, out.Borrower.Key) {
		return &ledger.SignerError{Reason: "lender and borrower, and no one else, must sign the request"}
	}
	return nil
}

// verifySettle never relates the output's paid amount to the attested value
// or the input's paid amount; how much is actually credited toward the debt
// is unconstrained here. Preserved as-is, see the open questions in
// DESIGN.md.
func (c Contract) verifySettle(tx ledger.Transition, cmd ledger.Command) error {
	if len(tx.Inputs) != 1 {
		return &ledger.StructuralError{Reason: "settling a loan consumes exactly one input"}
	}
	in, ok := tx.Inputs[0].(loan.AgreementRecord)
	if !ok {
		return &ledger.StructuralError{Reason: "input must be a loan agreement"}
	}

	outstanding := in.Outstanding()
	if outstanding < c.Attested {
		return &ledger.BusinessRuleError{Reason: "attested settlement exceeds the outstanding balance"}
	}

	if outstanding == c.Attested {
		// Full discharge: the agreement is retired with no successor.
		if len(tx.Outputs) != 0 {
			return &ledger.StructuralError{Reason: "full settlement produces no outputs"}
		}
	} else {
		if len(tx.Outputs) != 1 {
			return &ledger.StructuralError{Reason: "partial settlement produces exactly one output"}
		}
		out, ok := tx.Outputs[0].(loan.AgreementRecord)
		if !ok {
			return &ledger.StructuralError{Reason: "output must be a loan agreement"}
		}
		if out.Amount != in.Amount {
			return &ledger.InvariantViolation{Reason: "amount must not change on settlement"}
		}
		if out.Borrower != in.Borrower || out.Lender != in.Lender {
			return &ledger.InvariantViolation{Reason: "borrower and lender must not change on settlement"}
		}
		if out.LinearID != in.LinearID {
			return &ledger.InvariantViolation{Reason: "linear identifier must not change on settlement"}
		}
	}

	if !cmd.SignersExactly(in.Lender.Key, in.Borrower.Key) {
		return &ledger.SignerError{Reason: "lender and borrower, and no one else, must sign the settlement"}
	}
	return nil
}
