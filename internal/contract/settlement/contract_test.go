package settlement

import (
	"errors"
	"strings"
	"testing"

	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
	"github.com/samnaidups/CordaProjects/internal/domain/loan"
)

var (
	lender   = ledger.Party{Name: "Lender", Key: strings.Repeat("1", 32)}
	borrower = ledger.Party{Name: "Borrower", Key: strings.Repeat("2", 32)}
	stranger = ledger.Party{Name: "Stranger", Key: strings.Repeat("3", 32)}
)

func baseAgreement() loan.AgreementRecord {
	return loan.AgreementRecord{
		Amount:       100,
		ROI:          5,
		Installments: 10,
		PaidAmount:   0,
		Lender:       lender,
		Borrower:     borrower,
		LinearID:     "f0f0f0f0-0000-4000-8000-000000000002",
	}
}

func requestTx(out loan.AgreementRecord, signers ...string) ledger.Transition {
	return ledger.Transition{
		Outputs:  []ledger.ContractState{out},
		Commands: []ledger.Command{{Value: RequestLoan{}, Signers: signers}},
	}
}

func settleTx(in loan.AgreementRecord, outs []ledger.ContractState, signers ...string) ledger.Transition {
	return ledger.Transition{
		Inputs:   []ledger.ContractState{in},
		Outputs:  outs,
		Commands: []ledger.Command{{Value: SettleLoan{}, Signers: signers}},
	}
}

func TestRequest_Accepts(t *testing.T) {
	tx := requestTx(baseAgreement(), lender.Key, borrower.Key)
	if err := (Contract{}).Verify(tx); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestRequest_RejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []int64{0, -50} {
		out := baseAgreement()
		out.Amount = amount
		err := (Contract{}).Verify(requestTx(out, lender.Key, borrower.Key))
		var br *ledger.BusinessRuleError
		if !errors.As(err, &br) {
			t.Fatalf("amount=%d: err = %v, want BusinessRuleError", amount, err)
		}
	}
}

func TestRequest_RejectsSelfLending(t *testing.T) {
	out := baseAgreement()
	out.Borrower = lender
	err := (Contract{}).Verify(requestTx(out, lender.Key))
	var br *ledger.BusinessRuleError
	if !errors.As(err, &br) {
		t.Fatalf("err = %v, want BusinessRuleError", err)
	}
}

func TestRequest_RequiresExactSignerSet(t *testing.T) {
	cases := map[string][]string{
		"missing borrower": {lender.Key},
		"extra signer":     {lender.Key, borrower.Key, stranger.Key},
		"wrong party":      {lender.Key, stranger.Key},
	}
	for name, signers := range cases {
		err := (Contract{}).Verify(requestTx(baseAgreement(), signers...))
		var se *ledger.SignerError
		if !errors.As(err, &se) {
			t.Fatalf("%s: err = %v, want SignerError", name, err)
		}
	}
}

func TestRequest_RejectsInputs(t *testing.T) {
	tx := requestTx(baseAgreement(), lender.Key, borrower.Key)
	tx.Inputs = []ledger.ContractState{baseAgreement()}
	assertStructural(t, Contract{}.Verify(tx))
}

func TestSettle_PartialKeepsAgreementAlive(t *testing.T) {
	in := baseAgreement()
	out := in
	out.PaidAmount = 40
	tx := settleTx(in, []ledger.ContractState{out}, lender.Key, borrower.Key)
	if err := (Contract{Attested: 40}).Verify(tx); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestSettle_FullDischargeRequiresNoOutputs(t *testing.T) {
	in := baseAgreement()
	in.PaidAmount = 99 // outstanding = 1

	tx := settleTx(in, nil, lender.Key, borrower.Key)
	if err := (Contract{Attested: 1}).Verify(tx); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	// Any surviving output voids a full discharge.
	successor := in
	successor.PaidAmount = 100
	tx = settleTx(in, []ledger.ContractState{successor}, lender.Key, borrower.Key)
	assertStructural(t, Contract{Attested: 1}.Verify(tx))
}

func TestSettle_RejectsOverSettlement(t *testing.T) {
	in := baseAgreement()
	in.PaidAmount = 99
	tx := settleTx(in, nil, lender.Key, borrower.Key)
	err := (Contract{Attested: 2}).Verify(tx)
	var br *ledger.BusinessRuleError
	if !errors.As(err, &br) {
		t.Fatalf("err = %v, want BusinessRuleError", err)
	}
}

func TestSettle_PartialRejectsMutation(t *testing.T) {
	in := baseAgreement()

	mutate := map[string]func(*loan.AgreementRecord){
		"amount":    func(a *loan.AgreementRecord) { a.Amount = 200 },
		"borrower":  func(a *loan.AgreementRecord) { a.Borrower = stranger },
		"lender":    func(a *loan.AgreementRecord) { a.Lender = stranger },
		"linear id": func(a *loan.AgreementRecord) { a.LinearID = "f0f0f0f0-0000-4000-8000-00000000ffff" },
	}
	for field, fn := range mutate {
		out := in
		out.PaidAmount = 10
		fn(&out)
		tx := settleTx(in, []ledger.ContractState{out}, lender.Key, borrower.Key)
		err := (Contract{Attested: 10}).Verify(tx)
		var iv *ledger.InvariantViolation
		if !errors.As(err, &iv) {
			t.Fatalf("%s: err = %v, want InvariantViolation", field, err)
		}
	}
}

func TestSettle_PaidAmountDriftIsNotChecked(t *testing.T) {
	// The rule never relates output paid-amount to the attested value.
	// A successor crediting nothing, or more than attested, still passes.
	in := baseAgreement()
	for _, paid := range []int64{0, 5, 99} {
		out := in
		out.PaidAmount = paid
		tx := settleTx(in, []ledger.ContractState{out}, lender.Key, borrower.Key)
		if err := (Contract{Attested: 30}).Verify(tx); err != nil {
			t.Fatalf("paid=%d: Verify: %v", paid, err)
		}
	}
}

func TestSettle_RequiresExactSignerSet(t *testing.T) {
	in := baseAgreement()
	out := in
	out.PaidAmount = 10
	outs := []ledger.ContractState{out}

	for name, signers := range map[string][]string{
		"missing lender": {borrower.Key},
		"extra signer":   {lender.Key, borrower.Key, stranger.Key},
	} {
		err := (Contract{Attested: 10}).Verify(settleTx(in, outs, signers...))
		var se *ledger.SignerError
		if !errors.As(err, &se) {
			t.Fatalf("%s: err = %v, want SignerError", name, err)
		}
	}
}

func TestSettle_RejectsProposalInput(t *testing.T) {
	tx := ledger.Transition{
		Inputs:   []ledger.ContractState{loan.ProposalRecord{Amount: 100, Lender: lender, Borrower: borrower}},
		Commands: []ledger.Command{{Value: SettleLoan{}, Signers: []string{lender.Key, borrower.Key}}},
	}
	assertStructural(t, Contract{Attested: 10}.Verify(tx))
}

func TestPayCommands_AlwaysRejected(t *testing.T) {
	for _, cmd := range []any{PayInterest{}, PayPrincipal{}} {
		in := baseAgreement()
		tx := settleTx(in, nil, lender.Key, borrower.Key)
		tx.Commands[0].Value = cmd
		assertStructural(t, Contract{Attested: 0}.Verify(tx))
	}
}

func TestVerify_RejectsCommandArity(t *testing.T) {
	tx := requestTx(baseAgreement(), lender.Key, borrower.Key)
	tx.Commands = append(tx.Commands, ledger.Command{Value: SettleLoan{}})
	assertStructural(t, Contract{}.Verify(tx))
}

func TestVerify_Deterministic(t *testing.T) {
	in := baseAgreement()
	in.PaidAmount = 99
	tx := settleTx(in, nil, lender.Key, borrower.Key)
	c := Contract{Attested: 1}
	if e1, e2 := c.Verify(tx), c.Verify(tx); (e1 == nil) != (e2 == nil) {
		t.Fatalf("verdicts differ: %v vs %v", e1, e2)
	}
}

func assertStructural(t *testing.T, err error) {
	t.Helper()
	var se *ledger.StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StructuralError", err)
	}
}
