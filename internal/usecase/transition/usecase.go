// Package transition is the ledger runtime around the loan contracts: it
// materializes transition bundles from the record store, collects the
// counterparty signature through a flow session, asks every governing
// contract for a verdict and, only on accept, commits the transition
// atomically (inputs consumed, outputs inserted).
package transition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samnaidups/CordaProjects/internal/contract/proposal"
	"github.com/samnaidups/CordaProjects/internal/contract/settlement"
	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
	"github.com/samnaidups/CordaProjects/internal/domain/loan"
	"github.com/samnaidups/CordaProjects/internal/domain/uow"
	"github.com/samnaidups/CordaProjects/internal/flow"
	"github.com/samnaidups/CordaProjects/internal/oracle"
	"github.com/samnaidups/CordaProjects/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	uow      uow.UnitOfWork
	oracle   oracle.BalanceOracle
	resolver flow.IdentityResolver
	signTTL  time.Duration
}

// NewUsecase builds the runtime. A nil resolver takes submitted identities
// as-is; with one configured, every party entering a new bundle must resolve
// to its well-known identity.
func NewUsecase(u uow.UnitOfWork, o oracle.BalanceOracle, r flow.IdentityResolver, signTTL time.Duration) *Usecase {
	if signTTL <= 0 {
		signTTL = 5 * time.Minute
	}
	return &Usecase{uow: u, oracle: o, resolver: r, signTTL: signTTL}
}

// resolveParty canonicalizes an ingress identity against the registry. The
// submitted name is replaced by the well-known one; an unknown key is a
// signer rejection.
func (u *Usecase) resolveParty(p ledger.Party) (ledger.Party, error) {
	if u.resolver == nil {
		return p, nil
	}
	known, err := u.resolver.WellKnown(p.Key)
	if err != nil {
		return ledger.Party{}, &ledger.SignerError{Reason: "no well-known identity for key " + p.Key}
	}
	return known, nil
}

// collectSigners runs the two-role signing session for one transition. The
// responder's counter-signature is gathered in-process here; a multi-node
// deployment would drive the same session over its transport.
func (u *Usecase) collectSigners(initiator, responder ledger.Party) ([]string, error) {
	now := time.Now().UTC()
	s := flow.NewSession(initiator, responder, now.Add(u.signTTL))
	if err := s.CounterSign(responder.Key, now); err != nil {
		return nil, fmt.Errorf("collect counter-signature: %w", err)
	}
	return s.Signers(), nil
}

// validate dispatches the bundle to every governing contract and aggregates
// the verdicts; any single rejection voids the transition.
func validate(commandName string, contracts []ledger.Contract, tx ledger.Transition) error {
	for _, c := range contracts {
		if err := c.Verify(tx); err != nil {
			observeVerdict(commandName, err)
			return err
		}
	}
	observeVerdict(commandName, nil)
	return nil
}

func (u *Usecase) Propose(ctx context.Context, in ProposeInput) (*RecordDTO, error) {
	out := loan.ProposalRecord{
		Amount:       in.Amount,
		ROI:          in.ROI,
		Installments: in.Installments,
		Lender:       in.Lender.party(),
		Borrower:     in.Borrower.party(),
		Proposer:     in.Proposer.party(),
		Proposee:     in.Proposee.party(),
		LinearID:     id.NewLinearID(),
	}
	for _, p := range []*ledger.Party{&out.Lender, &out.Borrower, &out.Proposer, &out.Proposee} {
		rp, err := u.resolveParty(*p)
		if err != nil {
			return nil, err
		}
		*p = rp
	}

	signers, err := u.collectSigners(out.Proposer, out.Proposee)
	if err != nil {
		return nil, err
	}
	tx := ledger.Transition{
		Outputs:  []ledger.ContractState{out},
		Commands: []ledger.Command{{Value: proposal.ProposeLoan{}, Signers: signers}},
	}
	if err := validate("propose_loan", []ledger.Contract{proposal.Contract{}}, tx); err != nil {
		return nil, err
	}

	v, err := loan.NewVersion(out)
	if err != nil {
		return nil, err
	}
	if err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Records.Insert(ctx, v)
	}); err != nil {
		return nil, err
	}
	return dtoFromVersion(v, loan.StatusProposed), nil
}

func (u *Usecase) ModifyROI(ctx context.Context, linearID string, roi int) (*RecordDTO, error) {
	return u.modifyProposal(ctx, linearID, "modify_roi", proposal.ModifyROI{}, func(p *loan.ProposalRecord) {
		p.ROI = roi
	})
}

func (u *Usecase) ModifyInstallments(ctx context.Context, linearID string, installments int) (*RecordDTO, error) {
	return u.modifyProposal(ctx, linearID, "modify_installments", proposal.ModifyInstallments{}, func(p *loan.ProposalRecord) {
		p.Installments = installments
	})
}

func (u *Usecase) modifyProposal(ctx context.Context, linearID, name string, cmd any, mutate func(*loan.ProposalRecord)) (*RecordDTO, error) {
	var dto *RecordDTO
	err := u.uow.WithinRecordTx(ctx, linearID, func(r uow.Repos, v *loan.Version) error {
		st, err := v.State()
		if err != nil {
			return err
		}
		in, ok := st.(loan.ProposalRecord)
		if !ok {
			return &ledger.StructuralError{Reason: "only a proposal can be modified"}
		}
		out := in
		mutate(&out)

		signers, err := u.collectSigners(out.Proposer, out.Proposee)
		if err != nil {
			return err
		}
		tx := ledger.Transition{
			Inputs:   []ledger.ContractState{in},
			Outputs:  []ledger.ContractState{out},
			Commands: []ledger.Command{{Value: cmd, Signers: signers}},
		}
		if err := validate(name, []ledger.Contract{proposal.Contract{}}, tx); err != nil {
			return err
		}

		succ, err := loan.NewVersion(out)
		if err != nil {
			return err
		}
		if err := r.Records.MarkConsumed(ctx, v.ID); err != nil {
			return err
		}
		if err := r.Records.Insert(ctx, succ); err != nil {
			return err
		}
		dto = dtoFromVersion(succ, loan.StatusProposed)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return dto, nil
}

func (u *Usecase) Accept(ctx context.Context, linearID string) (*RecordDTO, error) {
	var dto *RecordDTO
	err := u.uow.WithinRecordTx(ctx, linearID, func(r uow.Repos, v *loan.Version) error {
		st, err := v.State()
		if err != nil {
			return err
		}
		in, ok := st.(loan.ProposalRecord)
		if !ok {
			return &ledger.StructuralError{Reason: "only a proposal can be accepted"}
		}
		// the agreement carries the proposal's linear identifier forward
		out := loan.AgreementRecord{
			Amount:       in.Amount,
			ROI:          in.ROI,
			Installments: in.Installments,
			PaidAmount:   0,
			Lender:       in.Lender,
			Borrower:     in.Borrower,
			LinearID:     in.LinearID,
		}

		signers, err := u.collectSigners(in.Proposer, in.Proposee)
		if err != nil {
			return err
		}
		tx := ledger.Transition{
			Inputs:   []ledger.ContractState{in},
			Outputs:  []ledger.ContractState{out},
			Commands: []ledger.Command{{Value: proposal.AcceptLoan{}, Signers: signers}},
		}
		if err := validate("accept_loan", []ledger.Contract{proposal.Contract{}}, tx); err != nil {
			return err
		}

		succ, err := loan.NewVersion(out)
		if err != nil {
			return err
		}
		if err := r.Records.MarkConsumed(ctx, v.ID); err != nil {
			return err
		}
		if err := r.Records.Insert(ctx, succ); err != nil {
			return err
		}
		dto = dtoFromVersion(succ, loan.StatusAgreed)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return dto, nil
}

func (u *Usecase) Request(ctx context.Context, in RequestInput) (*RecordDTO, error) {
	out := loan.AgreementRecord{
		Amount:       in.Amount,
		ROI:          in.ROI,
		Installments: in.Installments,
		PaidAmount:   0,
		Lender:       in.Lender.party(),
		Borrower:     in.Borrower.party(),
		LinearID:     id.NewLinearID(),
	}
	for _, p := range []*ledger.Party{&out.Lender, &out.Borrower} {
		rp, err := u.resolveParty(*p)
		if err != nil {
			return nil, err
		}
		*p = rp
	}

	signers, err := u.collectSigners(out.Lender, out.Borrower)
	if err != nil {
		return nil, err
	}
	tx := ledger.Transition{
		Outputs:  []ledger.ContractState{out},
		Commands: []ledger.Command{{Value: settlement.RequestLoan{}, Signers: signers}},
	}
	if err := validate("request_loan", []ledger.Contract{settlement.Contract{}}, tx); err != nil {
		return nil, err
	}

	v, err := loan.NewVersion(out)
	if err != nil {
		return nil, err
	}
	if err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Records.Insert(ctx, v)
	}); err != nil {
		return nil, err
	}
	return dtoFromVersion(v, loan.StatusAgreed), nil
}

// Settle runs one settlement round against the oracle's attested figure.
// On full discharge the agreement is consumed with no successor; otherwise
// the successor credits the attested amount toward the debt.
func (u *Usecase) Settle(ctx context.Context, linearID string) (*SettleDTO, error) {
	attested, err := u.oracle.AttestedPayable(ctx, linearID)
	if err != nil {
		return nil, fmt.Errorf("balance oracle: %w", err)
	}

	var dto *SettleDTO
	err = u.uow.WithinRecordTx(ctx, linearID, func(r uow.Repos, v *loan.Version) error {
		st, err := v.State()
		if err != nil {
			return err
		}
		in, ok := st.(loan.AgreementRecord)
		if !ok {
			return &ledger.StructuralError{Reason: "only an agreement can be settled"}
		}

		signers, err := u.collectSigners(in.Lender, in.Borrower)
		if err != nil {
			return err
		}

		full := in.Outstanding() == attested
		tx := ledger.Transition{
			Inputs:   []ledger.ContractState{in},
			Commands: []ledger.Command{{Value: settlement.SettleLoan{}, Signers: signers}},
		}
		var out loan.AgreementRecord
		if !full {
			out = in
			out.PaidAmount = in.PaidAmount + attested
			tx.Outputs = []ledger.ContractState{out}
		}
		if err := validate("settle_loan", []ledger.Contract{settlement.Contract{Attested: attested}}, tx); err != nil {
			return err
		}

		if err := r.Records.MarkConsumed(ctx, v.ID); err != nil {
			return err
		}
		dto = &SettleDTO{
			LinearID:    linearID,
			Attested:    attested,
			Outstanding: in.Outstanding() - attested,
			Status:      string(loan.StatusSettled),
		}
		if !full {
			succ, err := loan.NewVersion(out)
			if err != nil {
				return err
			}
			if err := r.Records.Insert(ctx, succ); err != nil {
				return err
			}
			dto.Status = string(out.Status())
			dto.Remainder = dtoFromVersion(succ, out.Status())
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, linearID string) (*RecordDTO, error) {
	var dto *RecordDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		v, err := r.Records.GetUnconsumedByLinearID(ctx, linearID)
		if err != nil {
			return err
		}
		st, err := v.State()
		if err != nil {
			return err
		}
		status := loan.StatusProposed
		if a, ok := st.(loan.AgreementRecord); ok {
			status = a.Status()
		}
		dto = dtoFromVersion(v, status)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return dto, nil
}

func dtoFromVersion(v *loan.Version, status loan.Status) *RecordDTO {
	dto := &RecordDTO{
		LinearID:     v.LinearID,
		Kind:         string(v.Kind),
		Status:       string(status),
		Amount:       v.Amount,
		ROI:          v.ROI,
		Installments: v.Installments,
		PaidAmount:   v.PaidAmount,
		Lender:       PartyInput{Name: v.LenderName, Key: v.LenderKey},
		Borrower:     PartyInput{Name: v.BorrowerName, Key: v.BorrowerKey},
		CreatedAt:    v.CreatedAt,
	}
	if v.Kind == loan.KindProposal {
		dto.Proposer = &PartyInput{Name: v.ProposerName, Key: v.ProposerKey}
		dto.Proposee = &PartyInput{Name: v.ProposeeName, Key: v.ProposeeKey}
	}
	return dto
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}
