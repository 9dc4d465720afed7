// Package flow covers the orchestration boundary around the validators:
// collecting the counterparty's signature over a two-role session and
// resolving anonymized keys to well-known parties. The session is a pure
// state machine; time is passed in, never read from a clock.
package flow

import (
	"errors"
	"time"

	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
)

type Role string

const (
	RoleInitiator Role = "initiator"
	RoleResponder Role = "responder"
)

type SessionState string

const (
	StateAwaitingCounterSignature SessionState = "awaiting_counter_signature"
	StateSigned                   SessionState = "signed"
	StateAborted                  SessionState = "aborted"
)

var (
	ErrSessionClosed  = errors.New("signing session already closed")
	ErrWrongSigner    = errors.New("signature from a party outside the session")
	ErrSessionExpired = errors.New("signing session deadline passed")
)

// Session tracks signature collection between an initiator and a responder.
// It starts with the initiator's own signature attached and waits for
// exactly one counter-signature before the configured deadline.
type Session struct {
	initiator ledger.Party
	responder ledger.Party
	deadline  time.Time
	state     SessionState
	signers   []string
	abortedAt time.Time
}

func NewSession(initiator, responder ledger.Party, deadline time.Time) *Session {
	return &Session{
		initiator: initiator,
		responder: responder,
		deadline:  deadline,
		state:     StateAwaitingCounterSignature,
		signers:   []string{initiator.Key},
	}
}

func (s *Session) State() SessionState { return s.state }

// AbortedAt reports when the session aborted. The zero time and false mean
// the session never aborted.
func (s *Session) AbortedAt() (time.Time, bool) {
	return s.abortedAt, s.state == StateAborted
}

// Signers returns the collected signer keys. Complete only once the session
// is in StateSigned.
func (s *Session) Signers() []string {
	out := make([]string, len(s.signers))
	copy(out, s.signers)
	return out
}

// CounterSign records the responder's signature observed at the given time.
// A signature past the deadline aborts the session instead of completing it.
func (s *Session) CounterSign(key string, at time.Time) error {
	if s.state != StateAwaitingCounterSignature {
		return ErrSessionClosed
	}
	if at.After(s.deadline) {
		s.state = StateAborted
		s.abortedAt = at
		return ErrSessionExpired
	}
	if key != s.responder.Key {
		return ErrWrongSigner
	}
	s.signers = append(s.signers, key)
	s.state = StateSigned
	return nil
}

// Abort closes the session explicitly, e.g. when the responder rejects the
// proposed transition.
func (s *Session) Abort(at time.Time) error {
	if s.state != StateAwaitingCounterSignature {
		return ErrSessionClosed
	}
	s.state = StateAborted
	s.abortedAt = at
	return nil
}
