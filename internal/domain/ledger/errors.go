package ledger

// Rejection taxonomy. Every rejection is final and names the unmet
// predicate; the runtime voids the whole transition on the first one.

// StructuralError rejects wrong input/output cardinality or type, zero or
// multiple commands, an unrecognized command, or a disallowed time-window.
type StructuralError struct{ Reason string }

func (e *StructuralError) Error() string { return "structural: " + e.Reason }

// SignerError rejects a missing required signer, or a signer set that is not
// exactly the required set.
type SignerError struct{ Reason string }

func (e *SignerError) Error() string { return "signers: " + e.Reason }

// InvariantViolation rejects a field that changed when it must stay
// constant, or stayed constant when it must change.
type InvariantViolation struct{ Reason string }

func (e *InvariantViolation) Error() string { return "invariant: " + e.Reason }

// BusinessRuleError rejects a business predicate: non-positive amount,
// lender equal to borrower, settlement exceeding the outstanding balance.
type BusinessRuleError struct{ Reason string }

func (e *BusinessRuleError) Error() string { return "business rule: " + e.Reason }
