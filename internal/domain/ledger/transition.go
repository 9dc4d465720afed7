package ledger

// ContractState is one immutable version of on-ledger state. Prior versions
// are retired by consuming them in a transition, never edited.
type ContractState interface {
	Participants() []Party
}

// Command pairs a transition intent with the set of identities the runtime
// asserts have authorized it. Value is one of the closed per-contract tag
// types; the validator only dispatches on it, it carries no data.
type Command struct {
	Value   any
	Signers []string
}

// Transition is a fully materialized state-transition bundle: the record
// versions it consumes, the versions it produces, its single command and the
// time-window flag. It is handed to validators as an immutable value.
type Transition struct {
	Inputs            []ContractState
	Outputs           []ContractState
	Commands          []Command
	TimeWindowPresent bool
}

// OneCommand returns the bundle's single command, or a StructuralError when
// the bundle carries zero or more than one.
func (tx Transition) OneCommand() (Command, error) {
	if len(tx.Commands) != 1 {
		return Command{}, &StructuralError{Reason: "transition must carry exactly one command"}
	}
	return tx.Commands[0], nil
}

// HasSigners reports whether every given key appears in the command's
// signer set.
func (c Command) HasSigners(keys ...string) bool {
	for _, k := range keys {
		if !c.hasSigner(k) {
			return false
		}
	}
	return true
}

func (c Command) hasSigner(key string) bool {
	for _, s := range c.Signers {
		if s == key {
			return true
		}
	}
	return false
}

// SignersExactly reports whether the command's signer set equals the given
// keys as sets: no required key missing, no extra signer present.
func (c Command) SignersExactly(keys ...string) bool {
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	got := make(map[string]struct{}, len(c.Signers))
	for _, s := range c.Signers {
		if _, ok := want[s]; !ok {
			return false
		}
		got[s] = struct{}{}
	}
	return len(got) == len(want)
}

// Contract validates transitions over the states it governs. Verify returns
// nil to accept or a typed rejection; it must be pure and deterministic.
type Contract interface {
	Verify(tx Transition) error
}
