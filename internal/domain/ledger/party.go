package ledger

// Party identifies a counterparty on the ledger. Key is the well-known
// signing-key fingerprint (32-char lowercase hex) the runtime reports in
// signer sets; Name is the human-readable identity.
type Party struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// SameParties reports whether two pairs of parties are equal as sets,
// ignoring order. Either party may appear on either side.
func SameParties(a1, a2, b1, b2 Party) bool {
	return (a1 == b1 && a2 == b2) || (a1 == b2 && a2 == b1)
}
