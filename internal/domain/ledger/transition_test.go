package ledger

import "testing"

func TestOneCommand(t *testing.T) {
	if _, err := (Transition{}).OneCommand(); err == nil {
		t.Fatal("want error for zero commands")
	}
	tx := Transition{Commands: []Command{{Value: 1}, {Value: 2}}}
	if _, err := tx.OneCommand(); err == nil {
		t.Fatal("want error for two commands")
	}
	tx.Commands = tx.Commands[:1]
	if _, err := tx.OneCommand(); err != nil {
		t.Fatalf("OneCommand: %v", err)
	}
}

func TestSignersExactly_SetSemantics(t *testing.T) {
	c := Command{Signers: []string{"a", "b", "a"}} // duplicates collapse
	if !c.SignersExactly("a", "b") {
		t.Fatal("duplicated signer should still match as a set")
	}
	if c.SignersExactly("a") {
		t.Fatal("extra signer must fail exact match")
	}
	if c.SignersExactly("a", "b", "c") {
		t.Fatal("missing signer must fail exact match")
	}
}

func TestSameParties(t *testing.T) {
	a := Party{Name: "A", Key: "ka"}
	b := Party{Name: "B", Key: "kb"}
	c := Party{Name: "C", Key: "kc"}
	if !SameParties(a, b, b, a) {
		t.Fatal("order must not matter")
	}
	if SameParties(a, b, a, c) {
		t.Fatal("different parties must not match")
	}
}
