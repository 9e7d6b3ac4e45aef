package testfixtures

import "testing"

func TestIDGeneratorSequence(t *testing.T) {
	gen := NewIDGenerator("room")

	if got := gen.Next(); got != "room-1" {
		t.Fatalf("unexpected first id: %q", got)
	}
	if got := gen.Next(); got != "room-2" {
		t.Fatalf("unexpected second id: %q", got)
	}

	gen.Reset()
	if got := gen.Next(); got != "room-1" {
		t.Fatalf("expected sequence to restart, got %q", got)
	}
}

func TestIDGeneratorDefaultPrefix(t *testing.T) {
	gen := NewIDGenerator("")
	if got := gen.Next(); got != "id-1" {
		t.Fatalf("unexpected id: %q", got)
	}
}

func TestIDGeneratorNextFunc(t *testing.T) {
	gen := NewIDGenerator("res")
	next := gen.NextFunc()

	if got := next(); got != "res-1" {
		t.Fatalf("unexpected id: %q", got)
	}

	var nilGen *IDGenerator
	if got := nilGen.NextFunc()(); got != "" {
		t.Fatalf("expected empty id from nil generator, got %q", got)
	}
}
