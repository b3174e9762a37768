package models

import (
	"errors"
	"testing"
)

func TestHistoryAdd(t *testing.T) {
	h := History{}

	if err := h.Add("Alice", "Bob"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !h.Forbids("Alice", "Bob") {
		t.Error("expected Alice → Bob to be forbidden")
	}
	if h.Forbids("Bob", "Alice") {
		t.Error("exclusions are directional, Bob → Alice should be allowed")
	}

	if err := h.Add("Alice", "Bob"); !errors.Is(err, ErrDuplicateExclusion) {
		t.Errorf("duplicate: expected ErrDuplicateExclusion, got %v", err)
	}
	if err := h.Add("Alice", "Alice"); !errors.Is(err, ErrSelfExclusion) {
		t.Errorf("self: expected ErrSelfExclusion, got %v", err)
	}
	if err := h.Add("", "Bob"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty: expected ErrEmptyName, got %v", err)
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestHistoryRemoveDropsEmptyKeys(t *testing.T) {
	h := History{}
	h.Add("Alice", "Bob")
	h.Add("Alice", "Charlie")

	h.Remove("Alice", "Bob")
	if got := h["Alice"]; len(got) != 1 || got[0] != "Charlie" {
		t.Errorf("after first remove: got %v, want [Charlie]", got)
	}

	h.Remove("Alice", "Charlie")
	if _, ok := h["Alice"]; ok {
		t.Error("expected Alice key to be dropped once empty")
	}

	// Removing something absent is a no-op.
	h.Remove("Nobody", "Alice")
}

func TestHistoryPrune(t *testing.T) {
	h := History{}
	h.Add("Alice", "Bob")
	h.Add("Bob", "Alice")
	h.Add("Bob", "Charlie")
	h.Add("Charlie", "Alice")

	h.Prune("Alice")

	if _, ok := h["Alice"]; ok {
		t.Error("Alice should no longer be a giver")
	}
	if h.Forbids("Bob", "Alice") {
		t.Error("Alice should be removed from Bob's receivers")
	}
	if !h.Forbids("Bob", "Charlie") {
		t.Error("Bob → Charlie should survive the prune")
	}
	if _, ok := h["Charlie"]; ok {
		t.Error("Charlie only excluded Alice, the key should be dropped")
	}
}

func TestHistoryCloneIsIndependent(t *testing.T) {
	h := History{}
	h.Add("Alice", "Bob")

	c := h.Clone()
	c.Add("Alice", "Charlie")

	if h.Forbids("Alice", "Charlie") {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone   string
		wantErr bool
	}{
		{"", false},
		{"555-123-4567", false},
		{"(555) 123-4567", false},
		{"+1 555.123.4567", false},
		{"5551234567", false},
		{"12345", true},
		{"call me", true},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePhone(%q) error = %v, wantErr %v", tt.phone, err, tt.wantErr)
			}
		})
	}
}

func TestBudgetUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Budget
	}{
		{"string", `"25"`, "25"},
		{"number", `25`, "25"},
		{"decimal", `12.50`, "12.50"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Budget
			if err := b.UnmarshalJSON([]byte(tt.json)); err != nil {
				t.Fatalf("UnmarshalJSON(%s) failed: %v", tt.json, err)
			}
			if b != tt.want {
				t.Errorf("got %q, want %q", b, tt.want)
			}
		})
	}

	var b Budget
	if err := b.UnmarshalJSON([]byte(`true`)); err == nil {
		t.Error("expected error for boolean budget")
	}
}

func TestEventRecordDisplayTitle(t *testing.T) {
	if got := (EventRecord{}).DisplayTitle(); got != DefaultTitle {
		t.Errorf("empty title: got %q, want %q", got, DefaultTitle)
	}
	if got := (EventRecord{Title: "Office Party"}).DisplayTitle(); got != "Office Party" {
		t.Errorf("got %q, want Office Party", got)
	}
}
