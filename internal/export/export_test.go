package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mmynk/secretsanta/internal/models"
)

func TestText(t *testing.T) {
	record := models.EventRecord{
		Title:     "Office Party",
		Date:      "2024-12-20",
		MaxAmount: "25",
		Results: []models.Pair{
			{Giver: "A", Receiver: "B"},
			{Giver: "B", Receiver: "A"},
		},
	}

	got := Text(record)
	lines := strings.Split(got, "\n")

	if lines[0] != "Office Party" {
		t.Errorf("header = %q, want Office Party", lines[0])
	}
	if !strings.Contains(got, "Date: December 20, 2024\n") {
		t.Errorf("missing formatted date line in:\n%s", got)
	}

	var budgetLine string
	for _, l := range lines {
		if strings.HasPrefix(l, "Budget") {
			budgetLine = l
		}
	}
	if !strings.Contains(budgetLine, "25") {
		t.Errorf("budget line = %q, want it to contain 25", budgetLine)
	}

	for _, want := range []string{"A → B", "B → A"} {
		found := false
		for _, l := range lines {
			if l == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing line %q in:\n%s", want, got)
		}
	}
}

func TestText_OptionalLines(t *testing.T) {
	got := Text(models.EventRecord{
		Results: []models.Pair{{Giver: "A", Receiver: "B"}, {Giver: "B", Receiver: "A"}},
	})

	want := "Secret Santa\n\nA → B\nB → A\n"
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-12-20", "December 20, 2024"},
		{"2025-01-05", "January 5, 2025"},
		{"next friday", "next friday"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, models.EventRecord{
		Results: []models.Pair{{Giver: "Zoë", Receiver: "Smith, John"}, {Giver: "Smith, John", Receiver: "Zoë"}},
	})
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "\xef\xbb\xbfGiver,Receiver\nZoë,\"Smith, John\"\n\"Smith, John\",Zoë\n"
	if buf.String() != want {
		t.Errorf("WriteCSV wrote %q, want %q", buf.String(), want)
	}
}

func TestMessage(t *testing.T) {
	got := Message(models.Pair{Giver: "Alice", Receiver: "Bob"})
	want := "Hello Alice! You are the Secret Santa for Bob. Happy gifting!"
	if got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}
