package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultTitle is shown when an event has no title of its own.
const DefaultTitle = "Secret Santa"

// Pair is one giver → receiver assignment.
type Pair struct {
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

// Budget is the optional spending ceiling. It is carried as text and never
// interpreted; older clients wrote it as a JSON number, so both forms decode.
type Budget string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (b *Budget) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*b = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = Budget(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("budget must be a string or number: %w", err)
	}
	*b = Budget(n.String())
	return nil
}

// EventRecord is a generated assignment set plus its display metadata.
// It is the unit carried by share tokens.
type EventRecord struct {
	// Title is the display title. Empty means DefaultTitle.
	Title string `json:"title"`

	// Date is the exchange date in YYYY-MM-DD form, or empty.
	Date string `json:"date"`

	// MaxAmount is the budget ceiling, or empty.
	MaxAmount Budget `json:"maxAmount"`

	// Results holds one pair per participant, in giver order.
	Results []Pair `json:"results"`
}

// DisplayTitle returns the title, falling back to DefaultTitle.
func (r EventRecord) DisplayTitle() string {
	if r.Title == "" {
		return DefaultTitle
	}
	return r.Title
}

// ReceiverFor returns the receiver assigned to giver.
func (r EventRecord) ReceiverFor(giver string) (string, bool) {
	for _, p := range r.Results {
		if p.Giver == giver {
			return p.Receiver, true
		}
	}
	return "", false
}

// Event is a persisted draw for a group.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// GroupID is the group whose roster was drawn.
	GroupID string

	// Record is the generated assignment set and metadata.
	Record EventRecord

	// CreatedAt is the Unix timestamp of the draw.
	CreatedAt int64
}
