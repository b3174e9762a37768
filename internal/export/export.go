// Package export renders an event record for people: plain text for copying
// and sharing, CSV for spreadsheets, and per-giver notification messages.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmynk/secretsanta/internal/models"
)

const dateLayout = "2006-01-02"

// Text renders record as:
//
//	Office Party
//	Date: December 20, 2024
//	Budget: $25
//
//	A → B
//	B → A
//
// The date and budget lines are omitted when empty.
func Text(record models.EventRecord) string {
	var b strings.Builder
	b.WriteString(record.DisplayTitle())
	b.WriteByte('\n')
	if record.Date != "" {
		fmt.Fprintf(&b, "Date: %s\n", FormatDate(record.Date))
	}
	if record.MaxAmount != "" {
		fmt.Fprintf(&b, "Budget: $%s\n", record.MaxAmount)
	}
	b.WriteByte('\n')
	for _, p := range record.Results {
		fmt.Fprintf(&b, "%s → %s\n", p.Giver, p.Receiver)
	}
	return b.String()
}

// FormatDate turns "2024-12-20" into "December 20, 2024". Anything that is
// not a YYYY-MM-DD date is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// WriteCSV writes one Giver,Receiver row per pair. A UTF-8 BOM goes first so
// spreadsheet apps pick the right encoding for non-ASCII names.
func WriteCSV(w io.Writer, record models.EventRecord) error {
	if _, err := io.WriteString(w, "\xef\xbb\xbf"); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Giver", "Receiver"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range record.Results {
		if err := cw.Write([]string{p.Giver, p.Receiver}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Message is the notification a giver receives.
func Message(p models.Pair) string {
	return fmt.Sprintf("Hello %s! You are the Secret Santa for %s. Happy gifting!", p.Giver, p.Receiver)
}
