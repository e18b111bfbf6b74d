// Package transfer reads and writes subscription backups as JSON Lines.
// A backup file starts with a header record followed by one entry record
// per subscription, so files stay append-friendly and diff-friendly.
package transfer

// FormatVersion is the current backup file format version.
const FormatVersion = 1

// DateLayout is the wire format for all dates in backup files.
const DateLayout = "2006-01-02"

// Record is a single line in a backup file. The Type field routes
// decoding: "header" lines carry file metadata, "entry" lines carry
// one subscription each. Unknown types are skipped so newer files
// stay readable by older binaries.
type Record struct {
	Type string `json:"type"`

	// Header fields.
	Version    int    `json:"version,omitempty"`
	ExportedAt string `json:"exported_at,omitempty"`

	// Entry fields.
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name,omitempty"`
	Color     string  `json:"color,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Cycle     string  `json:"cycle,omitempty"`
	StartDate string  `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string  `json:"end_date,omitempty"`   // YYYY-MM-DD, empty = open-ended
	AutoRenew bool    `json:"auto_renew,omitempty"`
	EntryType string  `json:"entry_type,omitempty"` // "service" or "category"
	SortOrder int     `json:"sort_order,omitempty"`
}

const (
	recordHeader = "header"
	recordEntry  = "entry"
)
