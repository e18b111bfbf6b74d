package transfer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
)

// Export writes subs to w as JSON Lines: a header record, then one entry
// record per subscription in display order.
func Export(w io.Writer, subs []model.Subscription, at time.Time) error {
	bw := bufio.NewWriter(w)

	header := Record{
		Type:       recordHeader,
		Version:    FormatVersion,
		ExportedAt: at.UTC().Format(time.RFC3339),
	}
	if err := writeRecord(bw, header); err != nil {
		return err
	}

	for _, sub := range subs {
		if err := writeRecord(bw, entryRecord(sub)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ExportFile writes subs to path, creating or truncating the file.
func ExportFile(path string, subs []model.Subscription, at time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	if err := Export(f, subs, at); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func entryRecord(sub model.Subscription) Record {
	rec := Record{
		Type:      recordEntry,
		ID:        sub.ID,
		Name:      sub.Name,
		Color:     sub.Color,
		Amount:    sub.Amount,
		Cycle:     string(sub.Cycle),
		AutoRenew: sub.AutoRenew,
		EntryType: string(sub.Type),
		SortOrder: sub.SortOrder,
	}
	if !sub.StartDate.IsZero() {
		rec.StartDate = sub.StartDate.Format(DateLayout)
	}
	if sub.EndDate != nil {
		rec.EndDate = sub.EndDate.Format(DateLayout)
	}
	return rec
}

func writeRecord(w io.Writer, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
