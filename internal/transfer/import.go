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

// ImportResult holds the outcome of reading a backup file.
type ImportResult struct {
	Subs         []model.Subscription
	Version      int // 0 if the file had no header
	SkippedLines int // malformed or invalid lines, not fatal
}

// Import reads JSON Lines records from r and returns the decoded
// subscriptions in file order. Malformed lines and entries that fail
// validation are counted in SkippedLines rather than aborting, so a
// partially damaged backup still restores what it can. Entries sharing
// an ID are deduplicated, last one wins, keeping the first position.
func Import(r io.Reader) (ImportResult, error) {
	var res ImportResult

	byID := make(map[string]int) // id -> index in res.Subs
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			res.SkippedLines++
			continue
		}

		switch rec.Type {
		case recordHeader:
			res.Version = rec.Version

		case recordEntry:
			sub, err := subscriptionFromRecord(rec)
			if err != nil {
				res.SkippedLines++
				continue
			}
			if sub.ID != "" {
				if idx, ok := byID[sub.ID]; ok {
					res.Subs[idx] = sub
					continue
				}
				byID[sub.ID] = len(res.Subs)
			}
			res.Subs = append(res.Subs, sub)

		default:
			// Unknown record type from a newer format. Skip silently.
		}
	}

	if err := scanner.Err(); err != nil {
		return ImportResult{}, fmt.Errorf("read backup: %w", err)
	}

	if res.Version > FormatVersion {
		return ImportResult{}, fmt.Errorf("backup format version %d is newer than supported version %d", res.Version, FormatVersion)
	}

	return res, nil
}

// ImportFile reads a backup file from path.
func ImportFile(path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open backup file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Import(f)
}

func subscriptionFromRecord(rec Record) (model.Subscription, error) {
	sub := model.Subscription{
		ID:        rec.ID,
		Name:      rec.Name,
		Color:     rec.Color,
		Amount:    rec.Amount,
		Cycle:     model.Cycle(rec.Cycle),
		AutoRenew: rec.AutoRenew,
		Type:      model.EntryType(rec.EntryType),
		SortOrder: rec.SortOrder,
	}
	if sub.Type == "" {
		sub.Type = model.TypeService
	}

	if sub.Name == "" {
		return model.Subscription{}, fmt.Errorf("entry has no name")
	}
	if sub.IsCategory() {
		return sub, nil
	}

	if !sub.Cycle.Valid() {
		return model.Subscription{}, fmt.Errorf("entry %q has invalid cycle %q", rec.Name, rec.Cycle)
	}
	if sub.Amount < 0 {
		return model.Subscription{}, fmt.Errorf("entry %q has negative amount", rec.Name)
	}

	if rec.StartDate == "" {
		return model.Subscription{}, fmt.Errorf("entry %q has no start date", rec.Name)
	}
	start, err := time.Parse(DateLayout, rec.StartDate)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("entry %q has invalid start date %q", rec.Name, rec.StartDate)
	}
	sub.StartDate = start

	if rec.EndDate != "" {
		end, err := time.Parse(DateLayout, rec.EndDate)
		if err != nil {
			return model.Subscription{}, fmt.Errorf("entry %q has invalid end date %q", rec.Name, rec.EndDate)
		}
		if end.Before(start) {
			return model.Subscription{}, fmt.Errorf("entry %q ends before it starts", rec.Name)
		}
		sub.EndDate = &end
	}

	return sub, nil
}
