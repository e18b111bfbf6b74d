package transfer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
)

func transferDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// importLines parses the given backup lines joined with newlines.
func importLines(t *testing.T, lines ...string) ImportResult {
	t.Helper()
	res, err := Import(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return res
}

func TestExportImportRoundTrip(t *testing.T) {
	end := transferDate(2024, time.December, 31)
	subs := []model.Subscription{
		{ID: "c1", Name: "Media", Type: model.TypeCategory, SortOrder: 0},
		{ID: "s1", Name: "Music", Type: model.TypeService, Amount: 11.99, Cycle: model.CycleMonthly,
			StartDate: transferDate(2024, time.January, 10), AutoRenew: true, Color: "#4385be", SortOrder: 1},
		{ID: "s2", Name: "Backup", Type: model.TypeService, Amount: 60, Cycle: model.CycleYearly,
			StartDate: transferDate(2023, time.March, 5), EndDate: &end, SortOrder: 2},
	}

	var buf bytes.Buffer
	if err := Export(&buf, subs, transferDate(2024, time.May, 15)); err != nil {
		t.Fatalf("Export: %v", err)
	}

	res, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Version != FormatVersion {
		t.Errorf("Version = %d, want %d", res.Version, FormatVersion)
	}
	if res.SkippedLines != 0 {
		t.Errorf("SkippedLines = %d, want 0", res.SkippedLines)
	}
	if len(res.Subs) != len(subs) {
		t.Fatalf("imported %d entries, want %d", len(res.Subs), len(subs))
	}

	got := res.Subs[1]
	if got.Name != "Music" || got.Amount != 11.99 || got.Cycle != model.CycleMonthly {
		t.Errorf("entry 1 = %+v, want Music/11.99/monthly", got)
	}
	if !got.StartDate.Equal(transferDate(2024, time.January, 10)) {
		t.Errorf("entry 1 StartDate = %v", got.StartDate)
	}
	if !got.AutoRenew {
		t.Error("entry 1 AutoRenew lost in round trip")
	}

	got = res.Subs[2]
	if got.EndDate == nil || !got.EndDate.Equal(end) {
		t.Errorf("entry 2 EndDate = %v, want %v", got.EndDate, end)
	}

	if !res.Subs[0].IsCategory() {
		t.Error("entry 0 should be a category")
	}
}

func TestImportDedupLastWins(t *testing.T) {
	res := importLines(t,
		`{"type":"header","version":1}`,
		`{"type":"entry","id":"s1","name":"Music","cycle":"monthly","amount":10,"start_date":"2024-01-10"}`,
		`{"type":"entry","id":"s1","name":"Music","cycle":"monthly","amount":12,"start_date":"2024-01-10"}`,
	)

	if len(res.Subs) != 1 {
		t.Fatalf("imported %d entries, want 1 (dedup)", len(res.Subs))
	}
	if res.Subs[0].Amount != 12 {
		t.Errorf("Amount = %v, want 12 (last wins)", res.Subs[0].Amount)
	}
}

func TestImportSkipsMalformedLines(t *testing.T) {
	res := importLines(t,
		`not json at all`,
		`{"type":"entry","id":"s1","name":"Music","cycle":"monthly","amount":10,"start_date":"2024-01-10"}`,
		`{"type":"entry","name":"","cycle":"monthly","start_date":"2024-01-10"}`,
		`{"type":"entry","name":"Bad","cycle":"weekly","start_date":"2024-01-10"}`,
		`{"type":"entry","name":"NoStart","cycle":"monthly"}`,
		`{"type":"future_record","payload":"ignored"}`,
	)

	if len(res.Subs) != 1 {
		t.Fatalf("imported %d entries, want 1", len(res.Subs))
	}
	if res.SkippedLines != 4 {
		t.Errorf("SkippedLines = %d, want 4", res.SkippedLines)
	}
}

func TestImportRejectsEndBeforeStart(t *testing.T) {
	res := importLines(t,
		`{"type":"entry","name":"Backwards","cycle":"monthly","amount":5,"start_date":"2024-06-01","end_date":"2024-01-01"}`,
	)
	if len(res.Subs) != 0 {
		t.Fatalf("imported %d entries, want 0", len(res.Subs))
	}
	if res.SkippedLines != 1 {
		t.Errorf("SkippedLines = %d, want 1", res.SkippedLines)
	}
}

func TestImportRejectsNewerFormat(t *testing.T) {
	_, err := Import(strings.NewReader(`{"type":"header","version":99}` + "\n"))
	if err == nil {
		t.Fatal("expected error for newer format version")
	}
}

func TestImportEmptyInput(t *testing.T) {
	res, err := Import(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Subs) != 0 || res.SkippedLines != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestImportCategoryNeedsOnlyName(t *testing.T) {
	res := importLines(t,
		`{"type":"entry","name":"Utilities","entry_type":"category"}`,
	)
	if len(res.Subs) != 1 {
		t.Fatalf("imported %d entries, want 1", len(res.Subs))
	}
	if !res.Subs[0].IsCategory() {
		t.Error("expected a category entry")
	}
}
