// Package store provides the SQLite-backed persistence for subscriptions.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no subscription matches the given id.
var ErrNotFound = errors.New("store: subscription not found")

const dateFormat = "2006-01-02"

// Store wraps the subscriptions database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all subscriptions in display order.
func (s *Store) List() ([]model.Subscription, error) {
	rows, err := s.db.Query(`SELECT
		id, name, color, amount, cycle, start_date, end_date, auto_renew, entry_type, sort_order
		FROM subscriptions ORDER BY sort_order`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var subs []model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Get returns the subscription with the given id.
func (s *Store) Get(id string) (model.Subscription, error) {
	row := s.db.QueryRow(`SELECT
		id, name, color, amount, cycle, start_date, end_date, auto_renew, entry_type, sort_order
		FROM subscriptions WHERE id = ?`, id)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscription{}, ErrNotFound
	}
	return sub, err
}

// Insert stores a new subscription at the end of the display order and
// returns it with its assigned id.
func (s *Store) Insert(sub model.Subscription) (model.Subscription, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.Subscription{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var next sql.NullInt64
	if err := tx.QueryRow(`SELECT MAX(sort_order) + 1 FROM subscriptions`).Scan(&next); err != nil {
		return model.Subscription{}, err
	}
	sub.SortOrder = int(next.Int64) // 0 when the table is empty

	_, err = tx.Exec(`INSERT INTO subscriptions
		(id, name, color, amount, cycle, start_date, end_date, auto_renew, entry_type, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Color, sub.Amount, string(sub.Cycle),
		formatDate(sub.StartDate), formatDatePtr(sub.EndDate), boolInt(sub.AutoRenew),
		string(sub.Type), sub.SortOrder,
	)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("inserting subscription: %w", err)
	}

	return sub, tx.Commit()
}

// Update rewrites all editable fields of an existing subscription.
// The display order is owned by Move and left untouched.
func (s *Store) Update(sub model.Subscription) error {
	res, err := s.db.Exec(`UPDATE subscriptions SET
		name = ?, color = ?, amount = ?, cycle = ?, start_date = ?, end_date = ?, auto_renew = ?, entry_type = ?
		WHERE id = ?`,
		sub.Name, sub.Color, sub.Amount, string(sub.Cycle),
		formatDate(sub.StartDate), formatDatePtr(sub.EndDate), boolInt(sub.AutoRenew),
		string(sub.Type), sub.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a subscription and renumbers the remaining rows so
// sort_order stays contiguous 0..N-1.
func (s *Store) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := renumber(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Move places the subscription at newIndex in the display order, shifting
// the others. Indexes are clamped to the valid range; sort_order remains
// contiguous and unique afterwards.
func (s *Store) Move(id string, newIndex int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query(`SELECT id FROM subscriptions ORDER BY sort_order`)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var rowID string
		if err := rows.Scan(&rowID); err != nil {
			_ = rows.Close()
			return err
		}
		ids = append(ids, rowID)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	from := -1
	for i, rowID := range ids {
		if rowID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return ErrNotFound
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= len(ids) {
		newIndex = len(ids) - 1
	}

	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:newIndex], append([]string{moved}, ids[newIndex:]...)...)

	for i, rowID := range ids {
		if _, err := tx.Exec(`UPDATE subscriptions SET sort_order = ? WHERE id = ?`, i, rowID); err != nil {
			return fmt.Errorf("reordering subscription %q: %w", rowID, err)
		}
	}
	return tx.Commit()
}

// renumber rewrites sort_order as the row rank within the current order.
func renumber(tx *sql.Tx) error {
	rows, err := tx.Query(`SELECT id FROM subscriptions ORDER BY sort_order`)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i, id := range ids {
		if _, err := tx.Exec(`UPDATE subscriptions SET sort_order = ? WHERE id = ?`, i, id); err != nil {
			return fmt.Errorf("renumbering subscription %q: %w", id, err)
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row scanner) (model.Subscription, error) {
	var sub model.Subscription
	var cycle, entryType string
	var startStr, endStr sql.NullString
	var autoRenew int

	err := row.Scan(&sub.ID, &sub.Name, &sub.Color, &sub.Amount, &cycle,
		&startStr, &endStr, &autoRenew, &entryType, &sub.SortOrder)
	if err != nil {
		return model.Subscription{}, err
	}

	sub.Cycle = model.Cycle(cycle)
	sub.Type = model.EntryType(entryType)
	sub.AutoRenew = autoRenew != 0
	if startStr.Valid && startStr.String != "" {
		sub.StartDate, _ = time.Parse(dateFormat, startStr.String)
	}
	if endStr.Valid && endStr.String != "" {
		if end, err := time.Parse(dateFormat, endStr.String); err == nil {
			sub.EndDate = &end
		}
	}
	return sub, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
