package store

import (
	"time"

	"github.com/AngelCh415/campaign-analytics/internal/models"
)

// Table is an immutable in-memory record set. It is safe for concurrent readers
// without locking because nothing mutates rows after NewTable returns.
type Table struct {
	rows []models.Record
}

// NewTable copies rows into a new table.
func NewTable(rows []models.Record) *Table {
	cp := make([]models.Record, len(rows))
	copy(cp, rows)
	for i := range cp {
		cp[i].Date = Day(cp[i].Date)
	}
	return &Table{rows: cp}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns a copy of every row in table order.
func (t *Table) Rows() []models.Record {
	if t == nil {
		return []models.Record{}
	}
	out := make([]models.Record, len(t.rows))
	copy(out, t.rows)
	return out
}

// Bounds returns the first and last date present. ok is false for an empty table.
func (t *Table) Bounds() (from, to time.Time, ok bool) {
	if t.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	from, to = t.rows[0].Date, t.rows[0].Date
	for _, r := range t.rows[1:] {
		if r.Date.Before(from) {
			from = r.Date
		}
		if r.Date.After(to) {
			to = r.Date
		}
	}
	return from, to, true
}

// Query returns the rows with from <= date <= to (calendar days) that satisfy f.
// A nil f keeps every row in range. from after to yields no rows.
func (t *Table) Query(from, to time.Time, f func(models.Record) bool) []models.Record {
	out := []models.Record{}
	if t == nil {
		return out
	}
	from, to = Day(from), Day(to)
	if from.After(to) {
		return out
	}
	for _, v := range t.rows {
		if !v.Date.Before(from) && !v.Date.After(to) {
			if f == nil || f(v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
