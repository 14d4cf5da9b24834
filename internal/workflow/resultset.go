package workflow

import (
	"github.com/abubakar20-02/Flight-Management-System/internal/models"
)

// ResultSet is the flight listing currently on screen together with the
// selected row. Replacing the rows always drops the selection.
type ResultSet struct {
	rows     []models.Flight
	selected int
	stale    bool
}

func NewResultSet() *ResultSet {
	return &ResultSet{selected: -1}
}

// Rows returns a copy of the listing.
func (r *ResultSet) Rows() []models.Flight {
	out := make([]models.Flight, len(r.rows))
	copy(out, r.rows)
	return out
}

func (r *ResultSet) Len() int { return len(r.rows) }

// Replace swaps in a fresh listing.
func (r *ResultSet) Replace(rows []models.Flight) {
	r.rows = append([]models.Flight(nil), rows...)
	r.selected = -1
	r.stale = false
}

// Select marks the row with flightNumber. Selecting the selected row again is a no-op.
func (r *ResultSet) Select(flightNumber models.Key) error {
	i := r.index(flightNumber)
	if i < 0 {
		return ErrNotInResults
	}
	r.selected = i
	return nil
}

// Selection returns the selected row, if any.
func (r *ResultSet) Selection() (models.Flight, bool) {
	if r.selected < 0 {
		return models.Flight{}, false
	}
	return r.rows[r.selected], true
}

func (r *ResultSet) ClearSelection() { r.selected = -1 }

// Remove drops the row with flightNumber and clears the selection. It reports
// whether a row was removed.
func (r *ResultSet) Remove(flightNumber models.Key) bool {
	i := r.index(flightNumber)
	if i < 0 {
		return false
	}
	r.rows = append(r.rows[:i:i], r.rows[i+1:]...)
	r.selected = -1
	return true
}

// MarkStale records that the listing no longer reflects the server.
func (r *ResultSet) MarkStale() { r.stale = true }

func (r *ResultSet) Stale() bool { return r.stale }

func (r *ResultSet) index(flightNumber models.Key) int {
	for i, row := range r.rows {
		if row.FlightNumber == flightNumber {
			return i
		}
	}
	return -1
}
