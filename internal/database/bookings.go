package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at`

// CreateBooking inserts the booking inside a transaction and reads back the
// stored row, so a concurrent reader never observes a partial booking.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := tx.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		booking.Start,
		booking.End,
		booking.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return tx.Commit()
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListBookingsByBooker returns the booker's bookings matching the state
// filter, newest start first.
func (db *DB) ListBookingsByBooker(ctx context.Context, bookerID int64, f models.BookingFilter) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.booker_id = ?`
	where, args := stateClause(f)
	query += where + ` ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, append([]interface{}{bookerID}, args...)...)
}

// ListBookingsByOwner returns bookings of all items owned by ownerID
// matching the state filter, newest start first.
func (db *DB) ListBookingsByOwner(ctx context.Context, ownerID int64, f models.BookingFilter) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              JOIN items i ON i.id = b.item_id
              WHERE i.owner_id = ?`
	where, args := stateClause(f)
	query += where + ` ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, append([]interface{}{ownerID}, args...)...)
}

// stateClause translates a BookingState into SQL predicates. CURRENT is
// inclusive on both ends; PAST and FUTURE are strict.
func stateClause(f models.BookingFilter) (string, []interface{}) {
	switch f.State {
	case models.StateCurrent:
		return ` AND b.start_date <= ? AND b.end_date >= ?`, []interface{}{f.Now, f.Now}
	case models.StatePast:
		return ` AND b.end_date < ?`, []interface{}{f.Now}
	case models.StateFuture:
		return ` AND b.start_date > ?`, []interface{}{f.Now}
	case models.StateWaiting:
		return ` AND b.status = ?`, []interface{}{models.StatusWaiting}
	case models.StateRejected:
		return ` AND b.status = ?`, []interface{}{models.StatusRejected}
	default:
		return ``, nil
	}
}

// CountFinishedBookings counts approved bookings of the item by the booker
// that already ended. Used as the comment-authorization gate.
func (db *DB) CountFinishedBookings(ctx context.Context, bookerID, itemID int64, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE booker_id = ? AND item_id = ? AND status = ? AND end_date < ?`
	var count int
	err := db.QueryRowContext(ctx, query, bookerID, itemID, models.StatusApproved, now).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count finished bookings: %w", err)
	}
	return count, nil
}

// LastBookingForItem returns the most recent approved booking started on or
// before now, or nil when there is none.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              WHERE b.item_id = ? AND b.status = ? AND b.start_date <= ?
              ORDER BY b.start_date DESC LIMIT 1`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, itemID, models.StatusApproved, now))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last booking: %w", err)
	}
	return booking, nil
}

// NextBookingForItem returns the nearest approved booking starting after
// now, or nil when there is none.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              WHERE b.item_id = ? AND b.status = ? AND b.start_date > ?
              ORDER BY b.start_date ASC LIMIT 1`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, itemID, models.StatusApproved, now))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next booking: %w", err)
	}
	return booking, nil
}

// ExportBookings returns every booking joined with item and booker names,
// oldest first, for the xlsx export.
func (db *DB) ExportBookings(ctx context.Context) ([]models.BookingExportRow, error) {
	query := `SELECT b.id, i.name, u.name, b.start_date, b.end_date, b.status, b.created_at
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              JOIN users u ON u.id = b.booker_id
              ORDER BY b.id`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to export bookings: %w", err)
	}
	defer rows.Close()

	var out []models.BookingExportRow
	for rows.Next() {
		var r models.BookingExportRow
		if err := rows.Scan(&r.ID, &r.ItemName, &r.BookerName, &r.Start, &r.End, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
