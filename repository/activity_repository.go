package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"praktikasud-backend/models"
)

var userColumns = []string{
	"user_id",
	"username",
	"first_name",
	"last_name",
	"registration_date",
	"last_activity",
	"is_active",
	"total_requests",
}

const userUpsertClause = `ON CONFLICT (user_id) DO UPDATE SET
	username = excluded.username,
	first_name = excluded.first_name,
	last_name = excluded.last_name,
	last_activity = excluded.last_activity,
	is_active = TRUE,
	total_requests = users.total_requests + 1`

// ActivityRepository handles database operations for users, requests, events and admin notes
type ActivityRepository struct {
	db  *DB
	now func() time.Time
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// UpsertUser creates the user or refreshes its profile, bumping last_activity and total_requests
func (r *ActivityRepository) UpsertUser(ctx context.Context, user *models.User) error {
	now := r.now()
	upsert := r.db.Builder().
		Insert("users").
		Columns(userColumns...).
		Values(
			user.UserID,
			user.Username,
			user.FirstName,
			user.LastName,
			now,
			now,
			squirrel.Expr("TRUE"),
			1,
		).
		Suffix(userUpsertClause)

	if _, err := r.db.exec(ctx, upsert); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	stored, err := r.GetUser(ctx, user.UserID)
	if err != nil {
		return err
	}
	*user = *stored
	return nil
}

// GetUser retrieves a user by ID
func (r *ActivityRepository) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	query := r.db.Builder().
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"user_id": userID})

	user, err := scanUser(r.db.queryRow(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.RegistrationDate,
		&user.LastActivity,
		&user.IsActive,
		&user.TotalRequests,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// InsertRequest logs a processed request
func (r *ActivityRepository) InsertRequest(ctx context.Context, req *models.UserRequest) error {
	if req.Timestamp.IsZero() {
		req.Timestamp = r.now()
	}
	if req.Status == "" {
		req.Status = models.RequestCompleted
	}
	insert := r.db.Builder().
		Insert("user_requests").
		Columns("user_id", "request_type", "request_text", "response_text", "timestamp", "processing_time", "status").
		Values(
			req.UserID,
			req.RequestType,
			req.RequestText,
			req.ResponseText,
			req.Timestamp,
			req.ProcessingTime,
			string(req.Status),
		).
		Suffix("RETURNING id")

	if err := r.db.queryRow(ctx, insert).Scan(&req.ID); err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

// InsertEvent logs a system event
func (r *ActivityRepository) InsertEvent(ctx context.Context, event *models.SystemEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = r.now()
	}
	var userID sql.NullInt64
	if event.UserID != nil {
		userID = sql.NullInt64{Int64: *event.UserID, Valid: true}
	}
	insert := r.db.Builder().
		Insert("system_events").
		Columns("event_type", "event_data", "timestamp", "user_id").
		Values(event.EventType, event.EventData, event.Timestamp, userID).
		Suffix("RETURNING id")

	if err := r.db.queryRow(ctx, insert).Scan(&event.ID); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// InsertNote attaches an admin note to a user
func (r *ActivityRepository) InsertNote(ctx context.Context, note *models.AdminNote) error {
	if note.Timestamp.IsZero() {
		note.Timestamp = r.now()
	}
	insert := r.db.Builder().
		Insert("admin_notes").
		Columns("user_id", "note_text", "admin_id", "timestamp").
		Values(note.UserID, note.NoteText, note.AdminID, note.Timestamp).
		Suffix("RETURNING id")

	if err := r.db.queryRow(ctx, insert).Scan(&note.ID); err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// ListNotes retrieves the notes attached to a user, newest first
func (r *ActivityRepository) ListNotes(ctx context.Context, userID int64) ([]models.AdminNote, error) {
	query := r.db.Builder().
		Select("id", "user_id", "note_text", "admin_id", "timestamp").
		From("admin_notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("timestamp DESC", "id DESC")

	rows, err := r.db.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []models.AdminNote{}
	for rows.Next() {
		var n models.AdminNote
		if err := rows.Scan(&n.ID, &n.UserID, &n.NoteText, &n.AdminID, &n.Timestamp); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Analytics aggregates request activity since the given moment
func (r *ActivityRepository) Analytics(ctx context.Context, since time.Time, days int) (*models.Analytics, error) {
	a := &models.Analytics{
		PeriodDays:    days,
		RequestTypes:  []models.TypeCount{},
		DailyActivity: []models.DayCount{},
	}
	recent := squirrel.GtOrEq{"timestamp": since}

	totals := r.db.Builder().
		Select("COUNT(DISTINCT user_id)", "COUNT(*)").
		From("user_requests").
		Where(recent)
	if err := r.db.queryRow(ctx, totals).Scan(&a.ActiveUsers, &a.TotalRequests); err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}

	topUser := r.db.Builder().
		Select("u.user_id", "u.first_name", "u.username", "COUNT(r.id) AS request_count").
		From("users u").
		Join("user_requests r ON u.user_id = r.user_id").
		Where(squirrel.GtOrEq{"r.timestamp": since}).
		GroupBy("u.user_id", "u.first_name", "u.username").
		OrderBy("request_count DESC", "u.user_id").
		Limit(1)

	top := &models.TopUser{}
	err := r.db.queryRow(ctx, topUser).Scan(&top.UserID, &top.FirstName, &top.Username, &top.RequestCount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to find top user: %w", err)
	default:
		a.TopUser = top
	}

	byType := r.db.Builder().
		Select("request_type", "COUNT(*) AS count").
		From("user_requests").
		Where(recent).
		GroupBy("request_type").
		OrderBy("count DESC", "request_type")

	rows, err := r.db.query(ctx, byType)
	if err != nil {
		return nil, fmt.Errorf("failed to group request types: %w", err)
	}
	for rows.Next() {
		var tc models.TypeCount
		if err := rows.Scan(&tc.RequestType, &tc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		a.RequestTypes = append(a.RequestTypes, tc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	day := r.db.dialect.dayExpr("timestamp")
	daily := r.db.Builder().
		Select(day+" AS day", "COUNT(*)").
		From("user_requests").
		Where(recent).
		GroupBy(day).
		OrderBy("day")

	rows, err = r.db.query(ctx, daily)
	if err != nil {
		return nil, fmt.Errorf("failed to group daily activity: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var dc models.DayCount
		if err := rows.Scan(&dc.Date, &dc.Requests); err != nil {
			return nil, err
		}
		a.DailyActivity = append(a.DailyActivity, dc)
	}
	return a, rows.Err()
}

// ListUsers returns one page of users ordered by last activity and the total user count
func (r *ActivityRepository) ListUsers(ctx context.Context, page, limit int) ([]models.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	if err := r.db.queryRow(ctx, r.db.Builder().Select("COUNT(*)").From("users")).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := r.db.Builder().
		Select(userColumns...).
		From("users").
		OrderBy("last_activity DESC", "user_id").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))

	rows, err := r.db.query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// UserExportRows returns every user with request statistics for the CSV export
func (r *ActivityRepository) UserExportRows(ctx context.Context) ([]models.UserExportRow, error) {
	query := r.db.Builder().
		Select(
			"u.user_id", "u.username", "u.first_name", "u.last_name",
			"u.registration_date", "u.last_activity", "u.total_requests",
			"COUNT(r.id) AS actual_requests",
			"AVG(r.processing_time) AS avg_processing_time",
		).
		From("users u").
		LeftJoin("user_requests r ON u.user_id = r.user_id").
		GroupBy(
			"u.user_id", "u.username", "u.first_name", "u.last_name",
			"u.registration_date", "u.last_activity", "u.total_requests",
		).
		OrderBy("u.last_activity DESC", "u.user_id")

	rows, err := r.db.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	defer rows.Close()

	var out []models.UserExportRow
	for rows.Next() {
		var (
			row models.UserExportRow
			avg sql.NullFloat64
		)
		err := rows.Scan(
			&row.UserID,
			&row.Username,
			&row.FirstName,
			&row.LastName,
			&row.RegistrationDate,
			&row.LastActivity,
			&row.TotalRequests,
			&row.ActualRequests,
			&avg,
		)
		if err != nil {
			return nil, err
		}
		if avg.Valid {
			v := avg.Float64
			row.AvgProcessingTime = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RequestExportRows returns requests made since the given moment, newest first
func (r *ActivityRepository) RequestExportRows(ctx context.Context, since time.Time) ([]models.RequestExportRow, error) {
	query := r.db.Builder().
		Select(
			"r.id", "r.user_id", "COALESCE(u.username, '')", "COALESCE(u.first_name, '')",
			"r.request_type", "r.request_text", "r.timestamp", "r.processing_time", "r.status",
		).
		From("user_requests r").
		LeftJoin("users u ON r.user_id = u.user_id").
		Where(squirrel.GtOrEq{"r.timestamp": since}).
		OrderBy("r.timestamp DESC", "r.id DESC")

	rows, err := r.db.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to export requests: %w", err)
	}
	defer rows.Close()

	var out []models.RequestExportRow
	for rows.Next() {
		var (
			row    models.RequestExportRow
			status string
		)
		err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.Username,
			&row.FirstName,
			&row.RequestType,
			&row.RequestText,
			&row.Timestamp,
			&row.ProcessingTime,
			&status,
		)
		if err != nil {
			return nil, err
		}
		row.Status = models.RequestStatus(status)
		out = append(out, row)
	}
	return out, rows.Err()
}
