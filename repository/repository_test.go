package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktikasud-backend/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema(context.Background()))
	return db
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDialect(t *testing.T) {
	t.Run("Should build numbered placeholders for postgres only", func(t *testing.T) {
		build := func(d Dialect) string {
			q, args, err := squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder()).
				Select("user_id").
				From("users").
				Where(squirrel.Eq{"user_id": 1}).
				Where(squirrel.Eq{"username": "ivan"}).
				ToSql()
			require.NoError(t, err)
			assert.Equal(t, []any{1, "ivan"}, args)
			return q
		}
		assert.Equal(t, "SELECT user_id FROM users WHERE user_id = ? AND username = ?", build(DialectSQLite))
		assert.Equal(t, "SELECT user_id FROM users WHERE user_id = $1 AND username = $2", build(DialectPostgres))
	})

	t.Run("Should bind document ids as strings", func(t *testing.T) {
		id := uuid.New()
		q, args, err := squirrel.StatementBuilder.PlaceholderFormat(DialectPostgres.Placeholder()).
			Select(documentColumns...).
			From("documents").
			Where(squirrel.Eq{"id": id.String()}).
			ToSql()
		require.NoError(t, err)
		assert.Contains(t, q, "WHERE id = $1")
		assert.Equal(t, []any{id.String()}, args)
	})

	t.Run("Should parse driver names", func(t *testing.T) {
		d, err := ParseDialect("pgx")
		require.NoError(t, err)
		assert.Equal(t, DialectPostgres, d)
		d, err = ParseDialect("sqlite3")
		require.NoError(t, err)
		assert.Equal(t, DialectSQLite, d)
		_, err = ParseDialect("mysql")
		assert.ErrorIs(t, err, ErrUnknownDialect)
	})

	t.Run("Should apply the schema twice without error", func(t *testing.T) {
		db := openTestDB(t)
		assert.NoError(t, db.InitSchema(context.Background()))
	})
}

func TestActivityRepository_UpsertUser(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(openTestDB(t))
	first := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	repo.now = fixedClock(first)
	u := &models.User{UserID: 42, Username: "ivan", FirstName: "Иван"}
	require.NoError(t, repo.UpsertUser(ctx, u))
	assert.Equal(t, 1, u.TotalRequests)
	assert.True(t, u.IsActive)

	repo.now = fixedClock(first.Add(time.Hour))
	u2 := &models.User{UserID: 42, Username: "ivan_p", FirstName: "Иван", LastName: "Петров"}
	require.NoError(t, repo.UpsertUser(ctx, u2))

	assert.Equal(t, 2, u2.TotalRequests)
	assert.Equal(t, "ivan_p", u2.Username)
	assert.Equal(t, "Петров", u2.LastName)
	assert.True(t, u2.RegistrationDate.Equal(first))
	assert.True(t, u2.LastActivity.Equal(first.Add(time.Hour)))

	_, err := repo.GetUser(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedActivity(t *testing.T, repo *ActivityRepository, base time.Time) {
	t.Helper()
	ctx := context.Background()
	repo.now = fixedClock(base)
	require.NoError(t, repo.UpsertUser(ctx, &models.User{UserID: 1, FirstName: "Анна"}))
	repo.now = fixedClock(base.Add(time.Minute))
	require.NoError(t, repo.UpsertUser(ctx, &models.User{UserID: 2, Username: "petr"}))
	require.NoError(t, repo.UpsertUser(ctx, &models.User{UserID: 3}))

	requests := []models.UserRequest{
		{UserID: 1, RequestType: "practice", RequestText: "уволили", Timestamp: base, ProcessingTime: 2},
		{UserID: 1, RequestType: "complaint", RequestText: "жалоба", Timestamp: base.Add(24 * time.Hour), ProcessingTime: 4},
		{UserID: 2, RequestType: "practice", RequestText: "долг", Timestamp: base.Add(25 * time.Hour), ProcessingTime: 3},
		{UserID: 2, RequestType: "check", RequestText: "старый", Timestamp: base.AddDate(0, 0, -30)},
	}
	for i := range requests {
		require.NoError(t, repo.InsertRequest(ctx, &requests[i]))
		assert.NotZero(t, requests[i].ID)
		assert.Equal(t, models.RequestCompleted, requests[i].Status)
	}
}

func TestActivityRepository_Analytics(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(openTestDB(t))
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	seedActivity(t, repo, base)

	t.Run("Should aggregate requests in the period", func(t *testing.T) {
		a, err := repo.Analytics(ctx, base.Add(-time.Hour), 7)
		require.NoError(t, err)

		assert.Equal(t, 7, a.PeriodDays)
		assert.Equal(t, 2, a.ActiveUsers)
		assert.Equal(t, 3, a.TotalRequests)
		require.NotNil(t, a.TopUser)
		assert.Equal(t, int64(1), a.TopUser.UserID)
		assert.Equal(t, "Анна", a.TopUser.FirstName)
		assert.Equal(t, 2, a.TopUser.RequestCount)
		assert.Equal(t, []models.TypeCount{{RequestType: "practice", Count: 2}, {RequestType: "complaint", Count: 1}}, a.RequestTypes)
		assert.Equal(t, []models.DayCount{{Date: "2025-03-10", Requests: 1}, {Date: "2025-03-11", Requests: 2}}, a.DailyActivity)
	})

	t.Run("Should report an empty period", func(t *testing.T) {
		a, err := repo.Analytics(ctx, base.AddDate(1, 0, 0), 1)
		require.NoError(t, err)
		assert.Zero(t, a.TotalRequests)
		assert.Nil(t, a.TopUser)
		assert.Empty(t, a.RequestTypes)
		assert.Empty(t, a.DailyActivity)
	})
}

func TestActivityRepository_ListAndExport(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(openTestDB(t))
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	seedActivity(t, repo, base)

	t.Run("Should page users by last activity", func(t *testing.T) {
		users, total, err := repo.ListUsers(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, users, 2)
		assert.Equal(t, int64(2), users[0].UserID)
		assert.Equal(t, int64(3), users[1].UserID)

		users, _, err = repo.ListUsers(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, int64(1), users[0].UserID)
	})

	t.Run("Should export users with request statistics", func(t *testing.T) {
		rows, err := repo.UserExportRows(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		byID := map[int64]models.UserExportRow{}
		for _, r := range rows {
			byID[r.UserID] = r
		}
		assert.Equal(t, 2, byID[1].ActualRequests)
		require.NotNil(t, byID[1].AvgProcessingTime)
		assert.InDelta(t, 3.0, *byID[1].AvgProcessingTime, 1e-9)
		assert.Zero(t, byID[3].ActualRequests)
		assert.Nil(t, byID[3].AvgProcessingTime)
	})

	t.Run("Should export recent requests newest first", func(t *testing.T) {
		rows, err := repo.RequestExportRows(ctx, base.Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "долг", rows[0].RequestText)
		assert.Equal(t, "petr", rows[0].Username)
		assert.Equal(t, "уволили", rows[2].RequestText)
		assert.Equal(t, "Анна", rows[2].FirstName)
	})
}

func TestActivityRepository_EventsAndNotes(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(openTestDB(t))
	require.NoError(t, repo.UpsertUser(ctx, &models.User{UserID: 5}))

	uid := int64(5)
	event := &models.SystemEvent{EventType: "voice_error", EventData: "timeout", UserID: &uid}
	require.NoError(t, repo.InsertEvent(ctx, event))
	assert.NotZero(t, event.ID)
	require.NoError(t, repo.InsertEvent(ctx, &models.SystemEvent{EventType: "startup"}))

	repo.now = fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.InsertNote(ctx, &models.AdminNote{UserID: 5, NoteText: "первая", AdminID: 1}))
	repo.now = fixedClock(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.InsertNote(ctx, &models.AdminNote{UserID: 5, NoteText: "вторая", AdminID: 1}))

	notes, err := repo.ListNotes(ctx, 5)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "вторая", notes[0].NoteText)

	notes, err = repo.ListNotes(ctx, 6)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestDocumentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository(openTestDB(t))

	older := &models.Document{
		UserID:      9,
		Filename:    "решение.pdf",
		MimeType:    "application/pdf",
		Size:        1024,
		StoragePath: "ab/решение.pdf",
		Operation:   models.OperationComplaint,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, older))
	assert.NotEqual(t, uuid.Nil, older.ID)

	newer := &models.Document{UserID: 9, Filename: "договор.docx", MimeType: "application/zip", Operation: models.OperationCheck}
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.Filename, got.Filename)
	assert.Equal(t, models.OperationComplaint, got.Operation)
	assert.Equal(t, int64(1024), got.Size)
	assert.True(t, got.CreatedAt.Equal(older.CreatedAt))

	docs, err := repo.ListByUserID(ctx, 9)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, newer.ID, docs[0].ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
