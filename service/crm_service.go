package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"praktikasud-backend/config"
	"praktikasud-backend/logger"
	"praktikasud-backend/models"
)

// MaxLoggedText caps the request and response text kept in the activity log
const MaxLoggedText = 1000

var (
	ErrActivityNotSet = errors.New("activity store not set")
	ErrEmptyNote      = errors.New("note text is empty")
)

// ActivityStore persists CRM data
type ActivityStore interface {
	UpsertUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	InsertRequest(ctx context.Context, req *models.UserRequest) error
	InsertEvent(ctx context.Context, event *models.SystemEvent) error
	InsertNote(ctx context.Context, note *models.AdminNote) error
	ListNotes(ctx context.Context, userID int64) ([]models.AdminNote, error)
	Analytics(ctx context.Context, since time.Time, days int) (*models.Analytics, error)
	ListUsers(ctx context.Context, page, limit int) ([]models.User, int, error)
	UserExportRows(ctx context.Context) ([]models.UserExportRow, error)
	RequestExportRows(ctx context.Context, since time.Time) ([]models.RequestExportRow, error)
}

// CRMService logs user activity and serves the admin panel
type CRMService struct {
	store ActivityStore
	cfg   *config.Config
	now   func() time.Time
	log   logger.Logger
}

var _ ActivityRecorder = (*CRMService)(nil)

// CRMServiceOption is a functional option for CRMService
type CRMServiceOption func(*CRMService)

// CRMWithStore sets the activity store
func CRMWithStore(st ActivityStore) CRMServiceOption {
	return func(s *CRMService) {
		s.store = st
	}
}

// CRMWithConfig sets the configuration holding the admin list
func CRMWithConfig(cfg *config.Config) CRMServiceOption {
	return func(s *CRMService) {
		s.cfg = cfg
	}
}

// CRMWithClock overrides the clock used for analytics periods
func CRMWithClock(now func() time.Time) CRMServiceOption {
	return func(s *CRMService) {
		s.now = now
	}
}

// CRMWithLogger sets the logger
func CRMWithLogger(l logger.Logger) CRMServiceOption {
	return func(s *CRMService) {
		s.log = l
	}
}

// NewCRMService creates a new CRM service
func NewCRMService(opts ...CRMServiceOption) *CRMService {
	s := &CRMService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CRMService) logger(ctx context.Context) logger.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.FromContext(ctx)
}

// IsAdmin reports whether the user may use the admin panel
func (s *CRMService) IsAdmin(userID int64) bool {
	return s.cfg != nil && s.cfg.IsAdmin(userID)
}

// RecordActivity registers the user or bumps their activity counters
func (s *CRMService) RecordActivity(ctx context.Context, user models.User) {
	if s.store == nil {
		return
	}
	if err := s.store.UpsertUser(ctx, &user); err != nil {
		s.logger(ctx).Error("Failed to record user activity", "user_id", user.UserID, "error", err)
	}
}

// RecordRequest logs a processed request
func (s *CRMService) RecordRequest(ctx context.Context, req models.UserRequest) {
	if s.store == nil {
		return
	}
	req.RequestText = truncateRunes(req.RequestText, MaxLoggedText)
	req.ResponseText = truncateRunes(req.ResponseText, MaxLoggedText)
	if req.Status == "" {
		req.Status = models.RequestCompleted
	}
	if err := s.store.InsertRequest(ctx, &req); err != nil {
		s.logger(ctx).Error("Failed to record request", "user_id", req.UserID, "type", req.RequestType, "error", err)
	}
}

// RecordEvent logs a system event; userID may be nil
func (s *CRMService) RecordEvent(ctx context.Context, eventType, data string, userID *int64) {
	if s.store == nil {
		return
	}
	event := &models.SystemEvent{EventType: eventType, EventData: data, UserID: userID}
	if err := s.store.InsertEvent(ctx, event); err != nil {
		s.logger(ctx).Error("Failed to record event", "event", eventType, "error", err)
	}
}

// AddNote attaches an admin note to an existing user
func (s *CRMService) AddNote(ctx context.Context, adminID, userID int64, text string) (*models.AdminNote, error) {
	if s.store == nil {
		return nil, ErrActivityNotSet
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyNote
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	note := &models.AdminNote{UserID: userID, AdminID: adminID, NoteText: text}
	if err := s.store.InsertNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	s.logger(ctx).Info("Admin note added", "admin_id", adminID, "user_id", userID)
	return note, nil
}

// ListNotes returns the notes attached to a user
func (s *CRMService) ListNotes(ctx context.Context, userID int64) ([]models.AdminNote, error) {
	if s.store == nil {
		return nil, ErrActivityNotSet
	}
	return s.store.ListNotes(ctx, userID)
}

// Analytics aggregates activity over the last days
func (s *CRMService) Analytics(ctx context.Context, days int) (*models.Analytics, error) {
	if s.store == nil {
		return nil, ErrActivityNotSet
	}
	if days < 1 {
		days = 7
	}
	since := s.now().UTC().AddDate(0, 0, -days)
	return s.store.Analytics(ctx, since, days)
}

// FormatAnalytics renders analytics as a chat message
func FormatAnalytics(a *models.Analytics) string {
	if a == nil {
		return "❌ Ошибка получения аналитических данных"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>АНАЛИТИКА ЗА %d ДНЕЙ</b>\n\n", a.PeriodDays)
	fmt.Fprintf(&b, "👥 <b>Активные пользователи:</b> %d\n", a.ActiveUsers)
	fmt.Fprintf(&b, "📝 <b>Всего запросов:</b> %d\n\n", a.TotalRequests)

	b.WriteString("🏆 <b>Топ пользователь:</b>")
	if a.TopUser != nil {
		u := models.User{UserID: a.TopUser.UserID, FirstName: a.TopUser.FirstName, Username: a.TopUser.Username}
		fmt.Fprintf(&b, "\n• %s - %d запросов", u.DisplayName(), a.TopUser.RequestCount)
	} else {
		b.WriteString("\n• Нет данных")
	}

	b.WriteString("\n\n📈 <b>Популярные типы запросов:</b>")
	types := a.RequestTypes
	if len(types) > 5 {
		types = types[:5]
	}
	for _, tc := range types {
		fmt.Fprintf(&b, "\n• %s: %d", tc.RequestType, tc.Count)
	}

	if len(a.DailyActivity) > 0 {
		b.WriteString("\n\n📅 <b>Активность по дням:</b>")
		daily := a.DailyActivity
		if len(daily) > 7 {
			daily = daily[len(daily)-7:]
		}
		for _, dc := range daily {
			fmt.Fprintf(&b, "\n• %s: %d запросов", dc.Date, dc.Requests)
		}
	}
	return b.String()
}

// ListUsers returns one page of users and the total count
func (s *CRMService) ListUsers(ctx context.Context, page, limit int) ([]models.User, int, error) {
	if s.store == nil {
		return nil, 0, ErrActivityNotSet
	}
	return s.store.ListUsers(ctx, page, limit)
}

var (
	userExportHeader = []string{
		"user_id", "username", "first_name", "last_name", "registration_date",
		"last_activity", "total_requests", "actual_requests", "avg_processing_time",
	}
	requestExportHeader = []string{
		"id", "user_id", "username", "first_name", "request_type",
		"request_text", "timestamp", "processing_time", "status",
	}
)

// ExportUsersCSV writes every user with request statistics as CSV
func (s *CRMService) ExportUsersCSV(ctx context.Context, w io.Writer) error {
	if s.store == nil {
		return ErrActivityNotSet
	}
	rows, err := s.store.UserExportRows(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(userExportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		avg := ""
		if r.AvgProcessingTime != nil {
			avg = strconv.FormatFloat(*r.AvgProcessingTime, 'f', 3, 64)
		}
		record := []string{
			strconv.FormatInt(r.UserID, 10),
			r.Username,
			r.FirstName,
			r.LastName,
			r.RegistrationDate.Format(time.RFC3339),
			r.LastActivity.Format(time.RFC3339),
			strconv.Itoa(r.TotalRequests),
			strconv.Itoa(r.ActualRequests),
			avg,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportRequestsCSV writes the requests of the last days as CSV
func (s *CRMService) ExportRequestsCSV(ctx context.Context, w io.Writer, days int) error {
	if s.store == nil {
		return ErrActivityNotSet
	}
	if days < 1 {
		days = 30
	}
	rows, err := s.store.RequestExportRows(ctx, s.now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(requestExportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.UserID, 10),
			r.Username,
			r.FirstName,
			r.RequestType,
			r.RequestText,
			r.Timestamp.Format(time.RFC3339),
			strconv.FormatFloat(r.ProcessingTime, 'f', 3, 64),
			string(r.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
