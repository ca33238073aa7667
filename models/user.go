package models

import (
	"strconv"
	"time"
)

// User represents a chat user tracked by the CRM
type User struct {
	UserID           int64     `json:"user_id"`
	Username         string    `json:"username,omitempty"`
	FirstName        string    `json:"first_name,omitempty"`
	LastName         string    `json:"last_name,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
	LastActivity     time.Time `json:"last_activity"`
	IsActive         bool      `json:"is_active"`
	TotalRequests    int       `json:"total_requests"`
}

// DisplayName returns the best human-readable name for the user
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return "ID " + strconv.FormatInt(u.UserID, 10)
	}
}

// RequestStatus represents the processing status of a logged request
type RequestStatus string

const (
	RequestCompleted RequestStatus = "completed"
	RequestDegraded  RequestStatus = "degraded"
	RequestFailed    RequestStatus = "failed"
)

// UserRequest represents one logged consultation request
type UserRequest struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id"`
	RequestType    string        `json:"request_type"`
	RequestText    string        `json:"request_text"`
	ResponseText   string        `json:"response_text"`
	Timestamp      time.Time     `json:"timestamp"`
	ProcessingTime float64       `json:"processing_time"`
	Status         RequestStatus `json:"status"`
}

// SystemEvent represents a logged system event
type SystemEvent struct {
	ID        int64     `json:"id"`
	EventType string    `json:"event_type"`
	EventData string    `json:"event_data"`
	Timestamp time.Time `json:"timestamp"`
	UserID    *int64    `json:"user_id,omitempty"`
}

// AdminNote represents a note an administrator attached to a user
type AdminNote struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	NoteText  string    `json:"note_text"`
	AdminID   int64     `json:"admin_id"`
	Timestamp time.Time `json:"timestamp"`
}

// TopUser is the most active user of an analytics period
type TopUser struct {
	UserID       int64  `json:"user_id"`
	FirstName    string `json:"first_name,omitempty"`
	Username     string `json:"username,omitempty"`
	RequestCount int    `json:"request_count"`
}

// TypeCount is the number of requests of one type
type TypeCount struct {
	RequestType string `json:"request_type"`
	Count       int    `json:"count"`
}

// DayCount is the number of requests on one day (YYYY-MM-DD)
type DayCount struct {
	Date     string `json:"date"`
	Requests int    `json:"requests"`
}

// Analytics represents aggregate activity over a period
type Analytics struct {
	PeriodDays    int         `json:"period_days"`
	ActiveUsers   int         `json:"active_users"`
	TotalRequests int         `json:"total_requests"`
	TopUser       *TopUser    `json:"top_user,omitempty"`
	RequestTypes  []TypeCount `json:"request_types"`
	DailyActivity []DayCount  `json:"daily_activity"`
}

// UserExportRow is one row of the users CSV export
type UserExportRow struct {
	User
	ActualRequests    int
	AvgProcessingTime *float64
}

// RequestExportRow is one row of the requests CSV export
type RequestExportRow struct {
	UserRequest
	Username  string
	FirstName string
}
