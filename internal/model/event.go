package model

import (
	"time"
)

// EventRequest represents an incoming event payload on the ingestion path.
type EventRequest struct {
	EventID     string            `json:"event_id"`
	ProjectID   int64             `json:"project_id"`
	GroupID     int64             `json:"group_id"`
	Environment int64             `json:"environment"`
	Release     *string           `json:"release"`
	UserID      string            `json:"user_id"`
	Email       string            `json:"email"`
	Username    string            `json:"username"`
	IPAddress   string            `json:"ip_address"`
	Timestamp   int64             `json:"timestamp"`
	Tags        map[string]string `json:"tags"`
}

// Event is the domain model written to the analytics store.
type Event struct {
	EventID     string
	ProjectID   int64
	GroupID     int64
	Environment int64
	Release     string
	UserID      string
	Email       string
	Username    string
	IPAddress   string
	Timestamp   time.Time
	Tags        map[string]string
}

// EventResult reports the outcome of an accepted event.
type EventResult struct {
	Status string `json:"status"`
}
