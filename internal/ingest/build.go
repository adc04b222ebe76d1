package ingest

import (
	"errors"
	"time"

	"github.com/amos-lsl/sentry/internal/model"
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BuildEvent validates and constructs an Event from an incoming request.
func BuildEvent(req model.EventRequest, now time.Time, futureTolerance time.Duration) (model.Event, error) {
	if req.EventID == "" {
		return model.Event{}, &ValidationError{Message: "event_id is required"}
	}
	if req.ProjectID <= 0 {
		return model.Event{}, &ValidationError{Message: "project_id is required"}
	}
	if req.GroupID <= 0 {
		return model.Event{}, &ValidationError{Message: "group_id is required"}
	}
	if req.Timestamp == 0 {
		return model.Event{}, &ValidationError{Message: "timestamp is required"}
	}

	ts := time.Unix(req.Timestamp, 0).UTC()
	if err := ValidateTimestamp(ts, now, futureTolerance); err != nil {
		return model.Event{}, &ValidationError{Message: err.Error()}
	}

	tags := req.Tags
	if tags == nil {
		tags = map[string]string{}
	}

	release := ""
	if req.Release != nil {
		release = *req.Release
	}

	return model.Event{
		EventID:     req.EventID,
		ProjectID:   req.ProjectID,
		GroupID:     req.GroupID,
		Environment: req.Environment,
		Release:     release,
		UserID:      req.UserID,
		Email:       req.Email,
		Username:    req.Username,
		IPAddress:   req.IPAddress,
		Timestamp:   ts,
		Tags:        tags,
	}, nil
}

// ValidateTimestamp ensures timestamps are not too far in the future.
func ValidateTimestamp(ts time.Time, now time.Time, tolerance time.Duration) error {
	if tolerance <= 0 {
		return nil
	}
	if ts.After(now.Add(tolerance)) {
		return errors.New("timestamp cannot be in the future")
	}
	return nil
}
