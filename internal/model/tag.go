package model

import "time"

// TagKey is a tag name visible project-wide together with the number of
// distinct values observed for it.
type TagKey struct {
	Key        string `json:"key"`
	ValuesSeen uint64 `json:"values_seen"`
}

// GroupTagKey is a tag name scoped to a single issue.
type GroupTagKey struct {
	GroupID    int64  `json:"group_id"`
	Key        string `json:"key"`
	ValuesSeen uint64 `json:"values_seen"`
}

// TagValue is one value of a tag, project-wide.
type TagValue struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	TimesSeen uint64    `json:"times_seen"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// GroupTagValue is one value of a tag scoped to a single issue.
type GroupTagValue struct {
	GroupID   int64     `json:"group_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	TimesSeen uint64    `json:"times_seen"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// LabeledRecord carries tag-shaped statistics for dimensions that are not
// literal tags, such as releases or users. Key is a fixed label chosen by
// the producing operation and ID is a synthetic identity, always zero.
type LabeledRecord struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	TimesSeen uint64    `json:"times_seen"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// EventUser identifies a user across events. Any subset of the identity
// fields may be set; empty fields are skipped when building conditions.
type EventUser struct {
	ProjectID int64  `json:"project_id"`
	Ident     string `json:"ident"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	IPAddress string `json:"ip_address"`
}
