package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type Task struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	DueDate     Date   `db:"due_date" json:"due_date"`
	Status      Status `db:"status_id" json:"status"`
	Overdue     bool   `db:"-" json:"overdue"`
}

// IsOverdue reports whether the task is still open and its due date lies
// strictly before today.
func (t Task) IsOverdue(today Date) bool {
	return t.Status == StatusOpen && t.DueDate.Before(today)
}

// Status is the lifecycle state of a task. The zero value is only valid on
// input, where it means "not provided".
type Status uint8

const (
	StatusUnset Status = iota
	StatusOpen
	StatusClosed
)

var statusIDs = [...]string{StatusUnset: "", StatusOpen: "open", StatusClosed: "closed"}

var statusNames = [...]string{StatusUnset: "", StatusOpen: "Open", StatusClosed: "Completed"}

// Statuses returns the fixed reference set in display order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusClosed}
}

func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "open":
		return StatusOpen, true
	case "closed":
		return StatusClosed, true
	default:
		return StatusUnset, false
	}
}

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// ID is the identifier stored in statuses.status_id.
func (s Status) ID() string {
	if int(s) >= len(statusIDs) {
		return ""
	}
	return statusIDs[s]
}

func (s Status) Name() string {
	if int(s) >= len(statusNames) {
		return ""
	}
	return statusNames[s]
}

func (s Status) String() string {
	return s.ID()
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.ID()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*s = StatusUnset
		return nil
	}
	parsed, ok := ParseStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown status %q", string(text))
	}
	*s = parsed
	return nil
}

func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", s)
	}
	return s.ID(), nil
}

func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan status: unsupported type %T", src)
	}
	parsed, ok := ParseStatus(raw)
	if !ok {
		return fmt.Errorf("scan status: unknown value %q", raw)
	}
	*s = parsed
	return nil
}

// StatusEntry is a row of the statuses reference table.
type StatusEntry struct {
	ID   Status `db:"status_id" json:"id"`
	Name string `db:"name" json:"name"`
}
