package model

import "strings"

// FilterSeparator joins the components of a filter token.
const FilterSeparator = "-"

// DueBucket narrows a listing to tasks due before, after or on the
// evaluation date.
type DueBucket uint8

const (
	DueAny DueBucket = iota
	DuePast
	DueFuture
	DueToday
)

var dueBucketNames = [...]string{DueAny: "", DuePast: "past", DueFuture: "future", DueToday: "today"}

var dueBucketLabels = [...]string{DueAny: "All", DuePast: "Past", DueFuture: "Future", DueToday: "Today"}

func DueBuckets() []DueBucket {
	return []DueBucket{DuePast, DueFuture, DueToday}
}

func ParseDueBucket(value string) (DueBucket, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "past":
		return DuePast, true
	case "future":
		return DueFuture, true
	case "today":
		return DueToday, true
	default:
		return DueAny, false
	}
}

func (b DueBucket) String() string {
	if int(b) >= len(dueBucketNames) {
		return ""
	}
	return dueBucketNames[b]
}

func (b DueBucket) Label() string {
	if int(b) >= len(dueBucketLabels) {
		return ""
	}
	return dueBucketLabels[b]
}

// Filter is the decoded form of a listing token. Zero components match
// everything.
type Filter struct {
	Status Status
	Due    DueBucket
}

// ParseFilter decodes a token such as "open-today". Fragments that name
// neither a status nor a due bucket are ignored; when a component repeats,
// the last fragment wins.
func ParseFilter(token string) Filter {
	var filter Filter
	for _, fragment := range strings.Split(token, FilterSeparator) {
		if status, ok := ParseStatus(fragment); ok {
			filter.Status = status
			continue
		}
		if due, ok := ParseDueBucket(fragment); ok {
			filter.Due = due
		}
	}
	return filter
}

func (f Filter) HasStatus() bool {
	return f.Status.Valid()
}

func (f Filter) HasDue() bool {
	return f.Due != DueAny
}

func (f Filter) IsEmpty() bool {
	return !f.HasStatus() && !f.HasDue()
}

// Token is the canonical encoding accepted by ParseFilter.
func (f Filter) Token() string {
	parts := make([]string, 0, 2)
	if f.HasStatus() {
		parts = append(parts, f.Status.ID())
	}
	if f.HasDue() {
		parts = append(parts, f.Due.String())
	}
	return strings.Join(parts, FilterSeparator)
}

// Matches evaluates the filter against a single task in memory, using the
// same comparisons the store applies in SQL.
func (f Filter) Matches(task Task, today Date) bool {
	if f.HasStatus() && task.Status != f.Status {
		return false
	}
	switch f.Due {
	case DuePast:
		return task.DueDate.Before(today)
	case DueFuture:
		return task.DueDate.After(today)
	case DueToday:
		return task.DueDate.Equal(today)
	}
	return true
}
