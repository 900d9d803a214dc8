package tui

import (
	"fmt"
	"strings"

	"github.com/Joseda-hg/tasktrack/internal/model"
)

func formatTaskSummary(task model.Task) string {
	marker := " "
	if task.Overdue {
		marker = "!"
	}
	return fmt.Sprintf("%s %s | %s", marker, task.DueDate, task.Title)
}

func formatTaskDetail(task model.Task, today model.Date) string {
	due := task.DueDate.String()
	if rel := task.DueDate.Relative(today); rel != "" {
		due = fmt.Sprintf("%s (%s)", due, rel)
	}

	lines := []string{
		task.Title,
		fmt.Sprintf("Status: %s", task.Status.Name()),
		fmt.Sprintf("Due: %s", due),
	}
	if task.Overdue {
		lines = append(lines, "OVERDUE")
	}
	lines = append(lines, "", task.Description)
	return strings.Join(lines, "\n")
}

// splitByStatus separates a listing into the two panes, keeping the
// listing order inside each pane.
func splitByStatus(tasks []model.Task) (open, completed []model.Task) {
	open = make([]model.Task, 0, len(tasks))
	completed = make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == model.StatusClosed {
			completed = append(completed, task)
			continue
		}
		open = append(open, task)
	}
	return open, completed
}

func filterLabel(filter model.Filter) string {
	status := "any"
	if filter.HasStatus() {
		status = filter.Status.Name()
	}
	due := "any"
	if filter.HasDue() {
		due = filter.Due.Label()
	}
	token := filter.Token()
	if token == "" {
		token = "-"
	}
	return fmt.Sprintf("Filter: %s | Status: %s | Due: %s", token, status, due)
}

func nextStatusFilter(current model.Status) model.Status {
	switch current {
	case model.StatusOpen:
		return model.StatusClosed
	case model.StatusClosed:
		return model.StatusUnset
	default:
		return model.StatusOpen
	}
}

func nextDueFilter(current model.DueBucket) model.DueBucket {
	buckets := model.DueBuckets()
	for i, bucket := range buckets {
		if bucket == current {
			if i == len(buckets)-1 {
				return model.DueAny
			}
			return buckets[i+1]
		}
	}
	return buckets[0]
}
