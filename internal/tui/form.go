package tui

import (
	"errors"
	"strings"

	"github.com/Joseda-hg/tasktrack/internal/model"
	"github.com/Joseda-hg/tasktrack/internal/tasks"
	"github.com/jesseduffield/gocui"
)

type formField struct {
	Name  string
	Label string
	Value string
}

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldStatus
)

type formState struct {
	taskID int64
	fields []formField
	index  int
	errors []tasks.FieldError
}

func newFormState(task *model.Task) *formState {
	fields := []formField{
		{Name: "title", Label: "Title"},
		{Name: "description", Label: "Description"},
		{Name: "due_date", Label: "Due (YYYY-MM-DD)"},
		{Name: "status", Label: "Status (space/←→)"},
	}

	if task == nil {
		fields[fieldStatus].Value = model.StatusOpen.ID()
		return &formState{fields: fields}
	}

	fields[fieldTitle].Value = task.Title
	fields[fieldDescription].Value = task.Description
	fields[fieldDue].Value = task.DueDate.String()
	fields[fieldStatus].Value = task.Status.ID()
	return &formState{taskID: task.ID, fields: fields}
}

// input converts the form into a service input. Values that do not parse
// are returned as field errors.
func (f *formState) input() (tasks.TaskInput, []tasks.FieldError) {
	input := tasks.TaskInput{
		Title:       strings.TrimSpace(f.fields[fieldTitle].Value),
		Description: strings.TrimSpace(f.fields[fieldDescription].Value),
	}

	var failures []tasks.FieldError
	if value := strings.TrimSpace(f.fields[fieldDue].Value); value != "" {
		due, err := model.ParseDate(value)
		if err != nil {
			failures = append(failures, tasks.FieldError{
				Field:   "due_date",
				Rule:    "date",
				Message: "Please enter a valid due date (YYYY-MM-DD).",
			})
		}
		input.DueDate = due
	}

	status, _ := model.ParseStatus(f.fields[fieldStatus].Value)
	input.Status = status

	if len(failures) > 0 {
		failures = tasks.MergeFieldErrors(failures, tasks.Validate(input)...)
	}
	return input, failures
}

func (f *formState) fieldError(name string) string {
	for _, e := range f.errors {
		if e.Field == name {
			return e.Message
		}
	}
	return ""
}

// applyKey edits the focused field and reports whether the key was
// consumed.
func (f *formState) applyKey(key gocui.Key, ch rune, mod gocui.Modifier) bool {
	field := &f.fields[f.index]

	if f.index == fieldStatus {
		switch key {
		case gocui.KeyArrowRight, gocui.KeySpace, gocui.KeyArrowLeft:
			field.Value = toggleStatusValue(field.Value)
		}
		return true
	}

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}
	return true
}

func (f *formState) next() {
	if f.index < len(f.fields)-1 {
		f.index++
	}
}

func (f *formState) prev() {
	if f.index > 0 {
		f.index--
	}
}

func toggleStatusValue(current string) string {
	if status, ok := model.ParseStatus(current); ok && status == model.StatusOpen {
		return model.StatusClosed.ID()
	}
	return model.StatusOpen.ID()
}

func validationFields(err error) []tasks.FieldError {
	var verr *tasks.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
