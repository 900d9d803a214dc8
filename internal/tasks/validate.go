package tasks

import (
	"errors"
	"strings"

	"github.com/Joseda-hg/tasktrack/internal/model"
	"github.com/go-playground/validator/v10"
)

const TitleMaxLength = 255

// TaskInput holds the caller-editable fields of a task.
type TaskInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     model.Date   `json:"due_date"`
	Status      model.Status `json:"status"`
}

func (in TaskInput) normalized() TaskInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func (in TaskInput) task(id int64) model.Task {
	return model.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
	}
}

// InputFromTask copies the editable fields of task.
func InputFromTask(task model.Task) TaskInput {
	return TaskInput{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      task.Status,
	}
}

type fieldRule struct {
	field    string
	tag      string
	value    func(TaskInput) any
	messages map[string]string
}

var taskRules = []fieldRule{
	{
		field: "title",
		tag:   "required,max=255",
		value: func(in TaskInput) any { return in.Title },
		messages: map[string]string{
			"required": "Please enter a title.",
			"max":      "Title must be 255 characters or fewer.",
		},
	},
	{
		field:    "description",
		tag:      "required",
		value:    func(in TaskInput) any { return in.Description },
		messages: map[string]string{"required": "Please enter a description."},
	},
	{
		field:    "due_date",
		tag:      "required",
		value:    func(in TaskInput) any { return in.DueDate.String() },
		messages: map[string]string{"required": "Please enter a due date."},
	},
	{
		field: "status",
		tag:   "required,oneof=open closed",
		value: func(in TaskInput) any { return in.Status.ID() },
		messages: map[string]string{
			"required": "Please select a status.",
			"oneof":    "Please select a status.",
		},
	},
}

var validate = validator.New()

// Validate checks input against the task rules and reports at most one
// failure per field, in rule order. It does not trim; callers that accept
// raw user input should pass it through the service, which does.
func Validate(input TaskInput) []FieldError {
	var failures []FieldError
	for _, rule := range taskRules {
		err := validate.Var(rule.value(input), rule.tag)
		if err == nil {
			continue
		}

		tag := rule.tag
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			tag = verrs[0].Tag()
		}

		message, ok := rule.messages[tag]
		if !ok {
			message = "Invalid " + strings.ReplaceAll(rule.field, "_", " ") + "."
		}
		failures = append(failures, FieldError{Field: rule.field, Rule: tag, Message: message})
	}
	return failures
}

// MergeFieldErrors appends extra failures for fields not already present in
// base.
func MergeFieldErrors(base []FieldError, extra ...FieldError) []FieldError {
	seen := make(map[string]struct{}, len(base))
	for _, f := range base {
		seen[f.Field] = struct{}{}
	}
	for _, f := range extra {
		if _, ok := seen[f.Field]; ok {
			continue
		}
		seen[f.Field] = struct{}{}
		base = append(base, f)
	}
	return base
}
