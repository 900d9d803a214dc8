package tasks

import (
	"errors"
	"strings"
	"testing"

	"github.com/Joseda-hg/tasktrack/internal/model"
)

func TestValidate(t *testing.T) {
	valid := TaskInput{
		Title:       "Buy milk",
		Description: "2%",
		DueDate:     model.NewDate(2026, 3, 14),
		Status:      model.StatusOpen,
	}

	tests := []struct {
		name   string
		mutate func(*TaskInput)
		field  string
		rule   string
	}{
		{name: "valid", mutate: func(*TaskInput) {}},
		{name: "empty title", mutate: func(in *TaskInput) { in.Title = "" }, field: "title", rule: "required"},
		{name: "long title", mutate: func(in *TaskInput) { in.Title = strings.Repeat("a", 256) }, field: "title", rule: "max"},
		{name: "empty description", mutate: func(in *TaskInput) { in.Description = "" }, field: "description", rule: "required"},
		{name: "missing due date", mutate: func(in *TaskInput) { in.DueDate = model.Date{} }, field: "due_date", rule: "required"},
		{name: "unset status", mutate: func(in *TaskInput) { in.Status = model.StatusUnset }, field: "status", rule: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			got := Validate(input)
			if tt.field == "" {
				if len(got) != 0 {
					t.Fatalf("expected no failures, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected one failure, got %+v", got)
			}
			if got[0].Field != tt.field || got[0].Rule != tt.rule {
				t.Fatalf("expected %s/%s, got %s/%s", tt.field, tt.rule, got[0].Field, got[0].Rule)
			}
			if got[0].Message == "" {
				t.Fatalf("expected a message for %s", tt.field)
			}
		})
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := error(&ValidationError{Fields: []FieldError{{Field: "title", Rule: "required", Message: "Please enter a title."}}})

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is to match ErrValidation")
	}
	if !strings.Contains(err.Error(), "title: Please enter a title.") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestMergeFieldErrors(t *testing.T) {
	base := []FieldError{{Field: "title", Rule: "required"}}
	merged := MergeFieldErrors(base,
		FieldError{Field: "title", Rule: "max"},
		FieldError{Field: "due_date", Rule: "date"},
	)

	if len(merged) != 2 {
		t.Fatalf("expected 2 failures, got %+v", merged)
	}
	if merged[0].Rule != "required" || merged[1].Field != "due_date" {
		t.Fatalf("unexpected merge result %+v", merged)
	}
}
