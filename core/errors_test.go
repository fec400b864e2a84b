package core

import (
	"errors"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil inner error", err: NewValidationError(nil, FieldError{Field: "id", Error: "id is required"}), want: ""},
		{name: "inner error only", err: NewValidationError(errors.New("Invalid credentials")), want: "Invalid credentials"},
		{name: "inner error with fields", err: NewValidationError(errors.New("bad payload"), FieldError{Field: "title", Error: "this field is required"}), want: "bad payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationErrorFields(t *testing.T) {
	err := NewValidationError(nil, FieldError{Field: "email", Error: "must be a valid email address"})
	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("NewValidationError() = %T, want *ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
		t.Errorf("Fields = %+v", vErr.Fields)
	}
}
