package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/Kings001-stack/SMS/core"
	"github.com/Kings001-stack/SMS/core/session"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	SessionResponse struct {
		Authenticated bool         `json:"authenticated"`
		Role          string       `json:"role,omitempty"`
		User          session.User `json:"user,omitempty"`
	}

	AssignmentRequest struct {
		ID          string `json:"id,omitempty"`
		Title       string `json:"title" validate:"required"`
		Description string `json:"description,omitempty"`
		Subject     string `json:"subject,omitempty"`
		ClassLevel  string `json:"class_level,omitempty"`
		DueDate     string `json:"due_date,omitempty"`
	}

	ResourceRequest struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description,omitempty"`
		Subject     string `json:"subject,omitempty"`
		ClassLevel  string `json:"class_level,omitempty"`
		FileURL     string `json:"file_url,omitempty"`
		Visibility  string `json:"visibility,omitempty"`
	}

	AnnouncementRequest struct {
		Title    string `json:"title" validate:"required"`
		Message  string `json:"message" validate:"required"`
		Audience string `json:"audience,omitempty"`
	}

	GradeRequest struct {
		ID        string `json:"id,omitempty"`
		StudentID string `json:"student_id" validate:"required"`
		Subject   string `json:"subject" validate:"required"`
		Score     string `json:"score" validate:"required"`
		Feedback  string `json:"feedback,omitempty"`
	}

	FeePaymentRequest struct {
		StudentID string `json:"student_id,omitempty"`
		Amount    string `json:"amount" validate:"required"`
		Method    string `json:"method,omitempty"`
		Reference string `json:"reference,omitempty"`
	}

	AdminUserRequest struct {
		ID         string `json:"id,omitempty"`
		Name       string `json:"name" validate:"required"`
		Email      string `json:"email" validate:"required,email"`
		Role       string `json:"role" validate:"required"`
		ClassLevel string `json:"class_level,omitempty"`
		Status     string `json:"status,omitempty"`
		Password   string `json:"password,omitempty"`
	}

	ClassRequest struct {
		Name        string `json:"name" validate:"required"`
		Level       string `json:"level,omitempty"`
		Description string `json:"description,omitempty"`
	}

	SubjectRequest struct {
		Name        string `json:"name" validate:"required"`
		Code        string `json:"code,omitempty"`
		Description string `json:"description,omitempty"`
	}

	TeacherAssignmentRequest struct {
		TeacherID string `json:"teacher_id" validate:"required"`
		ClassID   string `json:"class_id" validate:"required"`
		SubjectID string `json:"subject_id,omitempty"`
	}

	NewsEventRequest struct {
		Title     string `json:"title" validate:"required"`
		Type      string `json:"type" validate:"required"`
		Body      string `json:"body,omitempty"`
		EventDate string `json:"event_date,omitempty"`
		Published bool   `json:"published"`
	}

	FeeDecisionRequest struct {
		PaymentID string `json:"payment_id" validate:"required"`
		Notes     string `json:"notes,omitempty"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

func (ar *AssignmentRequest) Validate(validate *validator.Validate) error {
	ar.Title = core.CleanString(ar.Title)
	return validate.Struct(ar)
}

func (rr *ResourceRequest) Validate(validate *validator.Validate) error {
	rr.Title = core.CleanString(rr.Title)
	return validate.Struct(rr)
}

func (ar *AnnouncementRequest) Validate(validate *validator.Validate) error {
	ar.Title = core.CleanString(ar.Title)
	ar.Message = core.CleanString(ar.Message)
	return validate.Struct(ar)
}

func (gr *GradeRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(gr)
}

func (fr *FeePaymentRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(fr)
}

func (ur *AdminUserRequest) Validate(validate *validator.Validate) error {
	ur.Name = core.CleanString(ur.Name)
	ur.Email = core.CleanString(ur.Email, true /* lower */)
	ur.Role = core.CleanString(ur.Role, true /* lower */)
	return validate.Struct(ur)
}

func (cr *ClassRequest) Validate(validate *validator.Validate) error {
	cr.Name = core.CleanString(cr.Name)
	return validate.Struct(cr)
}

func (sr *SubjectRequest) Validate(validate *validator.Validate) error {
	sr.Name = core.CleanString(sr.Name)
	return validate.Struct(sr)
}

func (tr *TeacherAssignmentRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(tr)
}

func (nr *NewsEventRequest) Validate(validate *validator.Validate) error {
	nr.Title = core.CleanString(nr.Title)
	return validate.Struct(nr)
}

func (fr *FeeDecisionRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(fr)
}
