package schoolapi

import (
	"context"
	"net/url"
)

// Typed wrappers over the backend's resource endpoints, one group per
// feature panel.

// Assignments

func (c *Client) Assignments(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/assignments", query)
}

func (c *Client) CreateAssignment(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/assignments", payload)
}

// the backend takes the assignment id in the body on update
func (c *Client) UpdateAssignment(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Put(ctx, token, "/assignments", payload)
}

func (c *Client) DeleteAssignment(ctx context.Context, token, id string) (*Response, error) {
	return c.Delete(ctx, token, "/assignments/"+url.PathEscape(id))
}

func (c *Client) AssignmentMeta(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/teacher/assignment-meta", nil)
}

func (c *Client) Submissions(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/submissions", query)
}

// Resources

func (c *Client) Resources(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/resources", query)
}

func (c *Client) Resource(ctx context.Context, token, id string) (*Response, error) {
	return c.Get(ctx, token, "/resources/"+url.PathEscape(id), nil)
}

func (c *Client) CreateResource(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/resources", payload)
}

func (c *Client) DeleteResource(ctx context.Context, token, id string) (*Response, error) {
	return c.Delete(ctx, token, "/resources/"+url.PathEscape(id))
}

func (c *Client) TeacherClasses(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/resources/teacher-classes", nil)
}

func (c *Client) AssignResourceClass(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/resources/assign-class", payload)
}

// Announcements

func (c *Client) Announcements(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/announcements", query)
}

func (c *Client) CreateAnnouncement(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/announcements", payload)
}

func (c *Client) DeleteAnnouncement(ctx context.Context, token, id string) (*Response, error) {
	return c.Delete(ctx, token, "/announcements/"+url.PathEscape(id))
}

// Grades

func (c *Client) Grades(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/grades", query)
}

func (c *Client) CreateGrade(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/grades", payload)
}

func (c *Client) UpdateGrade(ctx context.Context, token, id string, payload interface{}) (*Response, error) {
	return c.Put(ctx, token, "/grades/"+url.PathEscape(id), payload)
}

// Students & classes & subjects

func (c *Client) Students(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/students", query)
}

func (c *Client) Classes(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/classes", nil)
}

func (c *Client) Subjects(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/subjects", nil)
}

// Fees

func (c *Client) FeeBalance(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/fees", nil)
}

func (c *Client) FeePayments(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/fees/payments", nil)
}

func (c *Client) RecordFeePayment(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/fees/payment", payload)
}

func (c *Client) UploadFeeSlip(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/fees/slip", payload)
}

// News & events

func (c *Client) NewsEvents(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/news-events", query)
}

func (c *Client) CreateNewsEvent(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/news-events", payload)
}

// Reports

func (c *Client) Reports(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/reports", query)
}

// Admin

func (c *Client) AdminUsers(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/admin/users", query)
}

func (c *Client) CreateAdminUser(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/admin/users", payload)
}

func (c *Client) UpdateAdminUser(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Put(ctx, token, "/admin/users", payload)
}

func (c *Client) DeleteAdminUser(ctx context.Context, token, id string) (*Response, error) {
	return c.Delete(ctx, token, "/admin/users/"+id)
}

func (c *Client) AdminClasses(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/admin/classes", nil)
}

func (c *Client) CreateAdminClass(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/admin/classes", payload)
}

func (c *Client) AdminSubjects(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/admin/subjects", nil)
}

func (c *Client) CreateAdminSubject(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/admin/subjects", payload)
}

func (c *Client) AvailableTeachers(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/admin/available-teachers", nil)
}

func (c *Client) TeacherAssignments(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/admin/teacher-assignments", nil)
}

func (c *Client) CreateTeacherAssignment(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/admin/teacher-assignments", payload)
}

func (c *Client) AdminFeeStatus(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/admin/fees/status", nil)
}

func (c *Client) AdminFeesPending(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/admin/fees/pending", nil)
}

func (c *Client) ApproveFee(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/admin/fees/approve", payload)
}

func (c *Client) RejectFee(ctx context.Context, token string, payload interface{}) (*Response, error) {
	return c.Post(ctx, token, "/admin/fees/reject", payload)
}

func (c *Client) AdminParentChildren(ctx context.Context, token string, query url.Values) (*Response, error) {
	return c.Get(ctx, token, "/admin/parent-children", query)
}

// Parent

func (c *Client) ParentChildren(ctx context.Context, token string) (*Response, error) {
	return c.Get(ctx, token, "/parent/children", nil)
}

func (c *Client) ParentFees(ctx context.Context, token, studentID string) (*Response, error) {
	return c.Get(ctx, token, "/parent/fees", url.Values{"student_id": []string{studentID}})
}

func (c *Client) ParentFeePayments(ctx context.Context, token, studentID string) (*Response, error) {
	return c.Get(ctx, token, "/parent/fees/payments", url.Values{"student_id": []string{studentID}})
}

func (c *Client) ParentGrades(ctx context.Context, token, studentID string) (*Response, error) {
	return c.Get(ctx, token, "/parent/grades", url.Values{"student_id": []string{studentID}})
}
