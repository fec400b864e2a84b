package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Kings001-stack/SMS/core"
	"github.com/Kings001-stack/SMS/core/session"
	"github.com/Kings001-stack/SMS/services/schoolapi"
)

// featureAPI exposes the per-panel data operations under /v1. Reads are open
// to any authenticated session; writes are gated to the roles whose dashboard
// carries the feature.
type featureAPI struct {
	api      *schoolapi.Client
	validate *validator.Validate
	log      core.Logger
}

func registerFeatureAPI(g *echo.Group, opts *Options) {
	api := &featureAPI{
		api:      opts.API,
		validate: opts.Validate,
		log:      opts.Logger,
	}

	teacherOrAdmin := roleRequiredMiddleware(session.RoleTeacher, session.RoleAdmin)
	publisher := roleRequiredMiddleware(session.RoleTeacher, session.RoleAdmin, session.RoleRegistrar)
	finance := roleRequiredMiddleware(session.RoleAccountant, session.RoleAdmin)

	auth := g.Group("", loginRequiredMiddleware)

	// academics
	auth.GET("/assignments", api.listAssignments)
	auth.POST("/assignments", api.createAssignment, teacherOrAdmin)
	auth.PUT("/assignments", api.updateAssignment, teacherOrAdmin)
	auth.DELETE("/assignments/:id", api.deleteAssignment, teacherOrAdmin)
	auth.GET("/teacher/assignment-meta", api.assignmentMeta, roleRequiredMiddleware(session.RoleTeacher))
	auth.GET("/submissions", api.listSubmissions)

	auth.GET("/resources", api.listResources)
	auth.GET("/resources/teacher-classes", api.teacherClasses, roleRequiredMiddleware(session.RoleTeacher))
	auth.GET("/resources/:id", api.getResource)
	auth.POST("/resources", api.createResource, teacherOrAdmin)
	auth.DELETE("/resources/:id", api.deleteResource, teacherOrAdmin)
	auth.POST("/resources/assign-class", api.assignResourceClass, roleRequiredMiddleware(session.RoleTeacher))

	auth.GET("/announcements", api.listAnnouncements)
	auth.POST("/announcements", api.createAnnouncement, publisher)
	auth.DELETE("/announcements/:id", api.deleteAnnouncement, publisher)

	auth.GET("/grades", api.listGrades, teacherOrAdmin)
	auth.POST("/grades", api.createGrade, teacherOrAdmin)
	auth.PUT("/grades/:id", api.updateGrade, teacherOrAdmin)

	auth.GET("/students", api.listStudents, teacherOrAdmin)
	auth.GET("/classes", api.listClasses)
	auth.GET("/subjects", api.listSubjects)

	// fees
	auth.GET("/fees", api.feeBalance)
	auth.GET("/fees/payments", api.feePayments)
	auth.POST("/fees/payment", api.recordFeePayment, finance)
	auth.POST("/fees/slip", api.uploadFeeSlip)

	// news & events: the public site reads these without a session
	g.GET("/news-events", api.listNewsEvents)
	auth.POST("/news-events", api.createNewsEvent, adminRequiredMiddleware)

	auth.GET("/reports", api.reports, adminRequiredMiddleware)

	// parent portal
	pg := auth.Group("/parent", roleRequiredMiddleware(session.RoleParent))
	pg.GET("/children", api.parentChildren)
	pg.GET("/fees", api.parentFees)
	pg.GET("/fees/payments", api.parentFeePayments)
	pg.GET("/grades", api.parentGrades)

	// admin console
	ag := auth.Group("/admin", adminRequiredMiddleware)
	ag.GET("/users", api.adminUsers)
	ag.POST("/users", api.createAdminUser)
	ag.PUT("/users", api.updateAdminUser)
	ag.DELETE("/users/:id", api.deleteAdminUser)
	ag.GET("/classes", api.adminClasses)
	ag.POST("/classes", api.createAdminClass)
	ag.GET("/subjects", api.adminSubjects)
	ag.POST("/subjects", api.createAdminSubject)
	ag.GET("/available-teachers", api.availableTeachers)
	ag.GET("/teacher-assignments", api.adminTeacherAssignments)
	ag.POST("/teacher-assignments", api.createTeacherAssignment)
	ag.GET("/fees/status", api.adminFeeStatus)
	ag.GET("/fees/pending", api.adminFeesPending)
	ag.POST("/fees/approve", api.approveFee)
	ag.POST("/fees/reject", api.rejectFee)
	ag.GET("/parent-children", api.adminParentChildren)
}

func (api *featureAPI) token(ctx echo.Context) string {
	sess, _ := getContextSession(ctx)
	return sess.BearerToken()
}

// relay forwards the backend envelope unchanged.
func (api *featureAPI) relay(ctx echo.Context, resp *schoolapi.Response, err error) error {
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}

// Academics

func (api *featureAPI) listAssignments(ctx echo.Context) error {
	resp, err := api.api.Assignments(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) createAssignment(ctx echo.Context) error {
	var data AssignmentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignmentRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.CreateAssignment(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) updateAssignment(ctx echo.Context) error {
	var data AssignmentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignmentRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if data.ID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "id", Error: "id is required"})
	}
	// the backend takes the assignment id in the body, not the path
	resp, err := api.api.UpdateAssignment(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) deleteAssignment(ctx echo.Context) error {
	resp, err := api.api.DeleteAssignment(ctx.Request().Context(), api.token(ctx), ctx.Param("id"))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) assignmentMeta(ctx echo.Context) error {
	resp, err := api.api.AssignmentMeta(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) listSubmissions(ctx echo.Context) error {
	resp, err := api.api.Submissions(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) listResources(ctx echo.Context) error {
	resp, err := api.api.Resources(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) getResource(ctx echo.Context) error {
	resp, err := api.api.Resource(ctx.Request().Context(), api.token(ctx), ctx.Param("id"))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) createResource(ctx echo.Context) error {
	var data ResourceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResourceRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.CreateResource(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) deleteResource(ctx echo.Context) error {
	resp, err := api.api.DeleteResource(ctx.Request().Context(), api.token(ctx), ctx.Param("id"))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) teacherClasses(ctx echo.Context) error {
	resp, err := api.api.TeacherClasses(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) assignResourceClass(ctx echo.Context) error {
	var data map[string]interface{}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding resource class assignment")
	}
	resp, err := api.api.AssignResourceClass(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) listAnnouncements(ctx echo.Context) error {
	resp, err := api.api.Announcements(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) createAnnouncement(ctx echo.Context) error {
	var data AnnouncementRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnnouncementRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.CreateAnnouncement(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) deleteAnnouncement(ctx echo.Context) error {
	resp, err := api.api.DeleteAnnouncement(ctx.Request().Context(), api.token(ctx), ctx.Param("id"))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) listGrades(ctx echo.Context) error {
	resp, err := api.api.Grades(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) createGrade(ctx echo.Context) error {
	var data GradeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.CreateGrade(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) updateGrade(ctx echo.Context) error {
	var data GradeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.UpdateGrade(ctx.Request().Context(), api.token(ctx), ctx.Param("id"), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) listStudents(ctx echo.Context) error {
	resp, err := api.api.Students(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) listClasses(ctx echo.Context) error {
	resp, err := api.api.Classes(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) listSubjects(ctx echo.Context) error {
	resp, err := api.api.Subjects(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

// Fees

func (api *featureAPI) feeBalance(ctx echo.Context) error {
	resp, err := api.api.FeeBalance(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) feePayments(ctx echo.Context) error {
	resp, err := api.api.FeePayments(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) recordFeePayment(ctx echo.Context) error {
	var data FeePaymentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeePaymentRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.RecordFeePayment(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) uploadFeeSlip(ctx echo.Context) error {
	var data map[string]interface{}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding fee slip")
	}
	resp, err := api.api.UploadFeeSlip(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

// News & events

func (api *featureAPI) listNewsEvents(ctx echo.Context) error {
	// no session required; pass whatever token there is so staff see drafts
	resp, err := api.api.NewsEvents(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) createNewsEvent(ctx echo.Context) error {
	var data NewsEventRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewsEventRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.CreateNewsEvent(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) reports(ctx echo.Context) error {
	resp, err := api.api.Reports(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}

// Parent portal

func (api *featureAPI) parentChildren(ctx echo.Context) error {
	resp, err := api.api.ParentChildren(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) parentFees(ctx echo.Context) error {
	resp, err := api.api.ParentFees(ctx.Request().Context(), api.token(ctx), ctx.QueryParam("student_id"))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) parentFeePayments(ctx echo.Context) error {
	resp, err := api.api.ParentFeePayments(ctx.Request().Context(), api.token(ctx), ctx.QueryParam("student_id"))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) parentGrades(ctx echo.Context) error {
	resp, err := api.api.ParentGrades(ctx.Request().Context(), api.token(ctx), ctx.QueryParam("student_id"))
	return api.relay(ctx, resp, err)
}

// Admin console

func (api *featureAPI) adminUsers(ctx echo.Context) error {
	resp, err := api.api.AdminUsers(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) createAdminUser(ctx echo.Context) error {
	var data AdminUserRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdminUserRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.CreateAdminUser(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) updateAdminUser(ctx echo.Context) error {
	var data AdminUserRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdminUserRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if data.ID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "id", Error: "id is required"})
	}
	resp, err := api.api.UpdateAdminUser(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) deleteAdminUser(ctx echo.Context) error {
	resp, err := api.api.DeleteAdminUser(ctx.Request().Context(), api.token(ctx), ctx.Param("id"))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) adminClasses(ctx echo.Context) error {
	resp, err := api.api.AdminClasses(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) createAdminClass(ctx echo.Context) error {
	var data ClassRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ClassRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.CreateAdminClass(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) adminSubjects(ctx echo.Context) error {
	resp, err := api.api.AdminSubjects(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) createAdminSubject(ctx echo.Context) error {
	var data SubjectRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubjectRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.CreateAdminSubject(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) availableTeachers(ctx echo.Context) error {
	resp, err := api.api.AvailableTeachers(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) adminTeacherAssignments(ctx echo.Context) error {
	resp, err := api.api.TeacherAssignments(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) createTeacherAssignment(ctx echo.Context) error {
	var data TeacherAssignmentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TeacherAssignmentRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.CreateTeacherAssignment(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) adminFeeStatus(ctx echo.Context) error {
	resp, err := api.api.AdminFeeStatus(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) adminFeesPending(ctx echo.Context) error {
	resp, err := api.api.AdminFeesPending(ctx.Request().Context(), api.token(ctx))
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) approveFee(ctx echo.Context) error {
	var data FeeDecisionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeeDecisionRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.ApproveFee(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) rejectFee(ctx echo.Context) error {
	var data FeeDecisionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeeDecisionRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	resp, err := api.api.RejectFee(ctx.Request().Context(), api.token(ctx), data)
	return api.relay(ctx, resp, err)
}

func (api *featureAPI) adminParentChildren(ctx echo.Context) error {
	resp, err := api.api.AdminParentChildren(ctx.Request().Context(), api.token(ctx), ctx.QueryParams())
	return api.relay(ctx, resp, err)
}
