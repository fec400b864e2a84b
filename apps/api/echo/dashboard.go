package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Kings001-stack/SMS/core"
	"github.com/Kings001-stack/SMS/core/dashboard"
	"github.com/Kings001-stack/SMS/core/session"
	"github.com/Kings001-stack/SMS/services/schoolapi"
)

// panelFunc renders one feature panel for an authenticated session.
type panelFunc func(ctx echo.Context, sess session.Session) error

type dashboardAPI struct {
	api    *schoolapi.Client
	log    core.Logger
	panels map[string]panelFunc
}

func registerDashboardAPI(app *echo.Echo, g *echo.Group, opts *Options) {
	api := &dashboardAPI{
		api: opts.API,
		log: opts.Logger,
	}
	api.panels = map[string]panelFunc{
		dashboard.FeatureOverview: api.overviewPanel,
		"assignments":             api.assignmentsPanel,
		"resources":               api.resourcesPanel,
		"announcements":           api.announcementsPanel,
		"fees":                    api.feesPanel,
		"grades":                  api.gradesPanel,
		"attendance":              api.attendancePanel,
		"calendar":                api.calendarPanel,
		"admin-overview":          api.adminOverviewPanel,
		"user-management":         api.userManagementPanel,
		"system-reports":          api.systemReportsPanel,
		"class-management":        api.classManagementPanel,
		"subject-management":      api.subjectManagementPanel,
		"teacher-assignments":     api.teacherAssignmentsPanel,
		"news-events":             api.newsEventsPanel,
	}

	// browser-facing routes: guard failures redirect instead of erroring
	app.GET(dashboard.BasePath, api.entry)
	app.GET(dashboard.BasePath+"/:role", api.feature)
	app.GET(dashboard.BasePath+"/:role/:section", api.feature)

	g.GET("/dashboard/:role/schema", api.schema, loginRequiredMiddleware)
}

// entry re-dispatches /dashboard to the session role's dashboard; every
// downstream component trusts that the URL encodes the right role subtree.
func (api *dashboardAPI) entry(ctx echo.Context) error {
	sess, ok := getContextSession(ctx)
	if !ok {
		return ctx.Redirect(http.StatusFound, dashboard.LoginPath)
	}
	return ctx.Redirect(http.StatusFound, dashboard.PathForRole(sess.Role))
}

// feature guards a role dashboard route and mounts the resolved panel.
// Unauthenticated requests go to the login route; a role mismatch goes back
// to the dashboard entry, which re-dispatches. Both replace the location
// rather than erroring so the browser never dead-ends on a guarded page.
func (api *dashboardAPI) feature(ctx echo.Context) error {
	sess, ok := getContextSession(ctx)
	if !ok {
		return ctx.Redirect(http.StatusFound, dashboard.LoginPath)
	}

	pathRole := ctx.Param("role")
	if !session.KnownRole(pathRole) {
		return errHttpNotFound
	}
	if sess.Role != pathRole {
		return ctx.Redirect(http.StatusFound, dashboard.BasePath)
	}

	id := dashboard.ResolveFeature(ctx.Param("section"), ctx.Request().URL.Path)
	if !dashboard.KnownFeature(id) {
		// unknown section; land on the overview rather than 404ing
		id = dashboard.FeatureOverview
	}
	if !dashboard.Allowed(sess.Role, id) {
		// the user is inside their own dashboard already; deny the panel
		// without bouncing them elsewhere
		return ctx.JSON(http.StatusForbidden, AccessDeniedResponse{
			Status:  "denied",
			Feature: id,
			Message: "You don't have permission to access this feature.",
		})
	}

	panel, found := api.panels[id]
	if !found {
		panel = api.overviewPanel
	}
	return panel(ctx, sess)
}

func (api *dashboardAPI) schema(ctx echo.Context) error {
	sess, _ := getContextSession(ctx)
	pathRole := ctx.Param("role")
	if !session.KnownRole(pathRole) {
		return errHttpNotFound
	}
	if sess.Role != pathRole {
		return errHttpForbidden
	}
	return ctx.JSON(http.StatusOK, dashboard.SchemaForRole(pathRole))
}

type AccessDeniedResponse struct {
	Status  string `json:"status"`
	Feature string `json:"feature"`
	Message string `json:"message"`
}

// Panels

var overviewWelcome = map[string]string{
	session.RoleStudent:    "Here's your academic dashboard. Check your assignments, resources, and announcements.",
	session.RoleTeacher:    "Manage your classes, share resources, and track student progress from your teacher dashboard.",
	session.RoleAdmin:      "Monitor the entire school system, manage users, and access comprehensive reports.",
	session.RoleParent:     "Monitor your child's academic progress and school activities.",
	session.RoleStaff:      "Access staff resources and school information.",
	session.RoleAccountant: "Manage school finances and fee collection.",
	session.RoleRegistrar:  "Manage student records and academic administration.",
}

func (api *dashboardAPI) overviewPanel(ctx echo.Context, sess session.Session) error {
	if sess.Role == session.RoleParent {
		resp, err := api.api.ParentChildren(ctx.Request().Context(), sess.BearerToken())
		if err != nil {
			return errors.Wrap(err, "fetching parent children")
		}
		return ctx.JSON(http.StatusOK, resp)
	}

	schema := dashboard.SchemaForRole(sess.Role)
	return ctx.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data": echo.Map{
			"feature":  dashboard.FeatureOverview,
			"welcome":  overviewWelcome[sess.Role],
			"name":     sess.User.Name(),
			"role":     sess.Role,
			"features": schema.Features,
		},
	})
}

func (api *dashboardAPI) assignmentsPanel(ctx echo.Context, sess session.Session) error {
	resp, err := api.api.Assignments(ctx.Request().Context(), sess.BearerToken(), ctx.QueryParams())
	if err != nil {
		return errors.Wrap(err, "fetching assignments")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *dashboardAPI) resourcesPanel(ctx echo.Context, sess session.Session) error {
	resp, err := api.api.Resources(ctx.Request().Context(), sess.BearerToken(), ctx.QueryParams())
	if err != nil {
		return errors.Wrap(err, "fetching resources")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *dashboardAPI) announcementsPanel(ctx echo.Context, sess session.Session) error {
	resp, err := api.api.Announcements(ctx.Request().Context(), sess.BearerToken(), ctx.QueryParams())
	if err != nil {
		return errors.Wrap(err, "fetching announcements")
	}
	return ctx.JSON(http.StatusOK, resp)
}

// feesPanel varies by role: parents see their children's fees, admins the
// school-wide fee status, everyone else their own balance.
func (api *dashboardAPI) feesPanel(ctx echo.Context, sess session.Session) error {
	reqCtx := ctx.Request().Context()
	token := sess.BearerToken()

	var (
		resp *schoolapi.Response
		err  error
	)
	switch sess.Role {
	case session.RoleParent:
		resp, err = api.api.ParentChildren(reqCtx, token)
	case session.RoleAdmin:
		resp, err = api.api.AdminFeeStatus(reqCtx, token)
	default:
		resp, err = api.api.FeeBalance(reqCtx, token)
	}
	if err != nil {
		return errors.Wrap(err, "fetching fees")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *dashboardAPI) gradesPanel(ctx echo.Context, sess session.Session) error {
	reqCtx := ctx.Request().Context()
	token := sess.BearerToken()

	switch sess.Role {
	case session.RoleParent:
		resp, err := api.api.ParentChildren(reqCtx, token)
		if err != nil {
			return errors.Wrap(err, "fetching parent children")
		}
		return ctx.JSON(http.StatusOK, resp)
	case session.RoleTeacher, session.RoleAdmin:
		resp, err := api.api.Grades(reqCtx, token, ctx.QueryParams())
		if err != nil {
			return errors.Wrap(err, "fetching grades")
		}
		return ctx.JSON(http.StatusOK, resp)
	default:
		return ctx.JSON(http.StatusOK, placeholderPayload("grades",
			"Grade management is integrated with assignments. Check the Assignments section to view and manage grades."))
	}
}

func (api *dashboardAPI) attendancePanel(ctx echo.Context, sess session.Session) error {
	return ctx.JSON(http.StatusOK, placeholderPayload("attendance",
		"Attendance management coming soon! This feature will allow teachers to mark and track student attendance."))
}

func (api *dashboardAPI) calendarPanel(ctx echo.Context, sess session.Session) error {
	return ctx.JSON(http.StatusOK, placeholderPayload("calendar",
		"School calendar coming soon! This will show important school events, holidays, and the academic calendar."))
}

// adminOverviewPanel aggregates the datasets the admin panel summarizes.
func (api *dashboardAPI) adminOverviewPanel(ctx echo.Context, sess session.Session) error {
	reqCtx := ctx.Request().Context()
	token := sess.BearerToken()

	data := make(echo.Map, 4)
	for name, fetch := range map[string]func() (*schoolapi.Response, error){
		"users":         func() (*schoolapi.Response, error) { return api.api.AdminUsers(reqCtx, token, nil) },
		"announcements": func() (*schoolapi.Response, error) { return api.api.Announcements(reqCtx, token, nil) },
		"assignments":   func() (*schoolapi.Response, error) { return api.api.Assignments(reqCtx, token, nil) },
		"resources":     func() (*schoolapi.Response, error) { return api.api.Resources(reqCtx, token, nil) },
	} {
		resp, err := fetch()
		if err != nil {
			return errors.Wrapf(err, "fetching admin %s", name)
		}
		data[name] = resp.Data
	}
	return ctx.JSON(http.StatusOK, echo.Map{"status": "success", "data": data})
}

func (api *dashboardAPI) userManagementPanel(ctx echo.Context, sess session.Session) error {
	resp, err := api.api.AdminUsers(ctx.Request().Context(), sess.BearerToken(), ctx.QueryParams())
	if err != nil {
		return errors.Wrap(err, "fetching users")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *dashboardAPI) systemReportsPanel(ctx echo.Context, sess session.Session) error {
	resp, err := api.api.Reports(ctx.Request().Context(), sess.BearerToken(), ctx.QueryParams())
	if err != nil {
		return errors.Wrap(err, "fetching reports")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *dashboardAPI) classManagementPanel(ctx echo.Context, sess session.Session) error {
	resp, err := api.api.AdminClasses(ctx.Request().Context(), sess.BearerToken())
	if err != nil {
		return errors.Wrap(err, "fetching classes")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *dashboardAPI) subjectManagementPanel(ctx echo.Context, sess session.Session) error {
	resp, err := api.api.AdminSubjects(ctx.Request().Context(), sess.BearerToken())
	if err != nil {
		return errors.Wrap(err, "fetching subjects")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *dashboardAPI) teacherAssignmentsPanel(ctx echo.Context, sess session.Session) error {
	reqCtx := ctx.Request().Context()
	token := sess.BearerToken()

	assignments, err := api.api.TeacherAssignments(reqCtx, token)
	if err != nil {
		return errors.Wrap(err, "fetching teacher assignments")
	}
	teachers, err := api.api.AvailableTeachers(reqCtx, token)
	if err != nil {
		return errors.Wrap(err, "fetching available teachers")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data": echo.Map{
			"assignments": assignments.Data,
			"teachers":    teachers.Data,
		},
	})
}

func (api *dashboardAPI) newsEventsPanel(ctx echo.Context, sess session.Session) error {
	resp, err := api.api.NewsEvents(ctx.Request().Context(), sess.BearerToken(), ctx.QueryParams())
	if err != nil {
		return errors.Wrap(err, "fetching news and events")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func placeholderPayload(feature, message string) echo.Map {
	return echo.Map{
		"status": "success",
		"data": echo.Map{
			"feature": feature,
			"message": message,
		},
	}
}
