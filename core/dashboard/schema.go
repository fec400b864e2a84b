package dashboard

import "github.com/Kings001-stack/SMS/core/session"

type (
	// Feature is one navigable panel within a role's dashboard.
	Feature struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Icon        string `json:"icon"`
		Description string `json:"description"`
	}

	// Schema is the static per-role manifest the sidebar renders from. It is
	// never mutated at runtime.
	Schema struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Role        string    `json:"role"`
		Features    []Feature `json:"features"`
	}
)

var StudentSchema = Schema{
	Title:       "Student Dashboard",
	Description: "Access your assignments, resources, grades, and school announcements",
	Role:        session.RoleStudent,
	Features: []Feature{
		{ID: "overview", Title: "Overview", Icon: "home", Description: "Dashboard overview and quick stats"},
		{ID: "assignments", Title: "Assignments", Icon: "document-text", Description: "View and submit your assignments"},
		{ID: "resources", Title: "Resources", Icon: "book-open", Description: "Access learning materials and resources"},
		{ID: "announcements", Title: "Announcements", Icon: "megaphone", Description: "Read school announcements and updates"},
		{ID: "fees", Title: "Fees", Icon: "currency-dollar", Description: "Check your fee balance and payment history"},
		{ID: "calendar", Title: "Calendar", Icon: "calendar", Description: "View school calendar and important dates"},
	},
}

var TeacherSchema = Schema{
	Title:       "Teacher Dashboard",
	Description: "Manage your classes, share resources, and track student progress",
	Role:        session.RoleTeacher,
	Features: []Feature{
		{ID: "overview", Title: "Overview", Icon: "home", Description: "Dashboard overview and class statistics"},
		{ID: "assignments", Title: "Assignments", Icon: "document-text", Description: "Create and grade assignments"},
		{ID: "resources", Title: "Resources", Icon: "book-open", Description: "Share resources with your classes"},
		{ID: "announcements", Title: "Announcements", Icon: "megaphone", Description: "Post announcements to students"},
		{ID: "grades", Title: "Grades", Icon: "chart-bar", Description: "Manage student grades and feedback"},
		{ID: "attendance", Title: "Attendance", Icon: "check-circle", Description: "Mark and track student attendance"},
		{ID: "calendar", Title: "Calendar", Icon: "calendar", Description: "View and manage class schedule"},
	},
}

var AdminSchema = Schema{
	Title:       "Admin Dashboard",
	Description: "Complete school system oversight and management",
	Role:        session.RoleAdmin,
	Features: []Feature{
		{ID: "overview", Title: "Overview", Icon: "home", Description: "System overview and analytics"},
		{ID: "admin-overview", Title: "Admin Panel", Icon: "cog", Description: "System administration and monitoring"},
		{ID: "user-management", Title: "Users", Icon: "users", Description: "Manage users and permissions"},
		{ID: "system-reports", Title: "Reports", Icon: "chart-line", Description: "Generate system reports and analytics"},
		{ID: "class-management", Title: "Classes", Icon: "academic-cap", Description: "Create and manage school classes"},
		{ID: "subject-management", Title: "Subjects", Icon: "book-open", Description: "Create and manage subjects"},
		{ID: "teacher-assignments", Title: "Teacher Assignments", Icon: "user-group", Description: "Assign teachers to classes and subjects"},
		{ID: "news-events", Title: "News & Events", Icon: "calendar", Description: "Create and manage news and events"},
		{ID: "assignments", Title: "Assignments", Icon: "document-text", Description: "Oversee all assignments"},
		{ID: "resources", Title: "Resources", Icon: "book-open", Description: "Manage school resources"},
		{ID: "announcements", Title: "Announcements", Icon: "megaphone", Description: "Manage school announcements"},
		{ID: "fees", Title: "Fees", Icon: "currency-dollar", Description: "Financial management and oversight"},
	},
}

var ParentSchema = Schema{
	Title:       "Parent Dashboard",
	Description: "Monitor your child's academic progress and school activities",
	Role:        session.RoleParent,
	Features: []Feature{
		{ID: "overview", Title: "Overview", Icon: "home", Description: "Child's academic overview"},
		{ID: "assignments", Title: "Assignments", Icon: "document-text", Description: "View child's assignments and progress"},
		{ID: "announcements", Title: "Announcements", Icon: "megaphone", Description: "Read school announcements"},
		{ID: "fees", Title: "Fees", Icon: "currency-dollar", Description: "View and pay school fees"},
		{ID: "calendar", Title: "Calendar", Icon: "calendar", Description: "View school calendar and events"},
	},
}

var StaffSchema = Schema{
	Title:       "Staff Dashboard",
	Description: "Access staff resources and school information",
	Role:        session.RoleStaff,
	Features: []Feature{
		{ID: "overview", Title: "Overview", Icon: "home", Description: "Staff dashboard overview"},
		{ID: "announcements", Title: "Announcements", Icon: "megaphone", Description: "Read staff announcements"},
		{ID: "calendar", Title: "Calendar", Icon: "calendar", Description: "View school calendar and events"},
	},
}

var AccountantSchema = Schema{
	Title:       "Accountant Dashboard",
	Description: "Manage school finances and fee collection",
	Role:        session.RoleAccountant,
	Features: []Feature{
		{ID: "overview", Title: "Overview", Icon: "home", Description: "Financial overview and statistics"},
		{ID: "fees", Title: "Fees", Icon: "currency-dollar", Description: "Manage fee collection and payments"},
		{ID: "announcements", Title: "Announcements", Icon: "megaphone", Description: "Read financial announcements"},
		{ID: "calendar", Title: "Calendar", Icon: "calendar", Description: "View financial calendar and deadlines"},
	},
}

var RegistrarSchema = Schema{
	Title:       "Registrar Dashboard",
	Description: "Manage student records and academic administration",
	Role:        session.RoleRegistrar,
	Features: []Feature{
		{ID: "overview", Title: "Overview", Icon: "home", Description: "Academic administration overview"},
		{ID: "assignments", Title: "Assignments", Icon: "document-text", Description: "Oversee academic assignments"},
		{ID: "announcements", Title: "Announcements", Icon: "megaphone", Description: "Manage academic announcements"},
		{ID: "calendar", Title: "Calendar", Icon: "calendar", Description: "Manage academic calendar"},
	},
}

var schemas = map[string]Schema{
	session.RoleStudent:    StudentSchema,
	session.RoleTeacher:    TeacherSchema,
	session.RoleAdmin:      AdminSchema,
	session.RoleParent:     ParentSchema,
	session.RoleStaff:      StaffSchema,
	session.RoleAccountant: AccountantSchema,
	session.RoleRegistrar:  RegistrarSchema,
}

// SchemaForRole returns the role's manifest; unknown roles get the student
// manifest, matching the role fallback everywhere else.
func SchemaForRole(role string) Schema {
	if s, ok := schemas[role]; ok {
		return s
	}
	return StudentSchema
}
