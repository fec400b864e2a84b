package dashboard

import (
	"strings"

	"github.com/Kings001-stack/SMS/core/session"
)

// BasePath is the dashboard entry route; it re-dispatches by role.
const BasePath = "/dashboard"

// LoginPath is where unauthenticated dashboard requests get redirected.
const LoginPath = "/auth/login"

// FeatureOverview is the panel every dashboard lands on by default.
const FeatureOverview = "overview"

// PathForRole is the single role-to-URL translation point. The mapping is a
// fixed table; unrecognized or missing roles fall through to the student path.
func PathForRole(role string) string {
	if session.KnownRole(role) {
		return BasePath + "/" + role
	}
	return BasePath + "/" + session.RoleStudent
}

// ResolveFeature selects the feature for the active URL. An explicit section
// route param wins over path inference; a trailing segment that is a bare
// role name means the dashboard root, which resolves to the overview.
func ResolveFeature(section, path string) string {
	if section != "" {
		return section
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" || last == strings.Trim(BasePath, "/") || session.KnownRole(last) {
		return FeatureOverview
	}
	return last
}

// KnownFeature reports whether any role's manifest carries the feature.
// Unknown ids fall back to the overview panel instead of erroring.
func KnownFeature(featureID string) bool {
	for _, schema := range schemas {
		for _, f := range schema.Features {
			if f.ID == featureID {
				return true
			}
		}
	}
	return false
}

// Allowed is the one authorization table mapping (role, feature) to access.
// It is derived from the schema registry so the sidebar, the route guard and
// the feature router cannot drift apart.
func Allowed(role, featureID string) bool {
	schema, ok := schemas[role]
	if !ok {
		return false
	}
	for _, f := range schema.Features {
		if f.ID == featureID {
			return true
		}
	}
	return false
}
