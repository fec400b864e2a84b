package session

import "strings"

// Roles
const (
	RoleStudent    = "student"
	RoleTeacher    = "teacher"
	RoleAdmin      = "admin"
	RoleParent     = "parent"
	RoleStaff      = "staff"
	RoleAccountant = "accountant"
	RoleRegistrar  = "registrar"
)

var AllRoles = []string{
	RoleStudent,
	RoleTeacher,
	RoleAdmin,
	RoleParent,
	RoleStaff,
	RoleAccountant,
	RoleRegistrar,
}

// legacy backend values mapped to their canonical role
var roleAliases = map[string]string{
	"students": RoleStudent,
}

func KnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRole lowercases and trims raw and maps legacy backend spellings
// ("Students", "STUDENT") to their canonical form. ok is false when raw is
// empty or does not resolve to one of the known roles; the caller decides
// what to do with an unrecognized role.
func NormalizeRole(raw string) (role string, ok bool) {
	role = strings.ToLower(strings.TrimSpace(raw))
	if alias, found := roleAliases[role]; found {
		role = alias
	}
	return role, KnownRole(role)
}

// InferRole returns the first candidate that normalizes to a known role.
// The backend is inconsistent about where it puts the role: it may come as
// user.role, a top-level role, or a legacy usertype field.
func InferRole(candidates ...string) (string, bool) {
	for _, raw := range candidates {
		if role, ok := NormalizeRole(raw); ok {
			return role, true
		}
	}
	return "", false
}

// User is the backend user record. Its attributes vary per role; the session
// layer only cares about the role-bearing fields and passes everything else
// through untouched.
type User map[string]interface{}

func (u User) str(key string) string {
	if v, ok := u[key].(string); ok {
		return v
	}
	return ""
}

func (u User) Name() string     { return u.str("name") }
func (u User) Email() string    { return u.str("email") }
func (u User) Role() string     { return u.str("role") }
func (u User) Usertype() string { return u.str("usertype") }

func (u User) Clone() User {
	if u == nil {
		return nil
	}
	clone := make(User, len(u))
	for k, v := range u {
		clone[k] = v
	}
	return clone
}

const (
	// StorageKeyPrefix prefixes every persisted session document.
	StorageKeyPrefix = "auth_session_v1:"

	// SchemaVersion is bumped whenever the persisted Session shape changes;
	// sessions stored with another version are discarded on read.
	SchemaVersion = 1
)

// Session is the authenticated identity for one browser session: the backend
// token, the user record and the normalized role.
type Session struct {
	Version     int    `json:"schema_version"`
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	User        User   `json:"user"`
	Role        string `json:"role"`
}

// BearerToken returns the backend token, accepting either field the backend
// may have used.
func (s *Session) BearerToken() string {
	if s.Token != "" {
		return s.Token
	}
	return s.AccessToken
}

// LoginPayload is the backend login response as received; role inference
// runs over user.role, role, user.usertype and usertype in that order.
type LoginPayload struct {
	Status      string `json:"status,omitempty"`
	Message     string `json:"message,omitempty"`
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	User        User   `json:"user,omitempty"`
	Role        string `json:"role,omitempty"`
	Usertype    string `json:"usertype,omitempty"`
}
