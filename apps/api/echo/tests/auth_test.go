package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/Kings001-stack/SMS/apps/api/echo"
	"github.com/Kings001-stack/SMS/core/session"
)

func Test_login(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "empty body",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name:     "malformed email",
			body:     []byte(`{"email":"nope","password":"pwd"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "wrong credentials",
			body:     []byte(`{"email":"teacher@school.test","password":"wrong"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Invalid credentials"}),
		},
		{
			name:     "ok",
			body:     []byte(`{"email":"teacher@school.test","password":"pwd"}`),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_login_setsSessionCookie(t *testing.T) {
	app := setup(t)

	cookie := login(t, app, "teacher@school.test")
	if !cookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	req, rec := newSessionRequest(http.MethodGet, "/v1/auth/session", cookie)
	app.ServeHTTP(rec, req)

	var resp SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding session response: %v", err)
	}
	if !resp.Authenticated {
		t.Error("session not authenticated after login")
	}
	if resp.Role != session.RoleTeacher {
		t.Errorf("role = %q, want teacher", resp.Role)
	}
	if resp.User.Email() != "teacher@school.test" {
		t.Errorf("user email = %q", resp.User.Email())
	}
}

// The backend omits the role entirely; the session layer falls back to the
// student role rather than leaving the user in limbo.
func Test_login_missingRoleDefaultsToStudent(t *testing.T) {
	app := setup(t)

	cookie := login(t, app, "norole@school.test")

	req, rec := newSessionRequest(http.MethodGet, "/v1/auth/session", cookie)
	app.ServeHTTP(rec, req)

	var resp SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding session response: %v", err)
	}
	if resp.Role != session.RoleStudent {
		t.Errorf("role = %q, want student", resp.Role)
	}
}

func Test_session_anonymous(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/auth/session")
	app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, SessionResponse{Authenticated: false}),
	}, rec)
}

func Test_session_tamperedCookieIsAnonymous(t *testing.T) {
	app := setup(t)

	cookie := login(t, app, "teacher@school.test")
	cookie.Value += "tampered"

	req, rec := newSessionRequest(http.MethodGet, "/v1/auth/session", cookie)
	app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, SessionResponse{Authenticated: false}),
	}, rec)
}

func Test_logout(t *testing.T) {
	app := setup(t)

	cookie := login(t, app, "teacher@school.test")

	req, rec := newSessionRequest(http.MethodPost, "/v1/auth/logout", cookie)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout code = %d, want %d", rec.Code, http.StatusNoContent)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge >= 0 {
			t.Error("logout did not expire the session cookie")
		}
	}

	// the old cookie must be dead server-side, not just in the browser
	req, rec = newSessionRequest(http.MethodGet, "/v1/auth/session", cookie)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, SessionResponse{Authenticated: false}),
	}, rec)
}

func Test_logout_anonymousIsFine(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodPost, "/v1/auth/logout")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("logout code = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
