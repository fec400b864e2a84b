package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/Kings001-stack/SMS/apps/api/echo"
	"github.com/Kings001-stack/SMS/core/dashboard"
)

func Test_dashboard_redirects(t *testing.T) {
	app := setup(t)

	studentCookie := login(t, app, "student@school.test")
	teacherCookie := login(t, app, "teacher@school.test")

	tests := []struct {
		name         string
		path         string
		cookie       *http.Cookie
		wantCode     int
		wantLocation string
	}{
		{
			name:         "anonymous entry goes to login",
			path:         "/dashboard",
			wantCode:     http.StatusFound,
			wantLocation: "/auth/login",
		},
		{
			name:         "anonymous feature route goes to login",
			path:         "/dashboard/teacher/assignments",
			wantCode:     http.StatusFound,
			wantLocation: "/auth/login",
		},
		{
			name:         "entry dispatches by session role",
			path:         "/dashboard",
			cookie:       teacherCookie,
			wantCode:     http.StatusFound,
			wantLocation: "/dashboard/teacher",
		},
		{
			name:         "foreign dashboard bounces to entry",
			path:         "/dashboard/admin",
			cookie:       teacherCookie,
			wantCode:     http.StatusFound,
			wantLocation: "/dashboard",
		},
		{
			name:         "foreign feature route bounces to entry",
			path:         "/dashboard/teacher/assignments",
			cookie:       studentCookie,
			wantCode:     http.StatusFound,
			wantLocation: "/dashboard",
		},
		{
			name:     "own dashboard renders",
			path:     "/dashboard/teacher",
			cookie:   teacherCookie,
			wantCode: http.StatusOK,
		},
		{
			name:     "unknown role segment is a 404",
			path:     "/dashboard/ghost",
			cookie:   teacherCookie,
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newSessionRequest(http.MethodGet, tt.path, tt.cookie)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d (body: %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantLocation != "" {
				if got := rec.Header().Get("Location"); got != tt.wantLocation {
					t.Errorf("Location = %q, want %q", got, tt.wantLocation)
				}
			}
		})
	}
}

func Test_dashboard_featureAccess(t *testing.T) {
	app := setup(t)

	studentCookie := login(t, app, "student@school.test")
	adminCookie := login(t, app, "admin@school.test")

	t.Run("allowed feature renders", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/dashboard/student/assignments", studentCookie)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d (body: %s)", rec.Code, rec.Body.String())
		}
	})

	t.Run("known but disallowed feature is denied in place", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/dashboard/student/user-management", studentCookie)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("code = %d, want %d", rec.Code, http.StatusForbidden)
		}
		var resp AccessDeniedResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding denial: %v", err)
		}
		if resp.Status != "denied" || resp.Feature != "user-management" {
			t.Errorf("denial = %+v", resp)
		}
	})

	t.Run("unknown feature falls back to overview", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/dashboard/student/settings", studentCookie)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d (body: %s)", rec.Code, rec.Body.String())
		}
		var resp struct {
			Data struct {
				Feature string `json:"feature"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding overview: %v", err)
		}
		if resp.Data.Feature != dashboard.FeatureOverview {
			t.Errorf("feature = %q, want overview", resp.Data.Feature)
		}
	})

	t.Run("admin panel renders for admin", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/dashboard/admin/user-management", adminCookie)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d (body: %s)", rec.Code, rec.Body.String())
		}
	})
}

func Test_dashboard_schema(t *testing.T) {
	app := setup(t)

	teacherCookie := login(t, app, "teacher@school.test")

	t.Run("anonymous", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/dashboard/teacher/schema")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errNotAuthenticated),
		}, rec)
	})

	t.Run("own schema", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/v1/dashboard/teacher/schema", teacherCookie)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d", rec.Code)
		}
		var schema dashboard.Schema
		if err := json.Unmarshal(rec.Body.Bytes(), &schema); err != nil {
			t.Fatalf("decoding schema: %v", err)
		}
		if schema.Role != "teacher" {
			t.Errorf("schema role = %q", schema.Role)
		}
		if len(schema.Features) != 7 {
			t.Errorf("len(features) = %d, want 7", len(schema.Features))
		}
	})

	t.Run("foreign schema is forbidden", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/v1/dashboard/admin/schema", teacherCookie)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("unknown role is a 404", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/v1/dashboard/ghost/schema", teacherCookie)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
