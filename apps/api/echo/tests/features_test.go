package tests

import (
	"encoding/json"
	"net/http"
	"testing"
)

func Test_featureAPI_guards(t *testing.T) {
	app := setup(t)

	studentCookie := login(t, app, "student@school.test")
	teacherCookie := login(t, app, "teacher@school.test")
	adminCookie := login(t, app, "admin@school.test")
	parentCookie := login(t, app, "parent@school.test")
	accountantCookie := login(t, app, "accountant@school.test")

	assignment := []byte(`{"title":"Algebra homework","subject":"Math"}`)
	payment := []byte(`{"student_id":"s1","amount":"5000"}`)

	tests := []httpTest{
		// anonymous
		{name: "anonymous list", method: http.MethodGet, path: "/v1/assignments",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)},
		{name: "anonymous create", method: http.MethodPost, path: "/v1/assignments", body: assignment,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)},
		{name: "anonymous admin", method: http.MethodGet, path: "/v1/admin/users",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)},
		{name: "news-events are public", method: http.MethodGet, path: "/v1/news-events",
			wantCode: http.StatusOK},

		// role gates
		{name: "student reads assignments", method: http.MethodGet, path: "/v1/assignments",
			cookie: studentCookie, wantCode: http.StatusOK},
		{name: "student cannot create assignments", method: http.MethodPost, path: "/v1/assignments",
			body: assignment, cookie: studentCookie,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})},
		{name: "teacher creates assignments", method: http.MethodPost, path: "/v1/assignments",
			body: assignment, cookie: teacherCookie, wantCode: http.StatusOK},
		{name: "teacher cannot reach admin console", method: http.MethodGet, path: "/v1/admin/users",
			cookie: teacherCookie, wantCode: http.StatusForbidden},
		{name: "admin lists users", method: http.MethodGet, path: "/v1/admin/users",
			cookie: adminCookie, wantCode: http.StatusOK},
		{name: "student cannot record payments", method: http.MethodPost, path: "/v1/fees/payment",
			body: payment, cookie: studentCookie, wantCode: http.StatusForbidden},
		{name: "accountant records payments", method: http.MethodPost, path: "/v1/fees/payment",
			body: payment, cookie: accountantCookie, wantCode: http.StatusOK},
		{name: "parent portal requires parent", method: http.MethodGet, path: "/v1/parent/children",
			cookie: studentCookie, wantCode: http.StatusForbidden},
		{name: "parent reads children", method: http.MethodGet, path: "/v1/parent/children",
			cookie: parentCookie, wantCode: http.StatusOK},
		{name: "reports are admin only", method: http.MethodGet, path: "/v1/reports",
			cookie: teacherCookie, wantCode: http.StatusForbidden},
		{name: "student cannot publish news", method: http.MethodPost, path: "/v1/news-events",
			body: []byte(`{"title":"Sports day","type":"event"}`), cookie: studentCookie,
			wantCode: http.StatusForbidden},

		// validation
		{name: "create assignment without a title", method: http.MethodPost, path: "/v1/assignments",
			body: []byte(`{"subject":"Math"}`), cookie: teacherCookie,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": "this field is required"})},
		{name: "update assignment without an id", method: http.MethodPut, path: "/v1/assignments",
			body: assignment, cookie: teacherCookie,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"id": "id is required"})},
		{name: "fee decision without a payment id", method: http.MethodPost, path: "/v1/admin/fees/approve",
			body: []byte(`{}`), cookie: adminCookie,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"payment_id": "this field is required"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newSessionRequest(tt.method, tt.path, tt.cookie, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_featureAPI_relaysBackendEnvelope(t *testing.T) {
	app := setup(t)
	cookie := login(t, app, "teacher@school.test")

	req, rec := newSessionRequest(http.MethodGet, "/v1/assignments?class=jss1", cookie)
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d (body: %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Path string `json:"path"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding relayed envelope: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Data.Path != "/assignments" {
		t.Errorf("backend path = %q, want /assignments", resp.Data.Path)
	}
}

func Test_featureAPI_backendErrorBecomesBadGateway(t *testing.T) {
	app := setup(t)
	cookie := login(t, app, "teacher@school.test")

	req, rec := newSessionRequest(http.MethodGet, "/v1/assignments?fail=1", cookie)
	app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadGateway,
		wantData: marchallObj(t, httpErr{Error: "backend rejected the request"}),
	}, rec)
}

// A session whose token the backend no longer accepts comes back as a 401 so
// the browser can send the user through a fresh login.
func Test_featureAPI_staleBackendToken(t *testing.T) {
	app := setup(t)
	cookie := login(t, app, "stale@school.test")

	req, rec := newSessionRequest(http.MethodGet, "/v1/assignments", cookie)
	app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusUnauthorized,
		wantData: marchallObj(t, httpErr{Error: "session expired"}),
	}, rec)
}
