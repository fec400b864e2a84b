package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/Kings001-stack/SMS/apps/api/echo"
	"github.com/Kings001-stack/SMS/core"
	"github.com/Kings001-stack/SMS/core/session"
	logsvc "github.com/Kings001-stack/SMS/services/logger"
	"github.com/Kings001-stack/SMS/services/schoolapi"
	inmemstore "github.com/Kings001-stack/SMS/storage/session/inmem"
)

const cookieName = "sms_session"

var errNotAuthenticated = httpErr{Error: "user not authenticated"}

// newBackend serves a minimal school REST API. The role comes from the email
// local part so each test can mint whatever identity it needs; the password
// is always "pwd".
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var creds schoolapi.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "pwd" {
			_, _ = w.Write([]byte(`{"status":"error","message":"Invalid credentials"}`))
			return
		}
		role := strings.SplitN(creds.Email, "@", 2)[0]
		payload := session.LoginPayload{
			Status: "success",
			Token:  "tok-" + role,
			User:   session.User{"name": "Test User", "email": creds.Email},
		}
		if role != "norole" {
			payload.User["role"] = role
		}
		_ = json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Header.Get("Authorization") == "Bearer tok-stale":
			w.WriteHeader(http.StatusUnauthorized)
		case r.URL.Query().Get("fail") == "1":
			_, _ = w.Write([]byte(`{"status":"error","message":"backend rejected the request"}`))
		default:
			_, _ = fmt.Fprintf(w, `{"status":"success","data":{"path":%q}}`, r.URL.Path)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setup(t *testing.T) Server {
	t.Helper()

	backend := newBackend(t)

	conf := new(core.Config)
	conf.Env = "TEST"
	conf.TestMode = true
	conf.SecretKey = "secret"
	conf.Session.CookieName = cookieName
	conf.Session.TTL = time.Hour
	conf.SchoolAPI.BaseURL = backend.URL
	conf.SchoolAPI.Timeout = 2 * time.Second
	conf.SchoolAPI.LogoutTimeout = time.Second

	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
	client := schoolapi.NewClient(conf, logger)
	svc := session.NewService(inmemstore.New(), client, conf.SchoolAPI.LogoutTimeout, logger)
	validate, translator := core.NewValidator()

	return NewServer(
		&Options{
			DisableReqLogs: true,
			Conf:           conf,
			Logger:         logger,
			SessionSvc:     svc,
			API:            client,
			Validate:       validate,
			Translator:     translator,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	cookie   *http.Cookie
	wantCode int
	wantData []byte
}

func newSessionRequest(method, path string, cookie *http.Cookie, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newSessionRequest(method, path, nil, data...)
}

// login authenticates through the API and returns the session cookie.
func login(t *testing.T, app Server, email string) *http.Cookie {
	t.Helper()

	body := []byte(fmt.Sprintf(`{"email":%q,"password":"pwd"}`, email))
	req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: code = %d, body = %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
