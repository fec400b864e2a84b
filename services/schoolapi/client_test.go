package schoolapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/Kings001-stack/SMS/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := &core.Config{}
	conf.SchoolAPI.BaseURL = srv.URL
	conf.SchoolAPI.Timeout = 2 * time.Second
	return NewClient(conf, nil)
}

func TestClientLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/login" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			var creds Credentials
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Errorf("decoding credentials: %v", err)
			}
			if creds.Email != "ada@school.test" {
				t.Errorf("email = %q", creds.Email)
			}
			_, _ = w.Write([]byte(`{"status":"success","token":"tok123","user":{"name":"Ada","role":"teacher"}}`))
		})

		payload, err := client.Login(context.Background(), Credentials{Email: "ada@school.test", Password: "pwd"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if payload.Token != "tok123" {
			t.Errorf("token = %q, want tok123", payload.Token)
		}
		if payload.User.Role() != "teacher" {
			t.Errorf("user role = %q, want teacher", payload.User.Role())
		}
	})

	t.Run("error envelope with 200", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"error","message":"Invalid credentials"}`))
		})

		_, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "nope"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Login() error = %v, want *APIError", err)
		}
		if apiErr.Message != "Invalid credentials" {
			t.Errorf("message = %q", apiErr.Message)
		}
	})

	t.Run("non-2xx with message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"status":"error","message":"email is required"}`))
		})

		_, err := client.Login(context.Background(), Credentials{})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Login() error = %v, want *APIError", err)
		}
		if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Message != "email is required" {
			t.Errorf("got (%d, %q)", apiErr.StatusCode, apiErr.Message)
		}
	})
}

func TestClientGet(t *testing.T) {
	t.Run("passes token and query", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
				t.Errorf("Authorization = %q", got)
			}
			if got := r.URL.Query().Get("class"); got != "jss1" {
				t.Errorf("class = %q", got)
			}
			_, _ = w.Write([]byte(`{"status":"success","data":[{"id":1}]}`))
		})

		resp, err := client.Get(context.Background(), "tok123", "/assignments", map[string][]string{"class": {"jss1"}})
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if resp.Status != "success" {
			t.Errorf("status = %q", resp.Status)
		}
		if string(resp.Data) != `[{"id":1}]` {
			t.Errorf("data = %s", resp.Data)
		}
	})

	t.Run("401 maps to ErrUnauthorized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.Get(context.Background(), "stale", "/assignments", nil)
		if errors.Cause(err) != ErrUnauthorized {
			t.Errorf("Get() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("500 without envelope uses status text", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		})

		_, err := client.Get(context.Background(), "tok", "/assignments", nil)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Get() error = %v, want *APIError", err)
		}
		if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "Internal Server Error" {
			t.Errorf("got (%d, %q)", apiErr.StatusCode, apiErr.Message)
		}
	})

	t.Run("cancelled context aborts the call", func(t *testing.T) {
		started := make(chan struct{})
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			close(started)
			<-r.Context().Done()
		})

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-started
			cancel()
		}()

		_, err := client.Get(ctx, "tok", "/assignments", nil)
		if err == nil {
			t.Fatal("Get() with cancelled context returned no error")
		}
	})
}

func TestClientLogout(t *testing.T) {
	var gotToken string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotToken = body["token"]
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})

	if err := client.Logout(context.Background(), "tok123"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if gotToken != "tok123" {
		t.Errorf("token in body = %q", gotToken)
	}
}
