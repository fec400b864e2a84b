package session

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Kings001-stack/SMS/core"
)

// BackendClient is the slice of the school API the session layer needs.
type BackendClient interface {
	Logout(ctx context.Context, token string) error
}

// Service is the single source of truth for "am I logged in and as whom".
// It bridges the Store to the HTTP layer and owns role inference.
type Service struct {
	store         Store
	backend       BackendClient
	logoutTimeout time.Duration
	log           core.Logger
}

func NewService(store Store, backend BackendClient, logoutTimeout time.Duration, logger core.Logger) *Service {
	return &Service{
		store:         store,
		backend:       backend,
		logoutTimeout: logoutTimeout,
		log:           logger,
	}
}

// Login turns a backend login response into a persisted session. The role is
// inferred from the first populated role-bearing field and written both on
// the user record and at the top level since consumers read either. An
// absent or unrecognized role falls back to the student role; that fallback
// is logged since it usually means the backend broke its contract.
func (svc *Service) Login(ctx context.Context, sid string, payload LoginPayload) Session {
	usr := payload.User.Clone()
	if usr == nil {
		usr = make(User)
	}

	role, ok := InferRole(usr.Role(), payload.Role, usr.Usertype(), payload.Usertype)
	if !ok {
		svc.log.Warn("session: no recognizable role in login payload, defaulting to student",
			map[string]interface{}{"email": usr.Email()})
		role = RoleStudent
	}
	usr["role"] = role

	sess := Session{
		Version:     SchemaVersion,
		Token:       payload.Token,
		AccessToken: payload.AccessToken,
		User:        usr,
		Role:        role,
	}
	if err := svc.store.Save(ctx, sid, sess); err != nil {
		// a failed write degrades to an unauthenticated next request; the
		// caller still gets a usable session for this response
		svc.log.Error("session: saving session", errors.Wrap(err, "saving session"))
	}
	return sess
}

// Logout clears the session locally and makes a best-effort logout call to
// the backend. The network call gets its own deadline and its failure never
// prevents the local logout.
func (svc *Service) Logout(ctx context.Context, sid string) {
	if sess, ok := svc.Get(ctx, sid); ok {
		if token := sess.BearerToken(); token != "" && svc.backend != nil {
			callCtx, cancel := context.WithTimeout(ctx, svc.logoutTimeout)
			if err := svc.backend.Logout(callCtx, token); err != nil {
				svc.log.Warn("session: backend logout call failed", errors.Wrap(err, "backend logout"))
			}
			cancel()
		}
	}
	if err := svc.store.Clear(ctx, sid); err != nil {
		svc.log.Error("session: clearing session", errors.Wrap(err, "clearing session"))
	}
}

// Get reads the session for sid. Storage failures and corrupt or
// outdated-schema payloads all degrade to "no session"; callers never see an
// error.
func (svc *Service) Get(ctx context.Context, sid string) (*Session, bool) {
	if sid == "" {
		return nil, false
	}
	sess, err := svc.store.Read(ctx, sid)
	if err != nil {
		svc.log.Error("session: reading session", errors.Wrap(err, "reading session"))
		return nil, false
	}
	if sess == nil {
		return nil, false
	}
	if sess.Version != SchemaVersion {
		// session written by an older deployment; discard rather than guess
		svc.log.Warn("session: discarding session with unknown schema version",
			map[string]interface{}{"version": sess.Version})
		if err := svc.store.Clear(ctx, sid); err != nil {
			svc.log.Error("session: clearing outdated session", errors.Wrap(err, "clearing outdated session"))
		}
		return nil, false
	}
	return sess, true
}

func (svc *Service) IsAuthenticated(ctx context.Context, sid string) bool {
	_, ok := svc.Get(ctx, sid)
	return ok
}

// Watch exposes the store's change feed so that a login or logout performed
// through another Service instance sharing the store is observed here
// without polling. Stores without change support return ErrWatchUnsupported.
func (svc *Service) Watch(ctx context.Context) (<-chan Event, error) {
	if w, ok := svc.store.(Watcher); ok {
		return w.Watch(ctx)
	}
	return nil, ErrWatchUnsupported
}
