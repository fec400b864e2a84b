package echoapi

import (
	"crypto/sha256"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Kings001-stack/SMS/core"
	"github.com/Kings001-stack/SMS/core/session"
	"github.com/Kings001-stack/SMS/services/schoolapi"
)

const (
	contextSessionKey = "session"
	contextSIDKey     = "sessionID"
)

// cookieCodec signs the session-id cookie. The id itself is an opaque uuid;
// the signature only prevents tampering, the session payload never leaves
// the server-side store.
type cookieCodec struct {
	sc     *securecookie.SecureCookie
	name   string
	maxAge int
	secure bool
}

func newCookieCodec(conf *core.Config) *cookieCodec {
	hashKey := sha256.Sum256([]byte(conf.SecretKey))
	return &cookieCodec{
		sc:     securecookie.New(hashKey[:], nil),
		name:   conf.Session.CookieName,
		maxAge: int(conf.Session.TTL.Seconds()),
		secure: !conf.Debug,
	}
}

func (c *cookieCodec) write(ctx echo.Context, sid string) error {
	encoded, err := c.sc.Encode(c.name, sid)
	if err != nil {
		return errors.Wrap(err, "encoding session cookie")
	}
	ctx.SetCookie(&http.Cookie{
		Name:     c.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   c.maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *cookieCodec) read(ctx echo.Context) (string, bool) {
	cookie, err := ctx.Cookie(c.name)
	if err != nil {
		return "", false
	}
	var sid string
	if err := c.sc.Decode(c.name, cookie.Value, &sid); err != nil {
		return "", false
	}
	return sid, true
}

func (c *cookieCodec) clear(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionMiddleware resolves the signed cookie and loads the session into
// the echo context. It never fails a request; downstream guards decide what
// an absent session means.
func sessionMiddleware(svc *session.Service, cookies *cookieCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if sid, ok := cookies.read(ctx); ok {
				ctx.Set(contextSIDKey, sid)
				if sess, found := svc.Get(ctx.Request().Context(), sid); found {
					ctx.Set(contextSessionKey, *sess)
				}
			}
			return next(ctx)
		}
	}
}

func getContextSession(ctx echo.Context) (session.Session, bool) {
	sess, ok := ctx.Get(contextSessionKey).(session.Session)
	return sess, ok
}

func getContextSID(ctx echo.Context) string {
	sid, _ := ctx.Get(contextSIDKey).(string)
	return sid
}

type authAPI struct {
	svc      *session.Service
	api      *schoolapi.Client
	cookies  *cookieCodec
	validate *validator.Validate
	log      core.Logger
}

func registerAuthAPI(app *echo.Echo, g *echo.Group, opts *Options, cookies *cookieCodec) {
	api := &authAPI{
		svc:      opts.SessionSvc,
		api:      opts.API,
		cookies:  cookies,
		validate: opts.Validate,
		log:      opts.Logger,
	}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)
	ag.GET("/session", api.session)
}

// Handlers

func (api *authAPI) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	payload, err := api.api.Login(ctx.Request().Context(), schoolapi.Credentials{
		Email:    data.Email,
		Password: data.Password,
	})
	if err != nil {
		var apiErr *schoolapi.APIError
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = "invalid credentials"
			}
			return core.NewValidationError(errors.New(msg))
		}
		return errors.Wrap(err, "authenticating against school api")
	}

	// one fresh session id per login; the previous session (if any) is dropped
	if sid := getContextSID(ctx); sid != "" {
		api.svc.Logout(ctx.Request().Context(), sid)
	}
	sid := uuid.NewString()
	sess := api.svc.Login(ctx.Request().Context(), sid, payload)
	if err := api.cookies.write(ctx, sid); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		Role:          sess.Role,
		User:          sess.User,
	})
}

func (api *authAPI) logout(ctx echo.Context) error {
	if sid := getContextSID(ctx); sid != "" {
		api.svc.Logout(ctx.Request().Context(), sid)
	}
	api.cookies.clear(ctx)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *authAPI) session(ctx echo.Context) error {
	sess, ok := getContextSession(ctx)
	if !ok {
		return ctx.JSON(http.StatusOK, SessionResponse{Authenticated: false})
	}
	return ctx.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		Role:          sess.Role,
		User:          sess.User,
	})
}
