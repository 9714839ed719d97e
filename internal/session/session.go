package session

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/yungbote/eduadmin/internal/api"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

const (
	msgLoginFailed      = "Login failed"
	msgVerifyFailed     = "OTP verification failed"
	msgSuperAdminFailed = "Super Admin login failed"
	msgNoToken          = "Server returned no access token"
)

// ErrNoAccessToken is wrapped by the *Error returned when a login answers 2xx
// without an access token.
var ErrNoAccessToken = errors.New("login response carried no access token")

// Doer is the slice of *api.Client the session needs.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// State is a copy of the session fields.
type State struct {
	Mobile  string
	Token   string
	OTPSent bool
	Loading bool
	Error   string
}

// Session holds the phone/OTP login result. It implements api.TokenProvider
// so the API client can sign requests with whatever token is current.
type Session struct {
	client Doer
	store  TokenStore
	log    *logger.Logger

	mu      sync.Mutex
	st      State
	pending int
}

func New(client Doer, store TokenStore, log *logger.Logger) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Session{client: client, store: store, log: log.With("component", "Session")}
}

var _ api.TokenProvider = (*Session)(nil)

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Token
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.st
	st.Loading = s.pending > 0
	return st
}

func (s *Session) begin() {
	s.mu.Lock()
	s.pending++
	s.st.Error = ""
	s.mu.Unlock()
}

func (s *Session) finish(apply func(st *State)) {
	s.mu.Lock()
	s.pending--
	apply(&s.st)
	s.mu.Unlock()
}

func (s *Session) fail(op string, err error, fallback string) error {
	msg := api.ServerMessage(err)
	if msg == "" {
		msg = fallback
	}
	s.finish(func(st *State) { st.Error = msg })
	s.log.Warn("auth request failed", "op", op, "message", msg, "error", err)
	return &Error{Op: op, Message: msg, Err: err}
}

// Login asks the API to send an OTP to mobile.
func (s *Session) Login(ctx context.Context, mobile string) error {
	mobile = strings.TrimSpace(mobile)
	s.begin()
	q := url.Values{"mobile_number": {mobile}}
	if err := s.client.Do(ctx, http.MethodPost, "/signin", q, nil, nil); err != nil {
		return s.fail("login", err, msgLoginFailed)
	}
	s.finish(func(st *State) {
		st.OTPSent = true
		st.Mobile = mobile
	})
	s.log.Info("OTP requested", "mobile", mobile)
	return nil
}

// VerifyOTP exchanges mobile and otp for a bearer token.
func (s *Session) VerifyOTP(ctx context.Context, mobile, otp string) (string, error) {
	s.begin()
	q := url.Values{
		"mobile_number": {strings.TrimSpace(mobile)},
		"otp":           {strings.TrimSpace(otp)},
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := s.client.Do(ctx, http.MethodPost, "/verify_otp", q, nil, &out); err != nil {
		return "", s.fail("verify_otp", err, msgVerifyFailed)
	}
	if err := s.adopt(ctx, "verify_otp", out.AccessToken); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// SuperAdminLogin is VerifyOTP through the super-admin endpoint.
func (s *Session) SuperAdminLogin(ctx context.Context, mobile, otp string) (string, error) {
	s.begin()
	body := map[string]string{
		"mobile_number": strings.TrimSpace(mobile),
		"otp":           strings.TrimSpace(otp),
	}
	var out struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := s.client.Do(ctx, http.MethodPost, "/admin/login", nil, body, &out); err != nil {
		return "", s.fail("super_admin_login", err, msgSuperAdminFailed)
	}
	if err := s.adopt(ctx, "super_admin_login", out.Data.AccessToken); err != nil {
		return "", err
	}
	return out.Data.AccessToken, nil
}

// adopt stores tok in memory and persists it. An empty tok keeps the
// current token and fails with ErrNoAccessToken. A persistence failure is
// logged; the in-memory session stays valid.
func (s *Session) adopt(ctx context.Context, op, tok string) error {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		s.finish(func(st *State) { st.Error = msgNoToken })
		s.log.Warn("login response carried no access token", "op", op)
		return &Error{Op: op, Message: msgNoToken, Err: ErrNoAccessToken}
	}
	s.finish(func(st *State) { st.Token = tok })
	if err := s.store.Save(ctx, tok); err != nil {
		s.log.Warn("persist token failed", "error", err)
	}
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.st = State{}
	s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn("clear persisted token failed", "error", err)
		return err
	}
	return nil
}

// Restore loads a persisted token into memory. It reports false when
// nothing was stored.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	tok, err := s.store.Load(ctx)
	if errors.Is(err, ErrNoToken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	s.st.Token = tok
	s.mu.Unlock()
	return true, nil
}

// Error is returned by the login operations.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Op + ": " + e.Message }

func (e *Error) Unwrap() error { return e.Err }
