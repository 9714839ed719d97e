package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/yungbote/eduadmin/internal/api"
)

type authServer struct {
	mu       sync.Mutex
	lastAuth string
	sawAuth  bool
}

func (a *authServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/signin":
			if r.URL.Query().Get("mobile_number") != "+15550100" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"unknown mobile number"}`))
				return
			}
			_, _ = w.Write([]byte(`{"message":"otp sent"}`))
		case "/verify_otp":
			if r.URL.Query().Get("otp") == "111111" {
				_, _ = w.Write([]byte(`{"access_token":"  "}`))
				return
			}
			if r.URL.Query().Get("otp") != "123456" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"tok-user"}`))
		case "/admin/login":
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in["otp"] == "111111" {
				_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
				return
			}
			if in["otp"] != "999999" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"message":"invalid otp"}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"access_token":"tok-admin"}}`))
		case "/level/read_list":
			a.mu.Lock()
			a.lastAuth = r.Header.Get("Authorization")
			_, a.sawAuth = r.Header["Authorization"]
			a.mu.Unlock()
			_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestSession(t *testing.T, store TokenStore) (*Session, *api.Client, *authServer) {
	t.Helper()
	as := &authServer{}
	srv := httptest.NewServer(as.handler())
	t.Cleanup(srv.Close)

	var sess *Session
	client, err := api.New(api.Options{
		BaseURL: srv.URL,
		Tokens:  api.TokenFunc(func() string { return sess.Token() }),
	})
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	sess = New(client, store, nil)
	return sess, client, as
}

func TestLoginThenVerifyStoresToken(t *testing.T) {
	store := NewMemoryStore()
	sess, _, _ := newTestSession(t, store)
	ctx := context.Background()

	if err := sess.Login(ctx, "+15550100"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	st := sess.State()
	if !st.OTPSent || st.Mobile != "+15550100" || st.Loading {
		t.Fatalf("unexpected state after login: %+v", st)
	}

	tok, err := sess.VerifyOTP(ctx, "+15550100", "123456")
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if tok != "tok-user" || sess.Token() != "tok-user" {
		t.Fatalf("token=%q session=%q", tok, sess.Token())
	}
	persisted, err := store.Load(ctx)
	if err != nil || persisted != "tok-user" {
		t.Fatalf("persisted=%q err=%v", persisted, err)
	}
}

func TestLoginFailureUsesServerMessage(t *testing.T) {
	sess, _, _ := newTestSession(t, nil)
	err := sess.Login(context.Background(), "+10000000")
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if got := sess.State(); got.Error != "unknown mobile number" || got.OTPSent || got.Loading {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestVerifyFailureUsesFallback(t *testing.T) {
	sess, _, _ := newTestSession(t, nil)
	if _, err := sess.VerifyOTP(context.Background(), "+15550100", "000000"); err == nil {
		t.Fatalf("expected error")
	}
	if got := sess.State().Error; got != "OTP verification failed" {
		t.Fatalf("error=%q", got)
	}
	if sess.Token() != "" {
		t.Fatalf("token should be empty")
	}
}

func TestMissingAccessTokenKeepsSession(t *testing.T) {
	store := NewMemoryStore()
	sess, _, _ := newTestSession(t, store)
	ctx := context.Background()

	if _, err := sess.VerifyOTP(ctx, "+15550100", "123456"); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	tok, err := sess.VerifyOTP(ctx, "+15550100", "111111")
	if !errors.Is(err, ErrNoAccessToken) || tok != "" {
		t.Fatalf("VerifyOTP: tok=%q err=%v, want ErrNoAccessToken", tok, err)
	}
	var serr *Error
	if !errors.As(err, &serr) || serr.Op != "verify_otp" {
		t.Fatalf("expected *Error for verify_otp, got %v", err)
	}

	if _, err := sess.SuperAdminLogin(ctx, "+15550100", "111111"); !errors.Is(err, ErrNoAccessToken) {
		t.Fatalf("SuperAdminLogin: err=%v, want ErrNoAccessToken", err)
	}

	st := sess.State()
	if st.Token != "tok-user" || st.Loading || st.Error != "Server returned no access token" {
		t.Fatalf("unexpected state: %+v", st)
	}
	persisted, err := store.Load(ctx)
	if err != nil || persisted != "tok-user" {
		t.Fatalf("persisted=%q err=%v", persisted, err)
	}
}

func TestSuperAdminLogin(t *testing.T) {
	store := NewMemoryStore()
	sess, _, _ := newTestSession(t, store)
	ctx := context.Background()

	if _, err := sess.SuperAdminLogin(ctx, "+15550100", "111111"); err == nil {
		t.Fatalf("expected error")
	}
	if got := sess.State().Error; got != "invalid otp" {
		t.Fatalf("error=%q", got)
	}

	tok, err := sess.SuperAdminLogin(ctx, "+15550100", "999999")
	if err != nil {
		t.Fatalf("SuperAdminLogin: %v", err)
	}
	if tok != "tok-admin" || sess.State().Error != "" {
		t.Fatalf("unexpected tok=%q state=%+v", tok, sess.State())
	}
	if persisted, _ := store.Load(ctx); persisted != "tok-admin" {
		t.Fatalf("persisted=%q", persisted)
	}
}

func TestLogoutClearsTokenAndNextRequestIsUnauthenticated(t *testing.T) {
	store := NewMemoryStore()
	sess, client, as := newTestSession(t, store)
	ctx := context.Background()

	if _, err := sess.VerifyOTP(ctx, "+15550100", "123456"); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if err := client.DoEnvelope(ctx, http.MethodGet, "/level/read_list", nil, nil, nil); err != nil {
		t.Fatalf("request: %v", err)
	}
	as.mu.Lock()
	first := as.lastAuth
	as.mu.Unlock()
	if first != "Bearer tok-user" {
		t.Fatalf("authorization=%q", first)
	}

	if err := sess.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if st := sess.State(); st != (State{}) {
		t.Fatalf("state not cleared: %+v", st)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("persisted token not cleared: %v", err)
	}

	if err := client.DoEnvelope(ctx, http.MethodGet, "/level/read_list", nil, nil, nil); err != nil {
		t.Fatalf("request: %v", err)
	}
	as.mu.Lock()
	saw, last := as.sawAuth, as.lastAuth
	as.mu.Unlock()
	if saw {
		t.Fatalf("expected no Authorization header after logout, got %q", last)
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sess := New(nil, store, nil)

	ok, err := sess.Restore(ctx)
	if err != nil || ok {
		t.Fatalf("Restore on empty store: ok=%v err=%v", ok, err)
	}
	_ = store.Save(ctx, "tok-saved")
	ok, err = sess.Restore(ctx)
	if err != nil || !ok {
		t.Fatalf("Restore: ok=%v err=%v", ok, err)
	}
	if sess.Token() != "tok-saved" {
		t.Fatalf("token=%q", sess.Token())
	}
}
