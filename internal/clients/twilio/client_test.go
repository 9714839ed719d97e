package twilio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/eduadmin/internal/platform/logger"
)

func TestSendSMS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Accounts/AC123/Messages.json" {
			t.Errorf("path=%s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			t.Errorf("basic auth=%q %q %v", user, pass, ok)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if r.PostForm.Get("To") != "+15550100" || r.PostForm.Get("From") != "+15550199" {
			t.Errorf("form=%v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued","to":"+15550100"}`))
	}))
	defer srv.Close()

	c, err := New(logger.Nop(), Config{
		AccountSID:  "AC123",
		AuthToken:   "secret",
		BaseURL:     srv.URL,
		DefaultFrom: "+15550199",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	msg, err := c.SendSMS(context.Background(), "+15550100", "Your code is 123456")
	if err != nil {
		t.Fatalf("SendSMS: %v", err)
	}
	if msg.SID != "SM1" || msg.Status != "queued" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestSendSMS_RetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"code":20503,"message":"unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"sid":"SM2"}`))
	}))
	defer srv.Close()

	c, err := New(logger.Nop(), Config{
		AccountSID:     "AC1",
		AuthToken:      "x",
		BaseURL:        srv.URL,
		DefaultFrom:    "+1",
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	msg, err := c.SendSMS(context.Background(), "+2", "hi")
	if err != nil {
		t.Fatalf("SendSMS: %v", err)
	}
	if msg.SID != "SM2" || atomic.LoadInt32(&hits) != 2 {
		t.Fatalf("msg=%+v hits=%d", msg, hits)
	}
}

func TestSendSMS_ClientErrorNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"invalid To number"}`))
	}))
	defer srv.Close()

	c, _ := New(logger.Nop(), Config{AccountSID: "AC1", AuthToken: "x", BaseURL: srv.URL, DefaultFrom: "+1", MaxRetries: 3})
	_, err := c.SendSMS(context.Background(), "bad", "hi")
	var herr *HTTPError
	if !errors.As(err, &herr) || herr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected HTTPError 400, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("hits=%d", hits)
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := New(logger.Nop(), Config{}); err == nil {
		t.Fatalf("expected missing account sid error")
	}
	if _, err := New(logger.Nop(), Config{AccountSID: "AC1"}); err == nil {
		t.Fatalf("expected missing auth error")
	}
	if _, err := New(logger.Nop(), Config{AccountSID: "AC1", APIKey: "k"}); err == nil {
		t.Fatalf("expected missing key secret error")
	}
}
