package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/eduadmin/internal/clients/twilio"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

const (
	defaultOTPLength = 6
	defaultOTPTTL    = 5 * time.Minute
)

// OTPStore keeps at most one pending code per mobile number. Codes are
// single use.
type OTPStore struct {
	mu     sync.Mutex
	codes  map[string]otpEntry
	length int
	ttl    time.Duration
	fixed  string
	now    func() time.Time
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

func NewOTPStore(length int, ttl time.Duration, fixed string) *OTPStore {
	if length <= 0 {
		length = defaultOTPLength
	}
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &OTPStore{
		codes:  map[string]otpEntry{},
		length: length,
		ttl:    ttl,
		fixed:  strings.TrimSpace(fixed),
		now:    time.Now,
	}
}

// Issue replaces any pending code for mobile.
func (s *OTPStore) Issue(mobile string) (string, error) {
	code := s.fixed
	if code == "" {
		var err error
		code, err = randomDigits(s.length)
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.codes[mobile] = otpEntry{code: code, expiresAt: s.now().Add(s.ttl)}
	return code, nil
}

// Consume reports whether code matches the pending code for mobile and
// removes it on success.
func (s *OTPStore) Consume(mobile, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[mobile]
	if !ok {
		return false
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.codes, mobile)
		return false
	}
	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(strings.TrimSpace(code))) != 1 {
		return false
	}
	delete(s.codes, mobile)
	return true
}

func (s *OTPStore) sweepLocked() {
	now := s.now()
	for k, v := range s.codes {
		if !now.Before(v.expiresAt) {
			delete(s.codes, k)
		}
	}
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}

// OTPSender delivers a code to a phone.
type OTPSender interface {
	SendOTP(ctx context.Context, mobile, code string) error
}

type logOTPSender struct {
	log *logger.Logger
}

// NewLogOTPSender writes codes to the log instead of sending them.
// Local development only.
func NewLogOTPSender(log *logger.Logger) OTPSender {
	return &logOTPSender{log: log.With("sender", "log")}
}

func (s *logOTPSender) SendOTP(ctx context.Context, mobile, code string) error {
	s.log.Info("Development OTP issued", "mobile_number", mobile, "code", code)
	return nil
}

type smsOTPSender struct {
	client twilio.Client
	log    *logger.Logger
}

func NewSMSOTPSender(log *logger.Logger, client twilio.Client) OTPSender {
	return &smsOTPSender{client: client, log: log.With("sender", "twilio")}
}

func (s *smsOTPSender) SendOTP(ctx context.Context, mobile, code string) error {
	msg, err := s.client.SendSMS(ctx, mobile, fmt.Sprintf("Your verification code is %s", code))
	if err != nil {
		return fmt.Errorf("send otp sms: %w", err)
	}
	if msg != nil {
		s.log.Debug("OTP SMS queued", "sid", msg.SID, "status", msg.Status)
	}
	return nil
}
