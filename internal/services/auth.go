package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
	"github.com/yungbote/eduadmin/internal/platform/ctxutil"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/platform/validate"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"

	defaultAccessTTL = 12 * time.Hour
)

type AuthService interface {
	RequestOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, otp string) (string, error)
	SuperAdminLogin(ctx context.Context, mobile, otp string) (string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type JWTClaims struct {
	Mobile string `json:"mobile"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	JWTSecret   string
	AccessTTL   time.Duration
	SuperAdmins []string
}

type authService struct {
	log          *logger.Logger
	otps         *OTPStore
	sender       OTPSender
	metrics      *observability.Metrics
	jwtSecretKey string
	accessTTL    time.Duration
	superAdmins  map[string]struct{}
	now          func() time.Time
}

func NewAuthService(
	log *logger.Logger,
	otps *OTPStore,
	sender OTPSender,
	metrics *observability.Metrics,
	cfg AuthConfig,
) (AuthService, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	if otps == nil || sender == nil {
		return nil, fmt.Errorf("otp store and sender required")
	}
	ttl := cfg.AccessTTL
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	admins := make(map[string]struct{}, len(cfg.SuperAdmins))
	for _, m := range cfg.SuperAdmins {
		if m = normalizeMobile(m); m != "" {
			admins[m] = struct{}{}
		}
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		otps:         otps,
		sender:       sender,
		metrics:      metrics,
		jwtSecretKey: cfg.JWTSecret,
		accessTTL:    ttl,
		superAdmins:  admins,
		now:          time.Now,
	}, nil
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) RequestOTP(ctx context.Context, mobile string) error {
	mobile = normalizeMobile(mobile)
	if err := validateMobile(mobile); err != nil {
		return err
	}
	code, err := as.otps.Issue(mobile)
	if err != nil {
		return err
	}
	if err := as.sender.SendOTP(ctx, mobile, code); err != nil {
		as.metrics.IncAuthEvent("otp_send_failed")
		as.log.Warn("OTP delivery failed", "mobile_number", mobile, "error", err)
		return apierr.New(502, "otp_delivery_failed", errors.New("Could not send OTP"))
	}
	as.metrics.IncAuthEvent("otp_sent")
	return nil
}

func (as *authService) VerifyOTP(ctx context.Context, mobile, otp string) (string, error) {
	mobile = normalizeMobile(mobile)
	if err := validateCredentials(mobile, otp); err != nil {
		return "", err
	}
	if !as.otps.Consume(mobile, otp) {
		as.metrics.IncAuthEvent("otp_rejected")
		return "", apierr.Unauthorized("Invalid or expired OTP")
	}
	as.metrics.IncAuthEvent("otp_verified")
	return as.generateAccessToken(mobile, RoleAdmin)
}

func (as *authService) SuperAdminLogin(ctx context.Context, mobile, otp string) (string, error) {
	mobile = normalizeMobile(mobile)
	if err := validateCredentials(mobile, otp); err != nil {
		return "", err
	}
	if _, ok := as.superAdmins[mobile]; !ok {
		as.metrics.IncAuthEvent("super_admin_denied")
		return "", apierr.Forbidden("Not authorized as super admin")
	}
	if !as.otps.Consume(mobile, otp) {
		as.metrics.IncAuthEvent("otp_rejected")
		return "", apierr.Unauthorized("Invalid or expired OTP")
	}
	as.metrics.IncAuthEvent("super_admin_login")
	return as.generateAccessToken(mobile, RoleSuperAdmin)
}

func (as *authService) generateAccessToken(mobile, role string) (string, error) {
	now := as.now()
	claims := JWTClaims{
		Mobile: mobile,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   mobile,
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized("Not authenticated")
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return ctx, apierr.New(401, "unauthorized", fmt.Errorf("invalid token: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid || claims.Mobile == "" {
		return ctx, apierr.Unauthorized("Invalid or expired token")
	}
	return ctxutil.WithAuthData(ctx, &ctxutil.AuthData{Mobile: claims.Mobile, Role: claims.Role}), nil
}

func normalizeMobile(mobile string) string {
	return strings.Join(strings.Fields(mobile), "")
}

type otpRequest struct {
	Mobile string `json:"mobile_number" validate:"notblank,mobile"`
}

type credentials struct {
	Mobile string `json:"mobile_number" validate:"notblank,mobile"`
	OTP    string `json:"otp" validate:"notblank"`
}

func validateMobile(mobile string) error {
	return validate.Struct(otpRequest{Mobile: mobile})
}

func validateCredentials(mobile, otp string) error {
	return validate.Struct(credentials{Mobile: mobile, OTP: otp})
}
