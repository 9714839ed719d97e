package app

import (
	"fmt"

	"github.com/yungbote/eduadmin/internal/config"
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Level    services.ContentService[domain.EducationLevel]
	Class    services.ContentService[domain.Class]
	Subject  services.ContentService[domain.Subject]
	Chapter  services.ContentService[domain.Chapter]
	Topic    services.ContentService[domain.Topic]
	User     services.UserService
	Progress services.ProgressService
	Profile  services.ProfileService
}

func wireServices(log *logger.Logger, cfg *config.Config, r Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	var sender services.OTPSender
	if clients.Twilio != nil {
		sender = services.NewSMSOTPSender(log, clients.Twilio)
	} else {
		log.Warn("OTP SMS disabled; codes will be logged")
		sender = services.NewLogOTPSender(log)
	}
	otp := cfg.DevAPI.OTP
	auth, err := services.NewAuthService(log,
		services.NewOTPStore(otp.Length, otp.TTL.Duration, otp.Fixed),
		sender,
		metrics,
		services.AuthConfig{
			JWTSecret:   cfg.DevAPI.JWTSecret,
			AccessTTL:   cfg.DevAPI.TokenTTL.Duration,
			SuperAdmins: cfg.DevAPI.SuperAdmins,
		},
	)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	return Services{
		Auth:     auth,
		Level:    services.NewEducationLevelService(log, metrics, r.Level, r.Class),
		Class:    services.NewClassService(log, metrics, r.Class, r.Level, r.Subject),
		Subject:  services.NewSubjectService(log, metrics, r.Subject, r.Class, r.Chapter),
		Chapter:  services.NewChapterService(log, metrics, r.Chapter, r.Subject, r.Topic),
		Topic:    services.NewTopicService(log, metrics, r.Topic, r.Chapter),
		User:     services.NewUserService(log, r.User, metrics),
		Progress: services.NewProgressService(log, r.UserProgress, r.User, r.Chapter, r.Topic, metrics),
		Profile:  services.NewProfileService(log, r.Profile, r.User, metrics),
	}, nil
}
