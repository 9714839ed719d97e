package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/eduadmin/internal/config"
	"github.com/yungbote/eduadmin/internal/domain"
	httpserver "github.com/yungbote/eduadmin/internal/http"
	httpH "github.com/yungbote/eduadmin/internal/http/handlers"
	httpMW "github.com/yungbote/eduadmin/internal/http/middleware"
	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Level    *httpH.ContentHandler[domain.EducationLevel]
	Class    *httpH.ContentHandler[domain.Class]
	Subject  *httpH.ContentHandler[domain.Subject]
	Chapter  *httpH.ContentHandler[domain.Chapter]
	Topic    *httpH.ContentHandler[domain.Topic]
	User     *httpH.UserHandler
	Progress *httpH.ProgressHandler
	Profile  *httpH.ProfileHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, s Services) Handlers {
	log.Info("Wiring handlers...")
	var pinger httpH.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	return Handlers{
		Health:   httpH.NewHealthHandler(pinger),
		Auth:     httpH.NewAuthHandler(log, s.Auth),
		Level:    httpH.NewContentHandler(log, s.Level, "Education level"),
		Class:    httpH.NewContentHandler(log, s.Class, "Class"),
		Subject:  httpH.NewContentHandler(log, s.Subject, "Subject"),
		Chapter:  httpH.NewContentHandler(log, s.Chapter, "Chapter"),
		Topic:    httpH.NewContentHandler(log, s.Topic, "Topic"),
		User:     httpH.NewUserHandler(log, s.User),
		Progress: httpH.NewProgressHandler(log, s.Progress),
		Profile:  httpH.NewProfileHandler(log, s.Profile),
	}
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, s.Auth),
	}
}

func wireServer(log *logger.Logger, cfg *config.Config, metrics *observability.Metrics, h Handlers, mw Middleware) *httpserver.Server {
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		ServiceName:     cfg.OTel.ServiceName + "-devapi",
		CORSOrigins:     cfg.DevAPI.CORSOrigins,
		AuthHandler:     h.Auth,
		AuthMiddleware:  mw.Auth,
		LevelHandler:    h.Level,
		ClassHandler:    h.Class,
		SubjectHandler:  h.Subject,
		ChapterHandler:  h.Chapter,
		TopicHandler:    h.Topic,
		UserHandler:     h.User,
		ProgressHandler: h.Progress,
		ProfileHandler:  h.Profile,
		HealthHandler:   h.Health,
	})
}
