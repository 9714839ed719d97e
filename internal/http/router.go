package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/eduadmin/internal/domain"
	httpH "github.com/yungbote/eduadmin/internal/http/handlers"
	httpMW "github.com/yungbote/eduadmin/internal/http/middleware"
	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	LevelHandler   *httpH.ContentHandler[domain.EducationLevel]
	ClassHandler   *httpH.ContentHandler[domain.Class]
	SubjectHandler *httpH.ContentHandler[domain.Subject]
	ChapterHandler *httpH.ContentHandler[domain.Chapter]
	TopicHandler   *httpH.ContentHandler[domain.Topic]

	UserHandler     *httpH.UserHandler
	ProgressHandler *httpH.ProgressHandler
	ProfileHandler  *httpH.ProfileHandler

	HealthHandler *httpH.HealthHandler
}

const metricsPath = "/metrics"

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS(cfg.CORSOrigins...))
	r.Use(httpMW.Metrics(cfg.Metrics, metricsPath))
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health + metrics
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(metricsPath, gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.POST("/signin", cfg.AuthHandler.SignIn)
		r.POST("/verify_otp", cfg.AuthHandler.VerifyOTP)
		r.POST("/admin/login", cfg.AuthHandler.AdminLogin)
	}

	protected := r.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Education levels
	if h := cfg.LevelHandler; h != nil {
		protected.GET("/level/read_list", h.List)
		protected.POST("/level/create/", h.Create)
		protected.GET("/level/:id", h.Get)
		protected.PUT("/level/:id", h.Update)
		protected.DELETE("/level/:id", h.Delete)
	}

	// Classes
	if h := cfg.ClassHandler; h != nil {
		protected.GET("/classes/read_class_list", h.List)
		protected.GET("/classes/level/:level_id", h.ListByParent("level_id"))
		protected.POST("/classes/create/", h.Create)
		protected.GET("/classes/:id", h.Get)
		protected.PUT("/classes/:id", h.Update)
		protected.DELETE("/classes/:id", h.Delete)
	}

	// Subjects; delete is served with and without the trailing slash.
	if h := cfg.SubjectHandler; h != nil {
		protected.GET("/subjects/read_subjects_list", h.List)
		protected.GET("/subjects/class/:class_id", h.ListByParent("class_id"))
		protected.POST("/subjects/create/", h.Create)
		protected.GET("/subjects/:id", h.Get)
		protected.PUT("/subjects/:id", h.Update)
		protected.DELETE("/subjects/:id", h.Delete)
		protected.DELETE("/subjects/:id/", h.Delete)
	}

	// Chapters
	if h := cfg.ChapterHandler; h != nil {
		protected.GET("/chapter/read_all_chapter", h.List)
		protected.GET("/chapters/chapter/:subject_id", h.ListByParent("subject_id"))
		protected.POST("/chapters/create", h.Create)
		protected.GET("/chapters/:id", h.Get)
		protected.PUT("/chapters/:id", h.Update)
		protected.DELETE("/chapters/:id", h.Delete)
	}

	// Topics
	if h := cfg.TopicHandler; h != nil {
		protected.GET("/topics/read_all_topic", h.List)
		protected.GET("/topics/chapter/:chapter_id", h.ListByParent("chapter_id"))
		protected.POST("/topics/create", h.Create)
		protected.GET("/topics/:id", h.Get)
		protected.PUT("/topics/:id", h.Update)
		protected.DELETE("/topics/:id", h.Delete)
	}

	// Users, progress and profiles (bare JSON)
	if h := cfg.UserHandler; h != nil {
		protected.GET("/users/read_users_users__get", h.ListUsers)
		protected.POST("/users/create_user_users__post", h.CreateUser)
	}
	if h := cfg.ProgressHandler; h != nil {
		protected.GET("/user_progress/read_user_progresses_user_progress__get", h.ListProgress)
		protected.POST("/user_progress/create_user_progress_user_progress__post", h.CreateProgress)
	}
	if h := cfg.ProfileHandler; h != nil {
		protected.GET("/profiles/read_profiles_profiles__get", h.ListProfiles)
		protected.POST("/profiles/create_profile_profiles__post", h.CreateProfile)
	}

	return r
}
