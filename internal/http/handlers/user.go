package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/http/response"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/services"
)

// UserHandler, ProgressHandler and ProfileHandler answer with bare JSON and FastAPI-style
// {"detail": ...} errors.
type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{log: log.With("handler", "UserHandler"), userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		failBare(h.log, c, err)
		return
	}
	response.RespondBare(c, http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var u domain.User
	if err := c.ShouldBindJSON(&u); err != nil {
		failBare(h.log, c, apierr.BadRequest("Invalid JSON body"))
		return
	}
	created, err := h.userService.Create(c.Request.Context(), &u)
	if err != nil {
		failBare(h.log, c, err)
		return
	}
	response.RespondBare(c, http.StatusOK, created)
}

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{log: log.With("handler", "ProgressHandler"), progressService: progressService}
}

// GET with optional ?user_id=
func (h *ProgressHandler) ListProgress(c *gin.Context) {
	rows, err := h.progressService.List(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		failBare(h.log, c, err)
		return
	}
	response.RespondBare(c, http.StatusOK, rows)
}

func (h *ProgressHandler) CreateProgress(c *gin.Context) {
	var p domain.UserProgress
	if err := c.ShouldBindJSON(&p); err != nil {
		failBare(h.log, c, apierr.BadRequest("Invalid JSON body"))
		return
	}
	created, err := h.progressService.Create(c.Request.Context(), &p)
	if err != nil {
		failBare(h.log, c, err)
		return
	}
	response.RespondBare(c, http.StatusOK, created)
}

type ProfileHandler struct {
	log            *logger.Logger
	profileService services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{log: log.With("handler", "ProfileHandler"), profileService: profileService}
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	rows, err := h.profileService.List(c.Request.Context())
	if err != nil {
		failBare(h.log, c, err)
		return
	}
	response.RespondBare(c, http.StatusOK, rows)
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var p domain.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		failBare(h.log, c, apierr.BadRequest("Invalid JSON body"))
		return
	}
	created, err := h.profileService.Create(c.Request.Context(), &p)
	if err != nil {
		failBare(h.log, c, err)
		return
	}
	response.RespondBare(c, http.StatusOK, created)
}

func failBare(log *logger.Logger, c *gin.Context, err error) {
	if response.Status(err) >= http.StatusInternalServerError {
		log.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	response.RespondDetail(c, err)
}
