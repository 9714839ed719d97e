package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/eduadmin/internal/data/repos"
	"github.com/yungbote/eduadmin/internal/data/repos/content"
	"github.com/yungbote/eduadmin/internal/http/response"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/services"
)

// ContentHandler serves one level of the hierarchy. Label is the display
// name used in success messages, e.g. "Class".
type ContentHandler[E content.Row] struct {
	log     *logger.Logger
	service services.ContentService[E]
	label   string
}

func NewContentHandler[E content.Row](log *logger.Logger, service services.ContentService[E], label string) *ContentHandler[E] {
	return &ContentHandler[E]{
		log:     log.With("handler", label+"Handler"),
		service: service,
		label:   label,
	}
}

// GET list with optional ?limit=&name=
func (h *ContentHandler[E]) List(c *gin.Context) {
	q, err := listQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	rows, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, rows, "")
}

// ListByParent reads the parent id from the named path param.
func (h *ContentHandler[E]) ListByParent(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.service.ListByParent(c.Request.Context(), c.Param(param))
		if err != nil {
			h.fail(c, err)
			return
		}
		response.RespondOK(c, http.StatusOK, rows, "")
	}
}

func (h *ContentHandler[E]) Get(c *gin.Context) {
	row, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, row, "")
}

func (h *ContentHandler[E]) Create(c *gin.Context) {
	var draft E
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.fail(c, apierr.BadRequest("Invalid JSON body"))
		return
	}
	created, err := h.service.Create(c.Request.Context(), &draft)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, http.StatusCreated, created, h.label+" created successfully")
}

func (h *ContentHandler[E]) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.fail(c, apierr.BadRequest("Invalid JSON body"))
		return
	}
	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, updated, h.label+" updated successfully")
}

func (h *ContentHandler[E]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, h.label+" deleted successfully")
}

func (h *ContentHandler[E]) fail(c *gin.Context, err error) {
	if response.Status(err) >= http.StatusInternalServerError {
		h.log.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	response.RespondError(c, err)
}

func listQuery(c *gin.Context) (repos.ListQuery, error) {
	q := repos.ListQuery{Name: strings.TrimSpace(c.Query("name"))}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return q, apierr.Validation(map[string]string{"limit": "Limit must be a non-negative integer"})
		}
		q.Limit = n
	}
	return q, nil
}
