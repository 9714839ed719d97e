package response

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/eduadmin/internal/platform/apierr"
)

// Envelope is the body of every non-bare endpoint.
type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Detail is the error body of bare endpoints.
type Detail struct {
	Detail string `json:"detail"`
}

const internalMessage = "Internal server error"

func RespondOK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: true, Message: message})
}

func RespondBare(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// RespondError writes an apierr as an envelope. Anything else is a 500
// whose text is not exposed.
func RespondError(c *gin.Context, err error) {
	status, msg, fields := classify(err)
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: msg, Errors: fields})
}

func RespondDetail(c *gin.Context, err error) {
	status, msg, _ := classify(err)
	c.AbortWithStatusJSON(status, Detail{Detail: msg})
}

// Status is the code RespondError would use for err.
func Status(err error) int {
	status, _, _ := classify(err)
	return status
}

func classify(err error) (int, string, map[string]string) {
	var e *apierr.Error
	if errors.As(err, &e) && e.Status != 0 {
		msg := e.Error()
		if e.Status == http.StatusUnprocessableEntity && len(e.Fields) > 0 {
			msg = joinFields(e.Fields)
		}
		return e.Status, msg, e.Fields
	}
	return http.StatusInternalServerError, internalMessage, nil
}

// joinFields gives message-only clients something readable.
func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	return strings.Join(msgs, "; ")
}
