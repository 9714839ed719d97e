package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/eduadmin/internal/platform/apierr"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	return rec, body
}

func TestRespondErrorValidation(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		RespondError(c, apierr.Validation(map[string]string{"name": "Name is required"}))
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusUnprocessableEntity)
	}
	if body["success"] != false {
		t.Fatalf("success: expected false, got %v", body["success"])
	}
	fields, _ := body["errors"].(map[string]any)
	if fields["name"] != "Name is required" {
		t.Fatalf("errors: unexpected %v", body["errors"])
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		RespondError(c, errors.New("pq: connection refused"))
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got=%d", rec.Code)
	}
	if body["message"] != internalMessage {
		t.Fatalf("message: got %v", body["message"])
	}
}

func TestRespondDetail(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		RespondDetail(c, apierr.Conflict("Username already taken"))
	})
	if rec.Code != http.StatusConflict || body["detail"] != "Username already taken" {
		t.Fatalf("unexpected response: %d %v", rec.Code, body)
	}
}

func TestRespondErrorJoinsFieldMessages(t *testing.T) {
	_, body := serve(t, func(c *gin.Context) {
		RespondError(c, apierr.Validation(map[string]string{
			"name":     "Name is required",
			"level_id": "Education level is required",
		}))
	})
	if body["message"] != "Education level is required; Name is required" {
		t.Fatalf("message: got %v", body["message"])
	}
}
