package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/eduadmin/internal/platform/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		requestID string
		wantEcho  bool
	}{
		{name: "echoes caller id", requestID: "req-123", wantEcho: true},
		{name: "mints when absent", requestID: ""},
		{name: "drops oversized id", requestID: strings.Repeat("a", maxCallerIDLen+1)},
		{name: "drops id with spaces", requestID: "a b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen *ctxutil.TraceData
			r := gin.New()
			r.Use(AttachTraceContext())
			r.GET("/x", func(c *gin.Context) {
				seen = ctxutil.GetTraceData(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.requestID != "" {
				req.Header.Set(headerRequestID, tc.requestID)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if seen == nil {
				t.Fatalf("trace data not attached")
			}
			got := rec.Header().Get(headerRequestID)
			if got == "" || got != seen.RequestID {
				t.Fatalf("request id header %q does not match context %q", got, seen.RequestID)
			}
			if tc.wantEcho && got != tc.requestID {
				t.Fatalf("request id: got=%q want=%q", got, tc.requestID)
			}
			if !tc.wantEcho && got == tc.requestID {
				t.Fatalf("request id %q should have been replaced", got)
			}
			if rec.Header().Get(headerTraceID) == "" {
				t.Fatalf("missing trace id header")
			}
		})
	}
}
