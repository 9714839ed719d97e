package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/level/read_list", "200", 20*time.Millisecond)
	m.ObserveAPI("GET", "/level/read_list", "200", 3*time.Second)
	m.IncAuthEvent("otp_sent")
	m.IncMutation("class", "create")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`eduadmin_http_requests_total{method="GET",route="/level/read_list",status="200"} 2`,
		`eduadmin_http_request_duration_seconds_bucket{method="GET",route="/level/read_list",le="0.05"} 1`,
		`eduadmin_http_request_duration_seconds_bucket{method="GET",route="/level/read_list",le="+Inf"} 2`,
		`eduadmin_auth_events_total{event="otp_sent"} 1`,
		`eduadmin_content_mutations_total{resource="class",op="create"} 1`,
		"# TYPE eduadmin_http_inflight_requests gauge",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLabelStringEscapes(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	if got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("got %s", got)
	}
}
