package cascade

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"github.com/yungbote/eduadmin/internal/api"
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/state"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) add(p string) {
	r.mu.Lock()
	r.paths = append(r.paths, p)
	r.mu.Unlock()
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func newController(t *testing.T, h http.Handler) *Controller {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client, err := api.New(api.Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return New(state.NewStore(client, nil), nil)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func fixtureHandler(rec *recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec != nil {
			rec.add(r.URL.Path)
		}
		switch r.URL.Path {
		case "/level/read_list":
			writeJSON(w, `{"success":true,"data":[{"id":"L1","name":"Primary"},{"id":"L2","name":"Secondary"}]}`)
		case "/classes/level/L1":
			writeJSON(w, `{"success":true,"data":[{"id":"C1","name":"Class 1","level_id":"L1"}]}`)
		case "/classes/level/L2":
			writeJSON(w, `{"success":true,"data":[{"id":"C7","name":"Class 7","level_id":"L2"}]}`)
		case "/subjects/class/C1":
			writeJSON(w, `{"success":true,"data":[{"id":"S1","name":"Maths","class_id":"C1"}]}`)
		case "/chapters/chapter/S1":
			writeJSON(w, `{"success":true,"data":[{"id":"CH1","name":"Fractions","subject_id":"S1"}]}`)
		case "/topics/chapter/CH1":
			writeJSON(w, `{"success":true,"data":[{"id":"T1","name":"Halves","chapter_id":"CH1"}]}`)
		default:
			writeJSON(w, `{"success":true,"data":[]}`)
		}
	})
}

func TestSelectLevel_FetchesClasses(t *testing.T) {
	rec := &recorder{}
	c := newController(t, fixtureHandler(rec))
	ctx := context.Background()

	c.Mount(ctx)
	if err := c.Wait(); err != nil {
		t.Fatalf("mount: %v", err)
	}
	c.SelectLevel(ctx, "L1")
	if err := c.Wait(); err != nil {
		t.Fatalf("select: %v", err)
	}

	snap := c.Store().Classes.Snapshot()
	want := []domain.Class{{ID: "C1", Name: "Class 1", LevelID: "L1"}}
	if !reflect.DeepEqual(snap.Items, want) {
		t.Fatalf("classes=%+v", snap.Items)
	}
	if snap.Loading || snap.Error != "" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if got := rec.list(); !reflect.DeepEqual(got, []string{"/level/read_list", "/classes/level/L1"}) {
		t.Fatalf("requests=%v", got)
	}
}

func TestSelectEmpty_DispatchesNothingAndKeepsChildList(t *testing.T) {
	rec := &recorder{}
	c := newController(t, fixtureHandler(rec))
	ctx := context.Background()

	c.SelectLevel(ctx, "L1")
	_ = c.Wait()
	c.SelectLevel(ctx, "")
	_ = c.Wait()

	if n := len(rec.list()); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}
	if got := c.Store().Classes.Snapshot().Items; len(got) != 1 || got[0].ID != "C1" {
		t.Fatalf("child list should be left as-is, got %+v", got)
	}
	if c.Selected().LevelID != "" {
		t.Fatalf("selection not cleared")
	}
}

func TestUpperSelectionDoesNotResetLower(t *testing.T) {
	c := newController(t, fixtureHandler(nil))
	ctx := context.Background()

	c.SelectLevel(ctx, "L1")
	c.SelectClass(ctx, "C1")
	c.SelectSubject(ctx, "S1")
	_ = c.Wait()
	c.SelectLevel(ctx, "L2")
	_ = c.Wait()

	sel := c.Selected()
	if sel.LevelID != "L2" || sel.ClassID != "C1" || sel.SubjectID != "S1" {
		t.Fatalf("selection=%+v", sel)
	}
	chain := c.Chain()
	if len(chain) != 3 {
		t.Fatalf("chain=%+v", chain)
	}
	// C1 is no longer in the loaded class list.
	if chain[1].ID != "C1" || chain[1].Name != "" {
		t.Fatalf("expected orphaned class crumb, got %+v", chain[1])
	}
}

func TestStaleLevelResponseDoesNotWin(t *testing.T) {
	l1Started := make(chan struct{})
	releaseL1 := make(chan struct{})
	l2Served := make(chan struct{})

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/classes/level/L1":
			close(l1Started)
			<-releaseL1
			writeJSON(w, `{"success":true,"data":[{"id":"C1","name":"Class 1","level_id":"L1"}]}`)
		case "/classes/level/L2":
			writeJSON(w, `{"success":true,"data":[{"id":"C7","name":"Class 7","level_id":"L2"}]}`)
			close(l2Served)
		default:
			writeJSON(w, `{"success":true,"data":[]}`)
		}
	})
	c := newController(t, h)
	ctx := context.Background()

	c.SelectLevel(ctx, "L1")
	<-l1Started
	c.SelectLevel(ctx, "L2")
	<-l2Served
	close(releaseL1)
	if err := c.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	got := c.Store().Classes.Snapshot()
	want := []domain.Class{{ID: "C7", Name: "Class 7", LevelID: "L2"}}
	if !reflect.DeepEqual(got.Items, want) {
		t.Fatalf("L1's late response overwrote L2's classes: %+v", got.Items)
	}
	if got.Loading {
		t.Fatalf("expected loading=false")
	}
}

func TestFullChainAndCreateLinks(t *testing.T) {
	c := newController(t, fixtureHandler(nil))
	ctx := context.Background()

	c.Mount(ctx)
	c.SelectLevel(ctx, "L1")
	c.SelectClass(ctx, "C1")
	c.SelectSubject(ctx, "S1")
	c.SelectChapter(ctx, "CH1")
	if err := c.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	names := []string{}
	for _, cr := range c.Chain() {
		names = append(names, cr.Name)
	}
	if !reflect.DeepEqual(names, []string{"Primary", "Class 1", "Maths", "Fractions"}) {
		t.Fatalf("chain names=%v", names)
	}
	if topics := c.Store().Topics.Snapshot().Items; len(topics) != 1 || topics[0].ID != "T1" {
		t.Fatalf("topics=%+v", topics)
	}

	cases := map[domain.Level]string{
		domain.LevelEducation: "/admin/education_levels/create",
		domain.LevelClass:     "/admin/classes/create?level_id=L1",
		domain.LevelSubject:   "/admin/subjects/create?class_id=C1",
		domain.LevelChapter:   "/admin/chapters/create?subject_id=S1",
		domain.LevelTopic:     "/admin/topic/create?chapter_id=CH1",
	}
	for kind, want := range cases {
		if got := c.CreateLink(kind); got != want {
			t.Fatalf("CreateLink(%s)=%q want %q", kind, got, want)
		}
	}
}

func TestWait_ReturnsFetchErrors(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"boom"}`))
	})
	c := newController(t, h)
	c.SelectLevel(context.Background(), "L1")
	if err := c.Wait(); err == nil {
		t.Fatalf("expected error")
	}
	if got := c.Store().Classes.Snapshot().Error; got != "boom" {
		t.Fatalf("error=%q", got)
	}
	if err := c.Wait(); err != nil {
		t.Fatalf("errors should be cleared after Wait, got %v", err)
	}
}

func TestRefresh_RefetchesSelectedLevels(t *testing.T) {
	rec := &recorder{}
	c := newController(t, fixtureHandler(rec))
	ctx := context.Background()

	c.SelectLevel(ctx, "L1")
	c.SelectClass(ctx, "C1")
	_ = c.Wait()
	before := len(rec.list())

	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	got := rec.list()[before:]
	seen := map[string]bool{}
	for _, p := range got {
		seen[p] = true
	}
	for _, p := range []string{"/level/read_list", "/classes/level/L1", "/subjects/class/C1"} {
		if !seen[p] {
			t.Fatalf("refresh did not request %s (got %v)", p, got)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 requests, got %v", got)
	}
}
