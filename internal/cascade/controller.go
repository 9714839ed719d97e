package cascade

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/state"
)

// MountLimit is the page size requested when the level list first loads.
const MountLimit = 10

// Selection is the id picked at each level. Empty means nothing selected.
type Selection struct {
	LevelID   string
	ClassID   string
	SubjectID string
	ChapterID string
}

// Crumb is one resolved step of the current selection chain. Name is empty
// when the selected id is not in the loaded list.
type Crumb struct {
	Level domain.Level
	ID    string
	Name  string
}

// Controller drives the level -> class -> subject -> chapter -> topic
// selectors. Each selection change dispatches exactly one fetch for the
// level below without waiting for it; lower selections are left as they
// are when an upper one changes.
type Controller struct {
	store *state.Store
	log   *logger.Logger

	mu   sync.Mutex
	sel  Selection
	errs []error
	wg   sync.WaitGroup
}

func New(store *state.Store, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{store: store, log: log.With("component", "CascadeController")}
}

func (c *Controller) Store() *state.Store { return c.store }

// Mount dispatches the top-level fetch.
func (c *Controller) Mount(ctx context.Context) {
	c.dispatch("mount", func() error {
		_, err := c.store.Levels.FetchAll(ctx, state.ListFilter{Limit: MountLimit})
		return err
	})
}

func (c *Controller) SelectLevel(ctx context.Context, id string) {
	id = c.set(func(s *Selection, v string) { s.LevelID = v }, id)
	if id == "" {
		return
	}
	c.dispatch("select_level", func() error {
		_, err := c.store.Classes.FetchByParent(ctx, id)
		return err
	})
}

func (c *Controller) SelectClass(ctx context.Context, id string) {
	id = c.set(func(s *Selection, v string) { s.ClassID = v }, id)
	if id == "" {
		return
	}
	c.dispatch("select_class", func() error {
		_, err := c.store.Subjects.FetchByParent(ctx, id)
		return err
	})
}

func (c *Controller) SelectSubject(ctx context.Context, id string) {
	id = c.set(func(s *Selection, v string) { s.SubjectID = v }, id)
	if id == "" {
		return
	}
	c.dispatch("select_subject", func() error {
		_, err := c.store.Chapters.FetchByParent(ctx, id)
		return err
	})
}

func (c *Controller) SelectChapter(ctx context.Context, id string) {
	id = c.set(func(s *Selection, v string) { s.ChapterID = v }, id)
	if id == "" {
		return
	}
	c.dispatch("select_chapter", func() error {
		_, err := c.store.Topics.FetchByParent(ctx, id)
		return err
	})
}

func (c *Controller) set(apply func(*Selection, string), id string) string {
	id = strings.TrimSpace(id)
	c.mu.Lock()
	apply(&c.sel, id)
	c.mu.Unlock()
	return id
}

func (c *Controller) dispatch(op string, fn func() error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := fn(); err != nil {
			c.log.Debug("cascade fetch failed", "op", op, "error", err)
			c.mu.Lock()
			c.errs = append(c.errs, err)
			c.mu.Unlock()
		}
	}()
}

// Wait blocks until every dispatched fetch has settled and returns their
// joined errors. The collected errors are cleared.
func (c *Controller) Wait() error {
	c.wg.Wait()
	c.mu.Lock()
	errs := c.errs
	c.errs = nil
	c.mu.Unlock()
	return errors.Join(errs...)
}

func (c *Controller) Selected() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}

// Chain resolves the selected ids against the loaded lists, top down.
// Unselected levels are omitted.
func (c *Controller) Chain() []Crumb {
	sel := c.Selected()
	out := make([]Crumb, 0, 4)
	if sel.LevelID != "" {
		out = append(out, Crumb{Level: domain.LevelEducation, ID: sel.LevelID, Name: nameOf(c.store.Levels.Snapshot().Items, sel.LevelID)})
	}
	if sel.ClassID != "" {
		out = append(out, Crumb{Level: domain.LevelClass, ID: sel.ClassID, Name: nameOf(c.store.Classes.Snapshot().Items, sel.ClassID)})
	}
	if sel.SubjectID != "" {
		out = append(out, Crumb{Level: domain.LevelSubject, ID: sel.SubjectID, Name: nameOf(c.store.Subjects.Snapshot().Items, sel.SubjectID)})
	}
	if sel.ChapterID != "" {
		out = append(out, Crumb{Level: domain.LevelChapter, ID: sel.ChapterID, Name: nameOf(c.store.Chapters.Snapshot().Items, sel.ChapterID)})
	}
	return out
}

func nameOf[E domain.Named](items []E, id string) string {
	for _, it := range items {
		if it.GetID() == id {
			return it.GetName()
		}
	}
	return ""
}

// Prefill returns the parent key and selected parent id a new record of
// kind should be created under.
func (c *Controller) Prefill(kind domain.Level) (key, id string) {
	sel := c.Selected()
	switch kind {
	case domain.LevelClass:
		return domain.LevelEducation.ParentKey(), sel.LevelID
	case domain.LevelSubject:
		return domain.LevelClass.ParentKey(), sel.ClassID
	case domain.LevelChapter:
		return domain.LevelSubject.ParentKey(), sel.SubjectID
	case domain.LevelTopic:
		return domain.LevelChapter.ParentKey(), sel.ChapterID
	default:
		return "", ""
	}
}

var createRoutes = map[domain.Level]string{
	domain.LevelEducation: "/admin/education_levels/create",
	domain.LevelClass:     "/admin/classes/create",
	domain.LevelSubject:   "/admin/subjects/create",
	domain.LevelChapter:   "/admin/chapters/create",
	domain.LevelTopic:     "/admin/topic/create",
}

// CreateLink is the dashboard route for creating kind with its parent
// prefilled from the current selection.
func (c *Controller) CreateLink(kind domain.Level) string {
	route, ok := createRoutes[kind]
	if !ok {
		return ""
	}
	key, id := c.Prefill(kind)
	if key == "" || id == "" {
		return route
	}
	return route + "?" + url.Values{key: {id}}.Encode()
}

// Refresh refetches the level list and every selected child list
// concurrently and waits for all of them.
func (c *Controller) Refresh(ctx context.Context) error {
	sel := c.Selected()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.store.Levels.FetchAll(gctx, state.ListFilter{Limit: MountLimit})
		return err
	})
	if sel.LevelID != "" {
		g.Go(func() error {
			_, err := c.store.Classes.FetchByParent(gctx, sel.LevelID)
			return err
		})
	}
	if sel.ClassID != "" {
		g.Go(func() error {
			_, err := c.store.Subjects.FetchByParent(gctx, sel.ClassID)
			return err
		})
	}
	if sel.SubjectID != "" {
		g.Go(func() error {
			_, err := c.store.Chapters.FetchByParent(gctx, sel.SubjectID)
			return err
		})
	}
	if sel.ChapterID != "" {
		g.Go(func() error {
			_, err := c.store.Topics.FetchByParent(gctx, sel.ChapterID)
			return err
		})
	}
	return g.Wait()
}
