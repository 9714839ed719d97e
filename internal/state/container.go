package state

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

// DefaultListLimit is sent as limit when a list filter leaves it unset.
const DefaultListLimit = 10

// Doer is the slice of *api.Client the containers need.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
	DoEnvelope(ctx context.Context, method, path string, query url.Values, body, data any) error
}

type ListFilter struct {
	Limit int
	Name  string
}

// Snapshot is a point-in-time copy of a container's state.
type Snapshot[E domain.Entity] struct {
	Items   []E
	Detail  *E
	Loading bool
	Error   string
}

// Container holds the list of one entity type plus its loading and error
// flags. It is safe for concurrent use.
//
// Fetches that replace the list are sequenced: a response for anything but
// the most recently issued fetch is dropped. Mutations are applied in the
// order they resolve.
type Container[E domain.Entity] struct {
	res    Resource[E]
	client Doer
	log    *logger.Logger

	mu       sync.Mutex
	items    []E
	detail   *E
	pending  int
	errMsg   string
	fetchSeq uint64
	subs     map[int]func(Snapshot[E])
	nextSub  int
}

func NewContainer[E domain.Entity](res Resource[E], client Doer, log *logger.Logger) *Container[E] {
	if log == nil {
		log = logger.Nop()
	}
	return &Container[E]{
		res:    res,
		client: client,
		log:    log.With("component", "Container", "resource", res.Name),
		subs:   map[int]func(Snapshot[E]){},
	}
}

func (c *Container[E]) Resource() Resource[E] { return c.res }

func (c *Container[E]) Snapshot() Snapshot[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Container[E]) snapshotLocked() Snapshot[E] {
	s := Snapshot[E]{
		Items:   append([]E(nil), c.items...),
		Loading: c.pending > 0,
		Error:   c.errMsg,
	}
	if c.detail != nil {
		d := *c.detail
		s.Detail = &d
	}
	return s
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func removes the subscription.
func (c *Container[E]) Subscribe(fn func(Snapshot[E])) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// ResetError clears the error without touching the list.
func (c *Container[E]) ResetError() {
	c.mutate(func() { c.errMsg = "" })
}

// mutate applies fn under the lock and then notifies subscribers.
func (c *Container[E]) mutate(fn func()) {
	c.mu.Lock()
	fn()
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot[E]), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()
	for _, s := range subs {
		s(snap)
	}
}

func (c *Container[E]) begin() {
	c.mutate(func() {
		c.pending++
		c.errMsg = ""
	})
}

func (c *Container[E]) beginFetch() uint64 {
	var seq uint64
	c.mutate(func() {
		c.fetchSeq++
		seq = c.fetchSeq
		c.pending++
		c.errMsg = ""
	})
	return seq
}

func (c *Container[E]) fail(f *Failure) *Failure {
	c.mutate(func() {
		c.pending--
		c.errMsg = f.Message
	})
	c.log.Warn("operation failed", "op", f.Op, "message", f.Message, "error", f.Err)
	return f
}

func (c *Container[E]) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.res.Bare {
		return c.client.Do(ctx, method, path, query, body, out)
	}
	return c.client.DoEnvelope(ctx, method, path, query, body, out)
}

// FetchAll replaces the list with every record matching filter.
func (c *Container[E]) FetchAll(ctx context.Context, filter ListFilter) ([]E, error) {
	if c.res.Routes.List == "" {
		return nil, ErrUnsupported
	}
	var q url.Values
	if c.res.ListQuery {
		limit := filter.Limit
		if limit <= 0 {
			limit = DefaultListLimit
		}
		q = url.Values{
			"limit": {strconv.Itoa(limit)},
			"name":  {strings.TrimSpace(filter.Name)},
		}
	}
	return c.fetchList(ctx, "fetch", c.res.Routes.List, q, c.res.fallbackFetch())
}

// FetchByParent replaces the list with the children of parentID. An empty
// result is a success.
func (c *Container[E]) FetchByParent(ctx context.Context, parentID string) ([]E, error) {
	if c.res.Routes.ByParent == "" {
		return nil, ErrUnsupported
	}
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return nil, ErrMissingID
	}
	path := c.res.Routes.expand(c.res.Routes.ByParent, parentID)
	return c.fetchList(ctx, "fetch_by_parent", path, nil, c.res.fallbackFetchByParent())
}

func (c *Container[E]) fetchList(ctx context.Context, op, path string, q url.Values, fallback string) ([]E, error) {
	seq := c.beginFetch()

	var out []E
	err := c.call(ctx, http.MethodGet, path, q, nil, &out)
	if out == nil {
		out = []E{}
	}

	stale := false
	c.mutate(func() {
		c.pending--
		if seq != c.fetchSeq {
			stale = true
			return
		}
		if err != nil {
			c.errMsg = failureMessage(err, fallback)
			return
		}
		c.items = out
	})
	if stale {
		c.log.Debug("dropped stale fetch", "op", op, "path", path, "seq", seq)
		if err != nil {
			return nil, newFailure(FailureMessage, op, c.res.Name, fallback, err)
		}
		return out, nil
	}
	if err != nil {
		f := newFailure(FailureMessage, op, c.res.Name, fallback, err)
		c.log.Warn("operation failed", "op", op, "message", f.Message, "error", err)
		return nil, f
	}
	return out, nil
}

// Get loads one record into Snapshot.Detail. The list is untouched.
func (c *Container[E]) Get(ctx context.Context, id string) (E, error) {
	var zero E
	if c.res.Routes.Item == "" {
		return zero, ErrUnsupported
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, ErrMissingID
	}
	c.begin()
	var out E
	if err := c.call(ctx, http.MethodGet, c.res.Routes.expand(c.res.Routes.Item, id), nil, nil, &out); err != nil {
		return zero, c.fail(newFailure(FailureMessage, "get", c.res.Name, c.res.fallbackGet(), err))
	}
	c.mutate(func() {
		c.pending--
		d := out
		c.detail = &d
	})
	return out, nil
}

// Create submits draft and returns the stored record. The record is
// appended only when the list already holds items; callers that created
// into an empty list should refetch.
func (c *Container[E]) Create(ctx context.Context, draft any) (E, error) {
	var zero E
	if c.res.Routes.Create == "" {
		return zero, ErrUnsupported
	}
	c.begin()
	var out E
	if err := c.call(ctx, http.MethodPost, c.res.Routes.Create, nil, draft, &out); err != nil {
		return zero, c.fail(newFailure(c.res.CreateShape, "create", c.res.Name, c.res.fallbackCreate(), err))
	}
	appended := false
	c.mutate(func() {
		c.pending--
		if len(c.items) > 0 && out.GetID() != "" {
			c.items = append(append([]E(nil), c.items...), out)
			appended = true
		}
	})
	if !appended {
		c.log.Warn("created record not appended to empty list; refetch to see it", "id", out.GetID())
	}
	return out, nil
}

// Update submits patch for id and replaces the matching list entry with the
// server's copy. An id not in the list leaves the list unchanged.
func (c *Container[E]) Update(ctx context.Context, id string, patch any) (E, error) {
	var zero E
	if c.res.Routes.Update == "" {
		return zero, ErrUnsupported
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, ErrMissingID
	}
	c.begin()
	var out E
	if err := c.call(ctx, http.MethodPut, c.res.Routes.expand(c.res.Routes.Update, id), nil, patch, &out); err != nil {
		return zero, c.fail(newFailure(c.res.UpdateShape, "update", c.res.Name, c.res.fallbackUpdate(), err))
	}
	c.mutate(func() {
		c.pending--
		if out.GetID() == "" {
			return
		}
		for i := range c.items {
			if c.items[i].GetID() == id {
				next := append([]E(nil), c.items...)
				next[i] = out
				c.items = next
				break
			}
		}
		if c.detail != nil && (*c.detail).GetID() == id {
			d := out
			c.detail = &d
		}
	})
	return out, nil
}

// Delete removes id remotely and then from the list. Deleting an id that
// is not in the list is not a container error.
func (c *Container[E]) Delete(ctx context.Context, id string) error {
	if c.res.Routes.Delete == "" {
		return ErrUnsupported
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	c.begin()
	if err := c.call(ctx, http.MethodDelete, c.res.Routes.expand(c.res.Routes.Delete, id), nil, nil, nil); err != nil {
		return c.fail(newFailure(FailureMessage, "delete", c.res.Name, c.res.fallbackDelete(), err))
	}
	c.mutate(func() {
		c.pending--
		next := make([]E, 0, len(c.items))
		for _, it := range c.items {
			if it.GetID() != id {
				next = append(next, it)
			}
		}
		c.items = next
		if c.detail != nil && (*c.detail).GetID() == id {
			c.detail = nil
		}
	})
	return nil
}
