package state

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
)

type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// fakeDoer answers requests from handle and records every call.
type fakeDoer struct {
	mu     sync.Mutex
	calls  []call
	handle func(c call) (any, error)
}

func (f *fakeDoer) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	c := call{Method: method, Path: path, Query: query, Body: body}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	h := f.handle
	f.mu.Unlock()

	var data any
	var err error
	if h != nil {
		data, err = h(c)
	}
	if err != nil {
		return err
	}
	if out == nil || data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeDoer) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return f.do(ctx, method, path, query, body, out)
}

func (f *fakeDoer) DoEnvelope(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return f.do(ctx, method, path, query, body, out)
}

func (f *fakeDoer) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}
