package content

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/glabrego/termfolio/internal/logger"
)

type Fetcher interface {
	FetchIndex(ctx context.Context, kind Kind) ([]Entry, error)
	FetchContent(ctx context.Context, kind Kind, filename string) (string, error)
}

// Repository is a read-through memo over a Fetcher for one collection.
// Successful fetches are kept for the lifetime of the repository; failed ones
// are logged, reported as empty and retried on the next access. Concurrent
// requests for the same key share a single fetch.
type Repository struct {
	kind    Kind
	fetcher Fetcher
	group   singleflight.Group

	mu          sync.Mutex
	index       []Entry
	indexLoaded bool
	contents    map[string]string
}

func NewRepository(kind Kind, fetcher Fetcher) *Repository {
	return &Repository{
		kind:     kind,
		fetcher:  fetcher,
		contents: make(map[string]string),
	}
}

func (r *Repository) Kind() Kind {
	return r.kind
}

// Index returns the collection's entries in index order. A failed fetch yields
// an empty slice.
func (r *Repository) Index(ctx context.Context) []Entry {
	r.mu.Lock()
	if r.indexLoaded {
		out := cloneEntries(r.index)
		r.mu.Unlock()
		return out
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do("index", func() (interface{}, error) {
		r.mu.Lock()
		if r.indexLoaded {
			entries := r.index
			r.mu.Unlock()
			return entries, nil
		}
		r.mu.Unlock()
		entries, err := r.fetcher.FetchIndex(ctx, r.kind)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.index = entries
		r.indexLoaded = true
		r.mu.Unlock()
		return entries, nil
	})
	if err != nil {
		logger.Warn("failed to load index", "kind", r.kind, "err", err)
		return []Entry{}
	}
	return cloneEntries(v.([]Entry))
}

// Content returns the raw text of filename. ok is false when the fetch failed.
func (r *Repository) Content(ctx context.Context, filename string) (string, bool) {
	r.mu.Lock()
	if text, ok := r.contents[filename]; ok {
		r.mu.Unlock()
		return text, true
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do("content:"+filename, func() (interface{}, error) {
		r.mu.Lock()
		if text, ok := r.contents[filename]; ok {
			r.mu.Unlock()
			return text, nil
		}
		r.mu.Unlock()
		text, err := r.fetcher.FetchContent(ctx, r.kind, filename)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.contents[filename] = text
		r.mu.Unlock()
		return text, nil
	})
	if err != nil {
		logger.Warn("failed to load content", "kind", r.kind, "file", filename, "err", err)
		return "", false
	}
	return v.(string), true
}

func (r *Repository) Find(ctx context.Context, id string) (Entry, bool) {
	for _, entry := range r.Index(ctx) {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Tags = append([]string(nil), e.Tags...)
		out[i] = e
	}
	return out
}
