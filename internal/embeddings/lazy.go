package embeddings

import (
	"context"
	"sync"
)

// Lazy defers construction of an expensive embedder until first use.
// Concurrent first callers block on a single initialization; exactly one
// underlying instance is ever created, and an init failure is replayed to
// every subsequent call instead of being retried.
type Lazy struct {
	once    sync.Once
	build   func() (Embedder, error)
	inner   Embedder
	initErr error
}

// NewLazy wraps build so it runs at most once, on first Embed/EmbedBatch.
func NewLazy(build func() (Embedder, error)) *Lazy {
	return &Lazy{build: build}
}

func (l *Lazy) get() (Embedder, error) {
	l.once.Do(func() {
		l.inner, l.initErr = l.build()
	})
	return l.inner, l.initErr
}

func (l *Lazy) Embed(ctx context.Context, text string) (Vector, error) {
	e, err := l.get()
	if err != nil {
		return nil, err
	}
	return e.Embed(ctx, text)
}

func (l *Lazy) EmbedBatch(ctx context.Context, texts []string) ([]Vector, error) {
	e, err := l.get()
	if err != nil {
		return nil, err
	}
	return e.EmbedBatch(ctx, texts)
}
