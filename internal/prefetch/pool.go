// Package prefetch fans trailer lookups for a batch of catalog items out to
// a bounded worker pool, preserving input order in the results.
package prefetch

import (
	"context"
	"sync"

	"github.com/hyperjump/osusume/internal/models"
)

// TrailerFunc resolves the trailer URL for one movie id. Implementations
// are expected to absorb upstream failures and report absent instead.
type TrailerFunc func(ctx context.Context, id int) (url string, found bool)

// Trailer is the per-item outcome of a batch.
type Trailer struct {
	URL   string
	Found bool
}

type task struct {
	ctx     context.Context
	id      int
	slot    int
	results []Trailer
	wg      *sync.WaitGroup
}

// Prefetcher owns one fixed pool of workers, reused across batches, so the
// total concurrent upstream load stays bounded no matter how many batches
// run at once.
type Prefetcher struct {
	fetch     TrailerFunc
	tasks     chan task
	closeOnce sync.Once
}

// New starts a prefetcher with the given number of workers.
func New(workers int, fetch TrailerFunc) *Prefetcher {
	if workers <= 0 {
		workers = 6
	}
	p := &Prefetcher{
		fetch: fetch,
		tasks: make(chan task),
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Prefetcher) worker() {
	for t := range p.tasks {
		url, found := p.fetch(t.ctx, t.id)
		t.results[t.slot] = Trailer{URL: url, Found: found}
		t.wg.Done()
	}
}

// Trailers fetches the trailer for every id and returns results aligned to
// the input order, regardless of completion order. It blocks until the
// whole batch is done. Must not be called after Close.
func (p *Prefetcher) Trailers(ctx context.Context, ids []int) []Trailer {
	results := make([]Trailer, len(ids))
	var wg sync.WaitGroup
	wg.Add(len(ids))
	for i, id := range ids {
		p.tasks <- task{ctx: ctx, id: id, slot: i, results: results, wg: &wg}
	}
	wg.Wait()
	return results
}

// Enrich returns a copy of items with TrailerURL filled for every item
// whose trailer is available, aligned to the input order.
func (p *Prefetcher) Enrich(ctx context.Context, items []models.CatalogItem) []models.CatalogItem {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	trailers := p.Trailers(ctx, ids)
	out := make([]models.CatalogItem, len(items))
	copy(out, items)
	for i, tr := range trailers {
		if tr.Found {
			out[i].TrailerURL = tr.URL
		}
	}
	return out
}

// Close stops the workers once all queued tasks are drained.
func (p *Prefetcher) Close() {
	p.closeOnce.Do(func() { close(p.tasks) })
}
