package fundwatch

import (
	"context"
	"log"
	"sync"

	"golang.org/x/time/rate"
)

// defaultWorkers bounds the concurrent provider calls of one refresh cycle.
const defaultWorkers = 4

// Fetcher runs the adapter -> normalizer -> classifier pipeline for a set
// of instruments. All of its effects are caller-local: results live in the
// returned map, nothing else is mutated, so an abandoned cycle leaves no
// trace.
type Fetcher struct {
	Sources Registry
	Window  EstimationWindow
	Limiter *rate.Limiter // optional bound on the outbound request rate
	Workers int           // concurrent fetches, defaultWorkers when zero
}

// Fetch resolves one instrument to a Quote, or nil when the provider call
// failed, timed out, or returned a payload that does not normalize. All
// those cases are equivalent for the caller: no quote this cycle.
func (f *Fetcher) Fetch(ctx context.Context, id string) *Quote {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil
		}
	}
	raw, err := f.Sources.Quote(id)
	if err != nil {
		log.Printf("fetch %s: %v", id, err)
		return nil
	}
	q := Normalize(raw)
	if q == nil {
		log.Printf("fetch %s: payload did not normalize, dropping the quote", id)
		return nil
	}
	q.Final = f.Window.Classify(q.Time, f.Window.Today())
	return q
}

// FetchAll resolves quotes for all instruments with a bounded worker pool.
// Instruments that could not be resolved are simply absent from the result.
func (f *Fetcher) FetchAll(ctx context.Context, ids []string) map[string]*Quote {
	workers := f.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var mu sync.Mutex
	quotes := make(map[string]*Quote, len(ids))

	var wg sync.WaitGroup
	work := make(chan string)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range work {
				if q := f.Fetch(ctx, id); q != nil {
					mu.Lock()
					quotes[id] = q
					mu.Unlock()
				}
			}
		}()
	}

	// instruments are deduplicated so one bad entry cannot be fetched twice
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		work <- id
	}
	close(work)
	wg.Wait()
	return quotes
}
