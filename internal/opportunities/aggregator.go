package opportunities

import (
	"context"
	"fmt"

	"github.com/D-z-V/oppia/pkg/pagination"
)

// DefaultBatchSize is how many raw candidates one backing fetch requests.
const DefaultBatchSize = 100

// Aggregator turns (category, filters, cursor, pageSize) requests into
// validated, filled pages. Stateless per call; all resume state lives in
// the returned cursor.
type Aggregator struct {
	store       Store
	isSupported func(languageCode string) bool
	batchSize   int
}

// New builds an aggregator over the given store. isSupported reports
// whether a language code is a supported audio language.
func New(store Store, isSupported func(string) bool) *Aggregator {
	return &Aggregator{
		store:       store,
		isSupported: isSupported,
		batchSize:   DefaultBatchSize,
	}
}

// NewWithBatchSize is New with an explicit backing fetch size, used by
// tests that exercise multi-fetch accumulation.
func NewWithBatchSize(store Store, isSupported func(string) bool, batchSize int) *Aggregator {
	a := New(store, isSupported)
	if batchSize > 0 {
		a.batchSize = batchSize
	}
	return a
}

// FetchPage accumulates up to pageSize valid opportunities starting at the
// cursor position, issuing as many backing fetches as needed. Candidates
// whose entity no longer resolves are dropped silently.
//
// pageSize == 0 consumes nothing: the returned page has zero entries, the
// cursor is unchanged, and More reports whether unconsumed data remains.
// Callers must not treat More == true as "this page made progress".
func (a *Aggregator) FetchPage(ctx context.Context, category Category, f Filters, cursor string, pageSize int) (Page, error) {
	spec, ok := registry[category]
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if pageSize < 0 {
		pageSize = 0
	}

	// Filter validation happens before any backing fetch.
	if f.LanguageCode != "" && !a.isSupported(f.LanguageCode) {
		return Page{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, f.LanguageCode)
	}
	if spec.requiresLanguage && f.LanguageCode == "" {
		return Page{}, fmt.Errorf("%w: language code required", ErrUnsupportedLanguage)
	}
	if f.TopicName != "" {
		topicID, found, err := a.store.ResolveTopic(ctx, f.TopicName)
		if err != nil {
			return Page{}, fmt.Errorf("resolving topic %q: %w", f.TopicName, err)
		}
		if !found {
			return Page{}, fmt.Errorf("%w: %q", ErrUnknownTopic, f.TopicName)
		}
		f.TopicID = topicID
	}

	if pageSize == 0 {
		return a.probe(ctx, category, f, cursor)
	}

	pinned, err := a.store.GetPinned(ctx, category, f)
	if err != nil {
		return Page{}, fmt.Errorf("fetching pinned opportunity: %w", err)
	}

	// A pinned entry is spliced into the start page only. Resumed pages
	// drop its natural occurrence instead, so chained cursors serve it
	// exactly once.
	skipID := ""
	if pinned != nil && cursor != "" {
		skipID = pinned.ID
	}

	page, err := a.accumulate(ctx, spec, category, f, cursor, pageSize, skipID)
	if err != nil {
		return Page{}, err
	}

	if pinned != nil && cursor == "" {
		splicePinned(pinned, &page, pageSize)
	}
	return page, nil
}

// probe reports whether data remains past the cursor without consuming
// any of it. A single-row fetch answers that.
func (a *Aggregator) probe(ctx context.Context, category Category, f Filters, cursor string) (Page, error) {
	candidates, _, exhausted, err := a.store.FetchBatch(ctx, category, f, cursor, 1)
	if err != nil {
		return Page{}, fmt.Errorf("fetching batch: %w", err)
	}
	return Page{
		Summaries:   []Summary{},
		More:        len(candidates) > 0 || !exhausted,
		NextCursor:  cursor,
		FetchRounds: 1,
	}, nil
}

func (a *Aggregator) accumulate(ctx context.Context, spec categorySpec, category Category, f Filters, cursor string, pageSize int, skipID string) (Page, error) {
	collected := make([]Summary, 0, pageSize)
	pos := cursor
	exhausted := false
	leftover := false
	rounds := 0
	skipped := 0

	for len(collected) < pageSize && !exhausted {
		candidates, next, ex, err := a.store.FetchBatch(ctx, category, f, pos, a.batchSize)
		if err != nil {
			return Page{}, fmt.Errorf("fetching batch: %w", err)
		}
		rounds++
		if !ex && next == pos {
			return Page{}, ErrCursorStalled
		}

		for i, cand := range candidates {
			if skipID != "" && cand.ID == skipID {
				continue
			}
			if !spec.match(cand, f) {
				continue
			}
			live, err := a.store.ResolveEntity(ctx, category, cand.ID)
			if err != nil {
				return Page{}, fmt.Errorf("resolving entity %q: %w", cand.ID, err)
			}
			if !live {
				skipped++
				continue
			}
			collected = append(collected, cand)
			if len(collected) == pageSize {
				// Resume after this candidate, not after the batch.
				pos = pagination.EncodeCursor(cand.Seq, cand.ID)
				leftover = i < len(candidates)-1
				exhausted = ex && !leftover
				break
			}
		}
		if len(collected) < pageSize {
			pos = next
			exhausted = ex
		}
	}

	return Page{
		Summaries:   collected,
		More:        leftover || !exhausted,
		NextCursor:  pos,
		FetchRounds: rounds,
		Skipped:     skipped,
	}, nil
}

// splicePinned guarantees the scope's pinned opportunity leads the start
// page with IsPinned set, without duplicating it and without growing the
// page past pageSize. When it displaces the last natural entry, the cursor
// is rewound so the displaced entry is served on the next page.
func splicePinned(pinned *Summary, page *Page, pageSize int) {
	for i := range page.Summaries {
		if page.Summaries[i].ID == pinned.ID {
			s := page.Summaries[i]
			s.IsPinned = true
			copy(page.Summaries[1:i+1], page.Summaries[:i])
			page.Summaries[0] = s
			return
		}
	}

	injected := *pinned
	injected.IsPinned = true
	if len(page.Summaries) == pageSize {
		displaced := page.Summaries[pageSize-1]
		page.Summaries = page.Summaries[:pageSize-1]
		if len(page.Summaries) > 0 {
			last := page.Summaries[len(page.Summaries)-1]
			page.NextCursor = pagination.EncodeCursor(last.Seq, last.ID)
		} else {
			// No natural entry retained; the empty ID sorts before every
			// real ID, so this position re-includes the displaced entry.
			page.NextCursor = pagination.EncodeCursor(displaced.Seq, "")
		}
		page.More = true
	}
	page.Summaries = append([]Summary{injected}, page.Summaries...)
}
