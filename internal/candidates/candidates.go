// Package candidates ranks a vocabulary against the word under the caret.
package candidates

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/iw2rmb/popover/popup"
)

// Candidate is one completion row.
type Candidate struct {
	Text string
	// Matched holds the byte indexes of Text that matched the query.
	Matched []int
}

// Source looks candidates up in a fixed vocabulary. A positive latency makes
// lookups asynchronous.
type Source struct {
	words   []string
	latency time.Duration
	logger  *zap.Logger
}

func New(words []string, latency time.Duration, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	words = lo.Uniq(lo.Filter(words, func(w string, _ int) bool { return strings.TrimSpace(w) != "" }))
	slices.Sort(words)
	return &Source{words: words, latency: latency, logger: logger}
}

func (s *Source) Words() []string { return slices.Clone(s.words) }

// Lookup returns the words fuzzily matching query, best first. An empty query
// matches every word in alphabetical order. The query itself is left out.
func (s *Source) Lookup(query string) []Candidate {
	if query == "" {
		return lo.Map(s.words, func(w string, _ int) Candidate { return Candidate{Text: w} })
	}
	matches := fuzzy.Find(query, s.words)
	out := make([]Candidate, 0, len(matches))
	for _, match := range matches {
		if match.Str == query {
			continue
		}
		out = append(out, Candidate{Text: match.Str, Matched: match.MatchedIndexes})
	}
	return out
}

// Items returns the lookup for query as ready or pending popup items.
func (s *Source) Items(ctx context.Context, query string) popup.Items[Candidate] {
	if s.latency <= 0 {
		return popup.Ready(s.Lookup(query))
	}
	return s.LookupAsync(ctx, query)
}

// LookupAsync resolves the lookup after the source's latency, or fails when
// ctx ends first.
func (s *Source) LookupAsync(ctx context.Context, query string) *popup.Deferred[Candidate] {
	return popup.Pending(ctx, func(ctx context.Context) ([]Candidate, error) {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			s.logger.Debug("candidate lookup cancelled", zap.String("query", query))
			return nil, ctx.Err()
		}
		out := s.Lookup(query)
		s.logger.Debug("candidate lookup finished", zap.String("query", query), zap.Int("matches", len(out)))
		return out, nil
	})
}

// DefaultWords is the demo vocabulary.
func DefaultWords() []string {
	return []string{
		"append", "break", "case", "chan", "close", "const", "context",
		"continue", "copy", "default", "defer", "delete", "else", "error",
		"fallthrough", "false", "for", "func", "go", "goto", "if", "import",
		"interface", "len", "make", "map", "new", "package", "panic",
		"print", "println", "profile", "range", "recover", "return",
		"select", "string", "struct", "switch", "true", "type", "var",
	}
}
