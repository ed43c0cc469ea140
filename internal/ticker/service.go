package ticker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when a query matches no listed symbol.
var ErrNotFound = errors.New("no matching ticker found")

// Suggestion is one Indian-listed equity offered for a partial query.
type Suggestion struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// Searcher is the upstream lookup used by Service.
type Searcher interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]Quote, error)
}

var indianExchanges = map[string]bool{
	"NSI": true,
	"NSE": true,
	"BSE": true,
	"BOM": true,
}

// Service filters, resolves and caches ticker lookups. It is safe for
// concurrent use.
type Service struct {
	searcher    Searcher
	suggestions *Cache[[]Suggestion]
	symbols     *Cache[string]
	group       singleflight.Group
	logger      *zap.Logger
}

// NewService creates a service over searcher. A non-positive cacheTTL disables
// caching. If logger is nil, it will use a no-op logger.
func NewService(searcher Searcher, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		searcher:    searcher,
		suggestions: NewCache[[]Suggestion](cacheTTL),
		symbols:     NewCache[string](cacheTTL),
		logger:      logger,
	}
}

// Close releases the cache sweepers.
func (s *Service) Close() {
	s.suggestions.Close()
	s.symbols.Close()
}

// Suggest returns Indian-listed equities matching a partial name or symbol.
// Queries shorter than two characters return an empty list without a lookup.
func (s *Service) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < constants.MinSuggestQueryLength {
		return []Suggestion{}, nil
	}

	key := strings.ToLower(query)
	if cached, ok := s.suggestions.Get(key); ok {
		s.logger.Debug("suggestion cache hit",
			zap.String("op", "ticker.Suggest"),
			zap.String("query", query),
		)
		return cached, nil
	}

	v, err, shared := s.group.Do("suggest:"+key, func() (any, error) {
		quotes, err := s.searcher.Search(ctx, query, SearchOptions{
			QuotesCount: constants.SuggestQuotesCount,
			Fuzzy:       true,
			Regional:    true,
		})
		if err != nil {
			return nil, err
		}
		suggestions := FilterIndianEquities(quotes)
		s.suggestions.Set(key, suggestions)
		return suggestions, nil
	})
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", query, err)
	}

	suggestions := v.([]Suggestion)
	s.logger.Debug("suggestions fetched",
		zap.String("op", "ticker.Suggest"),
		zap.String("query", query),
		zap.Int("count", len(suggestions)),
		zap.Bool("shared", shared),
	)
	return suggestions, nil
}

// ResolveSymbol maps a company name or bare symbol to a listed symbol. Input
// already carrying an exchange suffix is returned upper-cased; otherwise an
// NSE listing is preferred over BSE, then over any other match.
func (s *Service) ResolveSymbol(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrNotFound
	}

	upper := strings.ToUpper(query)
	if strings.HasSuffix(upper, ".NS") || strings.HasSuffix(upper, ".BO") {
		return upper, nil
	}

	key := strings.ToLower(query)
	if cached, ok := s.symbols.Get(key); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do("resolve:"+key, func() (any, error) {
		quotes, err := s.searcher.Search(ctx, query, SearchOptions{
			QuotesCount: constants.ResolveQuotesCount,
		})
		if err != nil {
			return "", err
		}
		symbol := PreferredSymbol(quotes)
		if symbol == "" {
			return "", ErrNotFound
		}
		s.symbols.Set(key, symbol)
		return symbol, nil
	})
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", query, err)
	}

	symbol := v.(string)
	s.logger.Debug("symbol resolved",
		zap.String("op", "ticker.ResolveSymbol"),
		zap.String("query", query),
		zap.String("symbol", symbol),
	)
	return symbol, nil
}

// FilterIndianEquities keeps equity quotes listed on NSE or BSE. The result is
// never nil.
func FilterIndianEquities(quotes []Quote) []Suggestion {
	suggestions := []Suggestion{}
	for _, q := range quotes {
		if !indianExchanges[q.Exchange] || q.QuoteType != "EQUITY" {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		if name == "" {
			name = q.Symbol
		}
		suggestions = append(suggestions, Suggestion{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: q.Exchange,
		})
	}
	return suggestions
}

// PreferredSymbol picks the first .NS symbol, else the first .BO symbol, else
// the first symbol. It returns "" for no quotes.
func PreferredSymbol(quotes []Quote) string {
	for _, suffix := range []string{".NS", ".BO"} {
		for _, q := range quotes {
			if strings.HasSuffix(q.Symbol, suffix) {
				return q.Symbol
			}
		}
	}
	if len(quotes) > 0 {
		return quotes[0].Symbol
	}
	return ""
}
