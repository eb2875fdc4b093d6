package service

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/recallhq/recall/internal/domain"
	"github.com/recallhq/recall/internal/telemetry"
)

// KnowledgeRepositoryInterface defines the repository interface for knowledge persistence
type KnowledgeRepositoryInterface interface {
	GetAll(ctx context.Context) (domain.KnowledgeBase, error)
	GetByID(ctx context.Context, id string) (*domain.KnowledgeItem, error)
	Put(ctx context.Context, item *domain.KnowledgeItem) error
	Delete(ctx context.Context, id string) error
}

// Clock defines the interface for time sourcing (for testing)
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock using the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Relevance weights for knowledge search. Fixed by design, not tunable
// at call time.
const (
	topicWeight   = 0.5
	contentWeight = 0.3
	keywordWeight = 0.2

	// DefaultListLimit is applied when a list request carries no limit.
	DefaultListLimit = 20
	// DefaultSearchLimit is applied when a search request carries no limit.
	DefaultSearchLimit = 10
	// MaxSearchLimit bounds the number of search results per request.
	MaxSearchLimit = 50
)

var wordRunPattern = regexp.MustCompile(`\w+`)

// KnowledgeService handles business logic for knowledge items
type KnowledgeService struct {
	repo  KnowledgeRepositoryInterface
	clock Clock
}

// NewKnowledgeService creates a new KnowledgeService instance
func NewKnowledgeService(repo KnowledgeRepositoryInterface) *KnowledgeService {
	return &KnowledgeService{repo: repo, clock: SystemClock{}}
}

// NewKnowledgeServiceWithClock creates a new KnowledgeService with a custom clock (for testing)
func NewKnowledgeServiceWithClock(repo KnowledgeRepositoryInterface, clock Clock) *KnowledgeService {
	return &KnowledgeService{repo: repo, clock: clock}
}

// AddInput represents the input for adding a knowledge item
type AddInput struct {
	Topic    string
	Content  string
	Keywords []string
}

// UpdateInput represents the input for updating a knowledge item.
// Nil fields are left untouched.
type UpdateInput struct {
	ID       string
	Topic    *string
	Content  *string
	Keywords []string
}

// Add stores a new knowledge item. IDs are derived from the current time
// at second precision; two adds within the same second collide and the
// later overwrites the earlier. Known limitation, kept for fidelity with
// the stored data format.
func (s *KnowledgeService) Add(ctx context.Context, input AddInput) (*domain.KnowledgeItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.Add", telemetry.SpanAttributes{
		Operation: "add",
	})
	defer span.End()

	now := s.clock.Now()
	keywords := input.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	item := &domain.KnowledgeItem{
		ID:        "kb_" + now.Format("20060102150405"),
		Topic:     input.Topic,
		Content:   input.Content,
		Keywords:  keywords,
		CreatedAt: now,
	}

	if err := domain.ValidateKnowledgeItem(item); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid knowledge item", err)
	}

	if err := s.repo.Put(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Update overwrites only the supplied fields of an existing item and
// always stamps updated_at, even when no field changed.
func (s *KnowledgeService) Update(ctx context.Context, input UpdateInput) (*domain.KnowledgeItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.Update", telemetry.SpanAttributes{
		ItemID:    input.ID,
		Operation: "update",
	})
	defer span.End()

	item, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Topic != nil {
		item.Topic = *input.Topic
	}
	if input.Content != nil {
		item.Content = *input.Content
	}
	if input.Keywords != nil {
		item.Keywords = input.Keywords
	}

	now := s.clock.Now()
	item.UpdatedAt = &now

	if err := s.repo.Put(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes an item from the knowledge base.
func (s *KnowledgeService) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.Delete", telemetry.SpanAttributes{
		ItemID:    id,
		Operation: "delete",
	})
	defer span.End()

	return s.repo.Delete(ctx, id)
}

// List returns up to limit items, newest first by creation time.
// An empty knowledge base yields an empty slice.
func (s *KnowledgeService) List(ctx context.Context, limit int) ([]*domain.KnowledgeItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.List", telemetry.SpanAttributes{
		Operation: "list",
	})
	defer span.End()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	kb, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.KnowledgeItem, 0, len(kb))
	for _, item := range kb {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// Search scores every stored item against the query and returns items
// with a positive relevance score, best first.
//
// Score = 0.5 if the lowercased query is a substring of the topic,
// plus 0.3 if it is a substring of the content, plus 0.2 scaled by the
// fraction of distinct query terms contained in at least one keyword.
// Rounded to two decimal places. Zero-score items never appear, even
// when fewer than limit items are returned. Ties are broken by ID
// ascending so results are reproducible across runs.
//
// An empty query is a substring of everything, so it matches every item
// with score 0.8: effectively "browse all", kept on purpose.
func (s *KnowledgeService) Search(ctx context.Context, query string, limit int) ([]domain.ScoredItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.Search", telemetry.SpanAttributes{
		Operation: "search",
	})
	defer span.End()

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	kb, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	loweredQuery := strings.ToLower(query)
	queryTerms := tokenize(loweredQuery)

	var results []domain.ScoredItem
	for _, item := range kb {
		score := scoreItem(item, loweredQuery, queryTerms)
		if score > 0 {
			results = append(results, domain.ScoredItem{Item: item, RelevanceScore: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		return results[i].Item.ID < results[j].Item.ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// tokenize splits a lowercased query into its distinct word-character runs.
func tokenize(loweredQuery string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, term := range wordRunPattern.FindAllString(loweredQuery, -1) {
		terms[term] = struct{}{}
	}
	return terms
}

func scoreItem(item *domain.KnowledgeItem, loweredQuery string, queryTerms map[string]struct{}) float64 {
	relevance := 0.0

	if strings.Contains(strings.ToLower(item.Topic), loweredQuery) {
		relevance += topicWeight
	}
	if strings.Contains(strings.ToLower(item.Content), loweredQuery) {
		relevance += contentWeight
	}

	loweredKeywords := make([]string, len(item.Keywords))
	for i, kw := range item.Keywords {
		loweredKeywords[i] = strings.ToLower(kw)
	}

	keywordMatches := 0
	for term := range queryTerms {
		for _, kw := range loweredKeywords {
			if strings.Contains(kw, term) {
				keywordMatches++
				break
			}
		}
	}

	termCount := len(queryTerms)
	if termCount < 1 {
		termCount = 1
	}
	relevance += keywordWeight * float64(keywordMatches) / float64(termCount)

	return math.Round(relevance*100) / 100
}
