package faq

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"tradegate/internal/platform/metrics"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/platform/sentinel"
)

// Service answers keyword FAQ queries, consulting the cache before the store.
type Service struct {
	store   Store
	cache   AnswerCache
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithCache puts an answer cache in front of the store.
func WithCache(cache AnswerCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithMetrics attaches Prometheus counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tracer: otel.Tracer("tradegate/faq"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer matches the query against stored questions, case-insensitively, and
// returns the first matching answer. When nothing matches it returns the
// fixed fallback text; only a failing store is an error.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "faq.Answer")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return "", dErrors.New(dErrors.CodeValidation, "question is required")
	}
	normalized := strings.ToLower(query)

	if s.cache != nil {
		if answer, ok := s.cache.Get(ctx, normalized); ok {
			s.metrics.IncFAQCacheHit()
			return answer, nil
		}
		s.metrics.IncFAQCacheMiss()
	}

	answer, err := s.store.FindAnswer(ctx, normalized)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return FallbackAnswer, nil
		}
		return "", dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to look up answer")
	}

	if s.cache != nil {
		s.cache.Set(ctx, normalized, answer)
	}
	return answer, nil
}

// Add stores a new FAQ entry.
func (s *Service) Add(ctx context.Context, question, answer string) (*FAQ, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "question and answer are required")
	}

	f := &FAQ{Question: question, Answer: answer}
	id, err := s.store.Add(ctx, f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to store FAQ")
	}
	f.ID = id
	return f, nil
}

// List returns every FAQ entry, ordered by id.
func (s *Service) List(ctx context.Context) ([]*FAQ, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to list FAQs")
	}
	return out, nil
}
