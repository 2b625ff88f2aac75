package faq_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tradegate/internal/faq"
	dErrors "tradegate/pkg/domain-errors"
)

// fakeCache is an in-process AnswerCache that can be switched off to mimic an
// unreachable Redis.
type fakeCache struct {
	entries map[string]string
	down    bool
	hits    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, query string) (string, bool) {
	if c.down {
		return "", false
	}
	answer, ok := c.entries[query]
	if ok {
		c.hits++
	}
	return answer, ok
}

func (c *fakeCache) Set(_ context.Context, query, answer string) {
	if c.down {
		return
	}
	c.sets++
	c.entries[query] = answer
}

type ServiceSuite struct {
	suite.Suite
	store   *faq.InMemoryStore
	cache   *fakeCache
	service *faq.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = faq.NewInMemoryStore()
	s.cache = newFakeCache()
	s.service = faq.NewService(s.store, faq.WithCache(s.cache))

	ctx := context.Background()
	_, err := s.store.Add(ctx, &faq.FAQ{
		Question: "How do I renew my export license?",
		Answer:   "Submit a renewal application before the expiry date.",
	})
	s.Require().NoError(err)
	_, err = s.store.Add(ctx, &faq.FAQ{
		Question: "What documents are needed for customs clearance?",
		Answer:   "Commercial invoice, packing list and the export license.",
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestAnswerMatchesCaseInsensitively() {
	answer, err := s.service.Answer(context.Background(), "RENEW MY EXPORT LICENSE")
	s.Require().NoError(err)
	s.Equal("Submit a renewal application before the expiry date.", answer)
}

func (s *ServiceSuite) TestAnswerFirstMatchWins() {
	answer, err := s.service.Answer(context.Background(), "license")
	s.Require().NoError(err)
	s.Equal("Submit a renewal application before the expiry date.", answer)
}

func (s *ServiceSuite) TestAnswerFallsBackWhenNothingMatches() {
	answer, err := s.service.Answer(context.Background(), "tariff codes")
	s.Require().NoError(err)
	s.Equal(faq.FallbackAnswer, answer)
}

func (s *ServiceSuite) TestAnswerRejectsBlankQuestion() {
	_, err := s.service.Answer(context.Background(), "   ")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestAnswerIsCached() {
	ctx := context.Background()

	_, err := s.service.Answer(ctx, "customs clearance")
	s.Require().NoError(err)
	s.Equal(1, s.cache.sets)
	s.Equal(0, s.cache.hits)

	answer, err := s.service.Answer(ctx, "customs clearance")
	s.Require().NoError(err)
	s.Equal("Commercial invoice, packing list and the export license.", answer)
	s.Equal(1, s.cache.hits)
}

func (s *ServiceSuite) TestFallbackIsNotCached() {
	ctx := context.Background()

	_, err := s.service.Answer(ctx, "tariff codes")
	s.Require().NoError(err)
	s.Equal(0, s.cache.sets)
}

func (s *ServiceSuite) TestAnswerSurvivesCacheOutage() {
	s.cache.down = true

	answer, err := s.service.Answer(context.Background(), "customs clearance")
	s.Require().NoError(err)
	s.Equal("Commercial invoice, packing list and the export license.", answer)
}

func (s *ServiceSuite) TestAnswerWithoutCache() {
	service := faq.NewService(s.store)

	answer, err := service.Answer(context.Background(), "renew")
	s.Require().NoError(err)
	s.Equal("Submit a renewal application before the expiry date.", answer)
}
