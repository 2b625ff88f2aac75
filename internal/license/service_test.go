package license_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tradegate/internal/exporter"
	"tradegate/internal/license"
	dErrors "tradegate/pkg/domain-errors"
)

// scriptedSource replays a fixed sequence of draws, repeating the last one
// once exhausted.
type scriptedSource struct {
	draws []int
	next  int
}

func (s *scriptedSource) Intn(int) int {
	if s.next >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	v := s.draws[s.next]
	s.next++
	return v
}

var today = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	store     *license.InMemoryStore
	exporters *exporter.InMemoryStore
	service   *license.Service
	source    *scriptedSource
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = license.NewInMemoryStore()
	s.exporters = exporter.NewInMemoryStore()
	s.source = &scriptedSource{draws: []int{0}}
	s.service = license.NewService(s.store, s.exporters,
		license.WithClock(func() time.Time { return today }),
		license.WithNumberSource(s.source),
	)
}

func (s *ServiceSuite) registerExporter(iec, country string) *exporter.Exporter {
	e := &exporter.Exporter{FirmName: "Acme Exports", IEC: iec, ContactPerson: "R. Sharma", Country: country}
	id, err := s.exporters.Create(context.Background(), e)
	s.Require().NoError(err)
	e.ID = id
	return e
}

func (s *ServiceSuite) TestIssueValidation() {
	ctx := context.Background()

	s.Run("empty IEC is rejected", func() {
		_, err := s.service.Issue(ctx, "  ", 90)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("zero expiry period is rejected", func() {
		_, err := s.service.Issue(ctx, "IEC001", 0)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("negative expiry period is rejected", func() {
		_, err := s.service.Issue(ctx, "IEC001", -30)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestIssuePrerequisite() {
	ctx := context.Background()

	_, err := s.service.Issue(ctx, "IEC404", 90)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodePrerequisite))

	// Rejection must leave no partial side effects.
	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *ServiceSuite) TestIssueSuccess() {
	ctx := context.Background()
	exp := s.registerExporter("IEC001", "India")

	l, err := s.service.Issue(ctx, "IEC001", 90)
	s.Require().NoError(err)

	s.NotZero(l.ID)
	s.Equal(exp.ID, l.ExporterID)
	s.Equal("IND-2026-10000", l.Number)
	s.Regexp(license.NumberPattern, l.Number)
	s.Equal("2026-03-15", l.IssueDate.Format("2006-01-02"))
	s.Equal("2026-06-13", l.ExpiryDate.Format("2006-01-02"))
	s.Equal(90*24*time.Hour, l.ExpiryDate.Sub(l.IssueDate))
	s.Equal("/signatures/1.png", l.SignatureRef)
}

func (s *ServiceSuite) TestIssueShortCountryFallsBack() {
	ctx := context.Background()
	s.registerExporter("IEC002", "UK")

	l, err := s.service.Issue(ctx, "IEC002", 30)
	s.Require().NoError(err)
	s.Equal("GEN-2026-10000", l.Number)
}

func (s *ServiceSuite) TestIssueRedrawsOnCollision() {
	ctx := context.Background()
	exp := s.registerExporter("IEC003", "India")

	// Occupy the number the first two draws will produce.
	_, err := s.store.Create(ctx, &license.License{
		ExporterID: exp.ID,
		Number:     "IND-2026-10000",
		IssueDate:  license.DateOf(today),
		ExpiryDate: license.DateOf(today).AddDate(0, 0, 10),
	})
	s.Require().NoError(err)

	s.source.draws = []int{0, 0, 1}
	l, err := s.service.Issue(ctx, "IEC003", 90)
	s.Require().NoError(err)
	s.Equal("IND-2026-10001", l.Number)
}

func (s *ServiceSuite) TestIssueGivesUpAfterRepeatedCollisions() {
	ctx := context.Background()
	exp := s.registerExporter("IEC004", "India")

	_, err := s.store.Create(ctx, &license.License{
		ExporterID: exp.ID,
		Number:     "IND-2026-10000",
		IssueDate:  license.DateOf(today),
		ExpiryDate: license.DateOf(today).AddDate(0, 0, 10),
	})
	s.Require().NoError(err)

	s.source.draws = []int{0}
	_, err = s.service.Issue(ctx, "IEC004", 90)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeDuplicate))
	s.True(dErrors.Retryable(err))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *ServiceSuite) TestIssueRoundTrip() {
	ctx := context.Background()
	s.registerExporter("IEC005", "Brazil")

	issued, err := s.service.Issue(ctx, "IEC005", 365)
	s.Require().NoError(err)

	reread, err := s.service.ByNumber(ctx, issued.Number)
	s.Require().NoError(err)
	s.Equal(issued, reread)
}

func (s *ServiceSuite) TestCheckValidity() {
	ctx := context.Background()
	exp := s.registerExporter("IEC006", "India")

	seed := func(number string, expiry time.Time) {
		_, err := s.store.Create(ctx, &license.License{
			ExporterID: exp.ID,
			Number:     number,
			IssueDate:  license.DateOf(today).AddDate(-1, 0, 0),
			ExpiryDate: expiry,
		})
		s.Require().NoError(err)
	}

	s.Run("unknown number is not found, not invalid", func() {
		_, err := s.service.CheckValidity(ctx, "IND-2026-99999")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("expiring today is still valid", func() {
		seed("IND-2026-11111", license.DateOf(today))
		report, err := s.service.CheckValidity(ctx, "IND-2026-11111")
		s.Require().NoError(err)
		s.True(report.Valid)
		s.Equal(license.DateOf(today), report.ExpiryDate)
	})

	s.Run("expired yesterday is invalid", func() {
		seed("IND-2026-22222", license.DateOf(today).AddDate(0, 0, -1))
		report, err := s.service.CheckValidity(ctx, "IND-2026-22222")
		s.Require().NoError(err)
		s.False(report.Valid)
	})

	s.Run("blank number is rejected", func() {
		_, err := s.service.CheckValidity(ctx, "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
