package reminder_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"tradegate/internal/license"
	"tradegate/internal/reminder"
	dErrors "tradegate/pkg/domain-errors"
)

var scanDay = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

type ScannerSuite struct {
	suite.Suite
	store   *license.InMemoryStore
	scanner *reminder.Scanner
}

func TestScannerSuite(t *testing.T) {
	suite.Run(t, new(ScannerSuite))
}

func (s *ScannerSuite) SetupTest() {
	s.store = license.NewInMemoryStore()
	s.scanner = reminder.NewScanner(s.store,
		reminder.WithClock(func() time.Time { return scanDay }))
}

func (s *ScannerSuite) seed(number string, exporterID int64, daysToExpiry int) {
	_, err := s.store.Create(context.Background(), &license.License{
		ExporterID: exporterID,
		Number:     number,
		IssueDate:  license.DateOf(scanDay).AddDate(0, -6, 0),
		ExpiryDate: license.DateOf(scanDay).AddDate(0, 0, daysToExpiry),
	})
	s.Require().NoError(err)
}

func (s *ScannerSuite) TestScanPicksOnlyLicensesInsideHorizon() {
	ctx := context.Background()

	s.seed("IND-2026-10000", 1, 10)
	s.seed("IND-2026-20000", 2, 40)

	facts, err := s.scanner.Scan(ctx, 30)
	s.Require().NoError(err)
	s.Require().Len(facts, 1)

	fact := facts[0]
	s.Equal("IND-2026-10000", fact.LicenseNumber)
	s.Equal(int64(1), fact.ExporterID)
	s.Equal(10, fact.RemainingDays)
	s.Equal(license.DateOf(scanDay).AddDate(0, 0, 10), fact.ExpiryDate)
}

func (s *ScannerSuite) TestScanBoundariesAreInclusive() {
	ctx := context.Background()

	s.seed("IND-2026-10000", 1, 0)
	s.seed("IND-2026-20000", 2, 30)
	s.seed("IND-2026-30000", 3, 31)
	s.seed("IND-2026-40000", 4, -1)

	facts, err := s.scanner.Scan(ctx, 30)
	s.Require().NoError(err)
	s.Require().Len(facts, 2)
	s.Equal("IND-2026-10000", facts[0].LicenseNumber)
	s.Equal(0, facts[0].RemainingDays)
	s.Equal("IND-2026-20000", facts[1].LicenseNumber)
	s.Equal(30, facts[1].RemainingDays)
}

func (s *ScannerSuite) TestScanEmptyWindow() {
	facts, err := s.scanner.Scan(context.Background(), 30)
	s.Require().NoError(err)
	s.Empty(facts)
}

func (s *ScannerSuite) TestScanIsIdempotent() {
	ctx := context.Background()
	s.seed("IND-2026-10000", 1, 5)

	first, err := s.scanner.Scan(ctx, 30)
	s.Require().NoError(err)
	second, err := s.scanner.Scan(ctx, 30)
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ScannerSuite) TestScanRejectsNegativeHorizon() {
	_, err := s.scanner.Scan(context.Background(), -1)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestFactMessage(t *testing.T) {
	fact := reminder.Fact{
		LicenseNumber: "IND-2026-10000",
		ExporterID:    7,
		RemainingDays: 10,
		ExpiryDate:    time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t,
		"REMINDER: License IND-2026-10000 (Exporter ID: 7) will expire in 10 days (2026-03-25). Please renew immediately.",
		fact.Message())
}

// capturePublisher records published facts and can fail on demand.
type capturePublisher struct {
	mu     sync.Mutex
	facts  []reminder.Fact
	failOn string
}

func (p *capturePublisher) Publish(_ context.Context, fact reminder.Fact) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if fact.LicenseNumber == p.failOn {
		return io.ErrClosedPipe
	}
	p.facts = append(p.facts, fact)
	return nil
}

func TestAdvisorSweep(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := license.NewInMemoryStore()
	scanner := reminder.NewScanner(store,
		reminder.WithClock(func() time.Time { return scanDay }))

	seed := func(number string, days int) {
		_, err := store.Create(ctx, &license.License{
			ExporterID: 1,
			Number:     number,
			IssueDate:  license.DateOf(scanDay),
			ExpiryDate: license.DateOf(scanDay).AddDate(0, 0, days),
		})
		require.NoError(t, err)
	}
	seed("IND-2026-10000", 5)
	seed("IND-2026-20000", 10)
	seed("IND-2026-30000", 60)

	t.Run("publishes one fact per expiring license", func(t *testing.T) {
		pub := &capturePublisher{}
		advisor := reminder.NewAdvisor(scanner, pub, logger, 30, time.Hour)

		require.NoError(t, advisor.Sweep(ctx))
		require.Len(t, pub.facts, 2)
		assert.Equal(t, "IND-2026-10000", pub.facts[0].LicenseNumber)
		assert.Equal(t, "IND-2026-20000", pub.facts[1].LicenseNumber)
	})

	t.Run("a failed publish does not stop the sweep", func(t *testing.T) {
		pub := &capturePublisher{failOn: "IND-2026-10000"}
		advisor := reminder.NewAdvisor(scanner, pub, logger, 30, time.Hour)

		require.NoError(t, advisor.Sweep(ctx))
		require.Len(t, pub.facts, 1)
		assert.Equal(t, "IND-2026-20000", pub.facts[0].LicenseNumber)
	})

	t.Run("run stops when the context is cancelled", func(t *testing.T) {
		pub := &capturePublisher{}
		advisor := reminder.NewAdvisor(scanner, pub, logger, 30, 10*time.Millisecond)

		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- advisor.Run(runCtx) }()

		time.Sleep(30 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("advisor did not stop after cancel")
		}

		pub.mu.Lock()
		defer pub.mu.Unlock()
		assert.GreaterOrEqual(t, len(pub.facts), 2)
	})
}
