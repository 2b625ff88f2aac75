package invoice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tradegate/internal/invoice"
	"tradegate/internal/shipment"
	dErrors "tradegate/pkg/domain-errors"
)

var billingDay = time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	store     *invoice.InMemoryStore
	shipments *shipment.InMemoryStore
	service   *invoice.Service
	shipment  *shipment.Shipment
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = invoice.NewInMemoryStore()
	s.shipments = shipment.NewInMemoryStore()
	s.service = invoice.NewService(s.store, s.shipments,
		invoice.WithClock(func() time.Time { return billingDay }))

	shp := &shipment.Shipment{
		LicenseID:    1,
		ProductName:  "Basmati Rice",
		Quantity:     1200,
		TotalCost:    45000,
		HasInsurance: true,
		Status:       shipment.StatusReadyToShip,
	}
	id, err := s.shipments.Insert(context.Background(), shp)
	s.Require().NoError(err)
	shp.ID = id
	s.shipment = shp
}

func (s *ServiceSuite) TestCreate() {
	ctx := context.Background()

	inv, err := s.service.Create(ctx, s.shipment.ID, 45000)
	s.Require().NoError(err)

	s.NotZero(inv.ID)
	s.Equal(s.shipment.ID, inv.ShipmentID)
	s.Equal(invoice.PaymentPending, inv.PaymentStatus)
	s.True(inv.PaymentDate.IsZero())
}

func (s *ServiceSuite) TestCreateValidation() {
	ctx := context.Background()

	_, err := s.service.Create(ctx, s.shipment.ID, -1)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestCreateUnknownShipment() {
	ctx := context.Background()

	_, err := s.service.Create(ctx, 404, 100)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodePrerequisite))
}

func (s *ServiceSuite) TestCreateTwiceConflicts() {
	ctx := context.Background()

	_, err := s.service.Create(ctx, s.shipment.ID, 45000)
	s.Require().NoError(err)

	_, err = s.service.Create(ctx, s.shipment.ID, 45000)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestMarkPaid() {
	ctx := context.Background()

	created, err := s.service.Create(ctx, s.shipment.ID, 45000)
	s.Require().NoError(err)

	paid, err := s.service.MarkPaid(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(invoice.PaymentPaid, paid.PaymentStatus)
	s.Equal("2026-03-20", paid.PaymentDate.Format("2006-01-02"))
}

func (s *ServiceSuite) TestMarkPaidUnknownInvoice() {
	ctx := context.Background()

	_, err := s.service.MarkPaid(ctx, 404)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestByShipment() {
	ctx := context.Background()

	created, err := s.service.Create(ctx, s.shipment.ID, 45000)
	s.Require().NoError(err)

	got, err := s.service.ByShipment(ctx, s.shipment.ID)
	s.Require().NoError(err)
	s.Equal(created, got)

	_, err = s.service.ByShipment(ctx, 404)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
