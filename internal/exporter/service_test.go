package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "tradegate/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.service = NewService(s.store)
}

func (s *ServiceSuite) TestRegister() {
	ctx := context.Background()

	s.Run("missing firm name is rejected", func() {
		_, err := s.service.Register(ctx, RegisterInput{IEC: "IEC001", Country: "India"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("missing IEC is rejected", func() {
		_, err := s.service.Register(ctx, RegisterInput{FirmName: "Acme Exports", Country: "India"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("valid input returns a populated exporter", func() {
		e, err := s.service.Register(ctx, RegisterInput{
			FirmName:      "Acme Exports",
			IEC:           "IEC001",
			ContactPerson: "R. Sharma",
			Country:       "India",
		})
		s.Require().NoError(err)
		s.NotZero(e.ID)
		s.Equal("IEC001", e.IEC)
	})

	s.Run("duplicate IEC returns conflict", func() {
		_, err := s.service.Register(ctx, RegisterInput{
			FirmName: "Shadow Corp",
			IEC:      "IEC001",
			Country:  "India",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestByIEC() {
	ctx := context.Background()

	s.Run("unknown IEC returns not found", func() {
		_, err := s.service.ByIEC(ctx, "IEC404")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("registered IEC resolves", func() {
		created, err := s.service.Register(ctx, RegisterInput{
			FirmName: "Acme Exports",
			IEC:      "IEC002",
			Country:  "India",
		})
		s.Require().NoError(err)

		found, err := s.service.ByIEC(ctx, "IEC002")
		s.Require().NoError(err)
		s.Equal(created.ID, found.ID)
		s.Equal("Acme Exports", found.FirmName)
	})

	s.Run("blank IEC is rejected", func() {
		_, err := s.service.ByIEC(ctx, "  ")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
