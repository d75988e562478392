package leads

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"leadengine/internal/analytics"
	"leadengine/internal/analytics/events"
	"leadengine/internal/analytics/sink"
	"leadengine/internal/lifecycle"
	"leadengine/internal/storage"
	dErrors "leadengine/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	queue     *sink.Queue
	lifecycle *lifecycle.Classifier
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.queue = sink.NewQueue(0)
	s.lifecycle = lifecycle.New(storage.NewInMemoryStore(), nil)

	var err error
	s.service, err = New(analytics.NewEmitter(s.queue))
	s.Require().NoError(err)
}

func validSubmission() Submission {
	return Submission{
		Name:         "Dana Whitfield",
		Email:        "dana@example.com",
		Phone:        "(703) 555-0142",
		ZipCode:      "22030",
		FormLocation: "hero",
	}
}

func (s *ServiceSuite) TestNewRequiresEmitter() {
	_, err := New(nil)
	s.ErrorContains(err, "emitter is required")
}

func (s *ServiceSuite) TestSubmitPromotesAndEmits() {
	lead, err := s.service.Submit(s.ctx, s.lifecycle, validSubmission())
	s.Require().NoError(err)

	_, parseErr := uuid.Parse(lead.ID)
	s.NoError(parseErr)
	s.Equal(lifecycle.StageLead, lead.Stage)
	s.Equal(lead.ID, s.lifecycle.Snapshot(s.ctx).LeadID)

	records := s.queue.Records()
	s.Require().Len(records, 1)
	e := records[0]
	s.Equal(events.NameGenerateLead, e.Name())
	s.Equal(DefaultFormName, e[events.KeyFormName])
	s.Equal(DefaultServiceType, e[events.KeyServiceType])
	s.Equal("hero", e[events.KeyFormLocation])
	s.Equal("22030", e[events.KeyZipCode])
	s.Equal(events.LeadFormValue, e[events.KeyValue])
}

func (s *ServiceSuite) TestSubmitRejectsInvalid() {
	sub := validSubmission()
	sub.Name = "D"
	sub.Email = "not-an-email"

	_, err := s.service.Submit(s.ctx, s.lifecycle, sub)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Contains(err.Error(), "Name is required")
	s.Contains(err.Error(), "Valid email is required")
	s.Zero(s.queue.Len())
	s.Equal(lifecycle.StageNew, s.lifecycle.Classify(s.ctx))
}

func (s *ServiceSuite) TestCustomerStaysCustomerAfterLead() {
	_, err := s.service.Convert(s.ctx, s.lifecycle, "cust-881")
	s.Require().NoError(err)

	lead, err := s.service.Submit(s.ctx, s.lifecycle, validSubmission())
	s.Require().NoError(err)
	s.Equal(lifecycle.StageCustomer, lead.Stage)
}

func (s *ServiceSuite) TestConvert() {
	s.Run("explicit id", func() {
		snap, err := s.service.Convert(s.ctx, s.lifecycle, " cust-42 ")
		s.Require().NoError(err)
		s.Equal(lifecycle.StageCustomer, snap.Stage)
		s.Equal("cust-42", snap.CustomerID)
	})

	s.Run("minted id", func() {
		lc := lifecycle.New(storage.NewInMemoryStore(), nil)
		snap, err := s.service.Convert(s.ctx, lc, "")
		s.Require().NoError(err)
		s.NotEmpty(snap.CustomerID)
	})
}
