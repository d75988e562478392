package checker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"leadengine/internal/analytics"
	"leadengine/internal/analytics/events"
	"leadengine/internal/analytics/sink"
	"leadengine/internal/checker"
	"leadengine/internal/checker/mocks"
	"leadengine/internal/eligibility"
	"leadengine/internal/lookup"
	"leadengine/internal/storage"
	dErrors "leadengine/pkg/domain-errors"
)

// =============================================================================
// Checker Test Suite
// =============================================================================
// The checker sequences validation, the coverage lookup, history recording
// and the funnel events. Tests pin the transition order and the event order.

type CheckerSuite struct {
	suite.Suite
	ctx         context.Context
	ctrl        *gomock.Controller
	mockLookup  *mocks.MockAvailabilityLookup
	queue       *sink.Queue
	kv          storage.Store
	history     *lookup.Store
	transitions []checker.Status
	mu          sync.Mutex
	checker     *checker.Checker
}

func TestCheckerSuite(t *testing.T) {
	suite.Run(t, new(CheckerSuite))
}

func (s *CheckerSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockLookup = mocks.NewMockAvailabilityLookup(s.ctrl)
	s.queue = sink.NewQueue(0)
	s.kv = storage.NewInMemoryStore()
	s.history = lookup.Load(s.ctx, s.kv, nil)
	s.transitions = nil

	var err error
	s.checker, err = checker.New(
		eligibility.Default(),
		s.mockLookup,
		s.history,
		analytics.NewEmitter(s.queue),
		checker.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		checker.WithTransitionObserver(func(_, to checker.Status) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.transitions = append(s.transitions, to)
		}),
	)
	s.Require().NoError(err)
}

func (s *CheckerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CheckerSuite) funnel() []events.Event {
	var out []events.Event
	for _, r := range s.queue.Records() {
		if r.Name() == events.NameServiceAreaCheck {
			out = append(out, r)
		}
	}
	return out
}

func (s *CheckerSuite) TestNew() {
	s.Run("missing collaborators are rejected", func() {
		_, err := checker.New(nil, s.mockLookup, s.history, analytics.NewEmitter(nil))
		s.ErrorContains(err, "eligibility set is required")

		_, err = checker.New(eligibility.Default(), nil, s.history, analytics.NewEmitter(nil))
		s.ErrorContains(err, "availability lookup is required")

		_, err = checker.New(eligibility.Default(), s.mockLookup, nil, analytics.NewEmitter(nil))
		s.ErrorContains(err, "lookup history is required")

		_, err = checker.New(eligibility.Default(), s.mockLookup, s.history, nil)
		s.ErrorContains(err, "emitter is required")
	})

	s.Run("starts idle", func() {
		s.Equal(checker.StatusIdle, s.checker.Status())
		_, ok := s.checker.Last()
		s.False(ok)
	})
}

func (s *CheckerSuite) TestServiceableCode() {
	s.mockLookup.EXPECT().
		Lookup(gomock.Any(), eligibility.PostalCode("22030"), true).
		Return(checker.Availability{Serviceable: true, InstallWindow: checker.NextDayInstall}, nil)

	res, err := s.checker.Check(s.ctx, "22030")
	s.Require().NoError(err)

	s.Equal(checker.StatusAvailable, res.Status)
	s.Equal(checker.NextDayInstall, res.InstallWindow)
	s.Empty(res.WaitTime)
	s.Equal([]checker.Status{checker.StatusLoading, checker.StatusAvailable}, s.transitions)
	s.Equal(checker.StatusAvailable, s.checker.Status())
	s.Equal("22030", s.history.List()[0])

	funnel := s.funnel()
	s.Require().Len(funnel, 3)
	for i, action := range []events.CheckAction{events.CheckStart, events.CheckSubmit, events.CheckResultView} {
		s.Equal(string(action), funnel[i][events.KeyAction])
		s.Equal("22030", funnel[i][events.KeyZipCode])
	}
	s.NotContains(funnel[0], events.KeyResult)
	s.Equal(events.ResultAvailable, funnel[1][events.KeyResult])
	s.Equal(events.ResultAvailable, funnel[2][events.KeyResult])
	s.Equal(events.ServiceAreaSubmitValue, funnel[1][events.KeyValue])
	s.Equal(events.ServiceAreaStepValue, funnel[2][events.KeyValue])
}

func (s *CheckerSuite) TestWaitlistedCode() {
	s.mockLookup.EXPECT().
		Lookup(gomock.Any(), eligibility.PostalCode("00000"), false).
		Return(checker.Availability{WaitTime: checker.WaitlistWaitTime}, nil)

	res, err := s.checker.Check(s.ctx, "00000")
	s.Require().NoError(err)

	s.Equal(checker.StatusWaitlisted, res.Status)
	s.False(res.Serviceable)
	s.Equal([]checker.Status{checker.StatusLoading, checker.StatusWaitlisted}, s.transitions)

	funnel := s.funnel()
	s.Require().Len(funnel, 3)
	for _, e := range funnel[1:] {
		s.Equal(events.ResultWaitlist, e[events.KeyResult])
		s.NotEmpty(e[events.KeyWaitTime])
		s.Equal("00000", e[events.KeyZipCode])
	}
}

func (s *CheckerSuite) TestWaitlistFallsBackToDefaultWaitTime() {
	s.mockLookup.EXPECT().
		Lookup(gomock.Any(), gomock.Any(), false).
		Return(checker.Availability{}, nil)

	res, err := s.checker.Check(s.ctx, "00000")
	s.Require().NoError(err)
	s.Equal(checker.WaitlistWaitTime, res.WaitTime)
}

func (s *CheckerSuite) TestMalformedInput() {
	for _, raw := range []string{"abc", "", "2203", "220301", "22 30"} {
		s.Run(raw, func() {
			_, err := s.checker.Check(s.ctx, raw)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
			de, _ := dErrors.As(err)
			s.Equal(eligibility.InvalidPostalCodeMessage, de.Message)
		})
	}

	s.Empty(s.transitions)
	s.Zero(s.queue.Len())
	s.Zero(s.history.Len())
	s.Equal(checker.StatusIdle, s.checker.Status())
}

func (s *CheckerSuite) TestLookupFailureRecoversToIdle() {
	s.mockLookup.EXPECT().
		Lookup(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(checker.Availability{}, errors.New("coverage api down"))

	_, err := s.checker.Check(s.ctx, "22030")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	de, _ := dErrors.As(err)
	s.Equal(checker.ServiceErrorMessage, de.Message)

	s.Equal([]checker.Status{checker.StatusLoading, checker.StatusError, checker.StatusIdle}, s.transitions)
	s.Equal(checker.StatusIdle, s.checker.Status())
	s.Zero(s.history.Len(), "failed lookups are not recorded")
	s.Equal([]string{events.NameServiceAreaCheck, events.NameErrorTracking}, s.queue.Names())

	tracked := s.queue.Records()[1]
	s.Equal(events.NameServiceAreaCheck, tracked[events.KeyErrorType])
	s.Equal(checker.ErrorLocation, tracked[events.KeyErrorLocation])
}

func (s *CheckerSuite) TestResubmitAfterResult() {
	gomock.InOrder(
		s.mockLookup.EXPECT().Lookup(gomock.Any(), eligibility.PostalCode("22030"), true).
			Return(checker.Availability{Serviceable: true}, nil),
		s.mockLookup.EXPECT().Lookup(gomock.Any(), eligibility.PostalCode("00000"), false).
			Return(checker.Availability{WaitTime: "3 weeks"}, nil),
	)

	_, err := s.checker.Check(s.ctx, "22030")
	s.Require().NoError(err)
	s.checker.Reset()
	_, ok := s.checker.Last()
	s.False(ok)

	res, err := s.checker.Check(s.ctx, "00000")
	s.Require().NoError(err)
	s.Equal("3 weeks", res.WaitTime)
	s.Equal([]string{"00000", "22030"}, s.history.List())
	s.Equal([]checker.Status{
		checker.StatusLoading, checker.StatusAvailable,
		checker.StatusIdle,
		checker.StatusLoading, checker.StatusWaitlisted,
	}, s.transitions)
}

func (s *CheckerSuite) TestHistoryPersistsAcrossLoads() {
	s.mockLookup.EXPECT().Lookup(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(checker.Availability{Serviceable: true}, nil).Times(2)

	_, err := s.checker.Check(s.ctx, "22030")
	s.Require().NoError(err)
	_, err = s.checker.Check(s.ctx, " 20151 ")
	s.Require().NoError(err)

	reloaded := lookup.Load(s.ctx, s.kv, nil)
	s.Equal([]string{"20151", "22030"}, reloaded.List())
}
