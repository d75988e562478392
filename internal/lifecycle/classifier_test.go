package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"leadengine/internal/storage"
)

type ClassifierSuite struct {
	suite.Suite
	kv         *storage.InMemoryStore
	classifier *Classifier
	ctx        context.Context
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

func (s *ClassifierSuite) SetupTest() {
	s.kv = storage.NewInMemoryStore()
	s.classifier = New(s.kv, nil)
	s.ctx = context.Background()
}

func (s *ClassifierSuite) TestClassify() {
	s.Run("first ask is new and marks the visitor as seen", func() {
		s.Equal(StageNew, s.classifier.Classify(s.ctx))
		v, err := s.kv.Get(s.ctx, KeyVisited)
		s.Require().NoError(err)
		s.Equal("true", v)
	})

	s.Run("second ask is returning", func() {
		s.Equal(StageReturning, s.classifier.Classify(s.ctx))
	})

	s.Run("lead flag wins over visited", func() {
		s.classifier.PromoteToLead(s.ctx, "lead-1")
		s.Equal(StageLead, s.classifier.Classify(s.ctx))
	})

	s.Run("customer flag wins over lead", func() {
		s.classifier.PromoteToCustomer(s.ctx, "cust-1")
		s.Equal(StageCustomer, s.classifier.Classify(s.ctx))
	})
}

func (s *ClassifierSuite) TestPromotionNeverRegresses() {
	s.Run("lead promotion after customer stays customer", func() {
		s.classifier.PromoteToCustomer(s.ctx, "cust-1")
		s.classifier.PromoteToLead(s.ctx, "lead-2")
		s.Equal(StageCustomer, s.classifier.Classify(s.ctx))
	})

	s.Run("lead without a visited flag is still lead", func() {
		s.kv.Clear()
		s.classifier.PromoteToLead(s.ctx, "lead-1")
		s.Equal(StageLead, s.classifier.Classify(s.ctx))
	})

	s.Run("customer without prior lead is customer", func() {
		s.kv.Clear()
		s.classifier.PromoteToCustomer(s.ctx, "cust-9")
		snap := s.classifier.Snapshot(s.ctx)
		s.Equal(StageCustomer, snap.Stage)
		s.Equal("cust-9", snap.CustomerID)
		s.Empty(snap.LeadID)
	})

	s.Run("promotions are idempotent", func() {
		s.kv.Clear()
		s.classifier.PromoteToLead(s.ctx, "lead-1")
		s.classifier.PromoteToLead(s.ctx, "lead-1")
		snap := s.classifier.Snapshot(s.ctx)
		s.Equal(StageLead, snap.Stage)
		s.Equal("lead-1", snap.LeadID)
	})

	s.Run("empty ids are ignored", func() {
		s.kv.Clear()
		s.classifier.PromoteToLead(s.ctx, "")
		s.classifier.PromoteToCustomer(s.ctx, "")
		s.Equal(StageNew, s.classifier.Classify(s.ctx))
	})
}

func (s *ClassifierSuite) TestEmptyStoredValueIsAbsent() {
	s.Require().NoError(s.kv.Set(s.ctx, KeyCustomerID, ""))
	s.Require().NoError(s.kv.Set(s.ctx, KeyVisited, "true"))
	s.Equal(StageReturning, s.classifier.Classify(s.ctx))
}

func (s *ClassifierSuite) TestUnavailableStorageDegradesToNew() {
	classifier := New(storage.UnavailableStore{}, nil)

	s.NotPanics(func() {
		classifier.PromoteToLead(s.ctx, "lead-1")
		classifier.PromoteToCustomer(s.ctx, "cust-1")
	})
	s.Equal(StageNew, classifier.Classify(s.ctx))
	s.Equal(StageNew, classifier.Classify(s.ctx), "nothing is remembered without storage")
}

func (s *ClassifierSuite) TestStageOrdering() {
	s.True(StageCustomer.AtLeast(StageLead))
	s.True(StageLead.AtLeast(StageReturning))
	s.True(StageReturning.AtLeast(StageNew))
	s.False(StageNew.AtLeast(StageReturning))
	s.True(StageLead.AtLeast(StageLead))
	s.False(Stage("vip").IsValid())
	s.Equal(-1, Stage("vip").Rank())
}
