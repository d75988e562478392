package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	id "leadengine/pkg/domain"
	"leadengine/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestGetSetDelete() {
	s.Run("missing key returns ErrNotFound", func() {
		_, err := s.store.Get(s.ctx, "absent")
		s.True(errors.Is(err, sentinel.ErrNotFound))
	})

	s.Run("set overwrites", func() {
		s.Require().NoError(s.store.Set(s.ctx, "k", "v1"))
		s.Require().NoError(s.store.Set(s.ctx, "k", "v2"))
		got, err := s.store.Get(s.ctx, "k")
		s.Require().NoError(err)
		s.Equal("v2", got)
	})

	s.Run("delete removes", func() {
		s.Require().NoError(s.store.Set(s.ctx, "gone", "x"))
		s.Require().NoError(s.store.Delete(s.ctx, "gone"))
		_, err := s.store.Get(s.ctx, "gone")
		s.True(errors.Is(err, sentinel.ErrNotFound))
	})
}

func (s *InMemoryStoreSuite) TestScopedIsolation() {
	alice := Scoped(s.store, id.NewVisitorID())
	bob := Scoped(s.store, id.NewVisitorID())

	s.Require().NoError(alice.Set(s.ctx, "satlink_visited", "true"))

	got, err := alice.Get(s.ctx, "satlink_visited")
	s.Require().NoError(err)
	s.Equal("true", got)

	_, err = bob.Get(s.ctx, "satlink_visited")
	s.True(errors.Is(err, sentinel.ErrNotFound), "scopes must not leak between visitors")
	s.Equal(1, s.store.Len())
}

func (s *InMemoryStoreSuite) TestClear() {
	s.Require().NoError(s.store.Set(s.ctx, "a", "1"))
	s.store.Clear()
	s.Equal(0, s.store.Len())
}

func (s *InMemoryStoreSuite) TestUnavailableStore() {
	var store Store = UnavailableStore{}
	_, err := store.Get(s.ctx, "x")
	s.True(errors.Is(err, sentinel.ErrUnavailable))
	s.True(errors.Is(store.Set(s.ctx, "x", "y"), sentinel.ErrUnavailable))
	s.True(errors.Is(store.Delete(s.ctx, "x"), sentinel.ErrUnavailable))
}
