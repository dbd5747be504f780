package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RedisSuite struct {
	suite.Suite
	cache *Cache
}

// Set ARCANUM_TEST_REDIS_ADDR (host:port) to run against a live server.
func TestRedisSuite(t *testing.T) {
	addr := os.Getenv("ARCANUM_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ARCANUM_TEST_REDIS_ADDR not set")
	}
	suite.Run(t, &RedisSuite{})
}

func (s *RedisSuite) SetupTest() {
	c, err := New(Options{Addr: os.Getenv("ARCANUM_TEST_REDIS_ADDR"), Namespace: "arcanum-test:"})
	s.Require().NoError(err)
	s.cache = c
	s.Require().NoError(c.Flush(context.Background()))
}

func (s *RedisSuite) TearDownTest() {
	_ = s.cache.Flush(context.Background())
	_ = s.cache.Close()
}

func (s *RedisSuite) TestSetGetDelete() {
	ctx := context.Background()

	s.Require().NoError(s.cache.Set(ctx, "cards.all|en", []byte("[]"), time.Minute))
	v, ok, err := s.cache.Get(ctx, "cards.all|en")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]byte("[]"), v)

	s.Require().NoError(s.cache.Delete(ctx, "cards.all|en"))
	_, ok, err = s.cache.Get(ctx, "cards.all|en")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisSuite) TestDeletePrefix() {
	ctx := context.Background()
	for _, k := range []string{"cards.all|en", "cards.key|ar00|es", "tutorials.all|en"} {
		s.Require().NoError(s.cache.Set(ctx, k, []byte("v"), 0))
	}

	s.Require().NoError(s.cache.DeletePrefix(ctx, "cards."))

	_, ok, err := s.cache.Get(ctx, "cards.key|ar00|es")
	s.Require().NoError(err)
	s.False(ok)
	_, ok, err = s.cache.Get(ctx, "tutorials.all|en")
	s.Require().NoError(err)
	s.True(ok)
}

func TestNewFailsWithoutServer(t *testing.T) {
	_, err := New(Options{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Fatal("expected connection error")
	}
}
