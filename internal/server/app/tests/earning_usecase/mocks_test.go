package earningusecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"worklog/internal/server/domain/entities"
)

type mockEarningRepository struct {
	mock.Mock
}

func (m *mockEarningRepository) Upsert(ctx context.Context, earning *entities.DailyEarning) (*entities.DailyEarning, error) {
	args := m.Called(ctx, earning)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DailyEarning), args.Error(1)
}

func (m *mockEarningRepository) ListByRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.DailyEarning, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DailyEarning), args.Error(1)
}

func (m *mockEarningRepository) SumByRange(ctx context.Context, userID int64, from, to time.Time) (*entities.MonthlySummary, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MonthlySummary), args.Error(1)
}

// fakeCache - кэш в памяти для тестов.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	err     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *fakeCache) Close() error { return nil }

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
