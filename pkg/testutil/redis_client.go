package testutil

import (
	"context"
	"time"
)

type MockRedisClient struct {
	ExistFunc func(ctx context.Context, key string) (bool, error)
	GetFunc   func(ctx context.Context, key string) (string, error)
	SetFunc   func(ctx context.Context, key, value string, expiration time.Duration) error
	DelFunc   func(ctx context.Context, keys ...string) error
	MGetFunc  func(ctx context.Context, keys ...string) ([]any, error)
	MSetFunc  func(ctx context.Context, values map[string]string) error
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", redisNil{}
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}

	return nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}

	return nil
}

func (m *MockRedisClient) MGet(ctx context.Context, keys ...string) ([]any, error) {
	if m.MGetFunc != nil {
		return m.MGetFunc(ctx, keys...)
	}

	return nil, nil
}

func (m *MockRedisClient) MSet(ctx context.Context, values map[string]string) error {
	if m.MSetFunc != nil {
		return m.MSetFunc(ctx, values)
	}

	return nil
}

type redisNil struct{}

func (redisNil) Error() string {
	return "redis: nil"
}
