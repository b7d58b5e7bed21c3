package testutil

import (
	"context"
	"errors"

	"github.com/tickex-lab/backend/internal/domain/search"
)

type MockSearchCaller struct {
	IndexEventFunc  func(ctx context.Context, id string, data search.EventData) error
	IndexUserFunc   func(ctx context.Context, id string, data search.UserData) error
	DeleteEventFunc func(ctx context.Context, id string) error
	SearchEventFunc func(ctx context.Context, query string, offset, limit int) ([]string, error)
}

func (c *MockSearchCaller) IndexEvent(ctx context.Context, id string, data search.EventData) error {
	if c.IndexEventFunc != nil {
		return c.IndexEventFunc(ctx, id, data)
	}

	return nil
}

func (c *MockSearchCaller) IndexUser(ctx context.Context, id string, data search.UserData) error {
	if c.IndexUserFunc != nil {
		return c.IndexUserFunc(ctx, id, data)
	}

	return nil
}

func (c *MockSearchCaller) DeleteEvent(ctx context.Context, id string) error {
	if c.DeleteEventFunc != nil {
		return c.DeleteEventFunc(ctx, id)
	}

	return nil
}

func (c *MockSearchCaller) SearchEvent(
	ctx context.Context, query string, offset, limit int,
) ([]string, error) {
	if c.SearchEventFunc != nil {
		return c.SearchEventFunc(ctx, query, offset, limit)
	}

	return nil, errors.New("not implemented")
}

func (c *MockSearchCaller) Close() {}
