package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/tickex-lab/backend/internal/domain/search"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

type SearchCaller interface {
	IndexEvent(ctx context.Context, id string, data search.EventData) error
	IndexUser(ctx context.Context, id string, data search.UserData) error
	DeleteEvent(ctx context.Context, id string) error
	SearchEvent(ctx context.Context, query string, offset, limit int) ([]string, error)
	Close()
}

type searchCaller struct {
	client *rpc.Client
}

func NewSearchCaller(client *rpc.Client) *searchCaller {
	return &searchCaller{client: client}
}

func (c *searchCaller) IndexEvent(ctx context.Context, id string, data search.EventData) error {
	return c.client.CallContext(ctx, nil, c.fname(ctx, "index"), search.EventDoc, id, data)
}

func (c *searchCaller) IndexUser(ctx context.Context, id string, data search.UserData) error {
	return c.client.CallContext(ctx, nil, c.fname(ctx, "index"), search.UserDoc, id, data)
}

func (c *searchCaller) DeleteEvent(ctx context.Context, id string) error {
	return c.client.CallContext(ctx, nil, c.fname(ctx, "delete"), search.EventDoc, id)
}

func (c *searchCaller) SearchEvent(
	ctx context.Context, query string, offset, limit int,
) ([]string, error) {
	var result []string
	err := c.client.
		CallContext(ctx, &result, c.fname(ctx, "search"), search.EventDoc, query, offset, limit)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *searchCaller) Close() {
	c.client.Close()
}

func (c *searchCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).SearchServer.RPCName, funcName)
}
