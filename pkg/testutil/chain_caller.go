package testutil

import (
	"context"
	"errors"
	"math/big"

	"github.com/tickex-lab/backend/internal/client"
	"github.com/tickex-lab/backend/internal/model"
)

type MockChainCaller struct {
	GetBalanceFunc         func(ctx context.Context, address string) (*big.Int, error)
	GetCollectionStateFunc func(ctx context.Context, collectionAddress string) (client.CollectionState, error)
	CreateCollectionFunc   func(ctx context.Context, args client.CreateCollectionArgs) (string, error)
	MintTicketFunc         func(ctx context.Context, args client.MintTicketArgs) (string, error)
}

func (c *MockChainCaller) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	if c.GetBalanceFunc != nil {
		return c.GetBalanceFunc(ctx, address)
	}

	return big.NewInt(0), nil
}

func (c *MockChainCaller) GetCollectionState(
	ctx context.Context, collectionAddress string,
) (client.CollectionState, error) {
	if c.GetCollectionStateFunc != nil {
		return c.GetCollectionStateFunc(ctx, collectionAddress)
	}

	return client.CollectionState{}, nil
}

func (c *MockChainCaller) CreateCollection(
	ctx context.Context, args client.CreateCollectionArgs,
) (string, error) {
	if c.CreateCollectionFunc != nil {
		return c.CreateCollectionFunc(ctx, args)
	}

	return "", errors.New("not implemented")
}

func (c *MockChainCaller) MintTicket(ctx context.Context, args client.MintTicketArgs) (string, error) {
	if c.MintTicketFunc != nil {
		return c.MintTicketFunc(ctx, args)
	}

	return "", errors.New("not implemented")
}

func (c *MockChainCaller) Close() {}

type MockCollectionCaller struct {
	ProvisionFunc func(ctx context.Context, req model.ProvisionCollectionRequest) (*model.ProvisionCollectionResponse, error)
}

func (c *MockCollectionCaller) Provision(
	ctx context.Context, req model.ProvisionCollectionRequest,
) (*model.ProvisionCollectionResponse, error) {
	if c.ProvisionFunc != nil {
		return c.ProvisionFunc(ctx, req)
	}

	return nil, errors.New("not implemented")
}

func (c *MockCollectionCaller) Close() {}
