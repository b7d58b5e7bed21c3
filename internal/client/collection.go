package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

// CollectionCaller talks to the collection provisioning service. Provisioning
// runs in a separate tier because it holds the funded authority keypair.
type CollectionCaller interface {
	Provision(ctx context.Context, req model.ProvisionCollectionRequest) (*model.ProvisionCollectionResponse, error)
	Close()
}

type collectionCaller struct {
	client *rpc.Client
}

func NewCollectionCaller(client *rpc.Client) *collectionCaller {
	return &collectionCaller{client: client}
}

func (c *collectionCaller) Provision(
	ctx context.Context, req model.ProvisionCollectionRequest,
) (*model.ProvisionCollectionResponse, error) {
	var result model.ProvisionCollectionResponse
	err := c.client.CallContext(ctx, &result, c.fname(ctx, "provision"), req)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *collectionCaller) Close() {
	c.client.Close()
}

func (c *collectionCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).CollectionServer.RPCName, funcName)
}
