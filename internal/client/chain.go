package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

type CollectionState struct {
	TicketsMinted int `json:"tickets_minted"`
	MaxTickets    int `json:"max_tickets"`
}

type CreateCollectionArgs struct {
	Name             string   `json:"name"`
	Family           string   `json:"family"`
	Symbol           string   `json:"symbol"`
	URI              string   `json:"uri"`
	ItemsAvailable   int      `json:"items_available"`
	FeeBasisPoints   int      `json:"fee_basis_points"`
	PaymentGuard     *big.Int `json:"payment_guard,omitempty"`
	GuardDestination string   `json:"guard_destination,omitempty"`
	Authority        string   `json:"authority"`
}

type MintTicketArgs struct {
	Collection   string `json:"collection"`
	Buyer        string `json:"buyer"`
	TicketNumber int    `json:"ticket_number"`
	MetadataJSON string `json:"metadata_json"`
}

type ChainCaller interface {
	GetBalance(ctx context.Context, address string) (*big.Int, error)
	GetCollectionState(ctx context.Context, collectionAddress string) (CollectionState, error)
	CreateCollection(ctx context.Context, args CreateCollectionArgs) (string, error)
	MintTicket(ctx context.Context, args MintTicketArgs) (string, error)
	Close()
}

type chainCaller struct {
	client *rpc.Client
}

func NewChainCaller(client *rpc.Client) *chainCaller {
	return &chainCaller{client: client}
}

func (c *chainCaller) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	var result big.Int
	err := c.client.CallContext(ctx, &result, c.fname(ctx, "getBalance"), address)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *chainCaller) GetCollectionState(
	ctx context.Context, collectionAddress string,
) (CollectionState, error) {
	var result CollectionState
	err := c.client.CallContext(ctx, &result, c.fname(ctx, "getCollectionState"), collectionAddress)
	if err != nil {
		return CollectionState{}, err
	}

	return result, nil
}

func (c *chainCaller) CreateCollection(
	ctx context.Context, args CreateCollectionArgs,
) (string, error) {
	var address string
	err := c.client.CallContext(ctx, &address, c.fname(ctx, "createCollection"), args)
	if err != nil {
		return "", err
	}

	return address, nil
}

func (c *chainCaller) MintTicket(ctx context.Context, args MintTicketArgs) (string, error) {
	var txID string
	err := c.client.CallContext(ctx, &txID, c.fname(ctx, "mintTicket"), args)
	if err != nil {
		return "", err
	}

	return txID, nil
}

func (c *chainCaller) Close() {
	c.client.Close()
}

func (c *chainCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).Chain.RPCName, funcName)
}
