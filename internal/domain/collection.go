package domain

import (
	"context"
	"math/big"

	"github.com/tickex-lab/backend/internal/client"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/ethutil"
	"github.com/tickex-lab/backend/pkg/nftmeta"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

type CollectionDomain interface {
	Provision(context.Context, *model.ProvisionCollectionRequest) (*model.ProvisionCollectionResponse, error)
}

type collectionDomain struct {
	chainCaller client.ChainCaller
}

func NewCollectionDomain(chainCaller client.ChainCaller) CollectionDomain {
	return &collectionDomain{chainCaller: chainCaller}
}

// Provision creates the on-chain ticket collection for an event. It is not
// idempotent; the event orchestrator guarantees it runs at most once per event.
func (d *collectionDomain) Provision(
	ctx context.Context, req *model.ProvisionCollectionRequest,
) (*model.ProvisionCollectionResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty collection name")
	}

	if req.Symbol == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty collection symbol")
	}

	if req.TotalSupply <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Total supply must be positive")
	}

	cfg := xcontext.Configs(ctx)
	authority, err := ethutil.GeneratePublicKey([]byte(cfg.Chain.SecretKey), nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot derive the authority address: %v", err)
		return nil, errorx.Unknown
	}

	// The balance call doubles as the connectivity check.
	balance, err := d.chainCaller.GetBalance(ctx, authority.Hex())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reach the chain endpoint: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Chain endpoint is unavailable")
	}

	if balance.Cmp(big.NewInt(cfg.Chain.MinAuthorityBalance)) < 0 {
		return nil, errorx.New(errorx.InsufficientBalance,
			"Insufficient balance of the provisioning authority")
	}

	price := req.Price
	if req.IsFree {
		price = 0
	}

	args := client.CreateCollectionArgs{
		Name:           req.Name,
		Family:         cfg.Ticket.CollectionFamily,
		Symbol:         req.Symbol,
		URI:            req.ImageURL,
		ItemsAvailable: req.TotalSupply,
		FeeBasisPoints: req.Royalty * 100,
		Authority:      authority.Hex(),
	}

	// Free events provision no payment guard.
	if price > 0 {
		args.PaymentGuard = ethutil.ToSmallestUnit(price)
		args.GuardDestination = req.Creator
	}

	address, err := d.chainCaller.CreateCollection(ctx, args)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the collection: %v", err)
		return nil, errorx.New(errorx.ChainRejected, "Chain rejected the collection: %v", err)
	}

	config := nftmeta.CollectionConfig{
		Version:              nftmeta.CollectionConfigVersion,
		Price:                price,
		ItemsAvailable:       req.TotalSupply,
		ItemsRedeemed:        0,
		SellerFeeBasisPoints: req.Royalty * 100,
		Symbol:               req.Symbol,
		Active:               true,
		Collection: nftmeta.CollectionInfo{
			Name:        req.Name,
			Family:      cfg.Ticket.CollectionFamily,
			Description: req.Description,
			Image:       req.ImageURL,
		},
		Creators: []nftmeta.Creator{
			{Address: req.Creator, Share: 100},
		},
	}

	return &model.ProvisionCollectionResponse{Address: address, Config: config}, nil
}
