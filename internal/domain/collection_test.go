package domain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tickex-lab/backend/internal/client"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/testutil"
)

func Test_collectionDomain_Provision(t *testing.T) {
	ctx := testutil.MockContext()

	var gotArgs client.CreateCollectionArgs
	chainCaller := &testutil.MockChainCaller{
		GetBalanceFunc: func(context.Context, string) (*big.Int, error) {
			return big.NewInt(2_000_000_000), nil
		},
		CreateCollectionFunc: func(ctx context.Context, args client.CreateCollectionArgs) (string, error) {
			gotArgs = args
			return "collection-address", nil
		},
	}

	domain := NewCollectionDomain(chainCaller)

	resp, err := domain.Provision(ctx, &model.ProvisionCollectionRequest{
		Name:        "Metro Live",
		Symbol:      "TCKT",
		Description: "A night of live music",
		ImageURL:    "https://img.example.com/metro.png",
		TotalSupply: 100,
		Price:       2.5,
		Royalty:     5,
		Creator:     "0xcreator",
	})
	require.NoError(t, err)
	require.Equal(t, "collection-address", resp.Address)

	// The collection holds exactly one item per ticket.
	require.Equal(t, 100, gotArgs.ItemsAvailable)
	require.Equal(t, "Metro Live", gotArgs.Name)
	require.Equal(t, "Tickex", gotArgs.Family)
	require.Equal(t, 500, gotArgs.FeeBasisPoints)

	// A priced event requires the buyer to pay the price in the smallest unit.
	require.Equal(t, big.NewInt(2_500_000_000), gotArgs.PaymentGuard)
	require.Equal(t, "0xcreator", gotArgs.GuardDestination)

	require.Equal(t, 2.5, resp.Config.Price)
	require.Equal(t, 100, resp.Config.ItemsAvailable)
	require.Equal(t, 0, resp.Config.ItemsRedeemed)
	require.True(t, resp.Config.Active)
	require.Len(t, resp.Config.Creators, 1)
	require.Equal(t, "0xcreator", resp.Config.Creators[0].Address)
	require.Equal(t, 100, resp.Config.Creators[0].Share)
}

func Test_collectionDomain_Provision_FreeEvent(t *testing.T) {
	ctx := testutil.MockContext()

	var gotArgs client.CreateCollectionArgs
	chainCaller := &testutil.MockChainCaller{
		GetBalanceFunc: func(context.Context, string) (*big.Int, error) {
			return big.NewInt(2_000_000_000), nil
		},
		CreateCollectionFunc: func(ctx context.Context, args client.CreateCollectionArgs) (string, error) {
			gotArgs = args
			return "collection-address", nil
		},
	}

	domain := NewCollectionDomain(chainCaller)

	// The client sent a price, but the free flag wins.
	resp, err := domain.Provision(ctx, &model.ProvisionCollectionRequest{
		Name:        "Community Meetup",
		Symbol:      "TCKT",
		TotalSupply: 50,
		Price:       9.99,
		IsFree:      true,
		Creator:     "0xcreator",
	})
	require.NoError(t, err)

	require.Nil(t, gotArgs.PaymentGuard)
	require.Empty(t, gotArgs.GuardDestination)
	require.Equal(t, float64(0), resp.Config.Price)
}

func Test_collectionDomain_Provision_InsufficientBalance(t *testing.T) {
	ctx := testutil.MockContext()

	chainCaller := &testutil.MockChainCaller{
		GetBalanceFunc: func(context.Context, string) (*big.Int, error) {
			return big.NewInt(999_999_999), nil
		},
		CreateCollectionFunc: func(context.Context, client.CreateCollectionArgs) (string, error) {
			t.Fatal("must not create a collection with an underfunded authority")
			return "", nil
		},
	}

	domain := NewCollectionDomain(chainCaller)

	_, err := domain.Provision(ctx, &model.ProvisionCollectionRequest{
		Name:        "Metro Live",
		Symbol:      "TCKT",
		TotalSupply: 100,
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientBalance, errx.Code)
}

func Test_collectionDomain_Provision_ChainRejected(t *testing.T) {
	ctx := testutil.MockContext()

	chainCaller := &testutil.MockChainCaller{
		GetBalanceFunc: func(context.Context, string) (*big.Int, error) {
			return big.NewInt(2_000_000_000), nil
		},
		CreateCollectionFunc: func(context.Context, client.CreateCollectionArgs) (string, error) {
			return "", errors.New("transaction simulation failed")
		},
	}

	domain := NewCollectionDomain(chainCaller)

	_, err := domain.Provision(ctx, &model.ProvisionCollectionRequest{
		Name:        "Metro Live",
		Symbol:      "TCKT",
		TotalSupply: 100,
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.ChainRejected, errx.Code)
}

func Test_collectionDomain_Provision_InvalidRequest(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewCollectionDomain(&testutil.MockChainCaller{})

	_, err := domain.Provision(ctx, &model.ProvisionCollectionRequest{
		Symbol:      "TCKT",
		TotalSupply: 100,
	})
	require.Equal(t, "Not allow an empty collection name", err.Error())

	_, err = domain.Provision(ctx, &model.ProvisionCollectionRequest{
		Name:   "Metro Live",
		Symbol: "TCKT",
	})
	require.Equal(t, "Total supply must be positive", err.Error())
}
