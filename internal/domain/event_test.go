package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tickex-lab/backend/internal/domain/search"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/nftmeta"
	"github.com/tickex-lab/backend/pkg/testutil"
	"gorm.io/gorm"
)

func Test_eventDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = testutil.MockContextWithUserID(ctx, user.ID)

	var gotProvision model.ProvisionCollectionRequest
	indexed := false
	collectionCaller := &testutil.MockCollectionCaller{
		ProvisionFunc: func(ctx context.Context, req model.ProvisionCollectionRequest) (*model.ProvisionCollectionResponse, error) {
			gotProvision = req
			return &model.ProvisionCollectionResponse{
				Address: "collection-address",
				Config: nftmeta.CollectionConfig{
					Version:        nftmeta.CollectionConfigVersion,
					ItemsAvailable: req.TotalSupply,
					Symbol:         req.Symbol,
					Active:         true,
				},
			}, nil
		},
	}
	searchCaller := &testutil.MockSearchCaller{
		IndexEventFunc: func(context.Context, string, search.EventData) error {
			indexed = true
			return nil
		},
	}

	eventRepo := repository.NewEventRepository()
	domain := NewEventDomain(
		eventRepo,
		repository.NewUserRepository(),
		collectionCaller,
		searchCaller,
		&testutil.MockRedisClient{},
	)

	resp, err := domain.Create(ctx, &model.CreateEventRequest{
		Title:        "Metro Live",
		Description:  "A night of live music",
		Date:         time.Now().Add(48 * time.Hour).Format(model.DefaultTimeLayout),
		Location:     "Warehouse 9",
		TotalTickets: 100,
		Price:        2.5,
	})
	require.NoError(t, err)
	require.Equal(t, "collection-address", resp.CollectionAddress)

	// The mock context configures the ticket symbol and royalty.
	require.Equal(t, "TCKT", gotProvision.Symbol)
	require.Equal(t, 5, gotProvision.Royalty)
	require.Equal(t, 100, gotProvision.TotalSupply)
	require.Equal(t, user.WalletAddress.String, gotProvision.Creator)

	event, err := eventRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.True(t, event.CollectionAddress.Valid)
	require.Equal(t, "collection-address", event.CollectionAddress.String)
	require.Equal(t, 100, event.RemainingTickets)
	require.True(t, indexed)
}

func Test_eventDomain_Create_FreeEventForcesZeroPrice(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = testutil.MockContextWithUserID(ctx, user.ID)

	var gotProvision model.ProvisionCollectionRequest
	collectionCaller := &testutil.MockCollectionCaller{
		ProvisionFunc: func(ctx context.Context, req model.ProvisionCollectionRequest) (*model.ProvisionCollectionResponse, error) {
			gotProvision = req
			return &model.ProvisionCollectionResponse{Address: "collection-address"}, nil
		},
	}

	eventRepo := repository.NewEventRepository()
	domain := NewEventDomain(
		eventRepo,
		repository.NewUserRepository(),
		collectionCaller,
		&testutil.MockSearchCaller{},
		&testutil.MockRedisClient{},
	)

	resp, err := domain.Create(ctx, &model.CreateEventRequest{
		Title:        "Community Meetup",
		Date:         time.Now().Add(48 * time.Hour).Format(model.DefaultDateLayout),
		IsFree:       true,
		Price:        9.99,
		TotalTickets: 50,
	})
	require.NoError(t, err)
	require.True(t, gotProvision.IsFree)
	require.Equal(t, float64(0), gotProvision.Price)

	event, err := eventRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.True(t, event.IsFree)
	require.Equal(t, float64(0), event.Price)
}

func Test_eventDomain_Create_ProvisioningFailureKeepsDatabaseClean(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = testutil.MockContextWithUserID(ctx, user.ID)

	collectionCaller := &testutil.MockCollectionCaller{
		ProvisionFunc: func(context.Context, model.ProvisionCollectionRequest) (*model.ProvisionCollectionResponse, error) {
			return nil, errors.New("chain endpoint is unavailable")
		},
	}

	eventRepo := repository.NewEventRepository()
	domain := NewEventDomain(
		eventRepo,
		repository.NewUserRepository(),
		collectionCaller,
		&testutil.MockSearchCaller{},
		&testutil.MockRedisClient{},
	)

	_, err = domain.Create(ctx, &model.CreateEventRequest{
		Title:        "Metro Live",
		Date:         time.Now().Add(48 * time.Hour).Format(model.DefaultTimeLayout),
		TotalTickets: 100,
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)

	// The provisioning failed before any row was written.
	events, err := eventRepo.GetByCreator(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, events)
}

func Test_eventDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()

	event, err := testutil.SampleEvent(ctx, nil)
	require.NoError(t, err)

	cache := map[string]string{}
	redisClient := &testutil.MockRedisClient{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			if v, ok := cache[key]; ok {
				return v, nil
			}
			return "", errors.New("redis: nil")
		},
		SetFunc: func(ctx context.Context, key, value string, expiration time.Duration) error {
			cache[key] = value
			return nil
		},
	}

	domain := NewEventDomain(
		repository.NewEventRepository(),
		repository.NewUserRepository(),
		&testutil.MockCollectionCaller{},
		&testutil.MockSearchCaller{},
		redisClient,
	)

	resp, err := domain.Get(ctx, &model.GetEventRequest{ID: event.ID})
	require.NoError(t, err)
	require.Equal(t, event.Title, resp.Title)
	require.Len(t, cache, 1)

	// The second call is served from the cache.
	var cached model.GetEventResponse
	for _, v := range cache {
		require.NoError(t, json.Unmarshal([]byte(v), &cached))
	}
	require.Equal(t, event.ID, cached.ID)

	again, err := domain.Get(ctx, &model.GetEventRequest{ID: event.ID})
	require.NoError(t, err)
	require.Equal(t, resp.ID, again.ID)

	_, err = domain.Get(ctx, &model.GetEventRequest{ID: "unknown-event"})
	require.Equal(t, "Not found event", err.Error())
}

func Test_eventDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()

	_, err := testutil.SampleEvent(ctx, nil)
	require.NoError(t, err)

	free, err := testutil.SampleEvent(ctx, &entity.Event{IsFree: true})
	require.NoError(t, err)

	domain := NewEventDomain(
		repository.NewEventRepository(),
		repository.NewUserRepository(),
		&testutil.MockCollectionCaller{},
		&testutil.MockSearchCaller{},
		&testutil.MockRedisClient{},
	)

	resp, err := domain.GetList(ctx, &model.GetListEventRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)

	resp, err = domain.GetList(ctx, &model.GetListEventRequest{FreeOnly: true})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	require.Equal(t, free.ID, resp.Events[0].ID)
}

func Test_eventDomain_GetList_SearchFallsBackToDatabase(t *testing.T) {
	ctx := testutil.MockContext()

	event, err := testutil.SampleEvent(ctx, &entity.Event{Title: "Downtown Jazz Night"})
	require.NoError(t, err)

	searchCaller := &testutil.MockSearchCaller{
		SearchEventFunc: func(context.Context, string, int, int) ([]string, error) {
			return nil, errors.New("connection refused")
		},
	}

	domain := NewEventDomain(
		repository.NewEventRepository(),
		repository.NewUserRepository(),
		&testutil.MockCollectionCaller{},
		searchCaller,
		&testutil.MockRedisClient{},
	)

	resp, err := domain.GetList(ctx, &model.GetListEventRequest{Query: "Jazz"})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	require.Equal(t, event.ID, resp.Events[0].ID)
}

func Test_eventDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	event, err := testutil.SampleEvent(ctx, &entity.Event{CreatedBy: user.ID})
	require.NoError(t, err)

	deletedFromIndex := ""
	domain := NewEventDomain(
		repository.NewEventRepository(),
		repository.NewUserRepository(),
		&testutil.MockCollectionCaller{},
		&testutil.MockSearchCaller{
			DeleteEventFunc: func(ctx context.Context, id string) error {
				deletedFromIndex = id
				return nil
			},
		},
		&testutil.MockRedisClient{},
	)

	// Someone who is not the creator cannot delete the event.
	otherCtx := testutil.MockContextWithUserID(ctx, "other-user")
	_, err = domain.Delete(otherCtx, &model.DeleteEventRequest{ID: event.ID})
	require.Error(t, err)
	require.Equal(t, "Only the creator can delete an event without sold tickets", err.Error())

	creatorCtx := testutil.MockContextWithUserID(ctx, user.ID)
	_, err = domain.Delete(creatorCtx, &model.DeleteEventRequest{ID: event.ID})
	require.NoError(t, err)
	require.Equal(t, event.ID, deletedFromIndex)

	_, err = repository.NewEventRepository().GetByID(ctx, event.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_eventDomain_Delete_RejectsAfterSale(t *testing.T) {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	event, err := testutil.SampleEvent(ctx, &entity.Event{
		CreatedBy:        user.ID,
		TotalTickets:     10,
		RemainingTickets: 9,
	})
	require.NoError(t, err)

	domain := NewEventDomain(
		repository.NewEventRepository(),
		repository.NewUserRepository(),
		&testutil.MockCollectionCaller{},
		&testutil.MockSearchCaller{},
		&testutil.MockRedisClient{},
	)

	creatorCtx := testutil.MockContextWithUserID(ctx, user.ID)
	_, err = domain.Delete(creatorCtx, &model.DeleteEventRequest{ID: event.ID})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}
