package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tickex-lab/backend/internal/client"
	"github.com/tickex-lab/backend/internal/common"
	"github.com/tickex-lab/backend/internal/domain/search"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/xcontext"
	"github.com/tickex-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

const eventCacheExpiration = 10 * time.Minute

type EventDomain interface {
	Create(context.Context, *model.CreateEventRequest) (*model.CreateEventResponse, error)
	Get(context.Context, *model.GetEventRequest) (*model.GetEventResponse, error)
	GetList(context.Context, *model.GetListEventRequest) (*model.GetListEventResponse, error)
	GetByCreator(context.Context, *model.GetEventsByCreatorRequest) (*model.GetEventsByCreatorResponse, error)
	Delete(context.Context, *model.DeleteEventRequest) (*model.DeleteEventResponse, error)
}

type eventDomain struct {
	eventRepo        repository.EventRepository
	userRepo         repository.UserRepository
	collectionCaller client.CollectionCaller
	searchCaller     client.SearchCaller
	redisClient      xredis.Client
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	collectionCaller client.CollectionCaller,
	searchCaller client.SearchCaller,
	redisClient xredis.Client,
) EventDomain {
	return &eventDomain{
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		collectionCaller: collectionCaller,
		searchCaller:     searchCaller,
		redisClient:      redisClient,
	}
}

func (d *eventDomain) Create(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.TotalTickets <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Total tickets must be positive")
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid date format")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	// A free event always stores a zero price, whatever the client sent.
	price := req.Price
	if req.IsFree {
		price = 0
	}

	cfg := xcontext.Configs(ctx)

	// Provision the collection before touching the database. If the chain
	// side fails, no event row exists at all.
	provisioned, err := d.collectionCaller.Provision(ctx, model.ProvisionCollectionRequest{
		Name:        req.Title,
		Symbol:      cfg.Ticket.Symbol,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		TotalSupply: req.TotalTickets,
		Price:       price,
		IsFree:      req.IsFree,
		Royalty:     cfg.Ticket.RoyaltyPercent,
		Creator:     user.WalletAddress.String,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot provision the collection: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot provision the ticket collection")
	}

	configMap := entity.Map{}
	b, err := json.Marshal(provisioned.Config)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal the collection config: %v", err)
		return nil, errorx.Unknown
	}

	if err := json.Unmarshal(b, &configMap); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal the collection config: %v", err)
		return nil, errorx.Unknown
	}

	event := &entity.Event{
		Base:             entity.Base{ID: uuid.NewString()},
		CreatedBy:        userID,
		Title:            req.Title,
		Description:      req.Description,
		Date:             date,
		Location:         req.Location,
		OrganizerName:    req.OrganizerName,
		ImageURL:         req.ImageURL,
		IsFree:           req.IsFree,
		Price:            price,
		TotalTickets:     req.TotalTickets,
		RemainingTickets: req.TotalTickets,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.eventRepo.SetCollection(ctx, event.ID, provisioned.Address, configMap); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set the collection on event: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	err = d.searchCaller.IndexEvent(ctx, event.ID, search.EventData{
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
	})
	if err != nil {
		// The row is the source of truth. A missed index entry only degrades
		// full-text search until the next reindex.
		xcontext.Logger(ctx).Warnf("Cannot index event %s: %v", event.ID, err)
	}

	return &model.CreateEventResponse{
		ID:                event.ID,
		CollectionAddress: provisioned.Address,
	}, nil
}

func (d *eventDomain) Get(
	ctx context.Context, req *model.GetEventRequest,
) (*model.GetEventResponse, error) {
	if cached, err := d.redisClient.Get(ctx, common.RedisKeyEvent(req.ID)); err == nil {
		var resp model.GetEventResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	event, err := d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetEventResponse(model.ConvertEvent(event))
	if b, err := json.Marshal(resp); err == nil {
		if err := d.redisClient.Set(ctx, common.RedisKeyEvent(req.ID), string(b), eventCacheExpiration); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache event %s: %v", req.ID, err)
		}
	}

	return &resp, nil
}

func (d *eventDomain) GetList(
	ctx context.Context, req *model.GetListEventRequest,
) (*model.GetListEventResponse, error) {
	var events []entity.Event
	var err error

	if req.Query != "" {
		events, err = d.searchEvents(ctx, req)
	} else {
		events, err = d.eventRepo.GetList(ctx, repository.EventFilter{
			Upcoming: req.Upcoming,
			FreeOnly: req.FreeOnly,
			Offset:   req.Offset,
			Limit:    req.Limit,
		})
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of events: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListEventResponse{Events: []model.Event{}}
	for i := range events {
		resp.Events = append(resp.Events, model.ConvertEvent(&events[i]))
	}

	return resp, nil
}

func (d *eventDomain) GetByCreator(
	ctx context.Context, req *model.GetEventsByCreatorRequest,
) (*model.GetEventsByCreatorResponse, error) {
	creatorID := req.CreatorID
	if creatorID == "" {
		creatorID = xcontext.RequestUserID(ctx)
	}

	if creatorID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty creator")
	}

	events, err := d.eventRepo.GetByCreator(ctx, creatorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get events of creator: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetEventsByCreatorResponse{Events: []model.Event{}}
	for i := range events {
		resp.Events = append(resp.Events, model.ConvertEvent(&events[i]))
	}

	return resp, nil
}

// Delete removes an event before any ticket is sold. The on-chain collection
// stays behind, it is harmless without an event row pointing at it.
func (d *eventDomain) Delete(
	ctx context.Context, req *model.DeleteEventRequest,
) (*model.DeleteEventResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	if err := d.eventRepo.Delete(ctx, req.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied,
				"Only the creator can delete an event without sold tickets")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete event: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.searchCaller.DeleteEvent(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot remove event %s from the index: %v", req.ID, err)
	}

	if err := d.redisClient.Del(ctx, common.RedisKeyEvent(req.ID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate cache of event %s: %v", req.ID, err)
	}

	return &model.DeleteEventResponse{}, nil
}

// searchEvents queries the search service first and falls back to a database
// LIKE scan when the service is unreachable.
func (d *eventDomain) searchEvents(
	ctx context.Context, req *model.GetListEventRequest,
) ([]entity.Event, error) {
	ids, err := d.searchCaller.SearchEvent(ctx, req.Query, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot search events, fall back to database: %v", err)
		return d.eventRepo.GetList(ctx, repository.EventFilter{
			Query:    req.Query,
			Upcoming: req.Upcoming,
			FreeOnly: req.FreeOnly,
			Offset:   req.Offset,
			Limit:    req.Limit,
		})
	}

	events, err := d.eventRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	filtered := events[:0]
	for _, event := range events {
		if req.Upcoming && event.Date.Before(time.Now()) {
			continue
		}

		if req.FreeOnly && !event.IsFree {
			continue
		}

		filtered = append(filtered, event)
	}

	return filtered, nil
}

func parseEventDate(value string) (time.Time, error) {
	if date, err := time.Parse(model.DefaultTimeLayout, value); err == nil {
		return date, nil
	}

	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date, nil
	}

	return time.Parse(model.DefaultDateLayout, value)
}
