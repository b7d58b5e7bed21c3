package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/tickex-lab/backend/internal/client"
	"github.com/tickex-lab/backend/internal/common"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/model"
	"github.com/tickex-lab/backend/internal/repository"
	"github.com/tickex-lab/backend/pkg/errorx"
	"github.com/tickex-lab/backend/pkg/nftmeta"
	"github.com/tickex-lab/backend/pkg/xcontext"
	"github.com/tickex-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

const ticketCacheExpiration = 5 * time.Minute

type TicketDomain interface {
	Buy(context.Context, *model.BuyTicketRequest) (*model.BuyTicketResponse, error)
	GetMy(context.Context, *model.GetMyTicketsRequest) (*model.GetMyTicketsResponse, error)
}

type ticketDomain struct {
	ticketRepo  repository.TicketRepository
	eventRepo   repository.EventRepository
	chainCaller client.ChainCaller
	redisClient xredis.Client

	// inflight rejects a second purchase by the same buyer for the same event
	// while the first one is still running.
	inflight *xsync.MapOf[string, bool]
}

func NewTicketDomain(
	ticketRepo repository.TicketRepository,
	eventRepo repository.EventRepository,
	chainCaller client.ChainCaller,
	redisClient xredis.Client,
) TicketDomain {
	return &ticketDomain{
		ticketRepo:  ticketRepo,
		eventRepo:   eventRepo,
		chainCaller: chainCaller,
		redisClient: redisClient,
		inflight:    xsync.NewMapOf[bool](),
	}
}

// Buy mints one ticket NFT to the buyer's wallet and records it. Every step
// fails the whole attempt; there is no automatic retry.
func (d *ticketDomain) Buy(
	ctx context.Context, req *model.BuyTicketRequest,
) (*model.BuyTicketResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	buyerAddress := xcontext.RequestWalletAddress(ctx)
	if userID == "" || buyerAddress == "" {
		return nil, errorx.New(errorx.Unauthenticated,
			"You need a logged-in wallet address to buy a ticket")
	}

	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if !event.CollectionAddress.Valid {
		return nil, errorx.New(errorx.Unavailable, "The event has no ticket collection yet")
	}

	if event.RemainingTickets <= 0 {
		return nil, errorx.New(errorx.SoldOut, "The event is sold out")
	}

	if maxPerBuyer := xcontext.Configs(ctx).Ticket.MaxPerBuyer; maxPerBuyer > 0 {
		owned, err := d.ticketRepo.CountByEventAndOwner(ctx, event.ID, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count tickets of buyer: %v", err)
			return nil, errorx.Unknown
		}

		if owned >= int64(maxPerBuyer) {
			return nil, errorx.New(errorx.PermissionDenied,
				"You already hold the maximum of %d tickets for this event", maxPerBuyer)
		}
	}

	inflightKey := fmt.Sprintf("%s:%s", event.ID, userID)
	if _, loaded := d.inflight.LoadOrStore(inflightKey, true); loaded {
		return nil, errorx.New(errorx.TooManyRequests,
			"Your previous purchase for this event is still running")
	}
	defer d.inflight.Delete(inflightKey)

	state, err := d.chainCaller.GetCollectionState(ctx, event.CollectionAddress.String)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collection state: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Chain endpoint is unavailable")
	}

	if state.MaxTickets > 0 && state.TicketsMinted >= state.MaxTickets {
		return nil, errorx.New(errorx.SoldOut, "The collection is fully minted")
	}

	ticketNumber := state.TicketsMinted + 1
	metadata := nftmeta.GenerateTicketMetadata(
		event.Title,
		event.Date.Format(model.DefaultDateLayout),
		ticketNumber,
		event.CreatedByUser.WalletAddress.String,
		event.ImageURL,
		xcontext.Configs(ctx).Ticket.RoyaltyPercent,
	)

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal ticket metadata: %v", err)
		return nil, errorx.Unknown
	}

	txID, err := d.chainCaller.MintTicket(ctx, client.MintTicketArgs{
		Collection:   event.CollectionAddress.String,
		Buyer:        buyerAddress,
		TicketNumber: ticketNumber,
		MetadataJSON: string(metadataJSON),
	})
	if err != nil {
		common.PromCounters[common.ChainCallFailure].WithLabelValues("mintTicket").Inc()
		return nil, errorx.New(errorx.ChainRejected, "Chain rejected the mint: %v", err)
	}

	ticket, err := d.recordTicket(ctx, event, txID, ticketNumber, userID, buyerAddress, metadataJSON)
	if err != nil {
		// The mint succeeded but the database did not record it. This needs
		// manual reconciliation, keep it loud and counted.
		xcontext.Logger(ctx).Errorf(
			"Minted on chain but not recorded: tx %s, event %s: %v", txID, event.ID, err)
		common.PromCounters[common.MintDivergenceTotal].WithLabelValues(event.ID).Inc()
		return nil, errorx.New(errorx.Internal,
			"Your ticket was minted but could not be recorded, contact support with tx %s", txID)
	}

	// The empty event key holds the buyer's unfiltered ticket list.
	if err := d.redisClient.Del(ctx,
		common.RedisKeyEvent(event.ID),
		common.RedisKeyTickets(event.ID, userID),
		common.RedisKeyTickets("", userID),
	); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate caches of event %s: %v", event.ID, err)
	}

	return &model.BuyTicketResponse{Ticket: model.ConvertTicket(ticket)}, nil
}

func (d *ticketDomain) GetMy(
	ctx context.Context, req *model.GetMyTicketsRequest,
) (*model.GetMyTicketsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	cacheKey := common.RedisKeyTickets(req.EventID, userID)
	if cached, err := d.redisClient.Get(ctx, cacheKey); err == nil {
		var resp model.GetMyTicketsResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	var tickets []entity.Ticket
	var err error
	if req.EventID != "" {
		tickets, err = d.ticketRepo.GetByEventAndOwner(ctx, req.EventID, userID)
	} else {
		tickets, err = d.ticketRepo.GetByOwner(ctx, userID)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyTicketsResponse{Tickets: []model.Ticket{}}
	for i := range tickets {
		resp.Tickets = append(resp.Tickets, model.ConvertTicket(&tickets[i]))
	}

	if b, err := json.Marshal(resp); err == nil {
		if err := d.redisClient.Set(ctx, cacheKey, string(b), ticketCacheExpiration); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache tickets: %v", err)
		}
	}

	return resp, nil
}

// recordTicket inserts the ticket row and decrements the remaining counter in
// one transaction. The decrement refuses to go below zero, so an oversell
// rolls back the insert as well.
func (d *ticketDomain) recordTicket(
	ctx context.Context,
	event *entity.Event,
	txID string,
	ticketNumber int,
	userID, buyerAddress string,
	metadataJSON []byte,
) (*entity.Ticket, error) {
	metadataMap := entity.Map{}
	if err := json.Unmarshal(metadataJSON, &metadataMap); err != nil {
		return nil, err
	}

	ticket := &entity.Ticket{
		Base:         entity.Base{ID: uuid.NewString()},
		EventID:      event.ID,
		OwnerID:      userID,
		OwnerAddress: buyerAddress,
		TicketNumber: ticketNumber,
		MintTx:       txID,
		Metadata:     metadataMap,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if err := d.eventRepo.DecrementRemainingTickets(ctx, event.ID); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return ticket, nil
}
