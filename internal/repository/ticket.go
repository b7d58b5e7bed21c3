package repository

import (
	"context"

	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/pkg/xcontext"
)

type TicketRepository interface {
	Create(ctx context.Context, data *entity.Ticket) error
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	GetByEventAndOwner(ctx context.Context, eventID, ownerID string) ([]entity.Ticket, error)
	GetByOwner(ctx context.Context, ownerID string) ([]entity.Ticket, error)
	CountByEventAndOwner(ctx context.Context, eventID, ownerID string) (int64, error)
}

type ticketRepository struct{}

func NewTicketRepository() *ticketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(ctx context.Context, data *entity.Ticket) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	var record entity.Ticket
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *ticketRepository) GetByEventAndOwner(
	ctx context.Context, eventID, ownerID string,
) ([]entity.Ticket, error) {
	var records []entity.Ticket
	err := xcontext.DB(ctx).
		Order("ticket_number ASC").
		Find(&records, "event_id=? AND owner_id=?", eventID, ownerID).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *ticketRepository) GetByOwner(ctx context.Context, ownerID string) ([]entity.Ticket, error) {
	var records []entity.Ticket
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Find(&records, "owner_id=?", ownerID).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *ticketRepository) CountByEventAndOwner(
	ctx context.Context, eventID, ownerID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("event_id=? AND owner_id=?", eventID, ownerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
