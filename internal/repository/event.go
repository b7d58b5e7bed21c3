package repository

import (
	"context"
	"time"

	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EventFilter struct {
	Query    string
	Upcoming bool
	FreeOnly bool
	Offset   int
	Limit    int
}

type EventRepository interface {
	Create(ctx context.Context, data *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Event, error)
	GetList(ctx context.Context, filter EventFilter) ([]entity.Event, error)
	GetByCreator(ctx context.Context, creatorID string) ([]entity.Event, error)
	SetCollection(ctx context.Context, id, address string, config entity.Map) error
	DecrementRemainingTickets(ctx context.Context, id string) error
	Delete(ctx context.Context, id, createdBy string) error
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, data *entity.Event) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var record entity.Event
	err := xcontext.DB(ctx).Preload("CreatedByUser").Take(&record, "events.id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *eventRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Event
	err := xcontext.DB(ctx).Preload("CreatedByUser").Find(&records, "events.id IN (?)", ids).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *eventRepository) GetList(ctx context.Context, filter EventFilter) ([]entity.Event, error) {
	tx := xcontext.DB(ctx).Preload("CreatedByUser").Order("date ASC")

	if filter.Query != "" {
		searchName := "%" + filter.Query + "%"
		tx = tx.Where(
			"title LIKE ? OR description LIKE ? OR location LIKE ?",
			searchName, searchName, searchName,
		)
	}

	if filter.Upcoming {
		tx = tx.Where("date >= ?", time.Now())
	}

	if filter.FreeOnly {
		tx = tx.Where("is_free=true")
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var records []entity.Event
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *eventRepository) GetByCreator(ctx context.Context, creatorID string) ([]entity.Event, error) {
	var records []entity.Event
	err := xcontext.DB(ctx).Preload("CreatedByUser").
		Order("date ASC").
		Find(&records, "created_by=?", creatorID).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// SetCollection records the provisioned collection on the event. The address is
// written at most once; a second call hits zero rows.
func (r *eventRepository) SetCollection(ctx context.Context, id, address string, config entity.Map) error {
	tx := xcontext.DB(ctx).Model(&entity.Event{}).
		Where("id=? AND collection_address IS NULL", id).
		Updates(map[string]any{
			"collection_address": address,
			"collection_config":  config,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Delete removes an event of the given creator as long as no ticket has been
// sold. Zero affected rows means the event is unknown, not owned by the
// creator, or already has sales.
func (r *eventRepository) Delete(ctx context.Context, id, createdBy string) error {
	tx := xcontext.DB(ctx).
		Where("id=? AND created_by=? AND remaining_tickets=total_tickets", id, createdBy).
		Delete(&entity.Event{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DecrementRemainingTickets refuses to go below zero. Zero affected rows means
// the event is sold out (or unknown).
func (r *eventRepository) DecrementRemainingTickets(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.Event{}).
		Where("id=? AND remaining_tickets > 0", id).
		Update("remaining_tickets", gorm.Expr("remaining_tickets-1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
