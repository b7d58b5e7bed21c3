package testutil

import (
	"context"
	"database/sql"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/internal/repository"
)

// SampleUser creates a user with randomized fields. Non-zero fields of init
// overwrite the sample.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	userRepo := repository.NewUserRepository()

	sample := &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		Name:          uuid.NewString(),
		WalletAddress: sql.NullString{Valid: true, String: "0x" + uuid.NewString()[:20]},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleEvent creates an event with a provisioned collection. Non-zero fields
// of init overwrite the sample.
func SampleEvent(ctx context.Context, init *entity.Event) (entity.Event, error) {
	eventRepo := repository.NewEventRepository()

	sample := &entity.Event{
		Base:              entity.Base{ID: uuid.NewString()},
		CreatedBy:         uuid.NewString(),
		Title:             uuid.NewString(),
		Date:              time.Now().Add(24 * time.Hour),
		Location:          "somewhere",
		TotalTickets:      10,
		RemainingTickets:  10,
		CollectionAddress: sql.NullString{Valid: true, String: "0x" + uuid.NewString()[:20]},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := eventRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
