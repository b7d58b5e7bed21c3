package entity

import (
	"context"

	"github.com/tickex-lab/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&RefreshToken{},
		&Event{},
		&Ticket{},
		&File{},
	)
}
