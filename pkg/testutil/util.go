package testutil

import (
	"context"
	"time"

	"github.com/gorilla/sessions"
	"github.com/tickex-lab/backend/config"
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/pkg/authenticator"
	"github.com/tickex-lab/backend/pkg/logger"
	"github.com/tickex-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "session",
		},
		File: config.FileConfigs{
			MaxSize: 2 << 20,
		},
		Chain: config.ChainConfigs{
			RPCName:             "chain",
			SecretKey:           "chain-secret",
			MinAuthorityBalance: 1_000_000_000,
		},
		Ticket: config.TicketConfigs{
			Symbol:           "TCKT",
			CollectionFamily: "Tickex",
			RoyaltyPercent:   5,
			MaxPerBuyer:      1,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger())
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}

func MockContextWithWallet(ctx context.Context, userID, address string) context.Context {
	ctx = xcontext.WithRequestUserID(ctx, userID)
	return xcontext.WithRequestWalletAddress(ctx, address)
}
