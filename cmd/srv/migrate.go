package main

import (
	"github.com/tickex-lab/backend/internal/entity"
	"github.com/tickex-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	if err := entity.MigrateTable(s.ctx); err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot migrate database: %v", err)
		return err
	}

	xcontext.Logger(s.ctx).Infof("Migrated database successfully")
	return nil
}
