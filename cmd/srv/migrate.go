package main

import (
	"github.com/fitchallenge/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()

	if version := cctx.String("version"); version != "" {
		return migration.Run(s.ctx, version)
	}

	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	s.logger.Infof("Database is up to date, versions %v", migration.Versions())
	return nil
}
