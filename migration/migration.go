package migration

import (
	"context"
	"errors"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type migrator struct {
	version string
	run     func(context.Context) error
}

// Migrators are run in order, a version is never run twice.
var migrators = []migrator{
	{version: "0000", run: migrate0000},
	{version: "0001", run: migrate0001},
}

func Versions() []string {
	var versions []string
	for _, m := range migrators {
		versions = append(versions, m.version)
	}
	return versions
}

// Migrate runs every migrator which has not been applied yet.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	var applied []string
	if err := xcontext.DB(ctx).Model(&entity.Migration{}).Pluck("version", &applied).Error; err != nil {
		return err
	}

	for _, m := range migrators {
		if slices.Contains(applied, m.version) {
			continue
		}

		if err := Run(ctx, m.version); err != nil {
			return err
		}
	}

	return nil
}

// Run runs exactly one migrator and records it.
func Run(ctx context.Context, version string) error {
	index := slices.IndexFunc(migrators, func(m migrator) bool { return m.version == version })
	if index < 0 {
		return errors.New("not found migration version " + version)
	}

	xcontext.Logger(ctx).Infof("Running migration %s", version)
	if err := migrators[index].run(ctx); err != nil {
		return err
	}

	return xcontext.DB(ctx).Save(&entity.Migration{Version: version}).Error
}
