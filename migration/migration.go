package migration

import (
	"context"

	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

// Migrators maps a version name to its migrator. The auto migrator brings a
// database to the latest schema in one step; numbered migrators exist for
// databases which already carry data.
var Migrators = map[string]func(context.Context) error{
	"auto": AutoMigrate,
	"0000": migrate0000,
	"0001": migrate0001,
}

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(xcontext.DB(ctx))
}
