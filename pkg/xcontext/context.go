package xcontext

import (
	"context"

	"github.com/jobquest-lab/backend/config"
	"github.com/jobquest-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	txKey            struct{}
	requestUserIDKey struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Configs{}
	}

	return cfg
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.INFO)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. If a transaction was begun on this
// context, the transaction is returned instead of the root handle.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db
}

// WithDBTransaction begins a transaction and stores it in the returned
// context. Beginning a transaction on a context which already carries one is
// a passthrough, so a caller-level transaction always wins.
func WithDBTransaction(ctx context.Context) context.Context {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return ctx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return ctx
	}

	return context.WithValue(ctx, txKey{}, db.Begin())
}

// WithCommitDBTransaction commits the transaction carried by ctx, if any.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return ctx
	}

	if err := tx.Commit().Error; err != nil {
		Logger(ctx).Errorf("Cannot commit transaction: %v", err)
	}

	return context.WithValue(ctx, txKey{}, nil)
}

// WithRollbackDBTransaction rollbacks the transaction carried by ctx, if any.
// Rollback after a successful commit is a no-op, so it is safe to defer.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return ctx
	}

	tx.Rollback()
	return context.WithValue(ctx, txKey{}, nil)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(requestUserIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}
