package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica las migraciones embebidas usando goose. El pool de pgx se
// adapta a database/sql porque goose no habla pgx nativo.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("closing migration db handle", zap.Error(err))
		}
	}()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseZapLogger{logger: logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// gooseZapLogger redirige el logging estilo Printf de goose hacia zap.
type gooseZapLogger struct {
	logger *zap.Logger
}

func (l *gooseZapLogger) Fatalf(format string, v ...any) {
	l.logger.Fatal(fmt.Sprintf(format, v...))
}

func (l *gooseZapLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
