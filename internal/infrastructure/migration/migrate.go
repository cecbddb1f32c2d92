package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// драйвер postgres и файловый источник регистрируются через blank import
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"shiftbill/internal/app/server/config"
)

// Migrator подмножество migrate.Migrate, нужное для накатывания схемы.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// Engine создает мигратор; в тестах подменяется, чтобы не трогать ФС и БД.
type Engine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    *config.Config
	engine Engine
}

func NewMigration(cfg *config.Config, engine Engine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		cfg:    cfg,
		engine: engine,
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up накатывает все миграции из cfg.DB.Migrations. Отсутствие изменений не ошибка.
func (mg *Migration) Up() (err error) {
	m, err := mg.engine("file://"+mg.cfg.DB.Migrations, mg.cfg.DB.DatabaseURI)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			err = errors.Join(err, fmt.Errorf("migration source: %w", srcErr))
		}
		if dbErr != nil {
			err = errors.Join(err, fmt.Errorf("migration database: %w", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
