package repository

import (
	"context"
	"errors"
	"fmt"

	"licensestore/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return NewWithDB(db), nil
}

// NewWithDB оборачивает уже открытое подключение (используется в тестах и cmd/migrate)
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ds.User{},
		&ds.Package{},
		&ds.License{},
		&ds.LicensePackage{},
		&ds.DownloadEvent{},
	)
}

// Transaction выполняет fn в одной транзакции. Репозиторий, переданный в fn, привязан
// к транзакции: все вызовы через него коммитятся или откатываются вместе.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Dialect возвращает имя драйвера БД (postgres, sqlite)
func (r *Repository) Dialect() string {
	return r.db.Dialector.Name()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
