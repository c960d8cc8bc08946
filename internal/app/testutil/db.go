// Package testutil содержит общие помощники для тестов: in-memory SQLite с той же
// схемой, что и в postgres, и сидирование каталога.
package testutil

import (
	"context"
	"testing"

	"licensestore/internal/app/ds"
	"licensestore/internal/app/repository"
	"licensestore/internal/app/role"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB открывает отдельную in-memory базу на тест. Пул ограничен одним
// соединением: транзакции сериализуются так же, как под блокировкой строки в postgres.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

// NewTestRepository - NewTestDB, обёрнутая в Repository
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.NewWithDB(NewTestDB(t))
}

func CreatePackage(t *testing.T, repo *repository.Repository, name string, isBase bool, price int64) *ds.Package {
	t.Helper()

	pkg := &ds.Package{Name: name, IsBase: isBase, Price: price}
	require.NoError(t, repo.CreatePackage(context.Background(), pkg))
	return pkg
}

func Deprecate(t *testing.T, repo *repository.Repository, id uint) {
	t.Helper()
	require.NoError(t, repo.SetPackageDeprecated(context.Background(), id, true))
}

// CreateUser создаёт покупателя с заданным балансом
func CreateUser(t *testing.T, repo *repository.Repository, login string, balance int64) *ds.User {
	t.Helper()
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, login, "x", role.Buyer)
	require.NoError(t, err)
	if balance > 0 {
		_, err = repo.IncreaseBalance(ctx, user.ID, balance)
		require.NoError(t, err)
		user.Balance = balance
	}
	return user
}
