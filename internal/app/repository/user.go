package repository

import (
	"context"
	"fmt"
	"time"

	"licensestore/internal/app/ds"
	"licensestore/internal/app/role"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(ctx context.Context, login string) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *Repository) UserExistsByLogin(ctx context.Context, login string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ds.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(ctx context.Context, login, passwordHash string, userRole role.Role) (*ds.User, error) {
	user := ds.User{
		Login:        login,
		PasswordHash: passwordHash,
		Role:         userRole,
	}

	err := r.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]ds.User, error) {
	var users []ds.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

// SetUserRole меняет роль и возвращает обновлённого пользователя
func (r *Repository) SetUserRole(ctx context.Context, id uint, userRole role.Role) (*ds.User, error) {
	result := r.db.WithContext(ctx).Model(&ds.User{}).
		Where("id = ?", id).
		Update("role", userRole)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetUserByID(ctx, id)
}

// LockUserForUpdate читает пользователя с эксклюзивной блокировкой строки
// (SELECT ... FOR UPDATE). Блокировка держится до коммита или отката транзакции.
func (r *Repository) LockUserForUpdate(ctx context.Context, id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// DebitBalance списывает amount с баланса. Вызывается только под LockUserForUpdate.
func (r *Repository) DebitBalance(ctx context.Context, id uint, amount int64) error {
	result := r.db.WithContext(ctx).Model(&ds.User{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncreaseBalance атомарно пополняет баланс и возвращает новое значение
func (r *Repository) IncreaseBalance(ctx context.Context, id uint, amount int64) (int64, error) {
	var balance int64
	err := r.Transaction(ctx, func(tx *Repository) error {
		user, err := tx.LockUserForUpdate(ctx, id)
		if err != nil {
			return err
		}

		result := tx.db.WithContext(ctx).Model(&ds.User{}).
			Where("id = ?", id).
			Update("balance", gorm.Expr("balance + ?", amount))
		if result.Error != nil {
			return result.Error
		}

		balance = user.Balance + amount
		return nil
	})
	return balance, err
}

// SetLockTimeout ограничивает ожидание блокировок в текущей транзакции.
// Работает только на postgres, для остальных диалектов ничего не делает.
func (r *Repository) SetLockTimeout(ctx context.Context, d time.Duration) error {
	if d <= 0 || r.Dialect() != "postgres" {
		return nil
	}
	// SET не принимает плейсхолдеры, значение - целое число миллисекунд
	return r.db.WithContext(ctx).Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds())).Error
}
