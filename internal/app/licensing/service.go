// Package licensing - ядро магазина лицензий: проверка и расчёт стоимости покупки,
// атомарное списание баланса с выдачей лицензий и вычисление прав по ключу лицензии.
package licensing

import (
	"time"

	"licensestore/internal/app/ds"
	"licensestore/internal/app/repository"
)

// PurchaseItem - одна позиция покупки: базовый пакет и набор дополнений
type PurchaseItem struct {
	BasePackageID   uint
	AddonPackageIDs []uint
}

type PurchaseRequest struct {
	Items       []PurchaseItem
	LicenseDays *int
}

// ValidatedItem - позиция после проверки по каталогу: дополнения без повторов,
// в порядке первого появления
type ValidatedItem struct {
	Base     ds.Package
	Addons   []ds.Package
	Subtotal int64
}

// PackageIDs возвращает id пакетов позиции: сначала базовый, затем дополнения
func (v ValidatedItem) PackageIDs() []uint {
	ids := make([]uint, 0, len(v.Addons)+1)
	ids = append(ids, v.Base.ID)
	for _, a := range v.Addons {
		ids = append(ids, a.ID)
	}
	return ids
}

// IssuedLicense - результат покупки по одной позиции
type IssuedLicense struct {
	Key        string
	PackageIDs []uint
	ExpiresAt  time.Time
}

type Options struct {
	DefaultDays int
	LockTimeout time.Duration
	Now         func() time.Time
}

type Service struct {
	repo        *repository.Repository
	defaultDays int
	lockTimeout time.Duration
	now         func() time.Time
}

func NewService(repo *repository.Repository, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	defaultDays := opts.DefaultDays
	if defaultDays <= 0 {
		defaultDays = 30
	}

	return &Service{
		repo:        repo,
		defaultDays: defaultDays,
		lockTimeout: opts.LockTimeout,
		now:         now,
	}
}
