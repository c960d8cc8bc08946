package ds

import "time"

// Пакет каталога. Депрекация - мягкий обратимый флаг, пакеты не удаляются.
type Package struct {
	ID             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	IsBase         bool      `gorm:"not null;default:false"`
	Price          int64     `gorm:"not null"`
	IsDeprecated   bool      `gorm:"not null;default:false"`
	ArtifactObject *string   `gorm:"type:varchar(255)"` // имя объекта в MinIO, nullable
	CreatedAt      time.Time `gorm:"not null"`
}
