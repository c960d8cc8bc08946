package ds

import "time"

type License struct {
	ID            uint       `gorm:"primaryKey"`
	UserID        uint       `gorm:"not null;index"`
	Key           string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt     time.Time  `gorm:"not null"`
	RevokedAt     *time.Time `gorm:"default:null"`
	RevokedReason *string    `gorm:"type:varchar(255)"`
	CreatedAt     time.Time  `gorm:"not null"`
}

// Таблица многие-ко-многим (лицензии-пакеты). Строки создаются один раз при выдаче
// лицензии и больше не меняются.
type LicensePackage struct {
	LicenseID uint `gorm:"primaryKey;autoIncrement:false"`
	PackageID uint `gorm:"primaryKey;autoIncrement:false;index"`
}
