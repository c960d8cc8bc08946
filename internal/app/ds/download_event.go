package ds

import "time"

type DownloadEvent struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         *uint     `gorm:"index"`
	LicenseKey     *string   `gorm:"type:varchar(64);index"`
	PackageName    string    `gorm:"type:varchar(100);not null;index"`
	PackageVersion *string   `gorm:"type:varchar(50)"`
	IPAddress      *string   `gorm:"type:varchar(45)"`
	ValidAtLogTime bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}
