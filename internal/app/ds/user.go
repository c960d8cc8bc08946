package ds

import (
	"time"

	"licensestore/internal/app/role"
)

// Таблица пользователей. Balance - предоплаченный баланс в минимальных единицах валюты,
// строка блокируется на время покупки.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Login        string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         role.Role `gorm:"type:int;default:0;not null"`
	Balance      int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
}
