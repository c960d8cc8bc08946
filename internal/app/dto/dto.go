package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Пакеты (каталог) ============

type PackageResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	IsBase       bool      `json:"is_base"`
	Price        int64     `json:"price"`
	IsDeprecated bool      `json:"is_deprecated"`
	HasArtifact  bool      `json:"has_artifact"`
	CreatedAt    time.Time `json:"created_at"`
}

type PackageListResponse struct {
	Packages []PackageResponse `json:"packages"`
	Total    int               `json:"total"`
}

type CreatePackageRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	IsBase bool   `json:"is_base"`
	Price  *int64 `json:"price" binding:"required,gte=0"`
}

// ============ Баланс ============

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

type IncreaseBalanceRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// ============ Покупка ============

type PurchaseItemRequest struct {
	BasePackageID   uint   `json:"base_package_id"`
	AddonPackageIDs []uint `json:"addon_package_ids"`
}

type PurchaseRequest struct {
	Items       []PurchaseItemRequest `json:"items"`
	LicenseDays *int                  `json:"license_days"`
}

type IssuedLicenseResponse struct {
	Key        string    `json:"key"`
	PackageIDs []uint    `json:"package_ids"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ============ Лицензии ============

type IssueLicenseRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	PackageIDs  []uint `json:"package_ids" binding:"required,min=1"`
	LicenseDays *int   `json:"license_days"`
}

type RevokeLicenseRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=255"`
}

type ExtendLicenseRequest struct {
	ExtraDays int `json:"extra_days"`
}

type LicenseResponse struct {
	ID            uint       `json:"id"`
	Key           string     `json:"key"`
	UserID        uint       `json:"user_id"`
	ExpiresAt     time.Time  `json:"expires_at"`
	RevokedAt     *time.Time `json:"revoked_at"`
	RevokedReason *string    `json:"revoked_reason"`
	PackageIDs    []uint     `json:"package_ids"`
}

type LicenseListResponse struct {
	Licenses []LicenseResponse `json:"licenses"`
	Total    int               `json:"total"`
}

type MyLicenseResponse struct {
	ID            uint       `json:"id"`
	Key           string     `json:"key"`
	ExpiresAt     time.Time  `json:"expires_at"`
	RevokedAt     *time.Time `json:"revoked_at"`
	RevokedReason *string    `json:"revoked_reason"`
	Valid         bool       `json:"valid"`
	PackageNames  []string   `json:"package_names"`
}

type LicenseKeyRequest struct {
	Key string `json:"key" binding:"required"`
}

type ValidateResponse struct {
	Valid     bool       `json:"valid"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	Reason    *string    `json:"reason,omitempty"`
}

type EntitlementResponse struct {
	Key          string   `json:"key"`
	PackageNames []string `json:"package_names"`
}

type DownloadLinkResponse struct {
	Package   string    `json:"package"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ============ События скачивания ============

type DownloadEventRequest struct {
	LicenseKey     *string `json:"license_key" binding:"omitempty,max=64"`
	PackageName    string  `json:"package_name" binding:"required,max=100"`
	PackageVersion *string `json:"package_version" binding:"omitempty,max=50"`
	IPAddress      *string `json:"ip_address" binding:"omitempty,ip"`
}

type DownloadEventResponse struct {
	ID             uint      `json:"id"`
	UserID         *uint     `json:"user_id"`
	LicenseKey     *string   `json:"license_key"`
	PackageName    string    `json:"package_name"`
	PackageVersion *string   `json:"package_version"`
	IPAddress      *string   `json:"ip_address"`
	ValidAtLogTime bool      `json:"valid_at_log_time"`
	CreatedAt      time.Time `json:"created_at"`
}

type DownloadEventListResponse struct {
	Events []DownloadEventResponse `json:"events"`
	Total  int                     `json:"total"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID    uint   `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=buyer admin"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}
