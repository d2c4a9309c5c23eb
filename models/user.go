package models

import "time"

// User hanya dipakai sebagai sumber capability check (login + permission);
// manajemen user ada di aplikasi lain.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:120" json:"username"`
	FullName     string     `gorm:"size:180" json:"full_name"`
	Role         string     `gorm:"size:20;default:user" json:"role"` // "admin" | "user"
	PasswordHash string     `gorm:"size:255" json:"-"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Permission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;size:80;not null" json:"code"` // e.g. BARANG_MASUK
	Name      string    `gorm:"size:180;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserPermission struct {
	UserID       uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PermissionID uint      `gorm:"primaryKey;autoIncrement:false" json:"permission_id"`
	GrantedAt    time.Time `json:"granted_at"`
}
