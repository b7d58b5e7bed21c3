package entity

import "database/sql"

type User struct {
	Base
	WalletAddress  sql.NullString `gorm:"unique"`
	Name           string         `gorm:"unique"`
	Role           string         `gorm:"default:USER"`
	Bio            string
	ProfilePicture Map
	Interests      Array[string]
	SocialLinks    Map
}

const (
	SuperAdminRole = "SUPER_ADMIN"
	AdminRole      = "ADMIN"
	UserRole       = "USER"
)
