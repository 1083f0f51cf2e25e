package models

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleGeneral Role = "GENERAL"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleGeneral
}

type Employee struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Code         string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"type:varchar(20);not null" json:"name"`
	Role         Role      `gorm:"type:varchar(10);not null;default:'GENERAL'" json:"role"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	DeleteFlg    bool      `gorm:"not null;default:false" json:"delete_flg"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Reports []Report `gorm:"foreignKey:EmployeeID" json:"-"`
}

// IsAdmin reports whether the employee can see every report.
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
