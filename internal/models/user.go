package models

import "gorm.io/gorm"

// Role names match the dashboards each user type lands on.
const (
	RoleClient   = "cliente"
	RoleCashier  = "cajero"
	RoleEmployee = "empleado"
	RoleAdmin    = "administrador"
)

// User represents an account on the platform.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string `json:"role" gorm:"type:varchar(20)" validate:"required,oneof=cliente cajero empleado administrador"`
	Phone      string `json:"phone,omitempty" gorm:"type:varchar(20)" validate:"omitempty,mxphone"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
