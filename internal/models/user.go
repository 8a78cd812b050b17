package models

// User is an admin dashboard account. Accounts are provisioned directly;
// there is no self-registration.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
}
