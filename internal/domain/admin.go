package domain

// AdminUser is an agency staff account allowed into the dashboard.
type AdminUser struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uq_admin_users_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Name         string `gorm:"type:varchar(255)" json:"name"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
