package model

// swagger:model User
type User struct {
	BaseModel
	Name         string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"isAdmin"`
	IsBlocked    bool   `gorm:"default:false" json:"isBlocked"`
}

func (User) TableName() string {
	return "users"
}
