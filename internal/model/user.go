package model

type User struct {
	BaseModel
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Name     string `gorm:"size:100" json:"name"`
}

func (User) TableName() string {
	return "users"
}
