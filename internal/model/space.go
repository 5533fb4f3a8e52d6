package model

// Space is a learning space: one topic a user is working through,
// with an optional goal that steers the tutor.
type Space struct {
	UUIDBase
	UserID uint   `gorm:"index;not null" json:"userId"`
	Name   string `gorm:"size:200;not null" json:"name"`
	Topic  string `gorm:"size:500;not null" json:"topic"`
	Goal   string `gorm:"size:1000" json:"goal"`
}

func (Space) TableName() string {
	return "spaces"
}
