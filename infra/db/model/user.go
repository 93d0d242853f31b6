package model

type User struct {
	ID         string `gorm:"column:id;primary_key;size:64" json:"id"`
	Name       string `gorm:"column:name;size:100;not null" json:"name"`
	Email      string `gorm:"column:email;size:100;not null" json:"email"`
	CreateTime int64  `gorm:"column:create_time;not null" json:"create_time"`
}

func (User) TableName() string { return "users" }
