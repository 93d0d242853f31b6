package model

import "time"

type Transaction struct {
	ID              string    `gorm:"column:id;primary_key;size:64" json:"id"`
	SipID           string    `gorm:"column:sip_id;size:64;not null;index" json:"sip_id"`
	Amount          float64   `gorm:"column:amount;not null" json:"amount"`
	Units           float64   `gorm:"column:units;not null" json:"units"`
	Nav             float64   `gorm:"column:nav;not null" json:"nav"`
	Status          int       `gorm:"column:status;not null;index" json:"status"`
	ExecutionDate   time.Time `gorm:"column:execution_date;not null" json:"execution_date"`
	Type            int       `gorm:"column:type;not null" json:"type"`
	CallbackApplied bool      `gorm:"column:callback_applied;not null" json:"callback_applied"`
	CreateTime      int64     `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime      int64     `gorm:"column:update_time;not null" json:"update_time"`
}

func (Transaction) TableName() string { return "transactions" }
