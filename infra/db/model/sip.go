package model

import "time"

type Sip struct {
	ID                string    `gorm:"column:id;primary_key;size:64" json:"id"`
	UserID            string    `gorm:"column:user_id;size:64;not null;index" json:"user_id"`
	FundID            string    `gorm:"column:fund_id;size:64;not null;index" json:"fund_id"`
	BaseAmount        float64   `gorm:"column:base_amount;not null" json:"base_amount"`
	Frequency         int       `gorm:"column:frequency;not null" json:"frequency"`
	State             int       `gorm:"column:state;not null;index" json:"state"`
	StartDate         time.Time `gorm:"column:start_date;not null" json:"start_date"`
	NextExecutionDate time.Time `gorm:"column:next_execution_date;not null" json:"next_execution_date"`
	InstallmentCount  int       `gorm:"column:installment_count;not null" json:"installment_count"`
	StepUpPercentage  float64   `gorm:"column:step_up_percentage;not null" json:"step_up_percentage"`
	CreateTime        int64     `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime        int64     `gorm:"column:update_time;not null" json:"update_time"`
}

func (Sip) TableName() string { return "sips" }
