package model

type Fund struct {
	ID         string  `gorm:"column:id;primary_key;size:64" json:"id"`
	Name       string  `gorm:"column:name;size:200;not null" json:"name"`
	Category   int     `gorm:"column:category;not null;index" json:"category"`
	RiskLevel  int     `gorm:"column:risk_level;not null;index" json:"risk_level"`
	Nav        float64 `gorm:"column:nav;not null" json:"nav"`
	CreateTime int64   `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime int64   `gorm:"column:update_time;not null" json:"update_time"`
}

func (Fund) TableName() string { return "funds" }
