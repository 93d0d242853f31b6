package model

type ExecutionRunItem struct {
	ID             int64  `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	ExecutionRunID string `gorm:"column:execution_run_id;size:64;not null;index" json:"execution_run_id"`
	SipID          string `gorm:"column:sip_id;size:64;not null" json:"sip_id"`
	TransactionID  string `gorm:"column:transaction_id;size:64" json:"transaction_id"`
	Outcome        int    `gorm:"column:outcome;not null" json:"outcome"`
	Error          string `gorm:"column:error;type:text" json:"error"`
	CreateTime     int64  `gorm:"column:create_time;not null" json:"create_time"`
	CreateBy       string `gorm:"column:create_by;size:100;not null" json:"create_by"`
}

func (ExecutionRunItem) TableName() string { return "execution_run_items" }
