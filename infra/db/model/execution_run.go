package model

// ExecutionRun records one scheduler pass that found due SIPs.
type ExecutionRun struct {
	ID             string `gorm:"column:id;primary_key;size:64" json:"id"`
	AsOfDate       string `gorm:"column:as_of_date;size:10;not null" json:"as_of_date"`
	TotalDue       int64  `gorm:"column:total_due;not null" json:"total_due"`
	InitiatedCount int64  `gorm:"column:initiated_count;not null" json:"initiated_count"`
	SkippedCount   int64  `gorm:"column:skipped_count;not null" json:"skipped_count"`
	FailedCount    int64  `gorm:"column:failed_count;not null" json:"failed_count"`
	Status         int    `gorm:"column:status;not null" json:"status"`
	Result         string `gorm:"column:result;type:text;not null" json:"result"`
	CreateTime     int64  `gorm:"column:create_time;not null" json:"create_time"`
	CreateBy       string `gorm:"column:create_by;size:100;not null" json:"create_by"`
	UpdateTime     int64  `gorm:"column:update_time;not null" json:"update_time"`
	UpdateBy       string `gorm:"column:update_by;size:100;not null" json:"update_by"`
}

func (ExecutionRun) TableName() string { return "execution_runs" }
