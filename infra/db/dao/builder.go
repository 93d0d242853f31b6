package dao

import (
	"time"

	"github.com/radhian/sip-engine/infra/db/model"

	"github.com/jinzhu/gorm"
)

type FundDao interface {
	CreateFund(fund model.Fund) error
	GetFundByID(fundID string) (model.Fund, bool, error)
	GetFunds() ([]model.Fund, error)
	GetFundsByCategory(category int) ([]model.Fund, error)
	GetFundsByRiskLevel(riskLevel int) ([]model.Fund, error)
	UpdateFund(fund model.Fund) (bool, error)
	DeleteFund(fundID string) (bool, error)
	FundExists(fundID string) (bool, error)
	CountFunds() (int64, error)
}

type UserDao interface {
	CreateUser(user model.User) error
	GetUserByID(userID string) (model.User, bool, error)
	GetUsers() ([]model.User, error)
	UpdateUser(user model.User) (bool, error)
	DeleteUser(userID string) (bool, error)
	UserExists(userID string) (bool, error)
	CountUsers() (int64, error)
}

type SipDao interface {
	CreateSip(sip model.Sip) error
	GetSipByID(sipID string) (model.Sip, bool, error)
	GetSips() ([]model.Sip, error)
	GetSipsByUserID(userID string) ([]model.Sip, error)
	GetSipsByFundID(fundID string) ([]model.Sip, error)
	GetSipsByState(state int) ([]model.Sip, error)
	GetSipsByUserIDAndState(userID string, state int) ([]model.Sip, error)
	// GetDueSips returns ACTIVE SIPs whose next execution date is on or before asOf.
	GetDueSips(asOf time.Time) ([]model.Sip, error)
	UpdateSip(sip model.Sip) (bool, error)
	DeleteSip(sipID string) (bool, error)
	SipExists(sipID string) (bool, error)
	CountSips() (int64, error)
}

type TransactionDao interface {
	CreateTransaction(trx model.Transaction) error
	GetTransactionByID(trxID string) (model.Transaction, bool, error)
	GetTransactions() ([]model.Transaction, error)
	GetTransactionsBySipID(sipID string) ([]model.Transaction, error)
	GetTransactionsByStatus(status int) ([]model.Transaction, error)
	GetSuccessfulTransactionsBySipID(sipID string) ([]model.Transaction, error)
	UpdateTransaction(trx model.Transaction) (bool, error)
	DeleteTransaction(trxID string) (bool, error)
	TransactionExists(trxID string) (bool, error)
	CountTransactions() (int64, error)
	// ApplyTransactionCallback sets the status and the callback-applied flag only
	// if the flag is not set yet. applied is false when the transaction is missing
	// or a previous callback already won.
	ApplyTransactionCallback(trxID string, status int, updateTime int64) (applied bool, found bool, err error)
	HasPendingInstallment(sipID string) (bool, error)
}

type ExecutionRunDao interface {
	CreateExecutionRun(run model.ExecutionRun, items []model.ExecutionRunItem) error
	GetExecutionRuns() ([]model.ExecutionRun, error)
	GetExecutionRunByID(runID string) (model.ExecutionRun, bool, error)
	GetExecutionRunItemsByRunID(runID string) ([]model.ExecutionRunItem, error)
}

type DaoMethod interface {
	FundDao
	UserDao
	SipDao
	TransactionDao
	ExecutionRunDao
}

type dao struct {
	db *gorm.DB
}

func NewDaoMethod(db *gorm.DB) DaoMethod {
	return &dao{db: db}
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...).Error; err != nil {
		return err
	}
	return nil
}

func (d *dao) count(value interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	q := d.db.Model(value)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
