package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "pawbackend/internal/config"
	"pawbackend/internal/domain"
	"pawbackend/internal/domain/models"
	"pawbackend/internal/repositories"
	"pawbackend/internal/utils"
)

const (
	defaultWithdrawMinCents = 1000
	defaultWithdrawFeeBP    = 100
)

// WithdrawalService lets a walker convert available earnings into a
// payout request. The balance is always derived by summing ledger
// entries at decision time; the check and the debit share one
// transaction so concurrent requests cannot overdraw.
type WithdrawalService struct {
	EarningRepo      repositories.EarningRepository
	NotificationRepo repositories.NotificationRepository
	DB               *sql.DB
	Now              func() time.Time
	RequestID        string
	MinCents         int64
	FeeBP            int64
}

func (s WithdrawalService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s WithdrawalService) minCents() int64 {
	if s.MinCents > 0 {
		return s.MinCents
	}
	return defaultWithdrawMinCents
}

func (s WithdrawalService) feeBP() int64 {
	if s.FeeBP > 0 {
		return s.FeeBP
	}
	return defaultWithdrawFeeBP
}

func (s WithdrawalService) earnings() repositories.EarningRepository {
	if s.EarningRepo.DB != nil {
		return s.EarningRepo
	}
	return repositories.EarningRepository{DB: s.db()}
}

func (s WithdrawalService) notifications() repositories.NotificationRepository {
	if s.NotificationRepo.DB != nil {
		return s.NotificationRepo
	}
	return repositories.NotificationRepository{DB: s.db()}
}

// AvailableBalance returns the walker's current withdrawable cents.
func (s WithdrawalService) AvailableBalance(walkerID int64) (int64, error) {
	balance, err := s.earnings().AvailableBalance(s.db(), walkerID)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to compute balance", Err: err}
	}
	return balance, nil
}

// History returns the walker's full ledger, newest first.
func (s WithdrawalService) History(walkerID int64) ([]models.Earning, error) {
	list, err := s.earnings().ListByWalker(walkerID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list earnings", Err: err}
	}
	return list, nil
}

// WithdrawalResult reports a successful payout request. Fee is the 1%
// processing fee taken out of the payout; the ledger debit equals the
// requested amount.
type WithdrawalResult struct {
	Entry      models.Earning `json:"entry"`
	Fee        int64          `json:"fee"`
	NetPayout  int64          `json:"net_payout"`
	NewBalance int64          `json:"new_balance"`
}

// RequestWithdrawal validates the amount against the live balance and
// appends the WITHDRAWAL debit. Requesting exactly the available balance
// succeeds; one cent more fails with the balance attached.
func (s WithdrawalService) RequestWithdrawal(walkerID, amount int64) (WithdrawalResult, error) {
	if walkerID <= 0 {
		return WithdrawalResult{}, domain.ValidationError{Field: "walker_id", Msg: "required"}
	}
	if amount <= 0 {
		return WithdrawalResult{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	if amount < s.minCents() {
		return WithdrawalResult{}, domain.ValidationError{
			Field: "amount",
			Msg:   fmt.Sprintf("minimum withdrawal is %s", utils.FormatMoney(s.minCents())),
		}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return WithdrawalResult{}, domain.InternalError{Msg: "failed to begin transaction", Err: err}
	}
	defer tx.Rollback()

	balance, err := s.earnings().AvailableBalance(tx, walkerID)
	if err != nil {
		return WithdrawalResult{}, domain.InternalError{Msg: "failed to compute balance", Err: err}
	}
	if amount > balance {
		return WithdrawalResult{}, domain.InsufficientBalanceError{Requested: amount, Balance: balance}
	}

	fee := utils.Percent(amount, s.feeBP())
	net := amount - fee
	entry := models.Earning{
		WalkerID: walkerID,
		Amount:   -amount,
		Type:     models.EarningWithdrawal,
		Status:   models.EarningWithdrawn,
		Description: fmt.Sprintf("Withdrawal of %s (fee %s, payout %s, arrives in 2-3 business days)",
			utils.FormatMoney(amount), utils.FormatMoney(fee), utils.FormatMoney(net)),
	}
	if err := s.earnings().Append(tx, &entry); err != nil {
		return WithdrawalResult{}, domain.InternalError{Msg: "failed to record withdrawal", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return WithdrawalResult{}, domain.InternalError{Msg: "failed to commit withdrawal", Err: err}
	}

	utils.LogEvent(s.RequestID, "withdrawal", "request",
		fmt.Sprintf("walker_id=%d amount=%s fee=%s", walkerID, utils.FormatMoney(amount), utils.FormatMoney(fee)))

	dispatchNotification(s.notifications(), s.RequestID, models.Notification{
		UserID:      walkerID,
		Type:        models.NotifWithdrawal,
		Title:       "Withdrawal requested",
		Description: fmt.Sprintf("Payout of %s on its way (2-3 business days)", utils.FormatMoney(net)),
		Link:        "/earnings",
	})

	return WithdrawalResult{
		Entry:      entry,
		Fee:        fee,
		NetPayout:  net,
		NewBalance: balance - amount,
	}, nil
}
