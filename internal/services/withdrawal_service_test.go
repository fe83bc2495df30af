package services

import (
	"testing"

	"pawbackend/internal/domain"
	"pawbackend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newWithdrawalService(t *testing.T) (WithdrawalService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock init")
	svc := WithdrawalService{
		EarningRepo:      repositories.EarningRepository{DB: db},
		NotificationRepo: repositories.NotificationRepository{DB: db},
		DB:               db,
	}
	return svc, mock, func() { db.Close() }
}

func expectBalance(mock sqlmock.Sqlmock, walkerID, balance int64) {
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM earnings").
		WithArgs(walkerID).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(balance))
}

// Withdrawing exactly the available balance succeeds: the check is
// amount > balance, so equality passes and the ledger goes to zero.
func TestWithdrawExactBalanceSucceeds(t *testing.T) {
	svc, mock, done := newWithdrawalService(t)
	defer done()

	mock.ExpectBegin()
	expectBalance(mock, 22, 20050)
	mock.ExpectExec("INSERT INTO earnings").
		WithArgs(int64(22), nil, int64(-20050), "WITHDRAWAL", "WITHDRAWN", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(1, 1))

	res, err := svc.RequestWithdrawal(22, 20050)
	require.NoError(t, err)
	require.Equal(t, int64(-20050), res.Entry.Amount)
	require.Equal(t, int64(201), res.Fee, "1 percent of 200.50 rounds half-up to 2.01")
	require.Equal(t, int64(19849), res.NetPayout)
	require.Equal(t, int64(0), res.NewBalance)
	require.NoError(t, mock.ExpectationsWereMet())
}

// One cent over the balance fails with the balance attached and writes
// nothing.
func TestWithdrawOneCentOverBalanceFails(t *testing.T) {
	svc, mock, done := newWithdrawalService(t)
	defer done()

	mock.ExpectBegin()
	expectBalance(mock, 22, 20050)
	mock.ExpectRollback()

	_, err := svc.RequestWithdrawal(22, 20051)
	var insufficient domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(20051), insufficient.Requested)
	require.Equal(t, int64(20050), insufficient.Balance)
	require.NoError(t, mock.ExpectationsWereMet(), "no ledger entry may be written on a failed withdrawal")
}

func TestWithdrawBelowMinimumRejected(t *testing.T) {
	svc, _, done := newWithdrawalService(t)
	defer done()

	_, err := svc.RequestWithdrawal(22, 999)
	require.True(t, domain.IsValidation(err), "got %v", err)

	_, err = svc.RequestWithdrawal(22, 0)
	require.True(t, domain.IsValidation(err), "got %v", err)
}

func TestWithdrawMinimumExactlyAllowed(t *testing.T) {
	svc, mock, done := newWithdrawalService(t)
	defer done()

	mock.ExpectBegin()
	expectBalance(mock, 22, 5000)
	mock.ExpectExec("INSERT INTO earnings").
		WithArgs(int64(22), nil, int64(-1000), "WITHDRAWAL", "WITHDRAWN", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(6, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(1, 1))

	res, err := svc.RequestWithdrawal(22, 1000)
	require.NoError(t, err)
	require.Equal(t, int64(10), res.Fee)
	require.Equal(t, int64(990), res.NetPayout)
	require.Equal(t, int64(4000), res.NewBalance)
}

func TestAvailableBalance(t *testing.T) {
	svc, mock, done := newWithdrawalService(t)
	defer done()

	expectBalance(mock, 22, 20050)

	balance, err := svc.AvailableBalance(22)
	require.NoError(t, err)
	require.Equal(t, int64(20050), balance)
}
