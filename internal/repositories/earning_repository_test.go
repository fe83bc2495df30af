package repositories

import (
	"testing"

	"pawbackend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAppendWithoutBookingStoresNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := EarningRepository{DB: db}

	mock.ExpectExec("INSERT INTO earnings").
		WithArgs(int64(22), nil, int64(-1000), "WITHDRAWAL", "WITHDRAWN", "payout").
		WillReturnResult(sqlmock.NewResult(3, 1))

	e := models.Earning{
		WalkerID:    22,
		Amount:      -1000,
		Type:        models.EarningWithdrawal,
		Status:      models.EarningWithdrawn,
		Description: "payout",
	}
	if err := repo.Append(db, &e); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if e.ID != 3 {
		t.Fatalf("generated id not captured, got %d", e.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppendRejectsMissingWalker(t *testing.T) {
	repo := EarningRepository{}
	if err := repo.Append(nil, &models.Earning{Amount: 100}); err == nil {
		t.Fatalf("expected error for missing walker id")
	}
}

func TestAvailableBalanceSumsLedger(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := EarningRepository{DB: db}

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM earnings").
		WithArgs(int64(22)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(20050)))

	balance, err := repo.AvailableBalance(db, 22)
	if err != nil {
		t.Fatalf("AvailableBalance returned error: %v", err)
	}
	if balance != 20050 {
		t.Fatalf("balance = %d, want 20050", balance)
	}
}

func TestServiceCreditForBookingNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := EarningRepository{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM earnings").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "walker_id", "booking_id", "amount", "type", "status", "description", "created_at"}))

	_, found, err := repo.ServiceCreditForBooking(db, 5)
	if err != nil {
		t.Fatalf("ServiceCreditForBooking returned error: %v", err)
	}
	if found {
		t.Fatalf("expected no credit for an unsettled booking")
	}
}
