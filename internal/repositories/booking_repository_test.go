package repositories

import (
	"testing"

	"pawbackend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateStatusGuardedByCurrentStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := BookingRepository{DB: db}

	mock.ExpectExec("UPDATE bookings SET status=(.+) WHERE id=(.+) AND status=").
		WithArgs("ACCEPTED", int64(5), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateStatus(db, 5, models.BookingPending, models.BookingAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected the guarded update to report success")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusStaleReportsFalse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := BookingRepository{DB: db}

	mock.ExpectExec("UPDATE bookings SET status=(.+) WHERE id=(.+) AND status=").
		WithArgs("ACCEPTED", int64(5), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateStatus(db, 5, models.BookingPending, models.BookingAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if ok {
		t.Fatalf("a zero-row guarded update must not report success")
	}
}

func TestUpdateStatusCancelSetsCancelledAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := BookingRepository{DB: db}

	mock.ExpectExec("UPDATE bookings SET status=(.+)cancelled_at=NOW\\(\\) WHERE id=(.+) AND status=").
		WithArgs("CANCELLED", int64(5), "ACCEPTED").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateStatus(db, 5, models.BookingAccepted, models.BookingCancelled)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected success")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("cancelled_at not set on cancellation: %v", err)
	}
}
