package store

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSQLStoreGetMissingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM storage").WithArgs("requests").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	s := NewWithDB(db)
	_, ok, err := s.Get("requests")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Fatalf("missing key reported as present")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStorePutUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO storage").WithArgs("requests", "[]").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT value FROM storage").WithArgs("requests").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("[]"))

	s := NewWithDB(db)
	if err := s.Put("requests", []byte("[]")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	got, ok, err := s.Get("requests")
	if err != nil || !ok {
		t.Fatalf("Get after Put failed: ok=%v err=%v", ok, err)
	}
	if string(got) != "[]" {
		t.Fatalf("unexpected value: %s", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreUpdateRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO storage").WithArgs("reservations", "[]").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	s := NewWithDB(db)
	boom := errors.New("boom")
	err = s.Update(func(tx Bucket) error {
		if err := tx.Put("reservations", []byte("[]")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update should surface the callback error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMemoryUpdateDiscardsFailedWrites(t *testing.T) {
	m := NewMemory()
	if err := m.Put("requests", []byte(`["a"]`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	err := m.Update(func(tx Bucket) error {
		if err := tx.Put("requests", []byte(`["b"]`)); err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatalf("expected error from Update")
	}

	got, ok, err := m.Get("requests")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(got) != `["a"]` {
		t.Fatalf("failed update leaked writes: %s", got)
	}
}

func TestMemoryUpdateCommitsOnSuccess(t *testing.T) {
	m := NewMemory()
	err := m.Update(func(tx Bucket) error {
		if err := tx.Put("requests", []byte("[]")); err != nil {
			return err
		}
		return tx.Delete("budget_1")
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if _, ok, _ := m.Get("requests"); !ok {
		t.Fatalf("committed write missing")
	}
}
