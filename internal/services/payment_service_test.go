package services

import (
	"strings"
	"testing"
	"time"

	"bonviapp/internal/domain"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/repositories"
	"bonviapp/internal/store"
)

func newPaymentService(kv store.KV) PaymentService {
	return PaymentService{
		Reservations: repositories.ReservationRepository{Store: kv},
		Now:          func() time.Time { return time.Date(2025, 8, 21, 16, 0, 0, 0, time.Local) },
	}
}

func seedReservationWithTotal(t *testing.T, kv store.KV, id string, total float64) {
	t.Helper()
	err := (repositories.ReservationRepository{Store: kv}).Append(models.Reservation{
		ID:          id,
		Status:      models.ReservationStatusActive,
		TotalAmount: total,
		Payments:    []models.Payment{},
	})
	if err != nil {
		t.Fatalf("seed reservation error: %v", err)
	}
}

func TestPaymentAddDefaults(t *testing.T) {
	kv := store.NewMemory()
	svc := newPaymentService(kv)
	seedReservationWithTotal(t, kv, "res_1", 1000)

	p, err := svc.Add("res_1", AddPaymentInput{Amount: 300})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if !strings.HasPrefix(p.ID, "payment_") {
		t.Fatalf("unexpected payment id: %s", p.ID)
	}
	if !strings.HasPrefix(p.ReceiptNumber, "REC-") {
		t.Fatalf("blank receipt number should default to REC-<now>: %s", p.ReceiptNumber)
	}
	if p.Date != "2025-08-21" {
		t.Fatalf("blank date should default to today: %s", p.Date)
	}
	if p.Currency != models.CurrencyARS || p.PaymentMethod != models.PaymentMethodEfectivo ||
		p.PaymentType != models.PaymentParcial || p.Type != models.PaymentCobro {
		t.Fatalf("defaults not applied: %+v", p)
	}
}

func TestPaymentTotalsIgnorePagos(t *testing.T) {
	kv := store.NewMemory()
	svc := newPaymentService(kv)
	seedReservationWithTotal(t, kv, "res_1", 1000)

	if _, err := svc.Add("res_1", AddPaymentInput{Amount: 300, Type: models.PaymentCobro}); err != nil {
		t.Fatalf("Add cobro returned error: %v", err)
	}
	if _, err := svc.Add("res_1", AddPaymentInput{Amount: 50, Type: models.PaymentPago}); err != nil {
		t.Fatalf("Add pago returned error: %v", err)
	}

	ledger, err := svc.LoadLedger("res_1")
	if err != nil {
		t.Fatalf("LoadLedger returned error: %v", err)
	}
	if ledger.Collected != 300 {
		t.Fatalf("collected should count cobros only: got %v want 300", ledger.Collected)
	}
	if ledger.Remaining != 700 {
		t.Fatalf("remaining = total - collected: got %v want 700", ledger.Remaining)
	}
	if len(ledger.Payments) != 2 {
		t.Fatalf("ledger should list both entries, got %d", len(ledger.Payments))
	}
}

func TestPaymentValidation(t *testing.T) {
	kv := store.NewMemory()
	svc := newPaymentService(kv)
	seedReservationWithTotal(t, kv, "res_1", 1000)

	if _, err := svc.Add("res_1", AddPaymentInput{Amount: 10, Type: "donación"}); !domain.IsValidation(err) {
		t.Fatalf("unknown type should be rejected, got %v", err)
	}
	if _, err := svc.Add("res_1", AddPaymentInput{Amount: 10, Currency: "EUR"}); !domain.IsValidation(err) {
		t.Fatalf("payments only accept ARS or USD, got %v", err)
	}
	if _, err := svc.Add("res_9", AddPaymentInput{Amount: 10}); !domain.IsNotFound(err) {
		t.Fatalf("unknown reservation should be NotFound, got %v", err)
	}
}

func TestPaymentDelete(t *testing.T) {
	kv := store.NewMemory()
	svc := newPaymentService(kv)
	seedReservationWithTotal(t, kv, "res_1", 500)

	p, err := svc.Add("res_1", AddPaymentInput{Amount: 100})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := svc.Delete("res_1", p.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	ledger, _ := svc.LoadLedger("res_1")
	if len(ledger.Payments) != 0 || ledger.Collected != 0 {
		t.Fatalf("payment not removed: %+v", ledger)
	}
	if err := svc.Delete("res_1", p.ID); !domain.IsNotFound(err) {
		t.Fatalf("second delete should be NotFound, got %v", err)
	}
}
