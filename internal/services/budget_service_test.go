package services

import (
	"encoding/json"
	"testing"
	"time"

	"bonviapp/internal/domain"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/repositories"
	"bonviapp/internal/store"
)

func seedRequest(t *testing.T, kv store.KV, id string) models.Request {
	t.Helper()
	req := models.Request{
		ID:           id,
		CreationDate: "2025-08-20",
		TravelDate:   "2025-09-01 - 2025-09-10",
		Passengers:   2,
		Nights:       9,
		Responsible:  "Caro",
	}
	repo := repositories.RequestRepository{Store: kv}
	list, err := repo.List()
	if err != nil {
		t.Fatalf("seed list error: %v", err)
	}
	if err := repo.SaveAll(append(list, req)); err != nil {
		t.Fatalf("seed save error: %v", err)
	}
	return req
}

func newBudgetService(kv store.KV) BudgetService {
	return BudgetService{
		Store: kv,
		Now:   func() time.Time { return time.Date(2025, 8, 21, 15, 0, 0, 0, time.UTC) },
	}
}

func TestBudgetLoadEmptyAndUnknownRequest(t *testing.T) {
	kv := store.NewMemory()
	seedRequest(t, kv, "100")
	svc := newBudgetService(kv)

	doc, err := svc.Load("100")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(doc.BudgetOptions) != 0 {
		t.Fatalf("fresh budget should have no options")
	}
	if doc.RequestDetails.Responsible != "Caro" {
		t.Fatalf("request snapshot missing: %+v", doc.RequestDetails)
	}

	if _, err := svc.Load("999"); !domain.IsNotFound(err) {
		t.Fatalf("unknown request should be NotFound, got %v", err)
	}
}

func TestBudgetFinalPricePairwiseSum(t *testing.T) {
	kv := store.NewMemory()
	seedRequest(t, kv, "100")
	svc := newBudgetService(kv)

	doc, err := svc.AddOption("100")
	if err != nil {
		t.Fatalf("AddOption returned error: %v", err)
	}
	optID := doc.BudgetOptions[0].ID
	if _, err := svc.AddItem("100", optID); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	if _, err := svc.EditItem("100", optID, 0, "expenses", json.RawMessage(`20`)); err != nil {
		t.Fatalf("EditItem expenses returned error: %v", err)
	}
	doc, err = svc.EditItem("100", optID, 0, "rate", json.RawMessage(`100`))
	if err != nil {
		t.Fatalf("EditItem rate returned error: %v", err)
	}
	if got := doc.BudgetOptions[0].Items[0].FinalPrice; got != 120 {
		t.Fatalf("finalPrice after rate=100, expenses=20: got %v want 120", got)
	}

	doc, err = svc.EditItem("100", optID, 0, "expenses", json.RawMessage(`50`))
	if err != nil {
		t.Fatalf("EditItem expenses returned error: %v", err)
	}
	if got := doc.BudgetOptions[0].Items[0].FinalPrice; got != 150 {
		t.Fatalf("finalPrice after expenses=50: got %v want 150", got)
	}
}

func TestBudgetEditItemValidation(t *testing.T) {
	kv := store.NewMemory()
	seedRequest(t, kv, "100")
	svc := newBudgetService(kv)

	doc, _ := svc.AddOption("100")
	optID := doc.BudgetOptions[0].ID
	if _, err := svc.AddItem("100", optID); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	if _, err := svc.EditItem("100", optID, 0, "rate", json.RawMessage(`"abc"`)); !domain.IsValidation(err) {
		t.Fatalf("non-numeric rate should be rejected, got %v", err)
	}
	if _, err := svc.EditItem("100", optID, 0, "serviceType", json.RawMessage(`"crucero"`)); !domain.IsValidation(err) {
		t.Fatalf("unknown service type should be rejected, got %v", err)
	}
	if _, err := svc.EditItem("100", optID, 0, "rateCurrency", json.RawMessage(`"BRL"`)); !domain.IsValidation(err) {
		t.Fatalf("unknown currency should be rejected, got %v", err)
	}
	if _, err := svc.EditItem("100", optID, 5, "rate", json.RawMessage(`1`)); !domain.IsNotFound(err) {
		t.Fatalf("out-of-range index should be NotFound, got %v", err)
	}
	if _, err := svc.EditItem("100", "option-99", 0, "rate", json.RawMessage(`1`)); !domain.IsNotFound(err) {
		t.Fatalf("unknown option should be NotFound, got %v", err)
	}
}

func TestBudgetOptionIDsStableAfterDelete(t *testing.T) {
	kv := store.NewMemory()
	seedRequest(t, kv, "100")
	svc := newBudgetService(kv)

	for i := 0; i < 3; i++ {
		if _, err := svc.AddOption("100"); err != nil {
			t.Fatalf("AddOption returned error: %v", err)
		}
	}

	doc, err := svc.DeleteOption("100", "option-1")
	if err != nil {
		t.Fatalf("DeleteOption returned error: %v", err)
	}
	if doc.BudgetOptions[0].ID != "option-2" || doc.BudgetOptions[1].ID != "option-3" {
		t.Fatalf("surviving option ids changed: %+v", doc.BudgetOptions)
	}

	// a new option must not reuse the deleted id
	doc, err = svc.AddOption("100")
	if err != nil {
		t.Fatalf("AddOption returned error: %v", err)
	}
	if got := doc.BudgetOptions[2].ID; got != "option-4" {
		t.Fatalf("new option reused or skipped id: %s", got)
	}
}

func TestBudgetSeqRecoveredFromLegacyDocument(t *testing.T) {
	kv := store.NewMemory()
	seedRequest(t, kv, "100")

	// document written before the counter existed
	legacy := models.BudgetDocument{
		RequestID: "100",
		BudgetOptions: []models.BudgetOption{
			{ID: "option-1", Items: []models.BudgetItem{}},
			{ID: "option-3", Items: []models.BudgetItem{}},
		},
	}
	if err := (repositories.BudgetRepository{Store: kv}).Put(legacy); err != nil {
		t.Fatalf("seed budget error: %v", err)
	}

	svc := newBudgetService(kv)
	doc, err := svc.AddOption("100")
	if err != nil {
		t.Fatalf("AddOption returned error: %v", err)
	}
	if got := doc.BudgetOptions[2].ID; got != "option-4" {
		t.Fatalf("counter not recovered from legacy ids: %s", got)
	}
}

func TestBudgetSaveStampsLastModified(t *testing.T) {
	kv := store.NewMemory()
	seedRequest(t, kv, "100")
	svc := newBudgetService(kv)

	options := []models.BudgetOption{
		{ID: "option-1", Items: []models.BudgetItem{{Rate: 100, FinalPrice: 100, RateCurrency: "ARS", ExpensesCurrency: "ARS", FinalPriceCurrency: "ARS"}}},
	}
	doc, err := svc.Save("100", options)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if doc.LastModified == "" || doc.ApprovalDate != "" {
		t.Fatalf("save should stamp lastModified only: %+v", doc)
	}

	stored, ok, err := (repositories.BudgetRepository{Store: kv}).Get("100")
	if err != nil || !ok {
		t.Fatalf("budget not persisted: ok=%v err=%v", ok, err)
	}
	if len(stored.BudgetOptions) != 1 {
		t.Fatalf("options not persisted: %+v", stored)
	}

	// saving must not touch the request list or create reservations
	if reqs, _ := (repositories.RequestRepository{Store: kv}).List(); len(reqs) != 1 {
		t.Fatalf("save altered the request list")
	}
	if resList, _ := (repositories.ReservationRepository{Store: kv}).List(); len(resList) != 0 {
		t.Fatalf("save created a reservation")
	}
}

func TestBudgetApproveCreatesReservationAndConsumesRequest(t *testing.T) {
	kv := store.NewMemory()
	req := seedRequest(t, kv, "100")
	svc := newBudgetService(kv)

	// two options with one item of finalPrice 100 each
	for i := 0; i < 2; i++ {
		doc, err := svc.AddOption("100")
		if err != nil {
			t.Fatalf("AddOption returned error: %v", err)
		}
		optID := doc.BudgetOptions[i].ID
		if _, err := svc.AddItem("100", optID); err != nil {
			t.Fatalf("AddItem returned error: %v", err)
		}
		if _, err := svc.EditItem("100", optID, 0, "rate", json.RawMessage(`100`)); err != nil {
			t.Fatalf("EditItem returned error: %v", err)
		}
	}

	res, err := svc.Approve("100")
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	if res.ID != "res_100" || res.Status != models.ReservationStatusActive {
		t.Fatalf("unexpected reservation identity: %+v", res)
	}
	if res.TotalAmount != 200 {
		t.Fatalf("totalAmount should sum every option: got %v want 200", res.TotalAmount)
	}
	if len(res.ReservationCodes) != 2 {
		t.Fatalf("reservationCodes should flatten all items: got %d", len(res.ReservationCodes))
	}
	for _, code := range res.ReservationCodes {
		if code.ServiceType != models.ServiceOtro {
			t.Fatalf("untyped line should default to otro, got %s", code.ServiceType)
		}
	}
	if res.PassengerCount != req.Passengers || len(res.Passengers) != 0 {
		t.Fatalf("passenger count/roster wrong: count=%d roster=%d", res.PassengerCount, len(res.Passengers))
	}

	// request consumed
	if reqs, _ := (repositories.RequestRepository{Store: kv}).List(); len(reqs) != 0 {
		t.Fatalf("approval should remove the originating request")
	}

	// budget rewritten with approvalDate
	stored, ok, _ := (repositories.BudgetRepository{Store: kv}).Get("100")
	if !ok || stored.ApprovalDate == "" || stored.LastModified != "" {
		t.Fatalf("approval should stamp approvalDate on the budget: %+v", stored)
	}

	// reservation persisted
	list, _ := (repositories.ReservationRepository{Store: kv}).List()
	if len(list) != 1 || list[0].ID != "res_100" {
		t.Fatalf("reservation not persisted: %+v", list)
	}

	// the request is gone, so a second approval cannot happen
	if _, err := svc.Approve("100"); !domain.IsNotFound(err) {
		t.Fatalf("second approval should be NotFound, got %v", err)
	}
}

func TestBudgetApproveGuardsDuplicateReservation(t *testing.T) {
	kv := store.NewMemory()
	seedRequest(t, kv, "100")

	// a reservation for this request already exists (inconsistent state)
	if err := (repositories.ReservationRepository{Store: kv}).Append(models.Reservation{ID: "res_100"}); err != nil {
		t.Fatalf("seed reservation error: %v", err)
	}

	svc := newBudgetService(kv)
	if _, err := svc.Approve("100"); !domain.IsConflict(err) {
		t.Fatalf("duplicate approval should be Conflict, got %v", err)
	}

	// nothing changed: request still there, single reservation
	if reqs, _ := (repositories.RequestRepository{Store: kv}).List(); len(reqs) != 1 {
		t.Fatalf("failed approval must not consume the request")
	}
	if list, _ := (repositories.ReservationRepository{Store: kv}).List(); len(list) != 1 {
		t.Fatalf("failed approval must not add reservations")
	}
}
