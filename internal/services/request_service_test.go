package services

import (
	"testing"
	"time"

	"bonviapp/internal/domain"
	"bonviapp/internal/repositories"
	"bonviapp/internal/store"
)

func newRequestService(now time.Time) (RequestService, *store.Memory) {
	kv := store.NewMemory()
	svc := RequestService{
		Requests: repositories.RequestRepository{Store: kv},
		Now:      func() time.Time { return now },
	}
	return svc, kv
}

func TestRequestCreateAppendsWithMillisID(t *testing.T) {
	now := time.Date(2025, 8, 20, 10, 30, 0, 0, time.Local)
	svc, _ := newRequestService(now)

	req, err := svc.Create(CreateRequestInput{
		CreationDate: "2025-08-20",
		TravelDate:   "2025-09-01 - 2025-09-10",
		Passengers:   2,
		Nights:       9,
		Responsible:  "Caro",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if req.ID == "" {
		t.Fatalf("id not assigned")
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 request, got %d", len(list))
	}
	if list[0].ID != req.ID {
		t.Fatalf("listed id %s does not match created id %s", list[0].ID, req.ID)
	}
}

func TestRequestCreateValidation(t *testing.T) {
	svc, kv := newRequestService(time.Now())

	cases := []struct {
		name string
		in   CreateRequestInput
	}{
		{"missing creation date", CreateRequestInput{TravelDate: "2025-09", Passengers: 1, Responsible: "Caro"}},
		{"missing travel date", CreateRequestInput{CreationDate: "2025-08-20", Passengers: 1, Responsible: "Caro"}},
		{"bad travel date format", CreateRequestInput{CreationDate: "2025-08-20", TravelDate: "septiembre", Passengers: 1, Responsible: "Caro"}},
		{"missing passengers", CreateRequestInput{CreationDate: "2025-08-20", TravelDate: "2025-09", Responsible: "Caro"}},
		{"missing responsible", CreateRequestInput{CreationDate: "2025-08-20", TravelDate: "2025-09", Passengers: 1}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}

	// no partial save on any failure
	if raw, ok, _ := kv.Get("requests"); ok && string(raw) != "[]" {
		t.Fatalf("validation failure left state behind: %s", raw)
	}
}

func TestRequestTravelDateMonthOnlyAccepted(t *testing.T) {
	svc, _ := newRequestService(time.Now())
	if _, err := svc.Create(CreateRequestInput{
		CreationDate: "2025-08-20",
		TravelDate:   "2025-11",
		Passengers:   4,
		Responsible:  "Euge",
	}); err != nil {
		t.Fatalf("month-only travel date rejected: %v", err)
	}
}

func TestRequestAgeClassification(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.Local)

	cases := []struct {
		creationDate string
		want         string
	}{
		{"2025-08-20", "fresh"}, // today
		{"2025-08-16", "warn"},  // four days ago
		{"2025-08-14", "stale"}, // six days ago
	}
	for _, tc := range cases {
		age := AgeDays(tc.creationDate, now)
		if got := ClassifyAge(age); got != tc.want {
			t.Fatalf("creationDate %s (age %d): got %s want %s", tc.creationDate, age, got, tc.want)
		}
	}
}

func TestRequestDelete(t *testing.T) {
	svc, _ := newRequestService(time.Date(2025, 8, 20, 10, 0, 0, 0, time.Local))
	req, err := svc.Create(CreateRequestInput{
		CreationDate: "2025-08-20",
		TravelDate:   "2025-09",
		Passengers:   1,
		Responsible:  "Caro",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(req.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	list, _ := svc.List()
	if len(list) != 0 {
		t.Fatalf("request not removed")
	}

	if err := svc.Delete(req.ID); !domain.IsNotFound(err) {
		t.Fatalf("second delete should be NotFound, got %v", err)
	}
}
