package services

import (
	"math"
	"regexp"
	"strings"
	"time"

	"bonviapp/internal/domain"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/repositories"
	"bonviapp/internal/utils"
)

// RequestService maneja el alta, listado y baja de pedidos.
type RequestService struct {
	Requests  repositories.RequestRepository
	RequestID string
	Now       func() time.Time
}

func (s RequestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateRequestInput mirrors the new-request form fields.
type CreateRequestInput struct {
	CreationDate string `json:"creationDate"`
	TravelDate   string `json:"travelDate"`
	Passengers   int    `json:"passengers"`
	Nights       int    `json:"nights"`
	Minors       int    `json:"minors"`
	Infants      int    `json:"infants"`
	Responsible  string `json:"responsible"`
}

// RequestSummary is a list row: the request plus its derived age.
type RequestSummary struct {
	models.Request
	AgeDays  int    `json:"ageDays"`
	AgeClass string `json:"ageClass"`
}

// travelDate is free-form but must be either "start - end" or "YYYY-MM".
var monthOnlyRe = regexp.MustCompile(`^\d{4}-\d{1,2}$`)

// Create validates the form and appends the new request. The id is the
// creation timestamp in epoch milliseconds, the legacy scheme.
func (s RequestService) Create(in CreateRequestInput) (models.Request, error) {
	if strings.TrimSpace(in.CreationDate) == "" {
		return models.Request{}, domain.ValidationError{Field: "creationDate", Msg: "seleccione una fecha de creación"}
	}
	travel := strings.TrimSpace(in.TravelDate)
	if travel == "" {
		return models.Request{}, domain.ValidationError{Field: "travelDate", Msg: "seleccione las fechas de viaje o el mes"}
	}
	if !strings.Contains(travel, " - ") && !monthOnlyRe.MatchString(travel) {
		return models.Request{}, domain.ValidationError{Field: "travelDate", Msg: "use el formato \"inicio - fin\" o \"AAAA-MM\""}
	}
	if in.Passengers < 1 {
		return models.Request{}, domain.ValidationError{Field: "passengers", Msg: "ingrese la cantidad de pasajeros"}
	}
	if strings.TrimSpace(in.Responsible) == "" {
		return models.Request{}, domain.ValidationError{Field: "responsible", Msg: "seleccione un responsable"}
	}

	req := models.Request{
		ID:           utils.MillisID(s.now()),
		CreationDate: strings.TrimSpace(in.CreationDate),
		TravelDate:   travel,
		Passengers:   in.Passengers,
		Nights:       in.Nights,
		Minors:       in.Minors,
		Infants:      in.Infants,
		Responsible:  strings.TrimSpace(in.Responsible),
	}

	list, err := s.Requests.List()
	if err != nil {
		return models.Request{}, err
	}
	if err := s.Requests.SaveAll(append(list, req)); err != nil {
		return models.Request{}, err
	}

	utils.LogEvent(s.RequestID, "request", "create", "id="+req.ID)
	return req, nil
}

// List returns every pending request with its age classification.
func (s RequestService) List() ([]RequestSummary, error) {
	list, err := s.Requests.List()
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]RequestSummary, 0, len(list))
	for _, req := range list {
		age := AgeDays(req.CreationDate, now)
		out = append(out, RequestSummary{
			Request:  req,
			AgeDays:  age,
			AgeClass: ClassifyAge(age),
		})
	}
	return out, nil
}

// Delete removes a request by id. No undo.
func (s RequestService) Delete(id string) error {
	list, err := s.Requests.List()
	if err != nil {
		return err
	}
	kept := list[:0]
	removed := false
	for _, req := range list {
		if req.ID == id {
			removed = true
			continue
		}
		kept = append(kept, req)
	}
	if !removed {
		return domain.NotFoundError{Resource: "pedido", ID: id}
	}
	if err := s.Requests.SaveAll(kept); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "request", "delete", "id="+id)
	return nil
}

// AgeDays is the whole-day distance between the creation date and now,
// rounded up. An unparseable date counts as zero days.
func AgeDays(creationDate string, now time.Time) int {
	created, err := utils.ParseDate(creationDate)
	if err != nil {
		return 0
	}
	diff := now.Sub(created)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// ClassifyAge buckets a request age for the list display: up to three
// days fresh, up to five warn, older stale.
func ClassifyAge(ageDays int) string {
	switch {
	case ageDays <= 3:
		return models.AgeFresh
	case ageDays <= 5:
		return models.AgeWarn
	default:
		return models.AgeStale
	}
}
