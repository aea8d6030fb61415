package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bonviapp/internal/domain"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/repositories"
	"bonviapp/internal/store"
	"bonviapp/internal/utils"
)

// BudgetService arma presupuestos contra un pedido y los convierte en
// reserva al aprobarlos. Every mutation persists immediately; there is
// no in-memory draft like the legacy page had.
type BudgetService struct {
	Store     store.KV
	RequestID string
	Now       func() time.Time
}

func (s BudgetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BudgetService) requests() repositories.RequestRepository {
	return repositories.RequestRepository{Store: s.Store}
}

func (s BudgetService) budgets() repositories.BudgetRepository {
	return repositories.BudgetRepository{Store: s.Store}
}

// Load returns the working document for a request: saved options when a
// budget exists, an empty option list otherwise. The request itself
// must still be pending; once approved it is gone and so is the page.
func (s BudgetService) Load(requestID string) (models.BudgetDocument, error) {
	req, found, err := s.requests().FindByID(requestID)
	if err != nil {
		return models.BudgetDocument{}, err
	}
	if !found {
		return models.BudgetDocument{}, domain.NotFoundError{Resource: "pedido", ID: requestID}
	}

	doc, ok, err := s.budgets().Get(requestID)
	if err != nil {
		return models.BudgetDocument{}, err
	}
	if !ok {
		doc = models.BudgetDocument{BudgetOptions: []models.BudgetOption{}}
	}
	doc.RequestID = requestID
	doc.RequestDetails = req
	if doc.BudgetOptions == nil {
		doc.BudgetOptions = []models.BudgetOption{}
	}
	if doc.OptionSeq == 0 {
		doc.OptionSeq = maxOptionSeq(doc.BudgetOptions)
	}
	return doc, nil
}

func (s BudgetService) mutate(requestID string, fn func(doc *models.BudgetDocument) error) (models.BudgetDocument, error) {
	doc, err := s.Load(requestID)
	if err != nil {
		return models.BudgetDocument{}, err
	}
	if err := fn(&doc); err != nil {
		return models.BudgetDocument{}, err
	}
	doc.LastModified = s.now().Format(time.RFC3339)
	doc.ApprovalDate = ""
	if err := s.budgets().Put(doc); err != nil {
		return models.BudgetDocument{}, err
	}
	return doc, nil
}

// AddOption appends a new empty option. Ids come from the persisted
// OptionSeq counter, so deleting an option never frees its id.
func (s BudgetService) AddOption(requestID string) (models.BudgetDocument, error) {
	doc, err := s.mutate(requestID, func(doc *models.BudgetDocument) error {
		doc.OptionSeq++
		doc.BudgetOptions = append(doc.BudgetOptions, models.BudgetOption{
			ID:    fmt.Sprintf("option-%d", doc.OptionSeq),
			Items: []models.BudgetItem{},
		})
		return nil
	})
	if err != nil {
		return doc, err
	}
	utils.LogEvent(s.RequestID, "budget", "add_option", "request_id="+requestID)
	return doc, nil
}

// AddItem appends a zero-valued line to the named option.
func (s BudgetService) AddItem(requestID, optionID string) (models.BudgetDocument, error) {
	return s.mutate(requestID, func(doc *models.BudgetDocument) error {
		opt := findOption(doc, optionID)
		if opt == nil {
			return domain.NotFoundError{Resource: "opción", ID: optionID}
		}
		opt.Items = append(opt.Items, models.NewBudgetItem())
		return nil
	})
}

// EditItem updates a single field of one line. Editing rate or expenses
// recomputes finalPrice as the pairwise sum with the other addend's
// current value; the currency tags of the addends are not reconciled.
func (s BudgetService) EditItem(requestID, optionID string, index int, field string, value json.RawMessage) (models.BudgetDocument, error) {
	return s.mutate(requestID, func(doc *models.BudgetDocument) error {
		opt := findOption(doc, optionID)
		if opt == nil {
			return domain.NotFoundError{Resource: "opción", ID: optionID}
		}
		if index < 0 || index >= len(opt.Items) {
			return domain.NotFoundError{Resource: "item", ID: strconv.Itoa(index)}
		}
		return applyItemEdit(&opt.Items[index], field, value)
	})
}

// DeleteItem removes one line by index.
func (s BudgetService) DeleteItem(requestID, optionID string, index int) (models.BudgetDocument, error) {
	return s.mutate(requestID, func(doc *models.BudgetDocument) error {
		opt := findOption(doc, optionID)
		if opt == nil {
			return domain.NotFoundError{Resource: "opción", ID: optionID}
		}
		if index < 0 || index >= len(opt.Items) {
			return domain.NotFoundError{Resource: "item", ID: strconv.Itoa(index)}
		}
		opt.Items = append(opt.Items[:index], opt.Items[index+1:]...)
		return nil
	})
}

// DeleteOption removes an option. Surviving option ids never change.
func (s BudgetService) DeleteOption(requestID, optionID string) (models.BudgetDocument, error) {
	return s.mutate(requestID, func(doc *models.BudgetDocument) error {
		for i, opt := range doc.BudgetOptions {
			if opt.ID == optionID {
				doc.BudgetOptions = append(doc.BudgetOptions[:i], doc.BudgetOptions[i+1:]...)
				return nil
			}
		}
		return domain.NotFoundError{Resource: "opción", ID: optionID}
	})
}

// Save persists the document under budget_<requestId> with a fresh
// lastModified stamp. When the caller sends a full option list (the
// page's "Guardar"), it replaces the stored one.
func (s BudgetService) Save(requestID string, options []models.BudgetOption) (models.BudgetDocument, error) {
	doc, err := s.mutate(requestID, func(doc *models.BudgetDocument) error {
		if options != nil {
			doc.BudgetOptions = options
			if seq := maxOptionSeq(options); seq > doc.OptionSeq {
				doc.OptionSeq = seq
			}
		}
		return nil
	})
	if err != nil {
		return doc, err
	}
	utils.LogEvent(s.RequestID, "budget", "save", "request_id="+requestID)
	return doc, nil
}

// Approve is the single state transition of the whole system: it stamps
// the budget with approvalDate, creates the reservation and removes the
// originating request. The three writes run in one store transaction so
// a failure leaves nothing half-approved (hardening over the legacy
// three independent localStorage writes).
func (s BudgetService) Approve(requestID string) (models.Reservation, error) {
	var reservation models.Reservation
	now := s.now()

	err := s.Store.Update(func(tx store.Bucket) error {
		requests := repositories.RequestRepository{Store: tx}
		budgets := repositories.BudgetRepository{Store: tx}
		reservations := repositories.ReservationRepository{Store: tx}

		reqList, err := requests.List()
		if err != nil {
			return err
		}
		var req models.Request
		found := false
		for _, r := range reqList {
			if r.ID == requestID {
				req = r
				found = true
				break
			}
		}
		if !found {
			return domain.NotFoundError{Resource: "pedido", ID: requestID}
		}

		resList, err := reservations.List()
		if err != nil {
			return err
		}
		resID := "res_" + requestID
		for _, r := range resList {
			if r.ID == resID {
				return domain.ConflictError{Resource: "reserva", Msg: "el presupuesto ya fue aprobado"}
			}
		}

		doc, ok, err := budgets.Get(requestID)
		if err != nil {
			return err
		}
		if !ok {
			doc = models.BudgetDocument{BudgetOptions: []models.BudgetOption{}}
		}
		doc.RequestID = requestID
		doc.RequestDetails = req
		if doc.BudgetOptions == nil {
			doc.BudgetOptions = []models.BudgetOption{}
		}
		doc.ApprovalDate = now.Format(time.RFC3339)
		doc.LastModified = ""
		if err := budgets.Put(doc); err != nil {
			return err
		}

		reservation = models.Reservation{
			ID:               resID,
			RequestID:        requestID,
			BudgetData:       doc,
			Status:           models.ReservationStatusActive,
			CreationDate:     now.Format(time.RFC3339),
			TravelDate:       req.TravelDate,
			Passengers:       []models.Passenger{},
			PassengerCount:   req.Passengers,
			Nights:           req.Nights,
			Minors:           req.Minors,
			Infants:          req.Infants,
			Responsible:      req.Responsible,
			TotalAmount:      doc.TotalAmount(),
			ReservationCodes: models.NewReservationCodes(doc),
			Payments:         []models.Payment{},
		}
		if err := reservations.SaveAll(append(resList, reservation)); err != nil {
			return err
		}

		kept := make([]models.Request, 0, len(reqList)-1)
		for _, r := range reqList {
			if r.ID != requestID {
				kept = append(kept, r)
			}
		}
		return requests.SaveAll(kept)
	})
	if err != nil {
		return models.Reservation{}, err
	}

	utils.LogEvent(s.RequestID, "budget", "approve", "request_id="+requestID+" reservation_id="+reservation.ID)
	return reservation, nil
}

func findOption(doc *models.BudgetDocument, optionID string) *models.BudgetOption {
	for i := range doc.BudgetOptions {
		if doc.BudgetOptions[i].ID == optionID {
			return &doc.BudgetOptions[i]
		}
	}
	return nil
}

// maxOptionSeq recovers the counter from documents written before the
// counter existed, taking the highest numeric "option-<n>" suffix.
func maxOptionSeq(options []models.BudgetOption) int {
	maxSeq := 0
	for _, opt := range options {
		suffix, ok := strings.CutPrefix(opt.ID, "option-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n > maxSeq {
			maxSeq = n
		}
	}
	return maxSeq
}

func applyItemEdit(item *models.BudgetItem, field string, value json.RawMessage) error {
	switch field {
	case "rate", "expenses", "finalPrice":
		var v float64
		if err := json.Unmarshal(value, &v); err != nil {
			return domain.ValidationError{Field: field, Msg: "se esperaba un número"}
		}
		switch field {
		case "rate":
			item.Rate = v
			item.FinalPrice = v + item.Expenses
		case "expenses":
			item.Expenses = v
			item.FinalPrice = item.Rate + v
		case "finalPrice":
			item.FinalPrice = v
		}
	case "showEndDate":
		var v bool
		if err := json.Unmarshal(value, &v); err != nil {
			return domain.ValidationError{Field: field, Msg: "se esperaba un booleano"}
		}
		item.ShowEndDate = v
	case "serviceType":
		v, err := decodeString(value, field)
		if err != nil {
			return err
		}
		switch v {
		case "", models.ServiceAereo, models.ServiceHotel, models.ServiceExcursion, models.ServiceTraslado:
			item.ServiceType = v
		default:
			return domain.ValidationError{Field: field, Msg: "tipo de servicio desconocido: " + v}
		}
	case "rateCurrency", "expensesCurrency", "finalPriceCurrency":
		v, err := decodeString(value, field)
		if err != nil {
			return err
		}
		switch v {
		case models.CurrencyARS, models.CurrencyUSD, models.CurrencyEUR:
		default:
			return domain.ValidationError{Field: field, Msg: "moneda desconocida: " + v}
		}
		switch field {
		case "rateCurrency":
			item.RateCurrency = v
		case "expensesCurrency":
			item.ExpensesCurrency = v
		case "finalPriceCurrency":
			item.FinalPriceCurrency = v
		}
	case "date":
		return setString(&item.Date, value, field)
	case "endDate":
		return setString(&item.EndDate, value, field)
	case "details":
		return setString(&item.Details, value, field)
	case "reservationCode":
		return setString(&item.ReservationCode, value, field)
	default:
		return domain.ValidationError{Field: "field", Msg: "campo desconocido: " + field}
	}
	return nil
}

func decodeString(value json.RawMessage, field string) (string, error) {
	var v string
	if err := json.Unmarshal(value, &v); err != nil {
		return "", domain.ValidationError{Field: field, Msg: "se esperaba un texto"}
	}
	return v, nil
}

func setString(dst *string, value json.RawMessage, field string) error {
	v, err := decodeString(value, field)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
