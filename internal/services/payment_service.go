package services

import (
	"strings"
	"time"

	"bonviapp/internal/domain"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/repositories"
	"bonviapp/internal/utils"
)

// PaymentService lleva el libro de cobros y pagos de cada reserva.
// Totals add raw amounts regardless of currency tag; that is the
// legacy arithmetic and it is kept as-is.
type PaymentService struct {
	Reservations repositories.ReservationRepository
	RequestID    string
	Now          func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AddPaymentInput mirrors the payment dialog fields; blanks take the
// same defaults the dialog had.
type AddPaymentInput struct {
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentType   string  `json:"paymentType"`
	Description   string  `json:"description"`
	ReceiptNumber string  `json:"receiptNumber"`
	Type          string  `json:"type"`
}

// Ledger is the payments payload: entries plus derived totals.
type Ledger struct {
	Payments  []models.Payment `json:"payments"`
	Collected float64          `json:"collected"`
	Remaining float64          `json:"remaining"`
}

// Add appends a payment to the reservation. Ids and default receipt
// numbers use the epoch-millisecond scheme (payment_<now>, REC-<now>).
func (s PaymentService) Add(reservationID string, in AddPaymentInput) (models.Payment, error) {
	res, ok, err := s.Reservations.FindByID(reservationID)
	if err != nil {
		return models.Payment{}, err
	}
	if !ok {
		return models.Payment{}, domain.NotFoundError{Resource: "reserva", ID: reservationID}
	}

	now := s.now()
	payment := models.Payment{
		ID:            "payment_" + utils.MillisID(now),
		Date:          strings.TrimSpace(in.Date),
		Amount:        in.Amount,
		Currency:      strings.TrimSpace(in.Currency),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		PaymentType:   strings.TrimSpace(in.PaymentType),
		Description:   in.Description,
		ReceiptNumber: strings.TrimSpace(in.ReceiptNumber),
		Type:          strings.TrimSpace(in.Type),
	}
	if payment.Date == "" {
		payment.Date = utils.FormatDate(now)
	}
	if payment.Currency == "" {
		payment.Currency = models.CurrencyARS
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = models.PaymentMethodEfectivo
	}
	if payment.PaymentType == "" {
		payment.PaymentType = models.PaymentParcial
	}
	if payment.ReceiptNumber == "" {
		payment.ReceiptNumber = "REC-" + utils.MillisID(now)
	}
	if payment.Type == "" {
		payment.Type = models.PaymentCobro
	}

	switch payment.Type {
	case models.PaymentCobro, models.PaymentPago:
	default:
		return models.Payment{}, domain.ValidationError{Field: "type", Msg: "debe ser cobro o pago"}
	}
	switch payment.Currency {
	case models.CurrencyARS, models.CurrencyUSD:
	default:
		return models.Payment{}, domain.ValidationError{Field: "currency", Msg: "moneda desconocida: " + payment.Currency}
	}
	switch payment.PaymentMethod {
	case models.PaymentMethodEfectivo, models.PaymentMethodTransferencia:
	default:
		return models.Payment{}, domain.ValidationError{Field: "paymentMethod", Msg: "método desconocido: " + payment.PaymentMethod}
	}
	switch payment.PaymentType {
	case models.PaymentParcial, models.PaymentTotal:
	default:
		return models.Payment{}, domain.ValidationError{Field: "paymentType", Msg: "debe ser parcial o total"}
	}

	res.Payments = append(res.Payments, payment)
	if _, err := s.Reservations.Replace(res); err != nil {
		return models.Payment{}, err
	}
	utils.LogEvent(s.RequestID, "payment", "add", "reservation_id="+reservationID+" id="+payment.ID)
	return payment, nil
}

// Delete filters the payment out of the reservation ledger.
func (s PaymentService) Delete(reservationID, paymentID string) error {
	res, ok, err := s.Reservations.FindByID(reservationID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundError{Resource: "reserva", ID: reservationID}
	}

	kept := res.Payments[:0]
	removed := false
	for _, p := range res.Payments {
		if p.ID == paymentID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return domain.NotFoundError{Resource: "pago", ID: paymentID}
	}
	res.Payments = kept
	if _, err := s.Reservations.Replace(res); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "payment", "delete", "reservation_id="+reservationID+" id="+paymentID)
	return nil
}

// LoadLedger returns the entries plus collected/remaining totals.
// Collected sums cobros only; pagos to suppliers never touch it.
func (s PaymentService) LoadLedger(reservationID string) (Ledger, error) {
	res, ok, err := s.Reservations.FindByID(reservationID)
	if err != nil {
		return Ledger{}, err
	}
	if !ok {
		return Ledger{}, domain.NotFoundError{Resource: "reserva", ID: reservationID}
	}
	payments := res.Payments
	if payments == nil {
		payments = []models.Payment{}
	}
	return Ledger{
		Payments:  payments,
		Collected: res.CollectedAmount(),
		Remaining: res.RemainingAmount(),
	}, nil
}
