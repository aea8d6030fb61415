package models

// Payment directions: cobro is money received from the traveler, pago
// is money paid out to a supplier. Only cobros count toward the
// collected total.
const (
	PaymentCobro = "cobro"
	PaymentPago  = "pago"
)

const (
	PaymentMethodEfectivo      = "efectivo"
	PaymentMethodTransferencia = "transferencia"
)

const (
	PaymentParcial = "parcial"
	PaymentTotal   = "total"
)

// Payment is one ledger entry inside a reservation.
type Payment struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentType   string  `json:"paymentType"`
	Description   string  `json:"description"`
	ReceiptNumber string  `json:"receiptNumber"`
	Type          string  `json:"type"`
}
