package services

import (
	"bytes"
	"fmt"
	"strings"

	"bonviapp/internal/domain"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/repositories"
	"bonviapp/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService genera los PDF de presupuesto y recibo.
type DocsService struct {
	Budgets      repositories.BudgetRepository
	Reservations repositories.ReservationRepository
	RequestID    string
}

// GenerateBudgetPDF renders the saved budget for a request with every
// option and its priced lines.
func (s DocsService) GenerateBudgetPDF(requestID string) ([]byte, string, error) {
	doc, ok, err := s.Budgets.Get(requestID)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", domain.NotFoundError{Resource: "presupuesto", ID: requestID}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_budget", "request_id="+requestID)
	return buildBudgetPDF(doc)
}

// GenerateReceiptPDF renders one payment of a reservation as a receipt,
// including the remaining balance after all cobros.
func (s DocsService) GenerateReceiptPDF(reservationID, paymentID string) ([]byte, string, error) {
	res, ok, err := s.Reservations.FindByID(reservationID)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", domain.NotFoundError{Resource: "reserva", ID: reservationID}
	}
	var payment models.Payment
	found := false
	for _, p := range res.Payments {
		if p.ID == paymentID {
			payment = p
			found = true
			break
		}
	}
	if !found {
		return nil, "", domain.NotFoundError{Resource: "pago", ID: paymentID}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", "reservation_id="+reservationID+" payment_id="+paymentID)
	return buildReceiptPDF(res, payment)
}

func buildBudgetPDF(doc models.BudgetDocument) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Presupuesto", false)
	// core fonts are cp1252; translate accents before writing
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("Presupuesto - Pedido #%s", doc.RequestID))
	pdf.Ln(12)

	req := doc.RequestDetails
	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		fmt.Sprintf("Fecha de viaje: %s", safe(req.TravelDate, "-")),
		fmt.Sprintf("Pasajeros: %d  Noches: %d  Menores: %d  Infantes: %d", req.Passengers, req.Nights, req.Minors, req.Infants),
		fmt.Sprintf("Responsable: %s", safe(req.Responsible, "-")),
	}
	for _, line := range header {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	for _, opt := range doc.BudgetOptions {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr("Opción "+optionLabel(opt.ID)))
		pdf.Ln(9)

		pdf.SetFont("Helvetica", "", 10)
		if len(opt.Items) == 0 {
			pdf.Cell(0, 6, "(sin items)")
			pdf.Ln(8)
			continue
		}
		for _, item := range opt.Items {
			date := item.Date
			if item.ShowEndDate && item.EndDate != "" {
				date = item.Date + " - " + item.EndDate
			}
			pdf.Cell(0, 6, tr(fmt.Sprintf("%s  %s  %s", safe(date, "-"), safe(serviceLabel(item.ServiceType), "-"), safe(item.Details, "-"))))
			pdf.Ln(5)
			pdf.Cell(0, 6, tr(fmt.Sprintf("    Total: %s   Código: %s", utils.FormatMoney(item.FinalPrice, item.FinalPriceCurrency), safe(item.ReservationCode, "-"))))
			pdf.Ln(7)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("presupuesto_%s.pdf", doc.RequestID), nil
}

func buildReceiptPDF(res models.Reservation, payment models.Payment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Recibo", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECIBO")
	pdf.Ln(12)

	kind := "Cobro al cliente"
	if payment.Type == models.PaymentPago {
		kind = "Pago a proveedor"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Recibo Nro    : %s", safe(payment.ReceiptNumber, "-")),
		fmt.Sprintf("Reserva       : %s", res.ID),
		fmt.Sprintf("Responsable   : %s", safe(res.Responsible, "-")),
		fmt.Sprintf("Fecha         : %s", safe(payment.Date, "-")),
		fmt.Sprintf("Tipo          : %s (%s)", kind, payment.PaymentType),
		fmt.Sprintf("Método        : %s", payment.PaymentMethod),
		fmt.Sprintf("Importe       : %s", utils.FormatMoney(payment.Amount, payment.Currency)),
	}
	if strings.TrimSpace(payment.Description) != "" {
		lines = append(lines, fmt.Sprintf("Detalle       : %s", payment.Description))
	}
	for _, line := range lines {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("Total de la reserva: %s - Cobrado: %s - Saldo pendiente: %s",
		utils.FormatMoney(res.TotalAmount, models.CurrencyARS),
		utils.FormatMoney(res.CollectedAmount(), models.CurrencyARS),
		utils.FormatMoney(res.RemainingAmount(), models.CurrencyARS))), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("recibo_%s.pdf", safeFilenamePart(payment.ReceiptNumber)), nil
}

func optionLabel(id string) string {
	if suffix, ok := strings.CutPrefix(id, "option-"); ok {
		return suffix
	}
	return id
}

func serviceLabel(serviceType string) string {
	switch serviceType {
	case models.ServiceAereo:
		return "Aéreo"
	case models.ServiceHotel:
		return "Hotel"
	case models.ServiceExcursion:
		return "Excursión"
	case models.ServiceTraslado:
		return "Traslado"
	case models.ServiceOtro:
		return "Otro"
	}
	return serviceType
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "sin-numero"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_")
	return replacer.Replace(s)
}
