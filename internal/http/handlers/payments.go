package handlers

import (
	"net/http"

	intconfig "bonviapp/internal/config"
	"bonviapp/internal/http/middleware"
	"bonviapp/internal/repositories"
	"bonviapp/internal/services"

	"github.com/gin-gonic/gin"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		Reservations: repositories.ReservationRepository{Store: intconfig.Store},
		RequestID:    middleware.GetRequestID(c),
	}
}

// GET /api/reservations/:id/payments
func GetPayments(c *gin.Context) {
	ledger, err := paymentService(c).LoadLedger(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// POST /api/reservations/:id/payments
func AddPayment(c *gin.Context) {
	var in services.AddPaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	payment, err := paymentService(c).Add(c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// DELETE /api/reservations/:id/payments/:paymentId
func DeletePayment(c *gin.Context) {
	if err := paymentService(c).Delete(c.Param("id"), c.Param("paymentId")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pago eliminado"})
}

// GET /api/reservations/:id/payments/:paymentId/receipt
func GetReceiptPDF(c *gin.Context) {
	svc := services.DocsService{
		Budgets:      repositories.BudgetRepository{Store: intconfig.Store},
		Reservations: repositories.ReservationRepository{Store: intconfig.Store},
		RequestID:    middleware.GetRequestID(c),
	}
	data, filename, err := svc.GenerateReceiptPDF(c.Param("id"), c.Param("paymentId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
