package api

import (
	"log"
	stdhttp "net/http"

	intconfig "bonviapp/internal/config"
	h "bonviapp/internal/http/handlers"
	"bonviapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "ruta no encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/store-check", h.StoreCheck)

		// Pedidos
		requests := api.Group("/requests")
		requests.GET("", h.GetRequests)
		requests.POST("", h.CreateRequest)
		requests.DELETE("/:id", h.DeleteRequest)

		// Presupuestos (keyed por pedido)
		budgets := api.Group("/requests/:id/budget")
		budgets.GET("", h.GetBudget)
		budgets.PUT("", h.SaveBudget)
		budgets.POST("/options", h.AddBudgetOption)
		budgets.DELETE("/options/:optionId", h.DeleteBudgetOption)
		budgets.POST("/options/:optionId/items", h.AddBudgetItem)
		budgets.PUT("/options/:optionId/items/:index", h.EditBudgetItem)
		budgets.DELETE("/options/:optionId/items/:index", h.DeleteBudgetItem)
		budgets.POST("/approve", h.ApproveBudget)
		budgets.GET("/pdf", h.GetBudgetPDF)

		// Reservas
		reservations := api.Group("/reservations")
		reservations.GET("", h.GetReservations)
		reservations.GET("/:id", h.GetReservationByID)
		reservations.DELETE("/:id", h.DeleteReservation)

		// Pasajeros de una reserva
		reservations.GET("/:id/passengers", h.GetReservationPassengers)
		reservations.POST("/:id/passengers", h.AttachReservationPassenger)
		reservations.PUT("/:id/passengers/:passengerId", h.UpdateReservationPassenger)
		reservations.DELETE("/:id/passengers/:passengerId", h.DetachReservationPassenger)

		// Pagos
		reservations.GET("/:id/payments", h.GetPayments)
		reservations.POST("/:id/payments", h.AddPayment)
		reservations.DELETE("/:id/payments/:paymentId", h.DeletePayment)
		reservations.GET("/:id/payments/:paymentId/receipt", h.GetReceiptPDF)

		// Directorio de pasajeros
		passengers := api.Group("/passengers")
		passengers.GET("", h.GetPassengers)
		passengers.POST("", h.CreatePassenger)
		passengers.PUT("/:id", h.UpdatePassenger)
		passengers.DELETE("/:id", h.DeletePassenger)
	}

	return r
}
