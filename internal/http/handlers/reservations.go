package handlers

import (
	"net/http"

	intconfig "bonviapp/internal/config"
	"bonviapp/internal/http/middleware"
	"bonviapp/internal/repositories"
	"bonviapp/internal/services"

	"github.com/gin-gonic/gin"
)

func reservationService(c *gin.Context) services.ReservationService {
	return services.ReservationService{
		Reservations: repositories.ReservationRepository{Store: intconfig.Store},
		RequestID:    middleware.GetRequestID(c),
	}
}

// GET /api/reservations
func GetReservations(c *gin.Context) {
	list, err := reservationService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/reservations/:id
func GetReservationByID(c *gin.Context) {
	res, err := reservationService(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE /api/reservations/:id
func DeleteReservation(c *gin.Context) {
	if err := reservationService(c).Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reserva eliminada"})
}
