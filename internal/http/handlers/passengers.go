package handlers

import (
	"net/http"

	intconfig "bonviapp/internal/config"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/http/middleware"
	"bonviapp/internal/repositories"
	"bonviapp/internal/services"

	"github.com/gin-gonic/gin"
)

func passengerService(c *gin.Context) services.PassengerService {
	return services.PassengerService{
		Passengers:   repositories.PassengerRepository{Store: intconfig.Store},
		Reservations: repositories.ReservationRepository{Store: intconfig.Store},
		RequestID:    middleware.GetRequestID(c),
	}
}

// GET /api/passengers?q=
func GetPassengers(c *gin.Context) {
	list, err := passengerService(c).Search(c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/passengers
func CreatePassenger(c *gin.Context) {
	var p models.Passenger
	if !BindJSONOrError(c, &p) {
		return
	}
	created, err := passengerService(c).Create(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/passengers/:id
func UpdatePassenger(c *gin.Context) {
	var p models.Passenger
	if !BindJSONOrError(c, &p) {
		return
	}
	updated, err := passengerService(c).Update(c.Param("id"), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/passengers/:id
func DeletePassenger(c *gin.Context) {
	if err := passengerService(c).Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pasajero eliminado"})
}

// GET /api/reservations/:id/passengers
func GetReservationPassengers(c *gin.Context) {
	roster, err := passengerService(c).Roster(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// POST /api/reservations/:id/passengers
func AttachReservationPassenger(c *gin.Context) {
	var p models.Passenger
	if !BindJSONOrError(c, &p) {
		return
	}
	attached, err := passengerService(c).AttachToReservation(c.Param("id"), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attached)
}

// PUT /api/reservations/:id/passengers/:passengerId
func UpdateReservationPassenger(c *gin.Context) {
	var p models.Passenger
	if !BindJSONOrError(c, &p) {
		return
	}
	updated, err := passengerService(c).UpdateInReservation(c.Param("id"), c.Param("passengerId"), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/reservations/:id/passengers/:passengerId
func DetachReservationPassenger(c *gin.Context) {
	if err := passengerService(c).DetachFromReservation(c.Param("id"), c.Param("passengerId")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pasajero quitado de la reserva"})
}
