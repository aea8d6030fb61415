package services

import (
	"bonviapp/internal/domain"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/repositories"
	"bonviapp/internal/utils"
)

// ReservationService lista y elimina reservas. Reservations are only
// ever created by the budget approval flow; removal is a manual,
// explicit action and the associated budget document stays behind.
type ReservationService struct {
	Reservations repositories.ReservationRepository
	RequestID    string
}

// List returns every reservation regardless of status.
func (s ReservationService) List() ([]models.Reservation, error) {
	return s.Reservations.List()
}

func (s ReservationService) Get(id string) (models.Reservation, error) {
	res, ok, err := s.Reservations.FindByID(id)
	if err != nil {
		return models.Reservation{}, err
	}
	if !ok {
		return models.Reservation{}, domain.NotFoundError{Resource: "reserva", ID: id}
	}
	return res, nil
}

func (s ReservationService) Delete(id string) error {
	removed, err := s.Reservations.DeleteByID(id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.NotFoundError{Resource: "reserva", ID: id}
	}
	utils.LogEvent(s.RequestID, "reservation", "delete", "id="+id)
	return nil
}
