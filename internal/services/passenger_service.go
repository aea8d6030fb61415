package services

import (
	"strings"

	"bonviapp/internal/domain"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/repositories"
	"bonviapp/internal/utils"
)

// PassengerService administra el directorio global de pasajeros y los
// rosters embebidos en cada reserva. The two live side by side as
// independent copies: editing the directory never touches a roster and
// editing a roster never touches the directory.
type PassengerService struct {
	Passengers   repositories.PassengerRepository
	Reservations repositories.ReservationRepository
	RequestID    string
}

// LoadAll returns the whole directory. Corrupt stored content is
// discarded and reset by the repository, never surfaced as a crash.
func (s PassengerService) LoadAll() ([]models.Passenger, error) {
	return s.Passengers.List()
}

// Search filters the directory with a case-insensitive substring match
// over document number, first name and last name. An empty query
// returns everything; there is no pagination.
func (s PassengerService) Search(query string) ([]models.Passenger, error) {
	list, err := s.Passengers.List()
	if err != nil {
		return nil, err
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return list, nil
	}
	out := []models.Passenger{}
	for _, p := range list {
		if utils.ContainsFold(p.DocumentNumber, q) ||
			utils.ContainsFold(p.FirstName, q) ||
			utils.ContainsFold(p.LastName, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create adds a passenger to the directory. The id is derived from the
// identity document and must be unique.
func (s PassengerService) Create(p models.Passenger) (models.Passenger, error) {
	p.DocumentType = strings.TrimSpace(p.DocumentType)
	p.DocumentNumber = strings.TrimSpace(p.DocumentNumber)
	p.FirstName = utils.NormalizeSpace(p.FirstName)
	p.LastName = utils.NormalizeSpace(p.LastName)

	if p.DocumentType == "" || p.DocumentNumber == "" || p.FirstName == "" || p.LastName == "" {
		return models.Passenger{}, domain.ValidationError{
			Msg: "complete los campos obligatorios: tipo de documento, número de documento, nombre y apellido",
		}
	}

	p.ID = models.PassengerID(p.DocumentType, p.DocumentNumber)

	list, err := s.Passengers.List()
	if err != nil {
		return models.Passenger{}, err
	}
	for _, existing := range list {
		if existing.ID == p.ID {
			return models.Passenger{}, domain.ConflictError{
				Resource: "pasajero",
				Msg:      "ya existe un pasajero con este número de documento",
			}
		}
	}

	if err := s.Passengers.SaveAll(append(list, p)); err != nil {
		return models.Passenger{}, err
	}
	utils.LogEvent(s.RequestID, "passenger", "create", "id="+p.ID)
	return p, nil
}

// Update replaces the directory entry in place. The id is fixed;
// reservations that embedded a copy of this passenger keep their copy
// untouched.
func (s PassengerService) Update(id string, p models.Passenger) (models.Passenger, error) {
	list, err := s.Passengers.List()
	if err != nil {
		return models.Passenger{}, err
	}
	p.ID = id
	for i := range list {
		if list[i].ID == id {
			list[i] = p
			if err := s.Passengers.SaveAll(list); err != nil {
				return models.Passenger{}, err
			}
			utils.LogEvent(s.RequestID, "passenger", "update", "id="+id)
			return p, nil
		}
	}
	return models.Passenger{}, domain.NotFoundError{Resource: "pasajero", ID: id}
}

// Delete removes a directory entry. No cascade into reservations.
func (s PassengerService) Delete(id string) error {
	list, err := s.Passengers.List()
	if err != nil {
		return err
	}
	kept := list[:0]
	removed := false
	for _, p := range list {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return domain.NotFoundError{Resource: "pasajero", ID: id}
	}
	if err := s.Passengers.SaveAll(kept); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "passenger", "delete", "id="+id)
	return nil
}

// Roster returns the embedded passenger list of one reservation.
func (s PassengerService) Roster(reservationID string) ([]models.Passenger, error) {
	res, ok, err := s.Reservations.FindByID(reservationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError{Resource: "reserva", ID: reservationID}
	}
	if res.Passengers == nil {
		return []models.Passenger{}, nil
	}
	return res.Passengers, nil
}

// AttachToReservation appends a copy of the passenger to the
// reservation roster, rejecting a second copy of the same document.
func (s PassengerService) AttachToReservation(reservationID string, p models.Passenger) (models.Passenger, error) {
	if p.ID == "" {
		p.ID = models.PassengerID(strings.TrimSpace(p.DocumentType), strings.TrimSpace(p.DocumentNumber))
	}
	if p.ID == "_" || p.ID == "" {
		return models.Passenger{}, domain.ValidationError{Msg: "el pasajero no tiene documento"}
	}

	res, ok, err := s.Reservations.FindByID(reservationID)
	if err != nil {
		return models.Passenger{}, err
	}
	if !ok {
		return models.Passenger{}, domain.NotFoundError{Resource: "reserva", ID: reservationID}
	}

	for _, existing := range res.Passengers {
		if existing.ID == p.ID {
			return models.Passenger{}, domain.ConflictError{
				Resource: "pasajero",
				Msg:      "este pasajero ya está agregado a la reserva",
			}
		}
	}

	res.Passengers = append(res.Passengers, p)
	if _, err := s.Reservations.Replace(res); err != nil {
		return models.Passenger{}, err
	}
	utils.LogEvent(s.RequestID, "passenger", "attach", "reservation_id="+reservationID+" id="+p.ID)
	return p, nil
}

// UpdateInReservation edits the embedded copy only; the directory entry
// for the same document stays as it was.
func (s PassengerService) UpdateInReservation(reservationID, passengerID string, p models.Passenger) (models.Passenger, error) {
	res, ok, err := s.Reservations.FindByID(reservationID)
	if err != nil {
		return models.Passenger{}, err
	}
	if !ok {
		return models.Passenger{}, domain.NotFoundError{Resource: "reserva", ID: reservationID}
	}

	p.ID = passengerID
	for i := range res.Passengers {
		if res.Passengers[i].ID == passengerID {
			res.Passengers[i] = p
			if _, err := s.Reservations.Replace(res); err != nil {
				return models.Passenger{}, err
			}
			utils.LogEvent(s.RequestID, "passenger", "update_in_reservation", "reservation_id="+reservationID+" id="+passengerID)
			return p, nil
		}
	}
	return models.Passenger{}, domain.NotFoundError{Resource: "pasajero", ID: passengerID}
}

// DetachFromReservation removes the embedded copy from the roster.
func (s PassengerService) DetachFromReservation(reservationID, passengerID string) error {
	res, ok, err := s.Reservations.FindByID(reservationID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundError{Resource: "reserva", ID: reservationID}
	}

	kept := res.Passengers[:0]
	removed := false
	for _, p := range res.Passengers {
		if p.ID == passengerID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return domain.NotFoundError{Resource: "pasajero", ID: passengerID}
	}
	res.Passengers = kept
	if _, err := s.Reservations.Replace(res); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "passenger", "detach", "reservation_id="+reservationID+" id="+passengerID)
	return nil
}
