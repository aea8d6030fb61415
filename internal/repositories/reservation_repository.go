package repositories

import (
	"bonviapp/internal/domain/models"
	"bonviapp/internal/store"
)

// ReservationRepository persists the reservation list under
// "reservations". Passenger rosters and payment ledgers live embedded
// inside each reservation, so their mutations go through Replace.
type ReservationRepository struct {
	Store store.Bucket
}

func (r ReservationRepository) List() ([]models.Reservation, error) {
	return loadList[models.Reservation](r.Store, KeyReservations)
}

func (r ReservationRepository) SaveAll(list []models.Reservation) error {
	return saveList(r.Store, KeyReservations, list)
}

func (r ReservationRepository) FindByID(id string) (models.Reservation, bool, error) {
	list, err := r.List()
	if err != nil {
		return models.Reservation{}, false, err
	}
	for _, res := range list {
		if res.ID == id {
			return res, true, nil
		}
	}
	return models.Reservation{}, false, nil
}

// Append adds a reservation and persists the whole list.
func (r ReservationRepository) Append(res models.Reservation) error {
	list, err := r.List()
	if err != nil {
		return err
	}
	return r.SaveAll(append(list, res))
}

// Replace swaps the stored reservation with the same id; ok is false
// when no reservation matched.
func (r ReservationRepository) Replace(res models.Reservation) (bool, error) {
	list, err := r.List()
	if err != nil {
		return false, err
	}
	replaced := false
	for i := range list {
		if list[i].ID == res.ID {
			list[i] = res
			replaced = true
			break
		}
	}
	if !replaced {
		return false, nil
	}
	return true, r.SaveAll(list)
}

// DeleteByID removes a reservation; ok is false when nothing matched.
func (r ReservationRepository) DeleteByID(id string) (bool, error) {
	list, err := r.List()
	if err != nil {
		return false, err
	}
	kept := list[:0]
	removed := false
	for _, res := range list {
		if res.ID == id {
			removed = true
			continue
		}
		kept = append(kept, res)
	}
	if !removed {
		return false, nil
	}
	return true, r.SaveAll(kept)
}
