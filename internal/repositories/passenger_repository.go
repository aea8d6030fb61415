package repositories

import (
	"bonviapp/internal/domain/models"
	"bonviapp/internal/store"
)

// PassengerRepository persists the global passenger directory under
// "passengers". Copies embedded in reservations are handled by
// ReservationRepository; the two never sync.
type PassengerRepository struct {
	Store store.Bucket
}

func (r PassengerRepository) List() ([]models.Passenger, error) {
	return loadList[models.Passenger](r.Store, KeyPassengers)
}

func (r PassengerRepository) SaveAll(list []models.Passenger) error {
	return saveList(r.Store, KeyPassengers, list)
}

func (r PassengerRepository) FindByID(id string) (models.Passenger, bool, error) {
	list, err := r.List()
	if err != nil {
		return models.Passenger{}, false, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, true, nil
		}
	}
	return models.Passenger{}, false, nil
}
