package repositories

import (
	"bonviapp/internal/domain/models"
	"bonviapp/internal/store"
)

// RequestRepository persists the pending-request list under "requests".
type RequestRepository struct {
	Store store.Bucket
}

func (r RequestRepository) List() ([]models.Request, error) {
	return loadList[models.Request](r.Store, KeyRequests)
}

func (r RequestRepository) SaveAll(list []models.Request) error {
	return saveList(r.Store, KeyRequests, list)
}

// FindByID scans the list for the request; ok is false when absent.
func (r RequestRepository) FindByID(id string) (models.Request, bool, error) {
	list, err := r.List()
	if err != nil {
		return models.Request{}, false, err
	}
	for _, req := range list {
		if req.ID == id {
			return req, true, nil
		}
	}
	return models.Request{}, false, nil
}
