// Package repositories maps each storage key to typed load/save
// operations. Every write rewrites the whole document for its key,
// mirroring how the legacy frontend treated local storage.
package repositories

import (
	"encoding/json"
	"log"

	"bonviapp/internal/domain"
	"bonviapp/internal/store"
)

// Storage keys. The layout is reproduced bit-for-bit so exported data
// from the legacy app stays loadable.
const (
	KeyRequests     = "requests"
	KeyReservations = "reservations"
	KeyPassengers   = "passengers"
)

// BudgetKey returns the per-request budget document key.
func BudgetKey(requestID string) string {
	return "budget_" + requestID
}

// loadList reads a JSON array under key. A corrupt or non-array value
// is discarded and the key reset to an empty list; the operator gets a
// log line, never a crash.
func loadList[T any](b store.Bucket, key string) ([]T, error) {
	raw, ok, err := b.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Printf("[STORE] clave %s corrupta, se descarta y se reinicia vacía: %v", key, err)
		if err := b.Put(key, []byte("[]")); err != nil {
			return nil, err
		}
		return []T{}, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

func saveList[T any](b store.Bucket, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return domain.InternalError{Msg: "no se pudo serializar la clave " + key, Err: err}
	}
	return b.Put(key, raw)
}
