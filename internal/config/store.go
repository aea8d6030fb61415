package config

import (
	"log"
	"sync"

	"bonviapp/internal/store"
)

var (
	// Store is the shared document store. Handlers build their
	// services against it per request.
	Store   store.KV
	storeMu sync.Mutex

	sqlStore *store.SQLStore
)

// ConnectStore opens the shared store (idempotent).
func ConnectStore(env Env) store.KV {
	storeMu.Lock()
	defer storeMu.Unlock()

	if Store != nil {
		return Store
	}

	s, err := store.Open(env.DataDir)
	if err != nil {
		log.Fatalf("No se pudo abrir el almacenamiento: %v", err)
	}
	sqlStore = s
	Store = s
	log.Printf("Almacenamiento listo en %s", s.Path())
	return Store
}

func CloseStore() {
	storeMu.Lock()
	defer storeMu.Unlock()

	if sqlStore != nil {
		_ = sqlStore.Close()
		sqlStore = nil
		Store = nil
	}
}
