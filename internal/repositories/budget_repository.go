package repositories

import (
	"encoding/json"
	"log"

	"bonviapp/internal/domain"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/store"
)

// BudgetRepository persists one BudgetDocument per request under
// budget_<requestId>. Approval rewrites the document; nothing ever
// deletes these keys automatically, matching the legacy behavior.
type BudgetRepository struct {
	Store store.Bucket
}

// Get loads the saved budget for a request. A corrupt document is
// logged and treated as absent; the key is left in place because the
// next save overwrites it anyway.
func (r BudgetRepository) Get(requestID string) (models.BudgetDocument, bool, error) {
	raw, ok, err := r.Store.Get(BudgetKey(requestID))
	if err != nil {
		return models.BudgetDocument{}, false, err
	}
	if !ok {
		return models.BudgetDocument{}, false, nil
	}
	var doc models.BudgetDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("[STORE] presupuesto %s corrupto, se ignora: %v", requestID, err)
		return models.BudgetDocument{}, false, nil
	}
	return doc, true, nil
}

func (r BudgetRepository) Put(doc models.BudgetDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return domain.InternalError{Msg: "no se pudo serializar el presupuesto " + doc.RequestID, Err: err}
	}
	return r.Store.Put(BudgetKey(doc.RequestID), raw)
}
