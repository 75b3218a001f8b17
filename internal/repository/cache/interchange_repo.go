package cache

import (
	"fmt"
	"net/http"

	"edi-orders/internal/models"
)

type InterchangeCacheRepo struct {
	cch KV
}

func NewInterchangeCache(cch KV) *InterchangeCacheRepo {
	return &InterchangeCacheRepo{cch: cch}
}

func (r *InterchangeCacheRepo) PutInterchange(ref string, ic models.Interchange) {
	r.cch.Put(ref, ic)
}

func (r *InterchangeCacheRepo) GetInterchange(ref string) (models.Interchange, error) {
	v, ok := r.cch.Get(ref)
	if !ok {
		return models.Interchange{}, NewErrorHandler(fmt.Errorf("interchange %s not found", ref), http.StatusNotFound)
	}

	ic, ok := v.(models.Interchange)
	if !ok {
		return models.Interchange{},
			NewErrorHandler(fmt.Errorf("failed to convert interchange with ref %s to its struct", ref),
				http.StatusInternalServerError)
	}
	return ic, nil
}

func (r *InterchangeCacheRepo) GetAllInterchanges() ([]models.Interchange, error) {
	snap := r.cch.Snapshot()
	if len(snap) == 0 {
		return []models.Interchange{}, nil
	}

	out := make([]models.Interchange, 0, len(snap))
	for ref, v := range snap {
		ic, ok := v.(models.Interchange)
		if !ok {
			return nil,
				NewErrorHandler(fmt.Errorf("failed to convert interchange with ref %s to its struct", ref),
					http.StatusInternalServerError)
		}
		out = append(out, ic)
	}
	return out, nil
}

func (r *InterchangeCacheRepo) Delete(ref string) {
	r.cch.Delete(ref)
}
