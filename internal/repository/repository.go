package repository

import (
	"edi-orders/internal/models"
	"edi-orders/internal/repository/cache"
	"edi-orders/internal/repository/postgres"

	"github.com/jinzhu/gorm"
)

type InterchangePostgres interface {
	Create(ic models.Interchange) error
	CreateOrUpdate(ic models.Interchange) error
	Get(ref string) (models.Interchange, error)
	GetAll() ([]models.Interchange, error)
}

type InterchangeCache interface {
	PutInterchange(ref string, ic models.Interchange)
	GetInterchange(ref string) (models.Interchange, error)
	GetAllInterchanges() ([]models.Interchange, error)
}

type Repository struct {
	InterchangePostgres
	InterchangeCache
}

// NewRepository wires the postgres store with an in-process cache.
// A positive shard count selects the sharded cache.
func NewRepository(db *gorm.DB, shards int) *Repository {
	var kv cache.KV
	if shards > 0 {
		kv = cache.NewShardedCache(cache.WithShards(shards))
	} else {
		kv = cache.NewCache()
	}
	return &Repository{
		InterchangePostgres: postgres.NewInterchangePostgres(db),
		InterchangeCache:    cache.NewInterchangeCache(kv),
	}
}
