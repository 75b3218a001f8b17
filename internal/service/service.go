package service

import (
	"context"

	"edi-orders/internal/edifact"
	"edi-orders/internal/models"
	"edi-orders/internal/repository"
)

type EdifactOrders interface {
	GenerateInterchange(raw map[string]any) (models.Interchange, error)
	GetCachedInterchange(ref string) (models.Interchange, error)
	GetAllCachedInterchanges() ([]models.Interchange, error)
	GetDbInterchange(ref string) (models.Interchange, error)
	GetAllDbInterchanges() ([]models.Interchange, error)
	PutInterchangesFromDbToCache() error

	HandleMessage(ctx context.Context, payload []byte) error
}

type Service struct {
	repository.InterchangeCache
	repository.InterchangePostgres

	gen       *edifact.Generator
	outputDir string
}

// NewService builds the order-to-interchange service. When outputDir is
// non-empty every generated interchange is also written there as
// <message_ref>.edi.
func NewService(repo *repository.Repository, gen *edifact.Generator, outputDir string) *Service {
	return &Service{
		InterchangeCache:    repo.InterchangeCache,
		InterchangePostgres: repo.InterchangePostgres,
		gen:                 gen,
		outputDir:           outputDir,
	}
}
