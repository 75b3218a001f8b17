package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"edi-orders/internal/models"
)

// GenerateInterchange runs a raw order through the generator, persists
// the resulting interchange and caches it.
func (s *Service) GenerateInterchange(raw map[string]any) (models.Interchange, error) {
	res, err := s.gen.Generate(raw)
	if err != nil {
		return models.Interchange{}, err
	}

	ic := models.Interchange{
		MessageRef:   res.MessageRef,
		OrderNumber:  res.OrderNumber,
		Currency:     res.Currency,
		GrandTotal:   res.GrandTotal,
		SegmentCount: res.SegmentCount,
		Payload:      res.Message,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.InterchangePostgres.CreateOrUpdate(ic); err != nil {
		return models.Interchange{}, err
	}
	s.InterchangeCache.PutInterchange(ic.MessageRef, ic)

	if s.outputDir != "" {
		if err := s.gen.WriteFile(res.Message, s.outputDir, res.MessageRef+".edi"); err != nil {
			return models.Interchange{}, err
		}
	}
	return ic, nil
}

func (s *Service) GetCachedInterchange(ref string) (models.Interchange, error) {
	return s.InterchangeCache.GetInterchange(ref)
}

func (s *Service) GetAllCachedInterchanges() ([]models.Interchange, error) {
	return s.InterchangeCache.GetAllInterchanges()
}

func (s *Service) GetAllDbInterchanges() ([]models.Interchange, error) {
	return s.InterchangePostgres.GetAll()
}

func (s *Service) GetDbInterchange(ref string) (models.Interchange, error) {
	ic, err := s.InterchangePostgres.Get(ref)
	if gorm.IsRecordNotFoundError(err) {
		return models.Interchange{}, ErrNotFound
	}
	return ic, err
}

func (s *Service) PutInterchangesFromDbToCache() error {
	all, err := s.GetAllDbInterchanges()
	if err != nil {
		return err
	}
	for _, ic := range all {
		if ic.MessageRef == "" || ic.Payload == "" {
			logrus.WithField("ref", ic.MessageRef).Warn("skip incomplete interchange from DB")
			continue
		}
		s.InterchangeCache.PutInterchange(ic.MessageRef, ic)
	}
	return nil
}

// HandleMessage decodes a raw order payload from the broker and turns
// it into an interchange. Decode failures are wrapped in ErrDecode so
// the consumer can tell them apart from transient storage errors.
func (s *Service) HandleMessage(ctx context.Context, payload []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	_, err := s.GenerateInterchange(raw)
	return err
}
