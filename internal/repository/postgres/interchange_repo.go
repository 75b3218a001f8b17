package postgres

import (
	"github.com/jinzhu/gorm"

	"edi-orders/internal/models"
)

type InterchangePostgresRepo struct {
	db *gorm.DB
}

func NewInterchangePostgres(db *gorm.DB) *InterchangePostgresRepo {
	return &InterchangePostgresRepo{db: db}
}

func (r *InterchangePostgresRepo) Create(ic models.Interchange) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&ic).Error
	})
}

func (r *InterchangePostgresRepo) CreateOrUpdate(ic models.Interchange) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int
		if err := tx.Model(&models.Interchange{}).
			Where("message_ref = ?", ic.MessageRef).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			return tx.Create(&ic).Error
		}

		return tx.Model(&models.Interchange{}).
			Where("message_ref = ?", ic.MessageRef).
			Updates(map[string]interface{}{
				"order_number":  ic.OrderNumber,
				"currency":      ic.Currency,
				"grand_total":   ic.GrandTotal,
				"segment_count": ic.SegmentCount,
				"payload":       ic.Payload,
			}).Error
	})
}

func (r *InterchangePostgresRepo) Get(ref string) (models.Interchange, error) {
	var ic models.Interchange
	q := r.db.Where("message_ref = ?", ref).First(&ic)
	return ic, q.Error
}

func (r *InterchangePostgresRepo) GetAll() ([]models.Interchange, error) {
	var out []models.Interchange
	q := r.db.Order("created_at").Find(&out)
	return out, q.Error
}
