package repository

import (
	"context"
	"errors"

	domainLead "github.com/sibinaravind/lead-management-back-sub001/domains/lead"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) domainLead.ILeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&domainLead.Lead{})
}

// CreateIfAbsent inserts the lead unless the phone is already known. The
// phone column carries a unique index, so concurrent captures of the same
// sender collapse into a single row.
func (r *leadRepository) CreateIfAbsent(ctx context.Context, lead *domainLead.Lead) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoNothing: true,
		}).
		Create(lead)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *leadRepository) GetByPhone(ctx context.Context, phone string) (*domainLead.Lead, error) {
	var lead domainLead.Lead
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, limit, offset int) ([]domainLead.Lead, error) {
	var leads []domainLead.Lead
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leads).Error
	return leads, err
}

func (r *leadRepository) UpdateStatus(ctx context.Context, phone, status string) error {
	result := r.db.WithContext(ctx).
		Model(&domainLead.Lead{}).
		Where("phone = ?", phone).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
