package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dmedina-dev/consultorio-backend/internal/models"
)

// GormPatientRepository persists patients through GORM. Lists and searches
// order by id ascending so skip/limit pagination walks a stable sequence.
type GormPatientRepository struct {
	db *gorm.DB
}

var _ PatientRepository = (*GormPatientRepository)(nil)

func NewGormPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

func (r *GormPatientRepository) List(ctx context.Context, skip, limit int) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *GormPatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *GormPatientRepository) GetByDNI(ctx context.Context, dni string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("dni = ?", dni).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *GormPatientRepository) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *GormPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	err := r.db.WithContext(ctx).Create(patient).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

func (r *GormPatientRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Patient, error) {
	patient, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		return patient, nil
	}

	applied := make(map[string]interface{}, len(changes)+1)
	for k, v := range changes {
		applied[k] = v
	}
	now := time.Now().UTC()
	applied["updated_at"] = now

	err = r.db.WithContext(ctx).Model(patient).Updates(applied).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateKey
	}
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *GormPatientRepository) Delete(ctx context.Context, id uint) (bool, error) {
	patient, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrPatientNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := r.db.WithContext(ctx).Delete(patient).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormPatientRepository) Search(ctx context.Context, term string, skip, limit int) ([]models.Patient, error) {
	pattern := "%" + term + "%"
	var patients []models.Patient
	err := r.db.WithContext(ctx).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR dni ILIKE ?", pattern, pattern, pattern).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}
