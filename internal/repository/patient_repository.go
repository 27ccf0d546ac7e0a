package repository

import (
	"context"
	"errors"

	"github.com/dmedina-dev/consultorio-backend/internal/models"
)

var (
	// ErrPatientNotFound is returned by lookups when no row matches.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrDuplicateKey is returned when an insert or update loses the race
	// against the dni/email unique indexes.
	ErrDuplicateKey = errors.New("duplicate key")
)

// PatientRepository is the data-access contract for patients. Every method
// takes a context so the storage call is scoped to the request that made it.
type PatientRepository interface {
	List(ctx context.Context, skip, limit int) ([]models.Patient, error)
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	GetByDNI(ctx context.Context, dni string) (*models.Patient, error)
	GetByEmail(ctx context.Context, email string) (*models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Patient, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Search(ctx context.Context, term string, skip, limit int) ([]models.Patient, error)
}
