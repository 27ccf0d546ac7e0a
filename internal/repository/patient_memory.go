package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmedina-dev/consultorio-backend/internal/models"
)

// MemoryPatientRepository is a map-backed PatientRepository with the same
// uniqueness and ordering behavior as the GORM one. Handler tests run
// against it so they exercise the full HTTP contract without a database.
type MemoryPatientRepository struct {
	mu       sync.RWMutex
	patients map[uint]models.Patient
	nextID   uint
}

var _ PatientRepository = (*MemoryPatientRepository)(nil)

func NewMemoryPatientRepository(seed ...models.Patient) *MemoryPatientRepository {
	r := &MemoryPatientRepository{
		patients: make(map[uint]models.Patient),
		nextID:   1,
	}
	for _, p := range seed {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		r.patients[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *MemoryPatientRepository) sorted() []models.Patient {
	out := make([]models.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func paginate(patients []models.Patient, skip, limit int) []models.Patient {
	if skip >= len(patients) {
		return []models.Patient{}
	}
	end := skip + limit
	if end > len(patients) {
		end = len(patients)
	}
	return patients[skip:end]
}

func (r *MemoryPatientRepository) List(ctx context.Context, skip, limit int) ([]models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return paginate(r.sorted(), skip, limit), nil
}

func (r *MemoryPatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return &p, nil
}

func (r *MemoryPatientRepository) GetByDNI(ctx context.Context, dni string) (*models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients {
		if p.DNI == dni {
			found := p
			return &found, nil
		}
	}
	return nil, ErrPatientNotFound
}

func (r *MemoryPatientRepository) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients {
		if p.Email != nil && *p.Email == email {
			found := p
			return &found, nil
		}
	}
	return nil, ErrPatientNotFound
}

func (r *MemoryPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.patients {
		if p.DNI == patient.DNI {
			return ErrDuplicateKey
		}
		if patient.Email != nil && p.Email != nil && *p.Email == *patient.Email {
			return ErrDuplicateKey
		}
	}

	patient.ID = r.nextID
	r.nextID++
	patient.CreatedAt = time.Now().UTC()
	patient.UpdatedAt = nil
	r.patients[patient.ID] = *patient
	return nil
}

func (r *MemoryPatientRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	if len(changes) == 0 {
		return &p, nil
	}

	for column, value := range changes {
		switch column {
		case "first_name":
			p.FirstName = value.(string)
		case "last_name":
			p.LastName = value.(string)
		case "email":
			p.Email = optString(value)
		case "phone":
			p.Phone = optString(value)
		case "address":
			p.Address = optString(value)
		case "birth_date":
			if value == nil {
				p.BirthDate = nil
			} else {
				d := value.(time.Time)
				p.BirthDate = &d
			}
		}
	}

	if email := optString(changes["email"]); changes["email"] != nil {
		for _, other := range r.patients {
			if other.ID != id && other.Email != nil && email != nil && *other.Email == *email {
				return nil, ErrDuplicateKey
			}
		}
	}

	now := time.Now().UTC()
	p.UpdatedAt = &now
	r.patients[id] = p
	return &p, nil
}

func (r *MemoryPatientRepository) Delete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[id]; !ok {
		return false, nil
	}
	delete(r.patients, id)
	return true, nil
}

func (r *MemoryPatientRepository) Search(ctx context.Context, term string, skip, limit int) ([]models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(term)
	var matched []models.Patient
	for _, p := range r.sorted() {
		if strings.Contains(strings.ToLower(p.FirstName), needle) ||
			strings.Contains(strings.ToLower(p.LastName), needle) ||
			strings.Contains(strings.ToLower(p.DNI), needle) {
			matched = append(matched, p)
		}
	}
	return paginate(matched, skip, limit), nil
}

func optString(value interface{}) *string {
	if value == nil {
		return nil
	}
	s := value.(string)
	return &s
}
