package dto

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/dmedina-dev/consultorio-backend/internal/models"
)

const birthDateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// CreatePatientRequest is the POST body. first_name, last_name and dni are
// required; everything else may be omitted.
type CreatePatientRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	DNI       string  `json:"dni"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`
	Address   *string `json:"address"`
}

// Validate returns one reason per offending field, empty when the shape is fine.
func (r *CreatePatientRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(r.FirstName) == "" {
		fields["first_name"] = "must not be empty"
	}
	if strings.TrimSpace(r.LastName) == "" {
		fields["last_name"] = "must not be empty"
	}
	if strings.TrimSpace(r.DNI) == "" {
		fields["dni"] = "must not be empty"
	}
	if r.Email != nil && !emailPattern.MatchString(*r.Email) {
		fields["email"] = "must be a valid email address"
	}
	if r.BirthDate != nil {
		if _, err := time.Parse(birthDateLayout, *r.BirthDate); err != nil {
			fields["birth_date"] = "must be a date in YYYY-MM-DD format"
		}
	}
	return fields
}

// ToModel builds the entity to insert. Call Validate first; a malformed
// birth_date is silently dropped here.
func (r *CreatePatientRequest) ToModel() *models.Patient {
	p := &models.Patient{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		DNI:       r.DNI,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
	}
	if r.BirthDate != nil {
		if d, err := time.Parse(birthDateLayout, *r.BirthDate); err == nil {
			p.BirthDate = &d
		}
	}
	return p
}

// UpdatePatientRequest is the PUT body. It is a partial patch: only keys
// present in the payload are applied. An explicit null clears an optional
// field; omitting a key leaves the stored value untouched. DNI is the
// immutable business key and is not part of the update shape.
type UpdatePatientRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`
	Address   *string `json:"address"`

	present map[string]bool
}

func (r *UpdatePatientRequest) UnmarshalJSON(data []byte) error {
	type plain UpdatePatientRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = UpdatePatientRequest(p)
	r.present = make(map[string]bool, len(raw))
	for k := range raw {
		r.present[k] = true
	}
	return nil
}

// Has reports whether the field key appeared in the payload, even as null.
func (r *UpdatePatientRequest) Has(field string) bool {
	return r.present[field]
}

func (r *UpdatePatientRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if r.Has("first_name") && (r.FirstName == nil || strings.TrimSpace(*r.FirstName) == "") {
		fields["first_name"] = "must not be empty"
	}
	if r.Has("last_name") && (r.LastName == nil || strings.TrimSpace(*r.LastName) == "") {
		fields["last_name"] = "must not be empty"
	}
	if r.Has("dni") {
		fields["dni"] = "dni cannot be changed"
	}
	if r.Has("email") && r.Email != nil && !emailPattern.MatchString(*r.Email) {
		fields["email"] = "must be a valid email address"
	}
	if r.Has("birth_date") && r.BirthDate != nil {
		if _, err := time.Parse(birthDateLayout, *r.BirthDate); err != nil {
			fields["birth_date"] = "must be a date in YYYY-MM-DD format"
		}
	}
	return fields
}

// Changes maps column name to new value for every field present in the
// payload. Explicit nulls come through as nil so optional columns can be
// cleared.
func (r *UpdatePatientRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.Has("first_name") && r.FirstName != nil {
		changes["first_name"] = *r.FirstName
	}
	if r.Has("last_name") && r.LastName != nil {
		changes["last_name"] = *r.LastName
	}
	if r.Has("email") {
		changes["email"] = deref(r.Email)
	}
	if r.Has("phone") {
		changes["phone"] = deref(r.Phone)
	}
	if r.Has("birth_date") {
		if r.BirthDate == nil {
			changes["birth_date"] = nil
		} else if d, err := time.Parse(birthDateLayout, *r.BirthDate); err == nil {
			changes["birth_date"] = d
		}
	}
	if r.Has("address") {
		changes["address"] = deref(r.Address)
	}
	return changes
}

// deref turns a *string into a plain value the storage layer can bind,
// keeping nil as nil so a cleared field becomes NULL.
func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// PatientResponse is the wire shape for a stored patient.
type PatientResponse struct {
	ID        uint       `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	DNI       string     `json:"dni"`
	Email     *string    `json:"email"`
	Phone     *string    `json:"phone"`
	BirthDate *string    `json:"birth_date"`
	Address   *string    `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func NewPatientResponse(p *models.Patient) PatientResponse {
	resp := PatientResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		DNI:       p.DNI,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.BirthDate != nil {
		d := p.BirthDate.Format(birthDateLayout)
		resp.BirthDate = &d
	}
	return resp
}

func NewPatientListResponse(patients []models.Patient) []PatientResponse {
	out := make([]PatientResponse, len(patients))
	for i := range patients {
		out[i] = NewPatientResponse(&patients[i])
	}
	return out
}
