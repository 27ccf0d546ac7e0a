package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmedina-dev/consultorio-backend/internal/models"
)

func TestCreateRequestValidate_RequiredFields(t *testing.T) {
	var req CreatePatientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email":"ana@example.com"}`), &req))

	fields := req.Validate()
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "last_name")
	assert.Contains(t, fields, "dni")
	assert.NotContains(t, fields, "email")
}

func TestCreateRequestValidate_BadEmailAndDate(t *testing.T) {
	var req CreatePatientRequest
	body := `{"first_name":"Ana","last_name":"Lopez","dni":"111","email":"not-an-email","birth_date":"31-12-1990"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	fields := req.Validate()
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", fields["birth_date"])
	assert.Len(t, fields, 2)
}

func TestCreateRequestToModel_ParsesBirthDate(t *testing.T) {
	var req CreatePatientRequest
	body := `{"first_name":"Ana","last_name":"Lopez","dni":"111","birth_date":"1990-12-31"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Empty(t, req.Validate())

	p := req.ToModel()
	require.NotNil(t, p.BirthDate)
	assert.Equal(t, time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC), *p.BirthDate)
	assert.Nil(t, p.Email)
}

func TestUpdateRequest_TracksPresence(t *testing.T) {
	var req UpdatePatientRequest
	body := `{"phone":"555-1234","address":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.True(t, req.Has("phone"))
	assert.True(t, req.Has("address"))
	assert.False(t, req.Has("first_name"))
	assert.False(t, req.Has("email"))

	changes := req.Changes()
	assert.Equal(t, "555-1234", changes["phone"])
	val, ok := changes["address"]
	assert.True(t, ok, "explicit null must produce a change entry")
	assert.Nil(t, val)
	assert.NotContains(t, changes, "email")
	assert.NotContains(t, changes, "first_name")
}

func TestUpdateRequestValidate_NullRequiredField(t *testing.T) {
	var req UpdatePatientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":null}`), &req))

	fields := req.Validate()
	assert.Equal(t, "must not be empty", fields["first_name"])
}

func TestUpdateRequestValidate_RejectsDNI(t *testing.T) {
	var req UpdatePatientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"dni":"222"}`), &req))

	fields := req.Validate()
	assert.Equal(t, "dni cannot be changed", fields["dni"])
}

func TestUpdateRequestValidate_EmptyBody(t *testing.T) {
	var req UpdatePatientRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))

	assert.Empty(t, req.Validate())
	assert.Empty(t, req.Changes())
}

func TestPatientResponse_FormatsBirthDate(t *testing.T) {
	birth := time.Date(1985, 6, 2, 0, 0, 0, 0, time.UTC)
	p := &models.Patient{
		ID:        7,
		FirstName: "Maria",
		LastName:  "Garcia",
		DNI:       "12345678",
		BirthDate: &birth,
		CreatedAt: time.Now().UTC(),
	}

	resp := NewPatientResponse(p)
	require.NotNil(t, resp.BirthDate)
	assert.Equal(t, "1985-06-02", *resp.BirthDate)
	assert.Nil(t, resp.UpdatedAt)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"updated_at":null`)
	assert.Contains(t, string(raw), `"email":null`)
}
