package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmedina-dev/consultorio-backend/internal/dto"
	"github.com/dmedina-dev/consultorio-backend/internal/repository"
)

const (
	defaultLimit = 100
	maxLimit     = 100
)

type PatientHandler struct {
	repo repository.PatientRepository
}

func NewPatientHandler(repo repository.PatientRepository) *PatientHandler {
	return &PatientHandler{repo: repo}
}

// List returns patients paginated by skip/limit, ordered by id.
func (h *PatientHandler) List(c *fiber.Ctx) error {
	skip, limit, fields := parsePagination(c)
	if len(fields) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewValidationError(fields))
	}

	patients, err := h.repo.List(c.UserContext(), skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch patients",
		})
	}

	return c.JSON(dto.NewPatientListResponse(patients))
}

// Search matches q case-insensitively against first name, last name or DNI.
func (h *PatientHandler) Search(c *fiber.Ctx) error {
	skip, limit, fields := parsePagination(c)
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		fields["q"] = "must not be empty"
	}
	if len(fields) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewValidationError(fields))
	}

	patients, err := h.repo.Search(c.UserContext(), q, skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search patients",
		})
	}

	return c.JSON(dto.NewPatientListResponse(patients))
}

func (h *PatientHandler) GetByID(c *fiber.Ctx) error {
	id, fields := parseID(c)
	if len(fields) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewValidationError(fields))
	}

	patient, err := h.repo.GetByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrPatientNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: fmt.Sprintf("Paciente con ID %d no encontrado", id),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch patient",
		})
	}

	return c.JSON(dto.NewPatientResponse(patient))
}

// Create inserts a new patient after checking that the DNI and email are not
// already taken. The unique indexes remain the final authority: a create
// that loses the race between check and insert still comes back as a 400.
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if fields := req.Validate(); len(fields) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewValidationError(fields))
	}

	ctx := c.UserContext()

	if _, err := h.repo.GetByDNI(ctx, req.DNI); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: fmt.Sprintf("Ya existe un paciente con DNI %s", req.DNI),
		})
	} else if !errors.Is(err, repository.ErrPatientNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create patient",
		})
	}

	if req.Email != nil {
		if _, err := h.repo.GetByEmail(ctx, *req.Email); err == nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: fmt.Sprintf("Ya existe un paciente con email %s", *req.Email),
			})
		} else if !errors.Is(err, repository.ErrPatientNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create patient",
			})
		}
	}

	patient := req.ToModel()
	if err := h.repo.Create(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: fmt.Sprintf("Ya existe un paciente con DNI %s o ese email", req.DNI),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create patient",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewPatientResponse(patient))
}

// Update applies a partial patch. Only keys present in the body change;
// setting the email to one owned by another patient is rejected, keeping it
// at its current value is not.
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	id, fields := parseID(c)
	if len(fields) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewValidationError(fields))
	}

	var req dto.UpdatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if fields := req.Validate(); len(fields) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewValidationError(fields))
	}

	ctx := c.UserContext()

	existing, err := h.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPatientNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: fmt.Sprintf("Paciente con ID %d no encontrado", id),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update patient",
		})
	}

	if req.Email != nil && (existing.Email == nil || *existing.Email != *req.Email) {
		if _, err := h.repo.GetByEmail(ctx, *req.Email); err == nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: fmt.Sprintf("Ya existe un paciente con email %s", *req.Email),
			})
		} else if !errors.Is(err, repository.ErrPatientNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update patient",
			})
		}
	}

	patient, err := h.repo.Update(ctx, id, req.Changes())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPatientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: fmt.Sprintf("Paciente con ID %d no encontrado", id),
			})
		case errors.Is(err, repository.ErrDuplicateKey):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Ya existe un paciente con ese email",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update patient",
			})
		}
	}

	return c.JSON(dto.NewPatientResponse(patient))
}

// Delete removes the row. Deleting an id that is already gone is a 404, so
// a repeated delete fails rather than silently succeeding.
func (h *PatientHandler) Delete(c *fiber.Ctx) error {
	id, fields := parseID(c)
	if len(fields) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewValidationError(fields))
	}

	deleted, err := h.repo.Delete(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete patient",
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: fmt.Sprintf("Paciente con ID %d no encontrado", id),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx) (uint, map[string]string) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, map[string]string{"id": "must be a positive integer"}
	}
	return uint(id), nil
}

func parsePagination(c *fiber.Ctx) (int, int, map[string]string) {
	fields := make(map[string]string)

	skip, err := strconv.Atoi(c.Query("skip", "0"))
	if err != nil || skip < 0 {
		fields["skip"] = "must be an integer greater than or equal to 0"
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		fields["limit"] = "must be an integer between 1 and 100"
	}

	return skip, limit, fields
}
