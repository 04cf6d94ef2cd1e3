package handlers

import (
	"errors"

	"github.com/RP1999/healthcare-application/internal/repository"
	"github.com/RP1999/healthcare-application/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PatientHandler struct {
	svc *services.PatientService
	log *zap.Logger
}

func NewPatientHandler(svc *services.PatientService, log *zap.Logger) *PatientHandler {
	return &PatientHandler{svc: svc, log: log}
}

type createPatientReq struct {
	Name   string `json:"name"`
	NIC    string `json:"nic"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"`
}

// updatePatientReq uses pointers so an absent field is distinguishable from
// an empty one; absent means "do not touch".
type updatePatientReq struct {
	Name   *string `json:"name"`
	NIC    *string `json:"nic"`
	Phone  *string `json:"phone"`
	Gender *string `json:"gender"`
	DOB    *string `json:"dob"`
}

// List handles GET /api/patients?search=&page=&limit=&sort=&order=.
func (h *PatientHandler) List(c *fiber.Ctx) error {
	page, err := h.svc.List(c.Context(), services.ListPatientsInput{
		Search: c.Query("search"),
		Page:   int64(c.QueryInt("page", 1)),
		Limit:  int64(c.QueryInt("limit", 10)),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	})
	if err != nil {
		h.log.Error("list patients failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch patients"})
	}
	return c.JSON(page)
}

// Get handles GET /api/patients/:id.
func (h *PatientHandler) Get(c *fiber.Ctx) error {
	p, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
		}
		h.log.Error("get patient failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch patient"})
	}
	return c.JSON(fiber.Map{"data": p})
}

// Create handles POST /api/patients.
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var req createPatientReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p, err := h.svc.Create(c.Context(), services.CreatePatientInput{
		Name:   req.Name,
		NIC:    req.NIC,
		Phone:  req.Phone,
		Gender: req.Gender,
		DOB:    req.DOB,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrNICTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "NIC already exists"})
		}
		h.log.Error("create patient failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create patient"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": p})
}

// Update handles PUT /api/patients/:id.
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	var req updatePatientReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p, err := h.svc.Update(c.Context(), c.Params("id"), services.UpdatePatientInput{
		Name:   req.Name,
		NIC:    req.NIC,
		Phone:  req.Phone,
		Gender: req.Gender,
		DOB:    req.DOB,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPatientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrNICTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "NIC already exists"})
		}
		h.log.Error("update patient failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update patient"})
	}
	return c.JSON(fiber.Map{"data": p})
}

// Delete handles DELETE /api/patients/:id.
func (h *PatientHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
		}
		h.log.Error("delete patient failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete patient"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
