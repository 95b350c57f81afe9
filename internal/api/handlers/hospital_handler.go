package handlers

import (
	"errors"

	"billchill/internal/dto"
	"billchill/internal/models"
	"billchill/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
	logger          *zap.Logger
}

func NewHospitalHandler(hospitalService *service.HospitalService, logger *zap.Logger) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
		logger:          logger,
	}
}

// Search godoc
// @Summary Search hospital prices
// @Description Find hospitals and their published prices for a medical condition near a location
// @Tags hospitals
// @Accept json
// @Produce json
// @Param request body dto.HospitalSearchRequest true "Search parameters"
// @Success 200 {object} dto.HospitalSearchResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/hospitals [post]
func (h *HospitalHandler) Search(c *fiber.Ctx) error {
	var req dto.HospitalSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	results, err := h.hospitalService.Search(c.Context(), service.HospitalSearch{
		Condition: req.Condition,
		Location:  req.Location,
		Lat:       req.Lat,
		Lon:       req.Lon,
	})
	if err != nil {
		if errors.Is(err, service.ErrConditionRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Condition is required",
			})
		}
		h.logger.Error("Hospital search failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if results == nil {
		results = []models.Hospital{}
	}
	return c.JSON(dto.HospitalSearchResponse{Results: results})
}
