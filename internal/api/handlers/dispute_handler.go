package handlers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"billchill/internal/dto"
	"billchill/internal/models"
	"billchill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DisputeHandler struct {
	disputeService *service.DisputeService
	logger         *zap.Logger
}

func NewDisputeHandler(disputeService *service.DisputeService, logger *zap.Logger) *DisputeHandler {
	return &DisputeHandler{
		disputeService: disputeService,
		logger:         logger,
	}
}

// ListProviders godoc
// @Summary List insurance providers
// @Description Get the provider names available for dispute submissions
// @Tags dispute
// @Produce json
// @Success 200 {object} dto.ProvidersResponse
// @Router /api/dispute [get]
func (h *DisputeHandler) ListProviders(c *fiber.Ctx) error {
	providers := h.disputeService.Providers(c.Context())
	return c.JSON(dto.ProvidersResponse{Status: "ok", Providers: providers})
}

// CreateSession godoc
// @Summary Create a dispute session
// @Description Open a new in-memory staging session for bill uploads
// @Tags dispute
// @Produce json
// @Success 201 {object} dto.CreateSessionResponse
// @Router /api/dispute/sessions [post]
func (h *DisputeHandler) CreateSession(c *fiber.Ctx) error {
	id := h.disputeService.CreateSession()
	state, err := h.disputeService.State(id)
	if err != nil {
		h.logger.Error("Failed to read new session state", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateSessionResponse{
		SessionID: id.String(),
		State:     state,
	})
}

// GetState godoc
// @Summary Get session state
// @Description Get the session's current upload phase, staged file names, and result if any
// @Tags dispute
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/dispute/sessions/{id} [get]
func (h *DisputeHandler) GetState(c *fiber.Ctx) error {
	id, ok := sessionID(c)
	if !ok {
		return nil
	}

	state, err := h.disputeService.State(id)
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(dto.SessionStateResponse{SessionID: id.String(), State: state})
}

// StageBill godoc
// @Summary Stage the bill file
// @Description Upload or replace the session's primary bill file
// @Tags dispute
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param file formData file true "Bill file (PDF or image)"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/dispute/sessions/{id}/bill [post]
func (h *DisputeHandler) StageBill(c *fiber.Ctx) error {
	return h.stage(c, h.disputeService.StageBill)
}

// StageRules godoc
// @Summary Stage the rules document
// @Description Upload or replace the session's optional insurer rules document
// @Tags dispute
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param file formData file true "Rules document (PDF)"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/dispute/sessions/{id}/rules [post]
func (h *DisputeHandler) StageRules(c *fiber.Ctx) error {
	return h.stage(c, h.disputeService.StageRules)
}

func (h *DisputeHandler) stage(c *fiber.Ctx, stageFn func(uuid.UUID, models.StagedFile) (models.UploadState, error)) error {
	id, ok := sessionID(c)
	if !ok {
		return nil
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	if !allowedUploadType(fileHeader.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported file type",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	state, err := stageFn(id, models.StagedFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		if errors.Is(err, service.ErrSubmissionInFlight) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Submission in progress",
			})
		}
		return sessionError(c, err)
	}

	return c.JSON(dto.SessionStateResponse{SessionID: id.String(), State: state})
}

// Reset godoc
// @Summary Reset a session
// @Description Return the session to idle, dropping staged files and any prior result
// @Tags dispute
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/dispute/sessions/{id}/reset [post]
func (h *DisputeHandler) Reset(c *fiber.Ctx) error {
	id, ok := sessionID(c)
	if !ok {
		return nil
	}

	state, err := h.disputeService.Reset(id)
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(dto.SessionStateResponse{SessionID: id.String(), State: state})
}

// Submit godoc
// @Summary Submit a session for analysis
// @Description Start an asynchronous analysis of the staged files; poll session state for the outcome
// @Tags dispute
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitRequest true "Submission fields"
// @Success 202 {object} dto.SessionStateResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/dispute/sessions/{id}/submit [post]
func (h *DisputeHandler) Submit(c *fiber.Ctx) error {
	id, ok := sessionID(c)
	if !ok {
		return nil
	}

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Provider != "" {
		if err := h.disputeService.ValidateProvider(c.Context(), req.Provider); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Unknown provider: %s", req.Provider),
			})
		}
	}

	state, err := h.disputeService.Submit(id, service.SubmissionFields{
		Provider:      req.Provider,
		PatientName:   req.PatientName,
		HouseholdSize: req.HouseholdSize,
		AnnualIncome:  req.AnnualIncome,
		ZipCode:       req.ZipCode,
	})
	if err != nil {
		return sessionError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.SessionStateResponse{
		SessionID: id.String(),
		State:     state,
	})
}

// DownloadLetter godoc
// @Summary Download the dispute letter
// @Description Get the generated dispute letter as a plain-text attachment
// @Tags dispute
// @Produce plain
// @Param id path string true "Session ID"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/dispute/sessions/{id}/letter [get]
func (h *DisputeHandler) DownloadLetter(c *fiber.Ctx) error {
	id, ok := sessionID(c)
	if !ok {
		return nil
	}

	fileName, letter, err := h.disputeService.Letter(id)
	if err != nil {
		if errors.Is(err, service.ErrNoResult) || errors.Is(err, service.ErrNoLetter) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No dispute letter available",
			})
		}
		return sessionError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(letter)
}

// GetFindings godoc
// @Summary Get the overcharge findings
// @Description Get the plain-text overcharges section of a completed analysis
// @Tags dispute
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.FindingsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/dispute/sessions/{id}/findings [get]
func (h *DisputeHandler) GetFindings(c *fiber.Ctx) error {
	id, ok := sessionID(c)
	if !ok {
		return nil
	}

	findings, err := h.disputeService.Findings(id)
	if err != nil {
		if errors.Is(err, service.ErrNoResult) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No analysis result available",
			})
		}
		return sessionError(c, err)
	}

	return c.JSON(dto.FindingsResponse{Findings: findings})
}

// allowedUploadType mirrors the accept list clients present in the file
// picker. The staging machine itself does not validate types.
func allowedUploadType(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf", ".jpg", ".jpeg", ".png", ".heic", ".doc", ".docx", ".txt":
		return true
	default:
		return false
	}
}

func sessionID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
		return uuid.Nil, false
	}
	return id, true
}

func sessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
