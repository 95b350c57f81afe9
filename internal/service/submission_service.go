package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"billchill/internal/models"
	"billchill/pkg/config"

	"go.uber.org/zap"
)

// msgRequestFailed is the generic failure message used when the backend gave
// no usable error detail.
const msgRequestFailed = "Request failed"

// SubmissionService drives a single analysis request against the backend:
// it assembles the multipart body from the staged files and form fields,
// issues exactly one request, and converts whatever comes back (or fails to
// come back) into a terminal state transition on the staging machine. It
// never retries; resubmission is the caller's call.
type SubmissionService struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// SubmissionFields carries the form fields accompanying a submission. Blank
// values fall back to the defaults the backend expects.
type SubmissionFields struct {
	Provider      string
	PatientName   string
	HouseholdSize string
	AnnualIncome  string
	ZipCode       string
}

func NewSubmissionService(cfg *config.AnalyzerConfig, logger *zap.Logger) *SubmissionService {
	// No client-level timeout: a deadline, if any, comes from the caller's
	// context. A hung backend therefore holds the session in Submitting
	// until the caller gives up.
	return &SubmissionService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Submit runs one full submission against the machine. Preconditions,
// success, and every failure mode all land as state transitions; nothing
// escapes to leave the machine stuck in Submitting. The returned snapshot is
// the state as of this submission's resolution (which may already have been
// superseded by a newer one).
func (s *SubmissionService) Submit(ctx context.Context, machine *StagingMachine, fields SubmissionFields) models.UploadState {
	sub, err := machine.BeginSubmit()
	if err != nil {
		// Input error: reported immediately, no request issued.
		s.logger.Warn("Submission rejected", zap.Error(err))
		return machine.Snapshot()
	}
	return s.resolve(ctx, machine, sub, fields)
}

// SubmitAsync starts a submission and returns immediately with the machine
// in Submitting (or Failed, for an input error). The request resolves in the
// background; a submission superseded before its response arrives resolves
// into a discarded stale completion.
func (s *SubmissionService) SubmitAsync(machine *StagingMachine, fields SubmissionFields) models.UploadState {
	sub, err := machine.BeginSubmit()
	if err != nil {
		s.logger.Warn("Submission rejected", zap.Error(err))
		return machine.Snapshot()
	}

	go s.resolve(context.Background(), machine, sub, fields)
	return machine.Snapshot()
}

func (s *SubmissionService) resolve(ctx context.Context, machine *StagingMachine, sub Submission, fields SubmissionFields) models.UploadState {
	result, err := s.analyze(ctx, sub, fields)
	if err != nil {
		applied := machine.CompleteFailure(sub.Seq, failureMessage(err))
		s.logger.Warn("Submission failed",
			zap.Uint64("seq", sub.Seq),
			zap.Bool("applied", applied),
			zap.Error(err),
		)
		return machine.Snapshot()
	}

	applied := machine.CompleteSuccess(sub.Seq, result)
	s.logger.Info("Submission succeeded",
		zap.Uint64("seq", sub.Seq),
		zap.Bool("applied", applied),
		zap.Int("overcharges", len(result.Overcharges)),
	)
	return machine.Snapshot()
}

// backendError is a failure the backend reported itself, as opposed to a
// transport-level one.
type backendError struct {
	message string
}

func (e *backendError) Error() string {
	return e.message
}

// failureMessage picks the user-facing message for a failed submission:
// the backend's own error text when it provided one, the transport error's
// message otherwise.
func failureMessage(err error) string {
	if be, ok := err.(*backendError); ok {
		return be.message
	}
	return err.Error()
}

func (s *SubmissionService) analyze(ctx context.Context, sub Submission, fields SubmissionFields) (*models.AnalysisResult, error) {
	body, contentType, err := buildAnalyzeBody(sub, fields)
	if err != nil {
		return nil, &backendError{message: msgRequestFailed}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/dispute/analyze", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach analysis backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Warn("Analysis backend returned error status",
			zap.Int("status", resp.StatusCode),
		)
		return nil, &backendError{message: extractBackendError(respBody)}
	}

	raw, err := DecodeAnalyzeResponse(respBody)
	if err != nil {
		s.logger.Warn("Analysis backend returned unparseable body", zap.Error(err))
		return nil, &backendError{message: msgRequestFailed}
	}

	return Normalize(raw), nil
}

// extractBackendError pulls the error field out of a non-2xx body, falling
// back to the generic message when the body carries none.
func extractBackendError(body []byte) string {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return msgRequestFailed
}

// buildAnalyzeBody assembles the multipart form the backend expects:
// provider, patient_name, bill_pdf, optional rules_pdf, and the patient
// financial context fields with their documented defaults.
func buildAnalyzeBody(sub Submission, fields SubmissionFields) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	patientName := strings.TrimSpace(fields.PatientName)
	if patientName == "" {
		patientName = "John Doe"
	}
	householdSize := fields.HouseholdSize
	if householdSize == "" {
		householdSize = "1"
	}
	annualIncome := fields.AnnualIncome
	if annualIncome == "" {
		annualIncome = "0"
	}

	textFields := map[string]string{
		"provider":       fields.Provider,
		"patient_name":   patientName,
		"household_size": householdSize,
		"annual_income":  annualIncome,
		"zip_code":       fields.ZipCode,
	}
	for name, value := range textFields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write %s field: %w", name, err)
		}
	}

	if err := writeFilePart(writer, "bill_pdf", sub.Bill); err != nil {
		return nil, "", err
	}
	if sub.Rules != nil {
		if err := writeFilePart(writer, "rules_pdf", *sub.Rules); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return &body, writer.FormDataContentType(), nil
}

func writeFilePart(writer *multipart.Writer, field string, file models.StagedFile) error {
	part, err := writer.CreatePart(map[string][]string{
		"Content-Type":        {fileContentType(file)},
		"Content-Disposition": {fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, file.Name)},
	})
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", field, err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("failed to write %s part: %w", field, err)
	}
	return nil
}

// fileContentType uses the staged content type when present, otherwise falls
// back to the file extension.
func fileContentType(file models.StagedFile) string {
	if file.ContentType != "" {
		return file.ContentType
	}
	ext := strings.ToLower(filepath.Ext(file.Name))
	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType
	}
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
