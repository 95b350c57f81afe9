package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"billchill/internal/models"
	"billchill/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoResult        = errors.New("session has no analysis result")
	ErrNoLetter        = errors.New("analysis produced no dispute letter")
	ErrUnknownProvider = errors.New("unknown provider")
)

// defaultProviders mirrors the backend's built-in policy set, used when the
// provider registry is unreachable.
var defaultProviders = []string{"United", "Providence", "Molina", "CMS"}

// DisputeService owns the staging sessions and ties the workflow together:
// staging, submission, and the export views over the canonical result.
// Sessions live in memory only; results are never persisted.
type DisputeService struct {
	submissions  *SubmissionService
	providerRepo *repository.ProviderRepository
	logger       *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*disputeSession
}

type disputeSession struct {
	machine *StagingMachine

	mu          sync.Mutex
	patientName string
}

func NewDisputeService(submissions *SubmissionService, providerRepo *repository.ProviderRepository, logger *zap.Logger) *DisputeService {
	return &DisputeService{
		submissions:  submissions,
		providerRepo: providerRepo,
		logger:       logger,
		sessions:     make(map[uuid.UUID]*disputeSession),
	}
}

// CreateSession opens a new staging session and returns its ID.
func (s *DisputeService) CreateSession() uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	s.sessions[id] = &disputeSession{machine: NewStagingMachine()}
	s.mu.Unlock()

	s.logger.Info("Session created", zap.String("session_id", id.String()))
	return id
}

func (s *DisputeService) session(id uuid.UUID) (*disputeSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// StageBill stages or replaces the session's primary bill file.
func (s *DisputeService) StageBill(id uuid.UUID, file models.StagedFile) (models.UploadState, error) {
	sess, err := s.session(id)
	if err != nil {
		return models.UploadState{}, err
	}
	if err := sess.machine.StageBill(file); err != nil {
		return sess.machine.Snapshot(), err
	}
	return sess.machine.Snapshot(), nil
}

// StageRules stages the session's optional rules document.
func (s *DisputeService) StageRules(id uuid.UUID, file models.StagedFile) (models.UploadState, error) {
	sess, err := s.session(id)
	if err != nil {
		return models.UploadState{}, err
	}
	if err := sess.machine.StageRules(file); err != nil {
		return sess.machine.Snapshot(), err
	}
	return sess.machine.Snapshot(), nil
}

// Reset returns the session to Idle, dropping both staged files and any
// prior result or error.
func (s *DisputeService) Reset(id uuid.UUID) (models.UploadState, error) {
	sess, err := s.session(id)
	if err != nil {
		return models.UploadState{}, err
	}
	sess.machine.Reset()
	return sess.machine.Snapshot(), nil
}

// Submit starts an asynchronous submission for the session. The returned
// snapshot shows Submitting (or Failed for an input error); callers poll
// State for the terminal outcome.
func (s *DisputeService) Submit(id uuid.UUID, fields SubmissionFields) (models.UploadState, error) {
	sess, err := s.session(id)
	if err != nil {
		return models.UploadState{}, err
	}

	patientName := strings.TrimSpace(fields.PatientName)
	if patientName == "" {
		patientName = "John Doe"
	}
	sess.mu.Lock()
	sess.patientName = patientName
	sess.mu.Unlock()

	return s.submissions.SubmitAsync(sess.machine, fields), nil
}

// State returns the session's current upload state.
func (s *DisputeService) State(id uuid.UUID) (models.UploadState, error) {
	sess, err := s.session(id)
	if err != nil {
		return models.UploadState{}, err
	}
	return sess.machine.Snapshot(), nil
}

// Letter returns the dispute letter text and its download filename for a
// session with a successful analysis.
func (s *DisputeService) Letter(id uuid.UUID) (fileName, letter string, err error) {
	sess, err := s.session(id)
	if err != nil {
		return "", "", err
	}

	result := sess.machine.Result()
	if result == nil {
		return "", "", ErrNoResult
	}
	if result.LetterText == "" {
		return "", "", ErrNoLetter
	}

	sess.mu.Lock()
	patientName := sess.patientName
	sess.mu.Unlock()

	return LetterFileName(patientName), result.LetterText, nil
}

// Findings returns the plain-text overcharges section for a session with a
// successful analysis.
func (s *DisputeService) Findings(id uuid.UUID) (string, error) {
	sess, err := s.session(id)
	if err != nil {
		return "", err
	}

	result := sess.machine.Result()
	if result == nil {
		return "", ErrNoResult
	}
	return RenderFindings(result), nil
}

// Providers lists the known provider names, falling back to the built-in
// set when the registry is unavailable.
func (s *DisputeService) Providers(ctx context.Context) []string {
	if s.providerRepo != nil {
		providers, err := s.providerRepo.List(ctx)
		if err == nil && len(providers) > 0 {
			names := make([]string, len(providers))
			for i, p := range providers {
				names[i] = p.Name
			}
			return names
		}
		if err != nil {
			s.logger.Warn("Provider registry unavailable, using defaults", zap.Error(err))
		}
	}
	return defaultProviders
}

// ValidateProvider reports whether the named provider is known. When the
// registry is unreachable the backend stays authoritative and the name
// passes through unvalidated.
func (s *DisputeService) ValidateProvider(ctx context.Context, name string) error {
	if s.providerRepo == nil {
		return nil
	}
	_, err := s.providerRepo.GetByName(ctx, name)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrProviderNotFound) {
		return ErrUnknownProvider
	}
	s.logger.Warn("Provider lookup failed, passing through", zap.String("provider", name), zap.Error(err))
	return nil
}
