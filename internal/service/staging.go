package service

import (
	"errors"
	"sync"

	"billchill/internal/models"
)

var (
	ErrNoBillStaged       = errors.New("no bill file staged")
	ErrSubmissionInFlight = errors.New("submission in flight")
)

// msgNoBillStaged is the user-facing input-error message, kept word-for-word
// compatible with what clients already display.
const msgNoBillStaged = "Please upload your bill as a PDF."

// StagingMachine tracks one session's upload workflow: Idle -> FileStaged ->
// Submitting -> Succeeded/Failed, with Reset returning to Idle from anywhere.
// It is the single writer of its UploadState; the submission controller only
// mutates it through BeginSubmit/Complete*, and every submission carries a
// sequence number so that out-of-order or superseded completions are
// discarded deterministically (highest sequence wins).
type StagingMachine struct {
	mu        sync.Mutex
	phase     models.UploadPhase
	billFile  *models.StagedFile
	rulesFile *models.StagedFile
	result    *models.AnalysisResult
	errMsg    string
	submitSeq uint64
}

func NewStagingMachine() *StagingMachine {
	return &StagingMachine{phase: models.PhaseIdle}
}

// Submission is the snapshot handed to the submission controller when a
// submit begins: the files as staged at initiation time plus the sequence
// number that makes this submission's completion authoritative or stale.
type Submission struct {
	Seq   uint64
	Bill  models.StagedFile
	Rules *models.StagedFile
}

// StageBill stages or replaces the primary bill file. It is rejected only
// while a submission is in flight. Staging over a terminal state keeps the
// previous result visible until the next submit replaces it.
func (m *StagingMachine) StageBill(file models.StagedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == models.PhaseSubmitting {
		return ErrSubmissionInFlight
	}

	m.billFile = &file
	if m.phase == models.PhaseIdle {
		m.phase = models.PhaseFileStaged
	}
	return nil
}

// StageRules stages the optional rules document, independent of the primary
// file state.
func (m *StagingMachine) StageRules(file models.StagedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == models.PhaseSubmitting {
		return ErrSubmissionInFlight
	}

	m.rulesFile = &file
	return nil
}

// Reset returns to Idle from any state, clearing both files and any result
// or error. Bumping the sequence number here strands any in-flight
// submission: its completion will no longer match and is dropped.
func (m *StagingMachine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.phase = models.PhaseIdle
	m.billFile = nil
	m.rulesFile = nil
	m.result = nil
	m.errMsg = ""
	m.submitSeq++
}

// BeginSubmit starts a new submission. Without a staged bill it transitions
// straight to Failed with the input-error message and reports ErrNoBillStaged
// so the caller issues no network request. Otherwise any prior result or
// error is discarded wholesale, the phase moves to Submitting, and the
// returned Submission supersedes any still-outstanding one.
func (m *StagingMachine) BeginSubmit() (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.billFile == nil {
		m.phase = models.PhaseFailed
		m.result = nil
		m.errMsg = msgNoBillStaged
		m.submitSeq++
		return Submission{}, ErrNoBillStaged
	}

	m.phase = models.PhaseSubmitting
	m.result = nil
	m.errMsg = ""
	m.submitSeq++

	sub := Submission{
		Seq:  m.submitSeq,
		Bill: *m.billFile,
	}
	if m.rulesFile != nil {
		rules := *m.rulesFile
		sub.Rules = &rules
	}
	return sub, nil
}

// CompleteSuccess records a successful submission. The transition is applied
// only when seq still identifies the most recently initiated submission;
// stale completions (superseded submit, or a Reset in between) report false
// and leave the state untouched.
func (m *StagingMachine) CompleteSuccess(seq uint64, result *models.AnalysisResult) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.submitSeq || m.phase != models.PhaseSubmitting {
		return false
	}

	m.phase = models.PhaseSucceeded
	m.result = result
	m.errMsg = ""
	return true
}

// CompleteFailure records a failed submission under the same staleness rule
// as CompleteSuccess. Staged files are retained so the caller can resubmit
// without re-uploading.
func (m *StagingMachine) CompleteFailure(seq uint64, message string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.submitSeq || m.phase != models.PhaseSubmitting {
		return false
	}

	m.phase = models.PhaseFailed
	m.result = nil
	m.errMsg = message
	return true
}

// Snapshot returns a copy of the current upload state.
func (m *StagingMachine) Snapshot() models.UploadState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := models.UploadState{
		Phase:        m.phase,
		Result:       m.result,
		ErrorMessage: m.errMsg,
	}
	if m.billFile != nil {
		state.BillFileName = m.billFile.Name
	}
	if m.rulesFile != nil {
		state.RulesFileName = m.rulesFile.Name
	}
	return state
}

// Result returns the canonical result of the last successful submission, or
// nil when the session has not succeeded.
func (m *StagingMachine) Result() *models.AnalysisResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}
