package models

type UploadPhase string

const (
	PhaseIdle       UploadPhase = "idle"
	PhaseFileStaged UploadPhase = "file_staged"
	PhaseSubmitting UploadPhase = "submitting"
	PhaseSucceeded  UploadPhase = "succeeded"
	PhaseFailed     UploadPhase = "failed"
)

// StagedFile is a bill or rules document held in memory between staging and
// submission. Files are never written to disk by the gateway; they exist only
// for the lifetime of their session.
type StagedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadState is a snapshot of one staging session. Result is non-nil only in
// PhaseSucceeded and ErrorMessage is non-empty only in PhaseFailed; the
// staging machine enforces that no other combination is reachable.
type UploadState struct {
	Phase         UploadPhase     `json:"phase"`
	BillFileName  string          `json:"bill_file_name,omitempty"`
	RulesFileName string          `json:"rules_file_name,omitempty"`
	Result        *AnalysisResult `json:"result,omitempty"`
	ErrorMessage  string          `json:"error,omitempty"`
}
