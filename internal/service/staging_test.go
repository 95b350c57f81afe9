package service

import (
	"testing"

	"billchill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billFile() models.StagedFile {
	return models.StagedFile{Name: "bill.pdf", ContentType: "application/pdf", Data: []byte("%PDF-bill")}
}

func rulesFile() models.StagedFile {
	return models.StagedFile{Name: "rules.pdf", ContentType: "application/pdf", Data: []byte("%PDF-rules")}
}

func TestStagingMachineInitialState(t *testing.T) {
	m := NewStagingMachine()
	state := m.Snapshot()

	assert.Equal(t, models.PhaseIdle, state.Phase)
	assert.Empty(t, state.BillFileName)
	assert.Empty(t, state.RulesFileName)
	assert.Nil(t, state.Result)
}

func TestStageBillMovesIdleToFileStaged(t *testing.T) {
	m := NewStagingMachine()

	require.NoError(t, m.StageBill(billFile()))

	state := m.Snapshot()
	assert.Equal(t, models.PhaseFileStaged, state.Phase)
	assert.Equal(t, "bill.pdf", state.BillFileName)
}

func TestStageRulesAloneKeepsIdle(t *testing.T) {
	m := NewStagingMachine()

	require.NoError(t, m.StageRules(rulesFile()))

	state := m.Snapshot()
	assert.Equal(t, models.PhaseIdle, state.Phase)
	assert.Equal(t, "rules.pdf", state.RulesFileName)
}

func TestStagingRejectedWhileSubmitting(t *testing.T) {
	m := NewStagingMachine()
	require.NoError(t, m.StageBill(billFile()))
	_, err := m.BeginSubmit()
	require.NoError(t, err)

	assert.ErrorIs(t, m.StageBill(billFile()), ErrSubmissionInFlight)
	assert.ErrorIs(t, m.StageRules(rulesFile()), ErrSubmissionInFlight)
}

func TestBeginSubmitWithoutBillFails(t *testing.T) {
	m := NewStagingMachine()

	_, err := m.BeginSubmit()
	assert.ErrorIs(t, err, ErrNoBillStaged)

	state := m.Snapshot()
	assert.Equal(t, models.PhaseFailed, state.Phase)
	assert.Equal(t, "Please upload your bill as a PDF.", state.ErrorMessage)
}

func TestBeginSubmitSnapshotsFiles(t *testing.T) {
	m := NewStagingMachine()
	require.NoError(t, m.StageBill(billFile()))
	require.NoError(t, m.StageRules(rulesFile()))

	sub, err := m.BeginSubmit()
	require.NoError(t, err)

	assert.Equal(t, "bill.pdf", sub.Bill.Name)
	require.NotNil(t, sub.Rules)
	assert.Equal(t, "rules.pdf", sub.Rules.Name)
	assert.Equal(t, models.PhaseSubmitting, m.Snapshot().Phase)
}

func TestCompleteSuccess(t *testing.T) {
	m := NewStagingMachine()
	require.NoError(t, m.StageBill(billFile()))
	sub, err := m.BeginSubmit()
	require.NoError(t, err)

	result := &models.AnalysisResult{RawText: "analysis"}
	assert.True(t, m.CompleteSuccess(sub.Seq, result))

	state := m.Snapshot()
	assert.Equal(t, models.PhaseSucceeded, state.Phase)
	assert.Same(t, result, m.Result())
	assert.Empty(t, state.ErrorMessage)
}

func TestCompleteFailureRetainsStagedFiles(t *testing.T) {
	m := NewStagingMachine()
	require.NoError(t, m.StageBill(billFile()))
	sub, err := m.BeginSubmit()
	require.NoError(t, err)

	assert.True(t, m.CompleteFailure(sub.Seq, "backend overloaded"))

	state := m.Snapshot()
	assert.Equal(t, models.PhaseFailed, state.Phase)
	assert.Equal(t, "backend overloaded", state.ErrorMessage)
	assert.Equal(t, "bill.pdf", state.BillFileName)

	// Resubmission works without re-uploading.
	_, err = m.BeginSubmit()
	assert.NoError(t, err)
}

func TestStaleCompletionDiscarded(t *testing.T) {
	m := NewStagingMachine()
	require.NoError(t, m.StageBill(billFile()))

	first, err := m.BeginSubmit()
	require.NoError(t, err)
	second, err := m.BeginSubmit()
	require.NoError(t, err)

	// The superseded submission's completion is a no-op.
	assert.False(t, m.CompleteSuccess(first.Seq, &models.AnalysisResult{RawText: "old"}))
	assert.Equal(t, models.PhaseSubmitting, m.Snapshot().Phase)

	// The latest one lands.
	assert.True(t, m.CompleteSuccess(second.Seq, &models.AnalysisResult{RawText: "new"}))
	assert.Equal(t, "new", m.Result().RawText)
}

func TestResetFromEveryState(t *testing.T) {
	setups := map[string]func(m *StagingMachine){
		"idle":       func(m *StagingMachine) {},
		"fileStaged": func(m *StagingMachine) { _ = m.StageBill(billFile()) },
		"submitting": func(m *StagingMachine) {
			_ = m.StageBill(billFile())
			_, _ = m.BeginSubmit()
		},
		"succeeded": func(m *StagingMachine) {
			_ = m.StageBill(billFile())
			sub, _ := m.BeginSubmit()
			m.CompleteSuccess(sub.Seq, &models.AnalysisResult{RawText: "done"})
		},
		"failed": func(m *StagingMachine) {
			_ = m.StageBill(billFile())
			sub, _ := m.BeginSubmit()
			m.CompleteFailure(sub.Seq, "boom")
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			m := NewStagingMachine()
			setup(m)
			m.Reset()

			state := m.Snapshot()
			assert.Equal(t, models.PhaseIdle, state.Phase)
			assert.Empty(t, state.BillFileName)
			assert.Empty(t, state.RulesFileName)
			assert.Nil(t, state.Result)
			assert.Empty(t, state.ErrorMessage)
		})
	}
}

func TestResetStrandsInFlightSubmission(t *testing.T) {
	m := NewStagingMachine()
	require.NoError(t, m.StageBill(billFile()))
	sub, err := m.BeginSubmit()
	require.NoError(t, err)

	m.Reset()

	assert.False(t, m.CompleteSuccess(sub.Seq, &models.AnalysisResult{RawText: "stale"}))
	assert.Equal(t, models.PhaseIdle, m.Snapshot().Phase)
	assert.Nil(t, m.Result())
}

func TestStagingOverTerminalStateKeepsResult(t *testing.T) {
	m := NewStagingMachine()
	require.NoError(t, m.StageBill(billFile()))
	sub, err := m.BeginSubmit()
	require.NoError(t, err)
	m.CompleteSuccess(sub.Seq, &models.AnalysisResult{RawText: "done"})

	// Staging a replacement file keeps the prior result visible.
	require.NoError(t, m.StageBill(models.StagedFile{Name: "bill2.pdf"}))

	state := m.Snapshot()
	assert.Equal(t, models.PhaseSucceeded, state.Phase)
	assert.Equal(t, "bill2.pdf", state.BillFileName)
	require.NotNil(t, state.Result)
	assert.Equal(t, "done", state.Result.RawText)
}
