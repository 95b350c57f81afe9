package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"billchill/internal/models"
	"billchill/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSubmissionService(baseURL string) *SubmissionService {
	return NewSubmissionService(&config.AnalyzerConfig{BaseURL: baseURL}, zap.NewNop())
}

func stagedMachine(t *testing.T, withRules bool) *StagingMachine {
	t.Helper()
	m := NewStagingMachine()
	require.NoError(t, m.StageBill(billFile()))
	if withRules {
		require.NoError(t, m.StageRules(rulesFile()))
	}
	return m
}

func TestSubmitSendsExpectedMultipartRequest(t *testing.T) {
	var gotPath string
	var gotFields map[string]string
	var gotFiles map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotFields = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			gotFields[name] = values[0]
		}
		gotFiles = map[string]string{}
		for name, headers := range r.MultipartForm.File {
			f, err := headers[0].Open()
			require.NoError(t, err)
			data, err := io.ReadAll(f)
			require.NoError(t, err)
			f.Close()
			gotFiles[name] = string(data)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ai_result":"ok","dispute_letter":"Dear Billing,","ai_structured":{"overcharges":[]}}`))
	}))
	defer server.Close()

	svc := newTestSubmissionService(server.URL)
	m := stagedMachine(t, true)

	state := svc.Submit(context.Background(), m, SubmissionFields{
		Provider: "United",
		ZipCode:  "98101",
	})

	assert.Equal(t, "/api/dispute/analyze", gotPath)
	assert.Equal(t, "United", gotFields["provider"])
	assert.Equal(t, "John Doe", gotFields["patient_name"])
	assert.Equal(t, "1", gotFields["household_size"])
	assert.Equal(t, "0", gotFields["annual_income"])
	assert.Equal(t, "98101", gotFields["zip_code"])
	assert.Equal(t, "%PDF-bill", gotFiles["bill_pdf"])
	assert.Equal(t, "%PDF-rules", gotFiles["rules_pdf"])

	assert.Equal(t, models.PhaseSucceeded, state.Phase)
	require.NotNil(t, state.Result)
	assert.Equal(t, "ok", state.Result.RawText)
	assert.Equal(t, "Dear Billing,", state.Result.LetterText)
}

func TestSubmitOmitsRulesPartWhenNotStaged(t *testing.T) {
	var hadRules bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		_, hadRules = r.MultipartForm.File["rules_pdf"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ai_result":"ok","dispute_letter":""}`))
	}))
	defer server.Close()

	svc := newTestSubmissionService(server.URL)
	m := stagedMachine(t, false)

	state := svc.Submit(context.Background(), m, SubmissionFields{Provider: "CMS"})

	assert.False(t, hadRules)
	assert.Equal(t, models.PhaseSucceeded, state.Phase)
}

func TestSubmitBackendErrorUsesBodyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"backend overloaded"}`))
	}))
	defer server.Close()

	svc := newTestSubmissionService(server.URL)
	m := stagedMachine(t, false)

	state := svc.Submit(context.Background(), m, SubmissionFields{})

	assert.Equal(t, models.PhaseFailed, state.Phase)
	assert.Equal(t, "backend overloaded", state.ErrorMessage)
	// Files stay staged for resubmission.
	assert.Equal(t, "bill.pdf", state.BillFileName)
}

func TestSubmitBackendErrorWithoutBodyUsesGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newTestSubmissionService(server.URL)
	m := stagedMachine(t, false)

	state := svc.Submit(context.Background(), m, SubmissionFields{})

	assert.Equal(t, models.PhaseFailed, state.Phase)
	assert.Equal(t, "Request failed", state.ErrorMessage)
}

func TestSubmitUnparseableSuccessBodyFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	svc := newTestSubmissionService(server.URL)
	m := stagedMachine(t, false)

	state := svc.Submit(context.Background(), m, SubmissionFields{})

	assert.Equal(t, models.PhaseFailed, state.Phase)
	assert.Equal(t, "Request failed", state.ErrorMessage)
}

func TestSubmitTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	svc := newTestSubmissionService(server.URL)
	m := stagedMachine(t, false)

	state := svc.Submit(context.Background(), m, SubmissionFields{})

	assert.Equal(t, models.PhaseFailed, state.Phase)
	assert.NotEmpty(t, state.ErrorMessage)
}

func TestSubmitWithoutBillIssuesNoRequest(t *testing.T) {
	var requested bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	svc := newTestSubmissionService(server.URL)
	m := NewStagingMachine()

	state := svc.Submit(context.Background(), m, SubmissionFields{})

	assert.False(t, requested)
	assert.Equal(t, models.PhaseFailed, state.Phase)
	assert.Equal(t, "Please upload your bill as a PDF.", state.ErrorMessage)
}

func TestSubmitAsyncResolvesInBackground(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ai_result":"done","dispute_letter":""}`))
	}))
	defer server.Close()

	svc := newTestSubmissionService(server.URL)
	m := stagedMachine(t, false)

	state := svc.SubmitAsync(m, SubmissionFields{})
	assert.Equal(t, models.PhaseSubmitting, state.Phase)

	close(release)
	require.Eventually(t, func() bool {
		return m.Snapshot().Phase == models.PhaseSucceeded
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "done", m.Result().RawText)
}

func TestSubmitAsyncSupersededByReset(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ai_result":"late","dispute_letter":""}`))
	}))
	defer server.Close()

	svc := newTestSubmissionService(server.URL)
	m := stagedMachine(t, false)

	state := svc.SubmitAsync(m, SubmissionFields{})
	require.Equal(t, models.PhaseSubmitting, state.Phase)

	// Reset while the request is in flight; its completion must be dropped.
	m.Reset()
	close(release)

	assert.Never(t, func() bool {
		return m.Snapshot().Phase != models.PhaseIdle
	}, 500*time.Millisecond, 20*time.Millisecond)
	assert.Nil(t, m.Result())
}
