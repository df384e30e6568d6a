package leads

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecreatehub/site_backend/internal/endpoint"
	"github.com/wecreatehub/site_backend/internal/models"
)

type fakePoster struct {
	configured bool
	err        error
	sent       []any
}

func (p *fakePoster) Configured() bool { return p.configured }

func (p *fakePoster) Post(_ context.Context, payload any) (endpoint.Result, error) {
	p.sent = append(p.sent, payload)
	if p.err != nil {
		return endpoint.Result{}, p.err
	}
	return endpoint.Result{Result: "success"}, nil
}

func newSubmitter(t *testing.T, p Poster) (*Submitter, *FileMirror) {
	t.Helper()
	m := NewFileMirror(t.TempDir())
	s := NewSubmitter(p, m, nil)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return s, m
}

func partnership() Form {
	return Form{FormType: models.FormPartnershipInquiry, FullName: "Ada", Email: "ada@example.com", Message: "Hi"}
}

func TestSubmit_NotConfiguredMirrorsLocally(t *testing.T) {
	s, m := newSubmitter(t, &fakePoster{})

	out := s.Submit(context.Background(), partnership())
	assert.False(t, out.Delivered)
	assert.True(t, out.Mirrored)
	assert.Equal(t, "Inquiry saved locally. Please configure Google Sheets to enable full functionality.", out.Message)

	kept, err := m.List(KeyPartnership)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Ada", kept[0].FullName)
	assert.Equal(t, "2024-05-01T09:00:00Z", kept[0].SubmittedAt)
}

func TestSubmit_DeliveryFailureMirrors(t *testing.T) {
	p := &fakePoster{configured: true, err: errors.New("boom")}
	s, m := newSubmitter(t, p)

	out := s.Submit(context.Background(), Form{FormType: models.FormGeneralInquiry, Email: "a@b.c"})
	assert.False(t, out.Delivered)
	assert.True(t, out.Mirrored)
	assert.Equal(t, "Couldn't send message. Please email info@wecreatehub.com directly.", out.Message)

	kept, _ := m.List(KeyGeneral)
	assert.Len(t, kept, 1)
}

func TestSubmit_Delivered(t *testing.T) {
	p := &fakePoster{configured: true}
	s, m := newSubmitter(t, p)

	out := s.Submit(context.Background(), Form{FormType: models.FormGeneralInquiry})
	assert.True(t, out.Delivered)
	assert.False(t, out.Mirrored)
	assert.Equal(t, "Message sent! Our team will get back to you shortly.", out.Message)
	require.Len(t, p.sent, 1)
	kept, _ := m.List(KeyGeneral)
	assert.Empty(t, kept)

	out = s.Submit(context.Background(), Form{FormType: models.FormProgramNotification, ProgramInterested: "General Newsletter / Community"})
	assert.True(t, out.Delivered)
	assert.True(t, out.Mirrored)
	kept, _ = m.List(KeyNotification)
	assert.Len(t, kept, 1)
}

func TestSubmit_UnknownFormType(t *testing.T) {
	p := &fakePoster{configured: true}
	s, _ := newSubmitter(t, p)

	out := s.Submit(context.Background(), Form{FormType: "survey"})
	assert.False(t, out.Delivered)
	assert.False(t, out.Mirrored)
	assert.NotEmpty(t, out.Message)
	assert.Empty(t, p.sent)
}

func TestSubmit_OverHTTP(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"result":"error","error":"Invalid form type"}`))
	}))
	defer srv.Close()

	s, m := newSubmitter(t, endpoint.New(srv.URL, srv.Client()))
	out := s.Submit(context.Background(), partnership())
	assert.False(t, out.Delivered)
	assert.Equal(t, int32(1), hits.Load())
	kept, _ := m.List(KeyPartnership)
	assert.Len(t, kept, 1)
}

func TestSubmit_NilMirror(t *testing.T) {
	out := NewSubmitter(nil, nil, nil).Submit(context.Background(), partnership())
	assert.False(t, out.Delivered)
	assert.False(t, out.Mirrored)
	assert.NotEmpty(t, out.Message)
}

func TestFileMirror_CorruptFileStartsOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, KeyQuiz+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(path+".corrupt", []byte("older"), 0o644))

	m := NewFileMirror(dir)
	kept, err := m.List(KeyQuiz)
	require.NoError(t, err)
	assert.Empty(t, kept)

	moved, err := os.ReadFile(path + ".corrupt.1")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(moved))
	older, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "older", string(older))

	require.NoError(t, m.Append(KeyQuiz, Form{FormType: models.FormQuizSubmission}))
	require.NoError(t, m.Append(KeyQuiz, Form{FormType: models.FormQuizSubmission}))
	kept, _ = m.List(KeyQuiz)
	assert.Len(t, kept, 2)

	moved, err = os.ReadFile(path + ".corrupt.1")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(moved))

	assert.Error(t, m.Append("", Form{}))
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, KeyPartnership, StorageKey(models.FormPartnershipInquiry))
	assert.Equal(t, KeyNotification, StorageKey(models.FormProgramNotification))
	assert.Equal(t, KeyGeneral, StorageKey(models.FormGeneralInquiry))
	assert.Equal(t, KeyLeadCapture, StorageKey(models.FormLeadCapture))
	assert.Equal(t, KeyQuiz, StorageKey(models.FormQuizSubmission))
	assert.Empty(t, StorageKey("other"))
}

func TestDiagnose(t *testing.T) {
	assert.Equal(t, "Operational Drift", Diagnose(nil).Title)
	assert.Equal(t, "Lead Decay", Diagnose([]int{0, 3}).Title)
	assert.Equal(t, "Operational Lag", Diagnose([]int{3}).Title)
	assert.Equal(t, "Founder Dependency", Diagnose([]int{7}).Title)
	assert.Equal(t, "Founder Dependency", Diagnose([]int{-1}).Title)
}

func TestQuizForm(t *testing.T) {
	qs := []QuizQuestion{
		{Question: "Where does work slow down most?", Options: []string{"Leads", "Questions"}},
		{Question: "What happens then?", Options: []string{"We lose leads", "I jump in"}},
	}
	f := QuizForm("Ada", "ada@example.com", qs, []int{1, 0})

	assert.Equal(t, models.FormQuizSubmission, f.FormType)
	assert.Equal(t, "Quiz Lead", f.PartnershipType)
	assert.Equal(t, "DIAGNOSIS: Customer Response Bloat (Support Friction)\n\n--- FULL TRANSCRIPT ---\n"+
		"Q1: Where does work slow down most?\nAnswer: Questions\n\n"+
		"Q2: What happens then?\nAnswer: We lose leads", f.Message)
}
