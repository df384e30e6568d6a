package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wecreatehub/site_backend/internal/config"
	"github.com/wecreatehub/site_backend/internal/editor"
	"github.com/wecreatehub/site_backend/internal/leads"
	"github.com/wecreatehub/site_backend/internal/models"
	"github.com/wecreatehub/site_backend/internal/store"
)

// fakeSite answers the script contract from memory.
type fakeSite struct {
	mem     *store.Memory
	failGet atomic.Bool

	mu    sync.Mutex
	leads []map[string]any
}

func (s *fakeSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if s.failGet.Load() {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		raw, _ := s.mem.Read(r.Context())
		w.Write(raw)
		return
	}
	body, _ := io.ReadAll(r.Body)
	var req map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil {
		io.WriteString(w, `{"result":"error","error":"bad body"}`)
		return
	}
	if string(req["action"]) == `"saveConfig"` {
		s.mem.WriteRaw(r.Context(), req["config"])
		io.WriteString(w, `{"result":"success"}`)
		return
	}
	var lead map[string]any
	json.Unmarshal(body, &lead)
	s.mu.Lock()
	s.leads = append(s.leads, lead)
	s.mu.Unlock()
	io.WriteString(w, `{"result":"success"}`)
}

type harness struct {
	site *fakeSite
	srv  *httptest.Server
	cfg  *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	raw, err := json.Marshal(models.Default())
	require.NoError(t, err)
	site := &fakeSite{mem: store.NewMemory(raw)}
	srv := httptest.NewServer(site)
	t.Cleanup(srv.Close)
	return &harness{
		site: site,
		srv:  srv,
		cfg:  &config.Config{LeadMirrorDir: t.TempDir(), HTTPTimeoutSec: "5"},
	}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &app{cfg: h.cfg, in: strings.NewReader(stdin), log: zap.NewNop(), http: h.srv.Client()}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--endpoint", h.srv.URL}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) stored(t *testing.T) models.Document {
	t.Helper()
	raw, err := h.site.mem.Read(context.Background())
	require.NoError(t, err)
	doc, _, err := models.Merge(models.Default(), raw)
	require.NoError(t, err)
	return doc
}

func TestButtonsAdd(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "", "buttons", "add", "--set", "title=Workshop", "--set", "isActive=false")
	require.NoError(t, err)
	assert.Contains(t, out, editor.MsgSaved)

	doc := h.stored(t)
	require.Len(t, doc.Buttons, 5)
	added := doc.Buttons[4]
	assert.Equal(t, "Workshop", added.Title)
	assert.False(t, added.IsActive)
	assert.Contains(t, out, added.ID)
}

func TestButtonsAdd_BadAssignmentSavesNothing(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "", "buttons", "add", "--set", "nope")
	assert.Error(t, err)
	assert.Zero(t, h.site.mem.Writes())
}

func TestButtonsAdd_UnreadableStoreIsNotOverwritten(t *testing.T) {
	h := newHarness(t)
	doc := models.Default()
	doc.Buttons[0].Title = "Keep Me"
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	h.site.mem.WriteRaw(context.Background(), raw)
	writes := h.site.mem.Writes()

	h.site.failGet.Store(true)
	_, err = h.run(t, "", "buttons", "add", "--set", "title=Workshop")
	require.ErrorIs(t, err, errUnreadable)

	h.site.failGet.Store(false)
	assert.Equal(t, writes, h.site.mem.Writes())
	stored := h.stored(t)
	assert.Equal(t, "Keep Me", stored.Buttons[0].Title)
	assert.Len(t, stored.Buttons, 4)
}

func TestButtonsAdd_EmptyStoreAcceptsFirstSave(t *testing.T) {
	h := newHarness(t)
	h.site.mem.WriteRaw(context.Background(), []byte("{}"))

	_, err := h.run(t, "", "buttons", "add", "--set", "title=Workshop")
	require.NoError(t, err)

	stored := h.stored(t)
	require.Len(t, stored.Buttons, 5)
	assert.Equal(t, "Workshop", stored.Buttons[4].Title)
}

func TestEventsMove(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "", "events", "move", "0", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"evt2", "evt3", "evt1"}, h.stored(t).IDs(models.Events))

	_, err = h.run(t, "", "events", "move", "7", "0")
	assert.Error(t, err)
}

func TestSectionsRm_Confirmation(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "n\n", "sections", "rm", "sec1")
	assert.Error(t, err)
	assert.Zero(t, h.site.mem.Writes())

	_, err = h.run(t, "y\n", "sections", "rm", "sec2")
	require.NoError(t, err)
	assert.Equal(t, []string{"sec1", "sec3"}, h.stored(t).IDs(models.Sections))

	_, err = h.run(t, "", "sections", "rm", "--yes", "sec3")
	require.NoError(t, err)
	assert.Equal(t, []string{"sec1"}, h.stored(t).IDs(models.Sections))
}

func TestSetAndProfile(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "", "links", "set", "1", "url", "https://instagram.com/wecreate")
	require.NoError(t, err)
	_, err = h.run(t, "", "profile", "set", "verified", "false")
	require.NoError(t, err)

	doc := h.stored(t)
	assert.Equal(t, "https://instagram.com/wecreate", doc.SocialLinks[0].URL)
	assert.False(t, doc.Profile.Verified)

	_, err = h.run(t, "", "profile", "set", "followers", "10")
	assert.Error(t, err)
}

func TestShowYAML(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "", "show", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: WeCreate")
	assert.Less(t, strings.Index(out, "profile:"), strings.Index(out, "buttons:"))

	out, err = h.run(t, "", "buttons", "list")
	require.NoError(t, err)
	assert.Equal(t, "0\tbtn1\n1\tbtn2\n2\tbtn3\n3\tbtn4\n", out)
}

func TestSave_WithoutEndpointFails(t *testing.T) {
	h := newHarness(t)
	a := &app{cfg: h.cfg, in: strings.NewReader(""), log: zap.NewNop()}
	root := newRootCmd(a)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--endpoint", "", "buttons", "add"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), editor.MsgSaveFailed)
}

func TestLeadSubmit(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "", "lead", "submit", "--type", models.FormPartnershipInquiry, "--name", "Ada", "--email", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Thank you!")
	require.Len(t, h.site.leads, 1)
	assert.Equal(t, "Ada", h.site.leads[0]["fullName"])

	out, err = h.run(t, "", "lead", "pending", models.FormPartnershipInquiry)
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")

	_, err = h.run(t, "", "lead", "submit", "--type", "survey")
	assert.Error(t, err)
}

func TestLeadQuiz(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "", "lead", "quiz", "--name", "Ada", "--email", "a@b.c", "--answers", "3,1")
	require.NoError(t, err)
	assert.Contains(t, out, "Operational Lag")
	require.Len(t, h.site.leads, 1)
	assert.Equal(t, models.FormQuizSubmission, h.site.leads[0]["formType"])
	assert.Contains(t, h.site.leads[0]["message"], "Q2: "+leads.Questions[1].Question)
}
