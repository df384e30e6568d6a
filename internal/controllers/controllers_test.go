package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wecreatehub/site_backend/internal/models"
	"github.com/wecreatehub/site_backend/internal/store"
)

type fixture struct {
	db     *gorm.DB
	router *gin.Engine
}

func setup(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "site.db")), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AppConfig{}, &models.Lead{}))

	docs := store.NewDB(db, "site")
	exec := NewExecController(docs, db, nil, nil)
	exec.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	leads := &LeadAdminController{DB: db}
	cfg := &ConfigAdminController{Store: docs}

	r := gin.New()
	r.GET("/exec", exec.Get)
	r.POST("/exec", exec.Post)
	r.GET("/admin/leads", leads.List)
	r.GET("/admin/leads/:id", leads.Get)
	r.DELETE("/admin/leads", leads.Clear)
	r.GET("/admin/config", cfg.Get)
	return fixture{db: db, router: r}
}

func (f fixture) do(t *testing.T, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f fixture) post(t *testing.T, body string) map[string]any {
	t.Helper()
	w := f.do(t, http.MethodPost, "/exec", "text/plain;charset=utf-8", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestExecGet_WithoutAction(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodGet, "/exec", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"error","message":"No action specified"}`, w.Body.String())
}

func TestExecGet_EmptyStoreAnswersEmptyObject(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodGet, "/exec?action=getConfig", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "{}", w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
}

func TestExecSaveConfig_ThenRead(t *testing.T) {
	f := setup(t)
	out := f.post(t, `{"action":"saveConfig","config":{"profile":{"name":"Saved"},"buttons":[]}}`)
	assert.Equal(t, "success", out["result"])

	w := f.do(t, http.MethodGet, "/exec?action=getConfig", "", "")
	assert.JSONEq(t, `{"profile":{"name":"Saved"},"buttons":[]}`, w.Body.String())

	// Last write wins, wholesale.
	f.post(t, `{"action":"saveConfig","config":{"profile":{"name":"Second"}}}`)
	w = f.do(t, http.MethodGet, "/exec?action=getConfig", "", "")
	assert.JSONEq(t, `{"profile":{"name":"Second"}}`, w.Body.String())
}

func TestExecSaveConfig_MissingConfig(t *testing.T) {
	f := setup(t)
	out := f.post(t, `{"action":"saveConfig"}`)
	assert.Equal(t, "error", out["result"])
	assert.Equal(t, msgMissingConfig, out["error"])
}

func TestExecPost_LeadRoutedToSheet(t *testing.T) {
	f := setup(t)
	cases := map[string]string{
		models.FormPartnershipInquiry:  models.SheetInquiries,
		models.FormProgramNotification: models.SheetNotifications,
		models.FormLeadCapture:         models.SheetLeads,
		models.FormQuizSubmission:      models.SheetLeads,
		models.FormGeneralInquiry:      models.SheetLeads,
	}
	for formType, sheet := range cases {
		out := f.post(t, `{"formType":"`+formType+`","fullName":"Ada","email":"ada@example.com","phone":5551234}`)
		require.Equal(t, "success", out["result"], formType)

		var lead models.Lead
		require.NoError(t, f.db.Where("form_type = ?", formType).First(&lead).Error)
		assert.Equal(t, sheet, lead.Sheet)
		assert.Equal(t, "Ada", lead.FullName)
		assert.Equal(t, "5551234", lead.Phone)
		assert.NotEmpty(t, lead.ID)
	}
}

func TestExecPost_InvalidFormType(t *testing.T) {
	f := setup(t)
	assert.Equal(t, map[string]any{"result": "error", "error": "Invalid form type"}, f.post(t, `{"formType":"survey"}`))
	assert.Equal(t, "Invalid form type", f.post(t, `{}`)["error"])

	var n int64
	f.db.Model(&models.Lead{}).Count(&n)
	assert.Zero(t, n)
}

func TestExecPost_UnparseableBody(t *testing.T) {
	f := setup(t)
	out := f.post(t, `{not json`)
	assert.Equal(t, "error", out["result"])
	assert.NotEmpty(t, out["error"])
}

func TestExecPost_FormEncoded(t *testing.T) {
	f := setup(t)
	form := url.Values{
		"formType":          {models.FormProgramNotification},
		"fullName":          {"Grace"},
		"email":             {"grace@example.com"},
		"programInterested": {"General Newsletter / Community"},
		"utm_source":        {"ig"},
	}
	w := f.do(t, http.MethodPost, "/exec", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"success"}`, w.Body.String())

	var lead models.Lead
	require.NoError(t, f.db.First(&lead).Error)
	assert.Equal(t, models.SheetNotifications, lead.Sheet)
	assert.Equal(t, "General Newsletter / Community", lead.ProgramInterested)
}

func TestLeadAdmin_ListGetClear(t *testing.T) {
	f := setup(t)
	f.post(t, `{"formType":"partnershipInquiry","fullName":"A"}`)
	f.post(t, `{"formType":"partnershipInquiry","fullName":"B"}`)
	f.post(t, `{"formType":"generalInquiry","fullName":"C"}`)

	w := f.do(t, http.MethodGet, "/admin/leads?sheet=inquiries&limit=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Data []models.Lead `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
			Limit int   `json:"limit"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 2, page.Meta.Total)
	require.Len(t, page.Data, 1)

	w = f.do(t, http.MethodGet, "/admin/leads/"+page.Data[0].ID, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/admin/leads/not-a-uuid", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/admin/leads?sheet=bogus", "", "").Code)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodDelete, "/admin/leads", "", "").Code)
	w = f.do(t, http.MethodDelete, "/admin/leads?sheet=inquiries", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"deleted","count":2}`, w.Body.String())

	var left int64
	f.db.Model(&models.Lead{}).Count(&left)
	assert.EqualValues(t, 1, left)
}

func TestConfigAdmin_ReportsMerge(t *testing.T) {
	f := setup(t)

	var out map[string]any
	w := f.do(t, http.MethodGet, "/admin/config", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "incompatible", out["status"])

	f.post(t, `{"action":"saveConfig","config":{"profile":{"name":"Live"},"buttons":"bad"}}`)
	w = f.do(t, http.MethodGet, "/admin/config", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "merged", out["status"])
	assert.Equal(t, []any{"buttons"}, out["report"].(map[string]any)["rejected"])
	doc := out["document"].(map[string]any)
	assert.Equal(t, "Live", doc["profile"].(map[string]any)["name"])
	assert.Len(t, doc["buttons"], 4)
}

func TestFlexibleString(t *testing.T) {
	var v struct {
		A, B, C, D FlexibleString
	}
	require.NoError(t, json.Unmarshal([]byte(`{"A":" x ","B":5551234,"C":true,"D":null}`), &v))
	assert.Equal(t, "x", v.A.String())
	assert.Equal(t, "5551234", v.B.String())
	assert.Equal(t, "true", v.C.String())
	assert.Empty(t, v.D)

	assert.Error(t, json.Unmarshal([]byte(`{"A":{"nested":1}}`), &v))
}
