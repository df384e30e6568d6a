package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wecreatehub/site_backend/internal/models"
	"github.com/wecreatehub/site_backend/internal/store"
	"github.com/wecreatehub/site_backend/internal/utils"
	"github.com/wecreatehub/site_backend/internal/ws"
)

const (
	actionGetConfig  = "getConfig"
	actionSaveConfig = "saveConfig"
)

const (
	msgInvalidFormType = "Invalid form type"
	msgMissingConfig   = "Missing config"
)

// ExecController serves the single script-style endpoint the site and the
// console talk to. Results are reported in the body as
// {"result":"success"|"error"}, with HTTP 200 unless storage fails.
type ExecController struct {
	Store store.BlobStore
	DB    *gorm.DB
	Feed  *ws.FeedHub
	Log   *zap.Logger

	forms *schema.Decoder
	now   func() time.Time
}

func NewExecController(s store.BlobStore, db *gorm.DB, feed *ws.FeedHub, log *zap.Logger) *ExecController {
	if log == nil {
		log = zap.NewNop()
	}
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return &ExecController{Store: s, DB: db, Feed: feed, Log: log, forms: dec, now: time.Now}
}

// execRequest is the union of the save action and a lead form.
type execRequest struct {
	Action            string          `json:"action"`
	Config            json.RawMessage `json:"config"`
	FormType          string          `json:"formType"`
	FullName          FlexibleString  `json:"fullName"`
	Organization      FlexibleString  `json:"organization"`
	Email             FlexibleString  `json:"email"`
	Phone             FlexibleString  `json:"phone"`
	PartnershipType   FlexibleString  `json:"partnershipType"`
	Budget            FlexibleString  `json:"budget"`
	Message           FlexibleString  `json:"message"`
	ProgramInterested FlexibleString  `json:"programInterested"`
	Subject           FlexibleString  `json:"subject"`
	SubmittedAt       FlexibleString  `json:"submittedAt"`
}

func (r execRequest) form() models.LeadForm {
	return models.LeadForm{
		FormType:          r.FormType,
		FullName:          r.FullName.String(),
		Organization:      r.Organization.String(),
		Email:             r.Email.String(),
		Phone:             r.Phone.String(),
		PartnershipType:   r.PartnershipType.String(),
		Budget:            r.Budget.String(),
		Message:           r.Message.String(),
		ProgramInterested: r.ProgramInterested.String(),
		Subject:           r.Subject.String(),
		SubmittedAt:       r.SubmittedAt.String(),
	}
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

func failure(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"result": "error", "error": msg})
}

func (e *ExecController) Get(c *gin.Context) {
	if c.Query("action") != actionGetConfig {
		c.JSON(http.StatusOK, gin.H{"result": "error", "message": "No action specified"})
		return
	}
	raw, err := e.Store.Read(c.Request.Context())
	if err != nil {
		e.Log.Error("read config", zap.Error(err))
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = store.EmptyDocument
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", raw)
}

// Post accepts any content type. Url-encoded bodies are lead forms; every
// other body is parsed as JSON.
func (e *ExecController) Post(c *gin.Context) {
	if isFormEncoded(c.GetHeader("Content-Type")) {
		e.postForm(c)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		failure(c, http.StatusOK, err.Error())
		return
	}
	var req execRequest
	if err := json.Unmarshal(body, &req); err != nil {
		failure(c, http.StatusOK, err.Error())
		return
	}

	if req.Action == actionSaveConfig {
		e.saveConfig(c, req.Config)
		return
	}
	e.appendLead(c, req.form(), body)
}

func (e *ExecController) postForm(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		failure(c, http.StatusOK, err.Error())
		return
	}
	var form models.LeadForm
	if err := e.forms.Decode(&form, c.Request.PostForm); err != nil {
		failure(c, http.StatusOK, err.Error())
		return
	}
	fields, err := json.Marshal(form)
	if err != nil {
		failure(c, http.StatusOK, err.Error())
		return
	}
	e.appendLead(c, form, fields)
}

func (e *ExecController) saveConfig(c *gin.Context, cfg json.RawMessage) {
	cfg = bytes.TrimSpace(cfg)
	if len(cfg) == 0 || bytes.Equal(cfg, []byte("null")) {
		failure(c, http.StatusOK, msgMissingConfig)
		return
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, cfg); err != nil {
		failure(c, http.StatusOK, err.Error())
		return
	}
	raw := compact.Bytes()
	if err := e.Store.WriteRaw(c.Request.Context(), raw); err != nil {
		e.Log.Error("save config", zap.Error(err))
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}

	digest := utils.SHA256Hex(raw)
	e.Log.Info("config saved", zap.String("digest", digest), zap.Int("size", len(raw)))
	e.Feed.Publish(ws.Event{Type: ws.EventConfigSaved, Digest: digest, Size: len(raw), SavedAt: e.now().UTC()})
	success(c)
}

func (e *ExecController) appendLead(c *gin.Context, form models.LeadForm, fields []byte) {
	sheet, ok := models.SheetFor(form.FormType)
	if !ok {
		failure(c, http.StatusOK, msgInvalidFormType)
		return
	}
	lead := form.ToLead(sheet, fields)
	if err := e.DB.WithContext(c.Request.Context()).Create(&lead).Error; err != nil {
		e.Log.Error("append lead", zap.String("sheet", sheet), zap.Error(err))
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}

	e.Log.Info("lead appended", zap.String("sheet", sheet), zap.String("form_type", form.FormType))
	e.Feed.Publish(ws.Event{Type: ws.EventLeadReceived, Sheet: sheet, FormType: form.FormType, SavedAt: lead.CreatedAt.UTC()})
	success(c)
}

func isFormEncoded(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/x-www-form-urlencoded"
}
