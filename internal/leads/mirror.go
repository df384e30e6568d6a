package leads

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/wecreatehub/site_backend/internal/models"
)

// Storage keys of the local fallback, one per form type.
const (
	KeyPartnership  = "partnershipInquiries"
	KeyNotification = "programNotifications"
	KeyGeneral      = "generalInquiries"
	KeyLeadCapture  = "leadCaptures"
	KeyQuiz         = "quizSubmissions"
)

// StorageKey returns the mirror key for a form type, or "" if the type is unknown.
func StorageKey(formType string) string {
	switch formType {
	case models.FormPartnershipInquiry:
		return KeyPartnership
	case models.FormProgramNotification:
		return KeyNotification
	case models.FormGeneralInquiry:
		return KeyGeneral
	case models.FormLeadCapture:
		return KeyLeadCapture
	case models.FormQuizSubmission:
		return KeyQuiz
	}
	return ""
}

// Mirror keeps a local copy of submissions that could not be delivered.
type Mirror interface {
	Append(key string, form Form) error
	List(key string) ([]Form, error)
}

// FileMirror stores one JSON array per key as <dir>/<key>.json.
type FileMirror struct {
	dir string
	mu  sync.Mutex
}

func NewFileMirror(dir string) *FileMirror {
	return &FileMirror{dir: dir}
}

func (m *FileMirror) path(key string) string {
	return filepath.Join(m.dir, key+".json")
}

func (m *FileMirror) Append(key string, form Form) error {
	if key == "" {
		return errors.New("leads: empty mirror key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.read(key)
	if err != nil {
		return err
	}
	list = append(list, form)
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("leads: create mirror dir: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("leads: write mirror: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("leads: write mirror: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), m.path(key))
}

func (m *FileMirror) List(key string) ([]Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.read(key)
}

// read treats a missing file as an empty list. A file that does not parse is
// moved aside first so the next Append cannot overwrite it.
func (m *FileMirror) read(key string) ([]Form, error) {
	b, err := os.ReadFile(m.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leads: read mirror: %w", err)
	}
	var list []Form
	if json.Unmarshal(b, &list) != nil {
		if err := m.quarantine(key); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return list, nil
}

// quarantine renames <key>.json to the first free <key>.json.corrupt[.N].
func (m *FileMirror) quarantine(key string) error {
	base := m.path(key) + ".corrupt"
	dst := base
	for n := 1; ; n++ {
		if _, err := os.Lstat(dst); errors.Is(err, fs.ErrNotExist) {
			break
		}
		dst = fmt.Sprintf("%s.%d", base, n)
	}
	if err := os.Rename(m.path(key), dst); err != nil {
		return fmt.Errorf("leads: move corrupt mirror aside: %w", err)
	}
	return nil
}
