package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// allureResult is the subset of the Allure 2 result schema the harness writes.
type allureResult struct {
	UUID          string             `json:"uuid"`
	HistoryID     string             `json:"historyId"`
	Name          string             `json:"name"`
	FullName      string             `json:"fullName"`
	Status        Status             `json:"status"`
	StatusDetails *allureDetails     `json:"statusDetails,omitempty"`
	Stage         string             `json:"stage"`
	Start         int64              `json:"start"`
	Stop          int64              `json:"stop"`
	Attachments   []allureAttachment `json:"attachments"`
	Labels        []allureLabel      `json:"labels"`
}

type allureDetails struct {
	Message string `json:"message,omitempty"`
}

type allureAttachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

type allureLabel struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AllureSink writes results and attachments into an Allure results directory.
type AllureSink struct {
	dir     string
	mu      sync.Mutex
	pending map[string]*allureResult
	now     func() time.Time
	newID   func() string
}

// NewAllureSink creates dir if needed and returns a sink writing into it.
func NewAllureSink(dir string) (*AllureSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("allure results directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create allure results directory: %w", err)
	}

	return &AllureSink{
		dir:     dir,
		pending: make(map[string]*allureResult),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}, nil
}

// Dir returns the results directory.
func (s *AllureSink) Dir() string {
	return s.dir
}

// Start records the start time of a test.
func (s *AllureSink) Start(test string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result(test)
}

// result returns the pending result for test, creating it on first use.
// Callers hold s.mu.
func (s *AllureSink) result(test string) *allureResult {
	if r, ok := s.pending[test]; ok {
		return r
	}

	suite, _, _ := strings.Cut(test, "/")
	r := &allureResult{
		UUID:        s.newID(),
		HistoryID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte(test)).String(),
		Name:        test,
		FullName:    test,
		Stage:       "running",
		Start:       s.now().UnixMilli(),
		Attachments: []allureAttachment{},
		Labels: []allureLabel{
			{Name: "framework", Value: "go-test"},
			{Name: "language", Value: "go"},
			{Name: "suite", Value: suite},
		},
	}
	s.pending[test] = r
	return r
}

// Attach writes data to its own file and links it to the test's result.
func (s *AllureSink) Attach(test, name string, kind AttachmentType, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := fmt.Sprintf("%s-attachment.%s", s.newID(), kind.Ext)
	if err := os.WriteFile(filepath.Join(s.dir, source), data, 0o644); err != nil {
		return fmt.Errorf("failed to write attachment %q: %w", name, err)
	}

	r := s.result(test)
	r.Attachments = append(r.Attachments, allureAttachment{
		Name:   name,
		Source: source,
		Type:   kind.MIME,
	})
	return nil
}

// Finish writes the test's result file.
func (s *AllureSink) Finish(test string, status Status, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.result(test)
	delete(s.pending, test)

	r.Status = status
	r.Stage = "finished"
	r.Stop = s.now().UnixMilli()
	if message != "" {
		r.StatusDetails = &allureDetails{Message: message}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	path := filepath.Join(s.dir, r.UUID+"-result.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// Clean removes result, container and attachment files from dir and reports
// how many were removed. Other files are left alone.
func Clean(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isAllureFile(name) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}

func isAllureFile(name string) bool {
	return strings.HasSuffix(name, "-result.json") ||
		strings.HasSuffix(name, "-container.json") ||
		strings.Contains(name, "-attachment.")
}
