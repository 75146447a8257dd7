package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/uitests/internal/config"
)

func newTestSink(t *testing.T) *AllureSink {
	t.Helper()

	sink, err := NewAllureSink(filepath.Join(t.TempDir(), "allure-results"))
	require.NoError(t, err)

	n := 0
	sink.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	sink.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return sink
}

func readResult(t *testing.T, path string) allureResult {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var r allureResult
	require.NoError(t, json.Unmarshal(data, &r))
	return r
}

func TestAllureSink_FailedTestWithAttachments(t *testing.T) {
	sink := newTestSink(t)

	sink.Start("TestCatalog/add_item")
	require.NoError(t, sink.Attach("TestCatalog/add_item", "Browser logs", AttachmentText, []byte("console error")))
	require.NoError(t, sink.Attach("TestCatalog/add_item", "screenshot_TestCatalog/add_item", AttachmentPNG, []byte("png")))
	require.NoError(t, sink.Finish("TestCatalog/add_item", StatusFailed, "expected title"))

	r := readResult(t, filepath.Join(sink.Dir(), "id-1-result.json"))
	assert.Equal(t, "TestCatalog/add_item", r.FullName)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, "finished", r.Stage)
	require.NotNil(t, r.StatusDetails)
	assert.Equal(t, "expected title", r.StatusDetails.Message)
	assert.Less(t, r.Start, r.Stop)
	assert.Contains(t, r.Labels, allureLabel{Name: "suite", Value: "TestCatalog"})

	require.Len(t, r.Attachments, 2)
	assert.Equal(t, allureAttachment{Name: "Browser logs", Source: "id-2-attachment.txt", Type: "text/plain"}, r.Attachments[0])
	assert.Equal(t, allureAttachment{Name: "screenshot_TestCatalog/add_item", Source: "id-3-attachment.png", Type: "image/png"}, r.Attachments[1])

	data, err := os.ReadFile(filepath.Join(sink.Dir(), "id-2-attachment.txt"))
	require.NoError(t, err)
	assert.Equal(t, "console error", string(data))
}

func TestAllureSink_FinishWithoutStart(t *testing.T) {
	sink := newTestSink(t)

	require.NoError(t, sink.Finish("TestCatalogDisplay", StatusPassed, ""))

	r := readResult(t, filepath.Join(sink.Dir(), "id-1-result.json"))
	assert.Equal(t, StatusPassed, r.Status)
	assert.Nil(t, r.StatusDetails)
	assert.Empty(t, r.Attachments)
}

func TestAllureSink_HistoryIDIsStable(t *testing.T) {
	sink := newTestSink(t)

	require.NoError(t, sink.Finish("TestCatalogDisplay", StatusPassed, ""))
	require.NoError(t, sink.Finish("TestCatalogDisplay", StatusFailed, ""))

	first := readResult(t, filepath.Join(sink.Dir(), "id-1-result.json"))
	second := readResult(t, filepath.Join(sink.Dir(), "id-2-result.json"))
	assert.Equal(t, first.HistoryID, second.HistoryID)
	assert.NotEqual(t, first.UUID, second.UUID)
}

func TestNewAllureSink_RequiresDir(t *testing.T) {
	_, err := NewAllureSink("")
	assert.Error(t, err)
}

func TestNewSink(t *testing.T) {
	sink, err := NewSink(config.ReportConfig{})
	require.NoError(t, err)
	assert.Nil(t, sink)

	dir := filepath.Join(t.TempDir(), "results")
	sink, err = NewSink(config.ReportConfig{ResultsDir: dir})
	require.NoError(t, err)
	require.NotNil(t, sink)
	allure, ok := sink.(*AllureSink)
	require.True(t, ok)
	assert.Equal(t, dir, allure.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"a-result.json",
		"b-container.json",
		"c-attachment.png",
		"d-attachment.txt",
		"environment.properties",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	removed, err := Clean(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	left, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "environment.properties", left[0].Name())

	removed, err = Clean(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Zero(t, removed)
}
