package report

import (
	"github.com/adyen/uitests/internal/config"
	"github.com/adyen/uitests/internal/logging"
)

// AttachmentType describes the payload of an attachment.
type AttachmentType struct {
	MIME string
	Ext  string
}

var (
	AttachmentText = AttachmentType{MIME: "text/plain", Ext: "txt"}
	AttachmentPNG  = AttachmentType{MIME: "image/png", Ext: "png"}
)

// Sink receives attachments and final results.
type Sink interface {
	Start(test string)
	Attach(test, name string, kind AttachmentType, data []byte) error
	Finish(test string, status Status, message string) error
}

// NewSink returns the sink for cfg, or nil when no sink is configured.
func NewSink(cfg config.ReportConfig) (Sink, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	sink, err := NewAllureSink(cfg.ResultsDir)
	if err != nil {
		return nil, err
	}
	logging.WithCategory("report").WithField("dir", sink.Dir()).Info("writing allure results")
	return sink, nil
}
