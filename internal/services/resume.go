package services

import (
	"go.uber.org/zap"

	"alfredoptarigan/interview-assessor/internal/models"
)

const rawTextSnippetLen = 300

type ResumeService interface {
	ParseResume(filename string, data []byte) (*models.ParseResumeResponse, error)
}

type resumeService struct {
	parser DocumentParserService
	log    *zap.Logger
}

func NewResumeService(parser DocumentParserService, log *zap.Logger) ResumeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &resumeService{parser: parser, log: log}
}

// ParseResume implements ResumeService. It returns either a full result or an error,
// never a partial response.
func (s *resumeService) ParseResume(filename string, data []byte) (*models.ParseResumeResponse, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	text, err := s.parser.ExtractText(data, format)
	if err != nil {
		s.log.Warn("resume.extract_failed", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	info := RecognizeContactInfo(text)
	s.log.Info("resume.parsed",
		zap.String("filename", filename),
		zap.String("format", string(format)),
		zap.Int("text_len", len(text)),
		zap.Strings("missing_fields", info.MissingFields),
	)

	return &models.ParseResumeResponse{
		ContactInfo:    info,
		RawTextSnippet: rawTextSnippet(text),
	}, nil
}

func rawTextSnippet(text string) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) > rawTextSnippetLen {
		runes = runes[:rawTextSnippetLen]
	}
	return string(runes) + "..."
}
