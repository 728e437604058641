package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-assessor/internal/models"
	"alfredoptarigan/interview-assessor/internal/services"
)

type stubGenerator struct {
	result services.GenerationResult
	calls  int
}

func (s *stubGenerator) Generate(context.Context, string, int) services.GenerationResult {
	s.calls++
	return s.result
}

func unavailable() *stubGenerator {
	return &stubGenerator{result: services.GenerationResult{Status: services.GenerationUnavailable}}
}

func newTestApp(gen services.Generator, maxFileSize int64) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	uploadHandler := NewUploadHandler(
		services.NewResumeService(services.NewDocumentParserService(), nil),
		services.NewUploadReader(maxFileSize),
	)
	interviewHandler := NewInterviewHandler(services.NewInterviewService(gen, nil))
	Register(app, uploadHandler, interviewHandler)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return resp.StatusCode, out
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/parse-resume/", &body)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	return req
}

func docx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var doc strings.Builder
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}
	doc.WriteString("</w:body></w:document>")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = io.WriteString(w, doc.String())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	status, body := doJSON(t, newTestApp(unavailable(), 0), http.MethodGet, "/health/", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"status": "ok"}, body)
}

func TestParseResume(t *testing.T) {
	app := newTestApp(unavailable(), 1<<20)

	status, body := do(t, app, uploadRequest(t, "file", "resume.docx",
		docx(t, "John Doe", "john.doe@example.com", "555-123-4567")))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "John Doe", body["name"])
	assert.Equal(t, "john.doe@example.com", body["email"])
	assert.Equal(t, "5551234567", body["phone"])
	assert.Equal(t, []any{}, body["missing_fields"])
	assert.Equal(t, "John Doe\njohn.doe@example.com\n555-123-4567\n...", body["raw_text_snippet"])
}

func TestParseResumeRejected(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		maxSize    int64
		wantDetail string
	}{
		{
			name: "unsupported type",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "resume.txt", []byte("John Doe"))
			},
			wantDetail: "Unsupported file type. Upload PDF or DOCX.",
		},
		{
			name: "corrupt pdf",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "resume.pdf", []byte("definitely not a pdf"))
			},
			wantDetail: "Error parsing PDF: ",
		},
		{
			name: "corrupt docx",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "resume.docx", []byte("PK not really"))
			},
			wantDetail: "Error parsing DOCX: ",
		},
		{
			name: "missing file field",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "attachment", "resume.pdf", []byte("x"))
			},
			wantDetail: "No file uploaded",
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "resume.docx", bytes.Repeat([]byte("x"), 256))
			},
			maxSize:    64,
			wantDetail: "Failed to read upload: file too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maxSize := tt.maxSize
			if maxSize == 0 {
				maxSize = 1 << 20
			}

			status, body := do(t, newTestApp(unavailable(), maxSize), tt.req(t))

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body["detail"], tt.wantDetail)
		})
	}
}

func TestGenerateQuestionsFallsBackWithoutGenerator(t *testing.T) {
	for _, body := range []string{"", `{}`, `{"role": "Backend"}`} {
		t.Run(body, func(t *testing.T) {
			gen := unavailable()
			status, resp := doJSON(t, newTestApp(gen, 0), http.MethodPost, "/generate-questions", body)

			assert.Equal(t, http.StatusOK, status)
			questions, ok := resp["questions"].([]any)
			require.True(t, ok)
			require.Len(t, questions, 6)

			first := questions[0].(map[string]any)
			assert.Equal(t, "q1", first["id"])
			assert.Equal(t, "easy", first["difficulty"])
			assert.EqualValues(t, 20, first["time_limit"])
			assert.Equal(t, 2, gen.calls)
		})
	}
}

func TestGenerateQuestionsPassesModelOutputThrough(t *testing.T) {
	reply := `[{"id":1,"difficulty":"easy","text":"A","time_limit":20,"extra":true},` +
		`{"id":2},{"id":3},{"id":4},{"id":5},{"id":6}]`
	gen := &stubGenerator{result: services.GenerationResult{Status: services.GenerationSuccess, Text: reply}}

	status, resp := doJSON(t, newTestApp(gen, 0), http.MethodPost, "/generate-questions", `{"role":"Backend"}`)

	assert.Equal(t, http.StatusOK, status)
	questions, ok := resp["questions"].([]any)
	require.True(t, ok)
	require.Len(t, questions, 6)
	assert.Equal(t, map[string]any{"id": 1.0, "difficulty": "easy", "text": "A", "time_limit": 20.0, "extra": true}, questions[0])
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateQuestionsInvalidBody(t *testing.T) {
	status, body := doJSON(t, newTestApp(unavailable(), 0), http.MethodPost, "/generate-questions", `{"role":`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Invalid request payload", body["detail"])
}

func TestEvaluateAnswer(t *testing.T) {
	tests := []struct {
		name      string
		gen       *stubGenerator
		body      string
		want      models.AnswerEvaluation
		wantCalls int
	}{
		{
			name:      "empty answer",
			gen:       unavailable(),
			body:      `{"question_id":"q1","question_text":"What is JSX?","answer_text":"","difficulty":"easy"}`,
			want:      models.AnswerEvaluation{Score: 0, Feedback: services.NoAnswerFeedback},
			wantCalls: 0,
		},
		{
			name:      "heuristic",
			gen:       unavailable(),
			body:      `{"question_id":"q1","question_text":"What is JSX?","answer_text":"` + strings.Repeat("word ", 30) + `","difficulty":"easy"}`,
			want:      models.AnswerEvaluation{Score: 3, Feedback: services.HeuristicFeedback},
			wantCalls: 1,
		},
		{
			name: "model score",
			gen: &stubGenerator{result: services.GenerationResult{
				Status: services.GenerationSuccess,
				Text:   `{"score": 9, "feedback": "Excellent depth."}`,
			}},
			body:      `{"question_id":"q5","question_text":"Optimize Node.js","answer_text":"Use worker threads.","difficulty":"hard"}`,
			want:      models.AnswerEvaluation{Score: 9, Feedback: "Excellent depth."},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, newTestApp(tt.gen, 0), http.MethodPost, "/evaluate-answer", tt.body)

			assert.Equal(t, http.StatusOK, status)
			assert.EqualValues(t, tt.want.Score, body["score"])
			assert.Equal(t, tt.want.Feedback, body["feedback"])
			assert.Equal(t, tt.wantCalls, tt.gen.calls)
		})
	}
}

func TestEvaluateAnswerValidation(t *testing.T) {
	app := newTestApp(unavailable(), 0)

	tests := []struct {
		body string
		want string
	}{
		{body: `{"answer_text":"hello"}`, want: "Missing required fields: question_text, difficulty"},
		{body: `{"question_text":"What is JSX?","difficulty":"easy"}`, want: "Missing required fields: answer_text"},
		{body: `{}`, want: "Missing required fields: question_text, answer_text, difficulty"},
	}
	for _, tt := range tests {
		status, body := doJSON(t, app, http.MethodPost, "/evaluate-answer", tt.body)
		assert.Equal(t, http.StatusUnprocessableEntity, status, tt.body)
		assert.Equal(t, tt.want, body["detail"], tt.body)
	}

	status, body := doJSON(t, app, http.MethodPost, "/evaluate-answer", `not json`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Invalid request payload", body["detail"])
}

func TestFinalSummary(t *testing.T) {
	app := newTestApp(unavailable(), 0)

	status, body := doJSON(t, app, http.MethodPost, "/final-summary",
		`{"candidate_name":"Jane","answers":[{"question_id":"q1","score":10,"difficulty":"easy"},{"score":0,"difficulty":"hard"}]}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2.5, body["final_score"])
	assert.Equal(t, 25.0, body["final_percent"])
	assert.Equal(t, "Candidate answered 2 questions. Final Score: 2.5/10 (25.0%).", body["summary"])

	status, body = doJSON(t, app, http.MethodPost, "/final-summary", `{"answers": "nope"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Invalid request payload", body["detail"])
}

func TestUnknownRouteUsesErrorHandler(t *testing.T) {
	status, body := doJSON(t, newTestApp(unavailable(), 0), http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.EqualValues(t, http.StatusNotFound, body["code"])
	assert.Contains(t, body["detail"], "Cannot GET /nope")
}

