package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/sentiscan/internal/analysis"
	"github.com/spacesedan/sentiscan/internal/models"
	"github.com/spacesedan/sentiscan/internal/sentiment"
)

type fakeClassifier struct {
	err error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (sentiment.Prediction, error) {
	if f.err != nil {
		return sentiment.Prediction{}, f.err
	}
	label := models.LabelPositive
	if strings.Contains(strings.ToLower(text), "bad") {
		label = models.LabelNegative
	}
	return sentiment.Prediction{Label: label, Confidence: 0.9}, nil
}

type fakeFetcher struct {
	page string
	err  error
}

func (f *fakeFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	return f.page, f.err
}

func newTestRouter(clf sentiment.Classifier, fetcher analysis.Fetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if fetcher == nil {
		fetcher = &fakeFetcher{}
	}
	return NewRouter(analysis.New(clf, fetcher), Options{CORSOrigins: []string{"http://localhost:3000"}})
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func postFile(t *testing.T, router *gin.Engine, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "reviews.csv")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze_bulk", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestAnalyzeListEndpoint(t *testing.T) {
	router := newTestRouter(&fakeClassifier{}, nil)

	resp := postJSON(t, router, "/analyze_list", models.ListRequest{
		Items: []string{"what a great evening", "a very bad movie"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var batch models.BatchResult
	if err := json.Unmarshal(resp.Body.Bytes(), &batch); err != nil {
		t.Fatalf("failed to decode batch: %v", err)
	}
	if batch.TotalScanned != 2 || len(batch.Results) != 2 {
		t.Fatalf("expected 2 results, got %+v", batch)
	}
	if batch.Results[0].Label != models.LabelPositive || batch.Results[0].Score != 0.9 {
		t.Fatalf("unexpected first result: %+v", batch.Results[0])
	}
	if batch.Results[1].Label != models.LabelNegative || batch.Results[1].Score != -0.9 {
		t.Fatalf("unexpected second result: %+v", batch.Results[1])
	}
}

func TestAnalyzeListRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(&fakeClassifier{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/analyze_list", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeBulkEndpoint(t *testing.T) {
	router := newTestRouter(&fakeClassifier{}, nil)

	resp := postFile(t, router, []byte("lovely product overall,5\nbad experience with support,1\n"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	body := decodeBody(t, resp)
	if body["total_scanned"].(float64) != 2 {
		t.Fatalf("expected total_scanned=2, got %v", body["total_scanned"])
	}

	meta, ok := body["meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected meta object, got %v", body["meta"])
	}
	if meta["warning"] != nil {
		t.Fatalf("expected null warning, got %v", meta["warning"])
	}
	if _, ok := meta["processing_time"].(float64); !ok {
		t.Fatalf("expected numeric processing_time, got %v", meta["processing_time"])
	}

	results := body["results"].([]any)
	first := results[0].(map[string]any)
	// The comma heuristic strips the rating column before classification.
	if first["text"] != "lovely product overall" {
		t.Fatalf("unexpected first text: %v", first["text"])
	}
}

func TestAnalyzeBulkInvalidEncoding(t *testing.T) {
	router := newTestRouter(&fakeClassifier{}, nil)

	resp := postFile(t, router, []byte{0xff, 0xfe, 0x00, 0x41})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Invalid file encoding. Use UTF-8." {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
	if _, hasResults := body["results"]; hasResults {
		t.Fatal("decode failures must not carry a results key")
	}
}

func TestAnalyzeBulkCapWarning(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 501; i++ {
		fmt.Fprintf(&sb, "qualifying review line %d\n", i)
	}

	router := newTestRouter(&fakeClassifier{}, nil)
	resp := postFile(t, router, []byte(sb.String()))

	body := decodeBody(t, resp)
	if body["total_scanned"].(float64) != 500 {
		t.Fatalf("expected total_scanned=500, got %v", body["total_scanned"])
	}
	meta := body["meta"].(map[string]any)
	if meta["warning"] != "Capped at 500 rows to prevent timeout." {
		t.Fatalf("unexpected warning: %v", meta["warning"])
	}
}

func TestScrapeEndpoint(t *testing.T) {
	fetcher := &fakeFetcher{page: "<html><body><p>a long enough paragraph about a great launch</p></body></html>"}
	router := newTestRouter(&fakeClassifier{}, fetcher)

	resp := postJSON(t, router, "/scrape", models.ScrapeRequest{URL: "http://example.com"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	body := decodeBody(t, resp)
	if body["total_scanned"].(float64) != 1 {
		t.Fatalf("expected total_scanned=1, got %v", body["total_scanned"])
	}
}

func TestScrapeNoReadableText(t *testing.T) {
	fetcher := &fakeFetcher{page: "<html><body><div>no paragraphs on this page at all</div></body></html>"}
	router := newTestRouter(&fakeClassifier{}, fetcher)

	resp := postJSON(t, router, "/scrape", models.ScrapeRequest{URL: "http://example.com"})
	body := decodeBody(t, resp)

	if body["error"] != "No readable paragraph text found on this URL." {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
	results, ok := body["results"].([]any)
	if !ok || len(results) != 0 {
		t.Fatalf("expected empty results array, got %v", body["results"])
	}
}

func TestScrapeFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("dial tcp: lookup failed")}
	router := newTestRouter(&fakeClassifier{}, fetcher)

	resp := postJSON(t, router, "/scrape", models.ScrapeRequest{URL: "http://unreachable.invalid"})
	body := decodeBody(t, resp)

	if body["error"] != "Scraping failed: dial tcp: lookup failed" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
	if results, ok := body["results"].([]any); !ok || len(results) != 0 {
		t.Fatalf("expected empty results array, got %v", body["results"])
	}
}

func TestClassifierFailureBecomesPayload(t *testing.T) {
	router := newTestRouter(&fakeClassifier{err: errors.New("model crashed")}, nil)

	resp := postJSON(t, router, "/analyze_list", models.ListRequest{Items: []string{"anything"}})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Analysis failed: model crashed" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestCORSHeadersOnAllowedOrigin(t *testing.T) {
	router := newTestRouter(&fakeClassifier{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/analyze_list", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected Allow-Origin: %q", got)
	}
}
