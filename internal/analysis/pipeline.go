package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/spacesedan/sentiscan/internal/models"
	"github.com/spacesedan/sentiscan/internal/scraper"
	"github.com/spacesedan/sentiscan/internal/sentiment"
)

const (
	maxFileRows    = 500
	fileCapWarning = "Capped at 500 rows to prevent timeout."

	noContentMessage = "No readable paragraph text found on this URL."
)

// Fetcher downloads a page and returns its HTML.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Pipeline orchestrates segmentation, capping, and per-unit classification.
// It holds no cross-request state; the classifier handle is read-only.
type Pipeline struct {
	classifier sentiment.Classifier
	fetcher    Fetcher
}

func New(classifier sentiment.Classifier, fetcher Fetcher) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		fetcher:    fetcher,
	}
}

// AnalyzeList classifies every item in order. No cap and no filtering:
// callers of the list endpoint own their batch size.
func (p *Pipeline) AnalyzeList(ctx context.Context, items []string) (models.BatchResult, error) {
	units := make([]models.AnalysisUnit, 0, len(items))
	for _, item := range items {
		units = append(units, models.AnalysisUnit{RawText: item, Origin: models.OriginListItem})
	}

	results, err := p.classifyUnits(ctx, units)
	if err != nil {
		return models.BatchResult{}, err
	}

	return models.BatchResult{TotalScanned: len(results), Results: results}, nil
}

// AnalyzeFile segments an uploaded file into line candidates, caps them at
// 500 rows, and classifies what survived. Invalid UTF-8 fails the whole
// request; nothing is classified from a partially decodable file.
func (p *Pipeline) AnalyzeFile(ctx context.Context, raw []byte) (models.BatchResult, error) {
	start := time.Now()

	candidates, err := SegmentLines(raw)
	if err != nil {
		slog.Warn("[Pipeline] Rejected file upload", slog.String("error", err.Error()))
		return models.BatchResult{}, err
	}

	accepted, truncated := ApplyCap(candidates, maxFileRows)
	if truncated {
		slog.Warn("[Pipeline] File upload truncated", slog.Int("max_rows", maxFileRows))
	}

	units := make([]models.AnalysisUnit, 0, len(accepted))
	for _, text := range accepted {
		units = append(units, models.AnalysisUnit{RawText: text, Origin: models.OriginFileLine})
	}

	results, err := p.classifyUnits(ctx, units)
	if err != nil {
		return models.BatchResult{}, err
	}

	var warning *string
	if truncated {
		w := fileCapWarning
		warning = &w
	}

	slog.Info("[Pipeline] File analysis complete",
		slog.Int("total_scanned", len(results)),
		slog.Duration("elapsed", time.Since(start)))

	return models.BatchResult{
		TotalScanned: len(results),
		Results:      results,
		Meta: &models.BatchMeta{
			ProcessingTime: roundSeconds(time.Since(start)),
			Warning:        warning,
		},
	}, nil
}

// AnalyzeURL fetches the target page and classifies its readable paragraphs.
// The extractor already bounds the paragraph count, so no further cap is
// applied here.
func (p *Pipeline) AnalyzeURL(ctx context.Context, url string) (models.BatchResult, error) {
	page, err := p.fetcher.FetchPage(ctx, url)
	if err != nil {
		slog.Warn("[Pipeline] Scrape fetch failed",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return models.BatchResult{}, &Error{
			Kind:    KindFetch,
			Message: fmt.Sprintf("Scraping failed: %v", err),
			Err:     err,
		}
	}

	paragraphs := scraper.ExtractParagraphs(page)
	if len(paragraphs) == 0 {
		slog.Info("[Pipeline] No readable paragraphs found", slog.String("url", url))
		return models.BatchResult{}, &Error{
			Kind:    KindEmptyContent,
			Message: noContentMessage,
		}
	}

	units := make([]models.AnalysisUnit, 0, len(paragraphs))
	for _, text := range paragraphs {
		units = append(units, models.AnalysisUnit{RawText: text, Origin: models.OriginScrapedParagraph})
	}

	results, err := p.classifyUnits(ctx, units)
	if err != nil {
		return models.BatchResult{}, err
	}

	return models.BatchResult{TotalScanned: len(results), Results: results}, nil
}

// classifyUnits runs units through the classifier strictly one at a time,
// preserving input order. A failed classification fails the whole batch.
func (p *Pipeline) classifyUnits(ctx context.Context, units []models.AnalysisUnit) ([]models.AnalysisResult, error) {
	results := make([]models.AnalysisResult, 0, len(units))
	for _, unit := range units {
		result, err := MapResult(ctx, p.classifier, unit.RawText)
		if err != nil {
			slog.Error("[Pipeline] Classification failed",
				slog.String("origin", string(unit.Origin)),
				slog.String("error", err.Error()))
			return nil, &Error{
				Kind:    KindClassifier,
				Message: fmt.Sprintf("Analysis failed: %v", err),
				Err:     err,
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*10000) / 10000
}
