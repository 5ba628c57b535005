package analysis

import (
	"context"

	"github.com/spacesedan/sentiscan/internal/models"
	"github.com/spacesedan/sentiscan/internal/sentiment"
)

// maxClassifierChars keeps inputs under the model's token limit (512 for
// the DistilBERT backend).
const maxClassifierChars = 500

// MapResult classifies one unit and shapes the canonical record. The
// classifier sees at most the first 500 characters; the returned record and
// its keywords always use the full original text.
func MapResult(ctx context.Context, classifier sentiment.Classifier, text string) (models.AnalysisResult, error) {
	safeText := text
	if runes := []rune(text); len(runes) > maxClassifierChars {
		safeText = string(runes[:maxClassifierChars])
	}

	prediction, err := classifier.Classify(ctx, safeText)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	score := prediction.Confidence
	if prediction.Label != models.LabelPositive {
		score = -score
	}

	return models.AnalysisResult{
		Text:       text,
		Score:      score,
		Label:      prediction.Label,
		Confidence: prediction.Confidence,
		Keywords:   ExtractKeywords(text),
	}, nil
}
