package sentiment

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/sentiscan/internal/models"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return RemoveLinks(plainText)
}

// VaderClassifier scores text with the VADER lexicon. It needs no model
// files or network access, which makes it the default backend.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Classify maps VADER's compound score onto the binary label schema:
// non-negative compound is POSITIVE, negative is NEGATIVE, and the
// confidence is the compound magnitude.
func (v *VaderClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	plainText := ConvertMarkdownToText(text)
	scores := v.analyzer.PolarityScores(plainText)

	label := models.LabelPositive
	if scores.Compound < 0 {
		label = models.LabelNegative
	}

	return Prediction{Label: label, Confidence: math.Abs(scores.Compound)}, nil
}
