package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

const (
	defaultModelDir    = "./internal/transformers/models"
	sentimentModelRepo = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
)

// HugotClassifier runs DistilBERT SST-2 through an ONNX runtime session.
// The model is downloaded on first start and reused from disk afterwards.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

func NewHugotClassifier(modelDir string) (*HugotClassifier, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, "KnightsAnalytics_distilbert-base-uncased-finetuned-sst-2-english")
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[Sentiment] Model not found, downloading...", slog.String("repo", sentimentModelRepo))
		downloaded, err := hugot.DownloadModel(sentimentModelRepo, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to download sentiment model: %w", err)
		}
		modelPath = downloaded
		slog.Info("[Sentiment] Model downloaded successfully", slog.String("path", modelPath))
	} else {
		slog.Info("[Sentiment] Using existing model", slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentAnalysisPipeline",
	}
	sentimentPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize sentiment pipeline: %w", err)
	}

	return &HugotClassifier{session: session, pipeline: sentimentPipeline}, nil
}

func (h *HugotClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	output, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return Prediction{}, fmt.Errorf("sentiment inference failed: %w", err)
	}

	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return Prediction{}, errors.New("sentiment pipeline returned no output")
	}

	best := output.ClassificationOutputs[0][0]
	return Prediction{Label: best.Label, Confidence: float64(best.Score)}, nil
}

func (h *HugotClassifier) Close() {
	h.session.Destroy()
}
