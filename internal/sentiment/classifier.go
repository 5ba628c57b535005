package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spacesedan/sentiscan/config"
)

const (
	BackendVader  = "vader"
	BackendHugot  = "hugot"
	BackendOpenAI = "openai"
)

// Prediction is the raw classifier output before it is mapped into the
// response schema.
type Prediction struct {
	Label      string
	Confidence float64
}

// Classifier scores a single piece of text. Implementations must be safe
// for concurrent use: one instance is shared by every request.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

var (
	classifierInstance Classifier
	classifierErr      error
	classifierOnce     sync.Once
)

// Init constructs the process-wide classifier exactly once, selecting the
// backend from SENTIMENT_BACKEND. Subsequent calls return the same instance.
func Init() (Classifier, error) {
	classifierOnce.Do(func() {
		backend := config.GetEnv("SENTIMENT_BACKEND", BackendVader)
		slog.Info("[Sentiment] Initializing classifier", slog.String("backend", backend))

		switch backend {
		case BackendVader:
			classifierInstance = NewVaderClassifier()
		case BackendHugot:
			classifierInstance, classifierErr = NewHugotClassifier(config.GetEnv("MODEL_DIR", defaultModelDir))
		case BackendOpenAI:
			classifierInstance, classifierErr = NewOpenAIClassifier()
		default:
			classifierErr = fmt.Errorf("unknown sentiment backend: %s", backend)
		}

		if classifierErr != nil {
			slog.Error("[Sentiment] Classifier initialization failed",
				slog.String("backend", backend),
				slog.String("error", classifierErr.Error()))
			return
		}
		slog.Info("[Sentiment] Classifier online", slog.String("backend", backend))
	})
	return classifierInstance, classifierErr
}

// Close releases backend resources held by the shared classifier.
func Close() {
	if closer, ok := classifierInstance.(interface{ Close() }); ok {
		closer.Close()
	}
}
