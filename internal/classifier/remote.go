package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "robo-advisor-workers/internal/common/errors"
	httpclient "robo-advisor-workers/internal/common/http"
)

// RemoteModel calls a model server exposing POST /explain.
type RemoteModel struct {
	baseURL string
	client  *httpclient.Client
}

func NewRemoteModel(baseURL string, timeout time.Duration) *RemoteModel {
	return &RemoteModel{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpclient.NewClient(timeout),
	}
}

func (m *RemoteModel) Name() string { return "remote" }

func (m *RemoteModel) Predict(ctx context.Context, f Features) (Prediction, error) {
	var pred Prediction
	if err := m.client.PostJSON(ctx, m.baseURL+"/explain", f, &pred); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Prediction{}, apperrors.NewClassifierTimeoutError()
		}
		return Prediction{}, apperrors.NewClassifierFailedError(err)
	}
	if pred.Rating < MinRating || pred.Rating > MaxRating {
		return Prediction{}, apperrors.NewClassifierFailedError(
			fmt.Errorf("rating %d outside %d..%d", pred.Rating, MinRating, MaxRating))
	}
	return pred, nil
}
