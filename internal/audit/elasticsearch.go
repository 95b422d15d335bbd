package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"robo-advisor-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Indexer mirrors log entries into an Elasticsearch index for analytics,
// using the session id as document id.
type Indexer struct {
	client *elasticsearch.Client
	index  string
}

func NewIndexer(client *elasticsearch.Client, index string) *Indexer {
	return &Indexer{client: client, index: index}
}

// indexDocument flattens the fields analysts filter on next to the entry.
type indexDocument struct {
	models.AssessmentLogEntry
	RiskCategory string `json:"riskCategory"`
	Age          int    `json:"age"`
	Income       int    `json:"income"`
	PrimaryGoal  string `json:"primaryGoal"`
}

func (i *Indexer) Index(ctx context.Context, entry models.AssessmentLogEntry) error {
	body, err := json.Marshal(indexDocument{
		AssessmentLogEntry: entry,
		RiskCategory:       entry.AssessmentSummary.FinalRiskCategory,
		Age:                entry.Demographics.Age,
		Income:             entry.Demographics.Income,
		PrimaryGoal:        entry.FinancialGoals.PrimaryGoal,
	})
	if err != nil {
		return fmt.Errorf("marshal index document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: entry.SessionID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("index %s: %w", entry.SessionID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("index %s: %s: %s", entry.SessionID, res.Status(), bytes.TrimSpace(msg))
	}
	return nil
}
