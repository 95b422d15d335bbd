// Package audit keeps the log of completed assessments.
package audit

import (
	"context"
	"sort"
	"sync"

	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/models"
)

// Log records completed assessments and pages through them newest first.
type Log interface {
	Record(ctx context.Context, entry models.AssessmentLogEntry) error
	Logs(ctx context.Context, limit, offset int) ([]models.AssessmentLogEntry, int, error)
}

// Recorder writes to PostgreSQL and mirrors each entry into Elasticsearch
// when an indexer is configured. Queries are served from PostgreSQL.
type Recorder struct {
	repo    *Repository
	indexer *Indexer
	log     logger.Logger
}

func NewRecorder(repo *Repository, indexer *Indexer, log logger.Logger) *Recorder {
	return &Recorder{repo: repo, indexer: indexer, log: log}
}

// Record inserts the entry into PostgreSQL. Indexing failures are logged
// and do not fail the record.
func (r *Recorder) Record(ctx context.Context, entry models.AssessmentLogEntry) error {
	if err := r.repo.Insert(ctx, entry); err != nil {
		return apperrors.NewAuditLogFailedError(err)
	}
	if r.indexer != nil {
		if err := r.indexer.Index(ctx, entry); err != nil {
			r.log.Warn("Failed to index assessment log", map[string]interface{}{
				"sessionId": entry.SessionID,
				"error":     err.Error(),
			})
		}
	}
	return nil
}

func (r *Recorder) Logs(ctx context.Context, limit, offset int) ([]models.AssessmentLogEntry, int, error) {
	total, err := r.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.NewAuditQueryFailedError(err)
	}
	entries, err := r.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewAuditQueryFailedError(err)
	}
	return entries, total, nil
}

// MemoryLog is the in-process log used when no database is configured.
// Re-recording a session replaces its entry.
type MemoryLog struct {
	mu      sync.RWMutex
	entries map[string]models.AssessmentLogEntry
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{entries: make(map[string]models.AssessmentLogEntry)}
}

func (m *MemoryLog) Record(ctx context.Context, entry models.AssessmentLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.SessionID] = entry
	return nil
}

func (m *MemoryLog) Logs(ctx context.Context, limit, offset int) ([]models.AssessmentLogEntry, int, error) {
	m.mu.RLock()
	all := make([]models.AssessmentLogEntry, 0, len(m.entries))
	for _, e := range m.entries {
		all = append(all, e)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].Timestamp.Equal(all[j].Timestamp) {
			return all[i].Timestamp.After(all[j].Timestamp)
		}
		return all[i].SessionID < all[j].SessionID
	})

	total := len(all)
	if offset >= total {
		return []models.AssessmentLogEntry{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}
