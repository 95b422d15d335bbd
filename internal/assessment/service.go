// Package assessment runs the questionnaire session lifecycle: start, the
// three submit stages, recommendation generation and the read-side queries.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"robo-advisor-workers/internal/advisor"
	"robo-advisor-workers/internal/audit"
	"robo-advisor-workers/internal/classifier"
	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/common/metrics"
	"robo-advisor-workers/internal/models"
	"robo-advisor-workers/internal/session"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultLogLimit = 50
	MaxLogLimit     = 500

	maxCompletionAttempts = 3
)

var errAnswersChanged = errors.New("session answers changed")

// Notifier announces completed assessments.
type Notifier interface {
	AssessmentCompleted(ctx context.Context, s *models.AssessmentSession) (models.NotificationResult, error)
}

type Service struct {
	store      session.Store
	classifier classifier.Classifier
	auditLog   audit.Log
	notifier   Notifier
	logger     logger.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

type Option func(*Service)

func WithAuditLog(l audit.Log) Option { return func(s *Service) { s.auditLog = l } }

func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

func WithTracer(t trace.Tracer) Option { return func(s *Service) { s.tracer = t } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(store session.Store, clf classifier.Classifier, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:      store,
		classifier: clf,
		logger:     log,
		tracer:     otel.Tracer("robo-advisor-workers/assessment"),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) startSpan(ctx context.Context, name, sessionID string) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, "assessment."+name)
	if sessionID != "" {
		span.SetAttributes(attribute.String("session.id", sessionID))
	}
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// StartAssessment creates a new session in the started state.
func (s *Service) StartAssessment(ctx context.Context) (sess *models.AssessmentSession, err error) {
	ctx, span := s.startSpan(ctx, "StartAssessment", "")
	defer func() { endSpan(span, err) }()

	sess = models.NewAssessmentSession(uuid.New().String(), s.now())
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	metrics.AssessmentsStarted.Inc()
	metrics.AssessmentStageTransitions.WithLabelValues(string(models.StatusStarted)).Inc()
	s.logger.Info("Assessment started", map[string]interface{}{"sessionId": sess.ID})
	return sess, nil
}

// SubmitDemographics stores the first stage. Demographics cannot be
// replaced once submitted.
func (s *Service) SubmitDemographics(ctx context.Context, id string, d models.Demographics) (sess *models.AssessmentSession, err error) {
	ctx, span := s.startSpan(ctx, "SubmitDemographics", id)
	defer func() { endSpan(span, err) }()

	if err := validate(d, demographicsSchema); err != nil {
		return nil, err
	}

	return s.submit(ctx, id, models.StatusDemographicsComplete, func(sess *models.AssessmentSession) error {
		if sess.Demographics != nil {
			return apperrors.NewSessionConflictError(id, "demographics already submitted")
		}
		sess.Demographics = &d
		return nil
	})
}

// SubmitFinancialGoals stores or replaces the second stage.
func (s *Service) SubmitFinancialGoals(ctx context.Context, id string, g models.FinancialGoals) (sess *models.AssessmentSession, err error) {
	ctx, span := s.startSpan(ctx, "SubmitFinancialGoals", id)
	defer func() { endSpan(span, err) }()

	if err := validate(g, financialGoalsSchema); err != nil {
		return nil, err
	}
	if g.TargetAmount != nil {
		target := *g.TargetAmount
		g.TargetAmount = &target
	}

	return s.submit(ctx, id, models.StatusFinancialGoalsComplete, func(sess *models.AssessmentSession) error {
		sess.FinancialGoals = &g
		return nil
	})
}

// RiskQuestions returns the questionnaire catalog.
func (s *Service) RiskQuestions() []models.Question {
	return advisor.Questions()
}

// SubmitRiskAssessment stores or replaces the questionnaire answers.
func (s *Service) SubmitRiskAssessment(ctx context.Context, id string, responses []models.RiskResponse) (sess *models.AssessmentSession, err error) {
	ctx, span := s.startSpan(ctx, "SubmitRiskAssessment", id)
	defer func() { endSpan(span, err) }()

	if err := advisor.ValidateResponses(responses); err != nil {
		return nil, err
	}
	answers := append([]models.RiskResponse(nil), responses...)

	return s.submit(ctx, id, models.StatusRiskAssessmentComplete, func(sess *models.AssessmentSession) error {
		sess.RiskResponses = answers
		return nil
	})
}

// submit applies a stage mutation atomically and advances the status.
// Completed sessions reject every submit.
func (s *Service) submit(ctx context.Context, id string, stage models.AssessmentStatus, apply session.Mutator) (*models.AssessmentSession, error) {
	var advanced bool
	sess, err := s.store.Update(ctx, id, func(sess *models.AssessmentSession) error {
		if sess.Completed {
			return apperrors.NewSessionConflictError(id, "assessment already completed")
		}
		if err := apply(sess); err != nil {
			return err
		}
		advanced = !sess.Status.AtLeast(stage)
		sess.Advance(stage, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if advanced {
		metrics.AssessmentStageTransitions.WithLabelValues(string(stage)).Inc()
	}
	s.logger.Info("Assessment stage submitted", map[string]interface{}{
		"sessionId": id,
		"stage":     string(stage),
		"status":    string(sess.Status),
	})
	return sess, nil
}

// GenerateRecommendation computes and stores the recommendation, completing
// the session. On a completed session it returns the stored recommendation.
// Audit and notification failures are logged only; an assessment that
// missed the audit log is recorded again on the next call.
func (s *Service) GenerateRecommendation(ctx context.Context, id string) (rec *models.Recommendation, err error) {
	ctx, span := s.startSpan(ctx, "GenerateRecommendation", id)
	defer func() { endSpan(span, err) }()

	var (
		sess  *models.AssessmentSession
		fresh bool
	)
	for attempt := 1; ; attempt++ {
		sess, fresh, err = s.completeSession(ctx, id)
		if !errors.Is(err, errAnswersChanged) {
			break
		}
		if attempt == maxCompletionAttempts {
			return nil, apperrors.NewSessionConflictError(id, "answers changed while the recommendation was computed")
		}
	}
	if err != nil {
		return nil, err
	}

	rec = sess.Recommendation.Clone()
	span.SetAttributes(
		attribute.String("risk.category", rec.AssessmentSummary.FinalRiskCategory),
		attribute.Bool("recommendation.fresh", fresh),
	)

	if fresh {
		metrics.RecommendationsGenerated.WithLabelValues(rec.AssessmentSummary.FinalRiskCategory).Inc()
		metrics.AssessmentStageTransitions.WithLabelValues(string(models.StatusCompleted)).Inc()
		s.logger.Info("Recommendation generated", map[string]interface{}{
			"sessionId":              id,
			"questionnaireRiskScore": rec.AssessmentSummary.QuestionnaireRiskScore,
			"modelRiskScore":         rec.AssessmentSummary.ModelRiskScore,
			"riskCategory":           rec.AssessmentSummary.FinalRiskCategory,
		})
	}

	s.recordAuditLog(ctx, sess)
	if fresh {
		s.notify(ctx, sess)
	}
	return rec, nil
}

// completeSession runs the classifier outside the store and commits the
// result only if the answers it was computed from are still current.
func (s *Service) completeSession(ctx context.Context, id string) (*models.AssessmentSession, bool, error) {
	snapshot, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if snapshot.Completed && snapshot.Recommendation != nil {
		return snapshot, false, nil
	}

	now := s.now()
	computed, err := advisor.ComputeRecommendation(ctx, snapshot, s.classifier, now)
	if err != nil {
		return nil, false, err
	}

	var fresh bool
	sess, err := s.store.Update(ctx, id, func(sess *models.AssessmentSession) error {
		if sess.Completed && sess.Recommendation != nil {
			fresh = false
			return nil
		}
		if !sess.SameAnswers(snapshot) {
			return errAnswersChanged
		}
		sess.Complete(computed, now)
		fresh = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return sess, fresh, nil
}

func (s *Service) recordAuditLog(ctx context.Context, sess *models.AssessmentSession) {
	if s.auditLog == nil || sess.AuditLogged {
		return
	}
	if err := s.auditLog.Record(ctx, models.NewAssessmentLogEntry(sess)); err != nil {
		s.logger.Warn("Failed to record assessment log", map[string]interface{}{
			"sessionId": sess.ID,
			"error":     err.Error(),
		})
		return
	}

	_, err := s.store.Update(ctx, sess.ID, func(stored *models.AssessmentSession) error {
		stored.AuditLogged = true
		return nil
	})
	if err != nil {
		s.logger.Warn("Failed to mark assessment as logged", map[string]interface{}{
			"sessionId": sess.ID,
			"error":     err.Error(),
		})
	}
}

func (s *Service) notify(ctx context.Context, sess *models.AssessmentSession) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.AssessmentCompleted(ctx, sess); err != nil {
		s.logger.Warn("Failed to send assessment notification", map[string]interface{}{
			"sessionId": sess.ID,
			"error":     err.Error(),
		})
	}
}

// SessionStatus reports stage progress for a session.
func (s *Service) SessionStatus(ctx context.Context, id string) (progress models.SessionProgress, err error) {
	ctx, span := s.startSpan(ctx, "SessionStatus", id)
	defer func() { endSpan(span, err) }()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return models.SessionProgress{}, err
	}
	return sess.Progress(), nil
}

// LogPage is one page of the assessment log, newest first.
type LogPage struct {
	Entries []models.AssessmentLogEntry `json:"entries"`
	Total   int                         `json:"total"`
	Limit   int                         `json:"limit"`
	Offset  int                         `json:"offset"`
}

// AssessmentLogs pages through completed assessments. A zero limit means
// DefaultLogLimit. Without an audit log the page is empty.
func (s *Service) AssessmentLogs(ctx context.Context, limit, offset int) (page LogPage, err error) {
	ctx, span := s.startSpan(ctx, "AssessmentLogs", "")
	defer func() { endSpan(span, err) }()

	if limit == 0 {
		limit = DefaultLogLimit
	}
	if limit < 1 || limit > MaxLogLimit {
		return LogPage{}, apperrors.NewRangeError("limit", float64(limit), 1, MaxLogLimit)
	}
	if offset < 0 {
		return LogPage{}, apperrors.NewValidationError("offset", "offset must be >= 0")
	}

	page = LogPage{Entries: []models.AssessmentLogEntry{}, Limit: limit, Offset: offset}
	if s.auditLog == nil {
		return page, nil
	}

	entries, total, err := s.auditLog.Logs(ctx, limit, offset)
	if err != nil {
		return LogPage{}, err
	}
	page.Entries = entries
	page.Total = total
	return page, nil
}

// RiskPrediction is a direct classifier reading outside any session.
type RiskPrediction struct {
	PredictedRiskLevel  int                              `json:"predictedRiskLevel"`
	RiskCategory        string                           `json:"riskCategory"`
	Explanation         string                           `json:"userFriendlyExplanation"`
	FeatureImportance   map[string]float64               `json:"featureImportance"`
	DetailedExplanation map[string]advisor.FeatureImpact `json:"detailedExplanation"`
	InfluentialFactors  []models.InfluentialFactor       `json:"influentialFactors"`
	Model               string                           `json:"model"`
}

// PredictRiskLevel runs the classifier on raw features.
func (s *Service) PredictRiskLevel(ctx context.Context, f classifier.Features) (out RiskPrediction, err error) {
	ctx, span := s.startSpan(ctx, "PredictRiskLevel", "")
	defer func() { endSpan(span, err) }()

	if err := validate(f, featuresSchema); err != nil {
		return RiskPrediction{}, err
	}

	pred, err := s.classifier.Predict(ctx, f)
	if err != nil {
		if _, ok := apperrors.AsStandardError(err); ok {
			return RiskPrediction{}, err
		}
		return RiskPrediction{}, apperrors.NewClassifierFailedError(err)
	}
	if pred.Rating < classifier.MinRating || pred.Rating > classifier.MaxRating {
		return RiskPrediction{}, apperrors.NewClassifierFailedError(
			fmt.Errorf("rating %d outside %d..%d", pred.Rating, classifier.MinRating, classifier.MaxRating))
	}

	return RiskPrediction{
		PredictedRiskLevel:  pred.Rating,
		RiskCategory:        advisor.RiskCategory(pred.Rating),
		Explanation:         advisor.ExplainPrediction(pred, f),
		FeatureImportance:   pred.FeatureImportance,
		DetailedExplanation: advisor.FeatureImpacts(pred, f),
		InfluentialFactors:  advisor.InfluentialFactors(pred, f),
		Model:               s.classifier.Name(),
	}, nil
}
