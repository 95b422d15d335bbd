// Package notify announces completed assessments over SNS and emails the
// advisor desk through SES.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"robo-advisor-workers/internal/common/config"
	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Options struct {
	TopicARN    string
	FromEmail   string
	AdvisorDesk string
}

// Notifier sends the assessment.completed event. A nil SNS or SES client
// disables that channel.
type Notifier struct {
	sns    SNSService
	ses    SESService
	opts   Options
	logger logger.Logger
}

func NewNotifier(snsClient SNSService, sesClient SESService, opts Options, log logger.Logger) *Notifier {
	return &Notifier{sns: snsClient, ses: sesClient, opts: opts, logger: log}
}

// NewFromConfig builds AWS clients for the enabled channels.
func NewFromConfig(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var (
		snsClient SNSService
		sesClient SESService
	)
	if cfg.SNS.Enabled {
		snsClient = sns.NewFromConfig(awsCfg)
	}
	if cfg.Email.Enabled {
		sesClient = ses.NewFromConfig(awsCfg)
	}

	return NewNotifier(snsClient, sesClient, Options{
		TopicARN:    cfg.SNS.TopicARN,
		FromEmail:   cfg.Email.FromEmail,
		AdvisorDesk: cfg.Email.AdvisorDesk,
	}, log), nil
}

// NewAssessmentEvent summarizes a completed session.
func NewAssessmentEvent(s *models.AssessmentSession, now time.Time) models.AssessmentEvent {
	event := models.AssessmentEvent{
		ID:         uuid.New().String(),
		Type:       models.EventAssessmentCompleted,
		SessionID:  s.ID,
		OccurredAt: now,
	}
	if rec := s.Recommendation; rec != nil {
		event.RiskCategory = rec.AssessmentSummary.FinalRiskCategory
		event.Allocation = rec.Portfolio.Allocation
		event.RecommendedMonthlyInvestment = rec.Portfolio.RecommendedMonthlyInvestment
		event.LikelyToAchieveGoal = rec.Projections.GoalAchievement.LikelyToAchieve
	}
	return event
}

// AssessmentCompleted delivers the event on every enabled channel. Each
// channel is attempted even when another fails.
func (n *Notifier) AssessmentCompleted(ctx context.Context, s *models.AssessmentSession) (models.NotificationResult, error) {
	event := NewAssessmentEvent(s, time.Now().UTC())
	result := models.NotificationResult{EventID: event.ID}

	var errs []error
	if n.sns != nil {
		if err := n.publish(ctx, event); err != nil {
			errs = append(errs, apperrors.NewNotificationSendFailedError("sns", err))
		} else {
			result.Published = true
		}
	}
	if n.ses != nil {
		if err := n.email(ctx, event); err != nil {
			errs = append(errs, apperrors.NewNotificationSendFailedError("email", err))
		} else {
			result.Emailed = true
		}
	}

	fields := map[string]interface{}{
		"sessionId": s.ID,
		"eventId":   event.ID,
		"published": result.Published,
		"emailed":   result.Emailed,
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		fields["error"] = err.Error()
		n.logger.Warn("Assessment notification failed", fields)
		return result, err
	}

	n.logger.Info("Assessment notification sent", fields)
	return result, nil
}

func (n *Notifier) publish(ctx context.Context, event models.AssessmentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = n.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.opts.TopicARN),
		Message:  aws.String(string(body)),
		Subject:  aws.String("Assessment completed"),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"eventType": {DataType: aws.String("String"), StringValue: aws.String(event.Type)},
			"riskCategory": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.RiskCategory),
			},
		},
	})
	return err
}

func (n *Notifier) email(ctx context.Context, event models.AssessmentEvent) error {
	if n.opts.AdvisorDesk == "" {
		return errors.New("no advisor desk address configured")
	}
	subject := fmt.Sprintf("New %s assessment: %s", event.RiskCategory, event.SessionID)
	body := emailBody(event)

	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.opts.AdvisorDesk},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.opts.FromEmail),
	})
	return err
}

func emailBody(event models.AssessmentEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", event.SessionID)
	fmt.Fprintf(&b, "Risk category: %s\n", event.RiskCategory)
	fmt.Fprintf(&b, "Allocation: stocks %d%%, bonds %d%%, cash %d%%\n",
		event.Allocation.Stocks, event.Allocation.Bonds, event.Allocation.Cash)
	fmt.Fprintf(&b, "Recommended monthly investment: $%d\n", event.RecommendedMonthlyInvestment)
	fmt.Fprintf(&b, "Likely to reach goal: %t\n", event.LikelyToAchieveGoal)
	fmt.Fprintf(&b, "Completed at: %s\n", event.OccurredAt.Format(time.RFC3339))
	return b.String()
}
