package main

import (
	"context"
	"fmt"

	"robo-advisor-workers/internal/assessment"
	"robo-advisor-workers/internal/classifier"
	"robo-advisor-workers/internal/common/config"
	"robo-advisor-workers/internal/common/logger"
	"robo-advisor-workers/internal/session"

	"github.com/spf13/cobra"
)

type modelFlags struct {
	url     string
	timeout int
}

func (m *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&m.url, "model-url", "", "Risk model service base URL (rule model when empty)")
	cmd.Flags().IntVar(&m.timeout, "model-timeout", 5000, "Risk model request timeout in milliseconds")
}

func (m *modelFlags) classifier() (classifier.Classifier, error) {
	cfg := config.ClassifierConfig{Mode: config.ClassifierModeRules, Timeout: m.timeout}
	if m.url != "" {
		cfg.Mode = config.ClassifierModeRemote
		cfg.BaseURL = m.url
	}
	return classifier.New(cfg)
}

func newLocalService(clf classifier.Classifier, verbose bool) *assessment.Service {
	log := logger.NewNoOpLogger()
	if verbose {
		log = logger.NewStructured("debug", "console")
	}
	return assessment.NewService(session.NewMemoryStore(), clf, log)
}

func newRecommendCmd() *cobra.Command {
	var (
		file    string
		verbose bool
		model   modelFlags
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run a full assessment from a profile file and print the recommendation",
		Example: `  advisor-cli recommend -f configs/examples/profile.yaml
  advisor-cli recommend -f profile.json -o json --model-url http://localhost:5001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile(file)
			if err != nil {
				return err
			}
			clf, err := model.classifier()
			if err != nil {
				return err
			}

			rec, err := runAssessment(cmd.Context(), newLocalService(clf, verbose), profile)
			if err != nil {
				return err
			}
			return render(cmd, rec)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Profile file (YAML or JSON)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log each assessment step")
	model.register(cmd)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// runAssessment walks a fresh session through every stage in order.
func runAssessment(ctx context.Context, svc *assessment.Service, p *Profile) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := svc.StartAssessment(ctx)
	if err != nil {
		return nil, fmt.Errorf("start assessment: %w", err)
	}
	if _, err := svc.SubmitDemographics(ctx, sess.ID, p.Demographics); err != nil {
		return nil, fmt.Errorf("demographics: %w", err)
	}
	if _, err := svc.SubmitFinancialGoals(ctx, sess.ID, p.FinancialGoals); err != nil {
		return nil, fmt.Errorf("financial goals: %w", err)
	}
	if _, err := svc.SubmitRiskAssessment(ctx, sess.ID, p.RiskResponses); err != nil {
		return nil, fmt.Errorf("risk assessment: %w", err)
	}

	rec, err := svc.GenerateRecommendation(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("recommendation: %w", err)
	}
	return map[string]interface{}{"recommendation": rec}, nil
}
