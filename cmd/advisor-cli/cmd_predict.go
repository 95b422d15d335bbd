package main

import (
	"context"

	"robo-advisor-workers/internal/classifier"

	"github.com/spf13/cobra"
)

func newPredictCmd() *cobra.Command {
	var (
		features classifier.Features
		model    modelFlags
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score raw features with the risk model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clf, err := model.classifier()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			prediction, err := newLocalService(clf, false).PredictRiskLevel(ctx, features)
			if err != nil {
				return err
			}
			return render(cmd, map[string]interface{}{"prediction": prediction})
		},
	}

	cmd.Flags().IntVar(&features.Age, "age", 0, "Age in years (18-100)")
	cmd.Flags().IntVar(&features.Income, "income", 0, "Annual income")
	cmd.Flags().IntVar(&features.RiskTolerance, "risk-tolerance", 3, "Questionnaire risk rating (1-5)")
	cmd.Flags().IntVar(&features.InvestmentHorizon, "horizon", 10, "Investment horizon in years")
	model.register(cmd)
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}
