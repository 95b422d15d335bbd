package main

import (
	"robo-advisor-workers/internal/advisor"

	"github.com/spf13/cobra"
)

func newQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Print the risk questionnaire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			questions := advisor.Questions()
			return render(cmd, map[string]interface{}{
				"questions":      questions,
				"totalQuestions": len(questions),
			})
		},
	}
}
