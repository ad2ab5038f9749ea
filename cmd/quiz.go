package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <exercise-id>",
	Short: "Show an exercise quiz, or score answers given with --answer",
	Example: `  rustdojo quiz intro/ownership
  rustdojo quiz intro/ownership --answer 2 --answer 1`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id := args[0]
		answers, _ := cmd.Flags().GetIntSlice("answer")

		if len(answers) == 0 {
			q, err := a.eng.Quiz(id)
			if err != nil {
				return err
			}
			if q.Title != "" {
				a.println(a.styles.Title.Render(q.Title))
			}
			for i, qu := range q.Questions {
				a.printf("%d. %s\n", i+1, qu.Prompt)
				for j, opt := range qu.Options {
					a.printf("   %d) %s\n", j+1, opt)
				}
			}
			a.println(a.styles.Hint.Render(fmt.Sprintf("Answer with: rustdojo quiz %s --answer N ... (one per question)", id)))
			return nil
		}

		// Options are numbered from 1 on screen.
		zeroBased := make([]int, len(answers))
		for i, n := range answers {
			zeroBased[i] = n - 1
		}
		res, err := a.eng.SubmitQuiz(cmd.Context(), id, zeroBased)
		if err != nil {
			return err
		}
		for i, qu := range res.Quiz.Questions {
			mark := a.styles.Fail.Render("✗")
			if i < len(zeroBased) && zeroBased[i] == qu.AnswerIndex {
				mark = a.styles.Pass.Render("✓")
			}
			a.printf("%s %d. %s\n", mark, i+1, qu.Prompt)
		}
		a.printf("Score: %d/%d\n", res.Correct, res.Total)
		if res.Passed() {
			a.println(a.styles.Pass.Render("Quiz complete!"))
		}
		return nil
	}),
}

func init() {
	quizCmd.Flags().IntSlice("answer", nil, "Chosen option number for each question, in order")
}
