package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List available problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap()
		if err != nil {
			return err
		}
		defer env.close()

		ctx, cancel := context.WithTimeout(context.Background(), env.cfg.RequestTimeout())
		defer cancel()

		probs, err := env.client.Problems(ctx)
		if err != nil {
			return fmt.Errorf("listing problems: %w", err)
		}

		if len(probs) == 0 {
			fmt.Println("No problems available.")
			return nil
		}

		for _, p := range probs {
			fmt.Printf("%-38s  %-10s  %s\n", p.UUID, difficultyColor(p.Difficulty), p.Title)
		}
		return nil
	},
}

func difficultyColor(difficulty string) string {
	switch difficulty {
	case "easy", "Easy":
		return color.GreenString(difficulty)
	case "medium", "Medium":
		return color.YellowString(difficulty)
	case "hard", "Hard":
		return color.RedString(difficulty)
	}
	return difficulty
}
