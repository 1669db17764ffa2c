package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prajna-dev/prajna/internal/api"
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions <problem-uuid>",
	Short: "List your graded attempts for a problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := uuid.Parse(args[0]); err != nil {
			return fmt.Errorf("%q is not a problem uuid: %w", args[0], err)
		}

		env, err := bootstrap()
		if err != nil {
			return err
		}
		defer env.close()

		ctx, cancel := context.WithTimeout(context.Background(), env.cfg.RequestTimeout())
		defer cancel()

		subs, err := env.client.Submissions(ctx, args[0])
		if err != nil {
			return fmt.Errorf("listing submissions: %w", err)
		}

		if len(subs) == 0 {
			fmt.Println("No submissions yet.")
			return nil
		}

		for _, sub := range subs {
			cases := fmt.Sprintf("%d/%d", sub.PassedCases, sub.TotalCases)
			fmt.Printf("%-8d %-20s %-8s %-8s %s\n",
				sub.ID,
				verdictColor(sub.Status),
				sub.Language,
				cases,
				sub.Timestamp.Local().Format("2006-01-02 15:04"),
			)
		}
		return nil
	},
}

func verdictColor(status string) string {
	label := api.StatusLabel(status)
	switch status {
	case api.StatusAccepted:
		return color.GreenString(label)
	case api.StatusPending, api.StatusRunning:
		return color.YellowString(label)
	default:
		return color.RedString(label)
	}
}
