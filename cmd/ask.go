package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/teachteam/internal/ui/markdown"
)

var askCmd = &cobra.Command{
	Use:   "ask <agent> <question>",
	Short: "Ask one member of the team a question",
	Long:  "Ask one member of the team a question. The agent is matched by ID or name, e.g. professor or \"Research Librarian\".",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		log, err := stderrLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		team, err := newTeam(cmd.Context(), st.EventRepo(), log)
		if err != nil {
			return err
		}

		answer, err := team.Ask(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if raw {
			fmt.Println(answer)
			return nil
		}
		fmt.Print(markdown.Render(answer, 100))
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("raw", false, "Print raw Markdown instead of rendering it")
}
