package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/search"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the teaching team",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := search.ConfigFromEnv().Resolved()

		fmt.Printf("%-20s  %-20s  %-36s  %s\n", "ID", "Name", "Role", "Search")
		fmt.Println(strings.Repeat("─", 90))
		for _, a := range agents.Roster() {
			tool := "-"
			if a.UsesSearch && backend != search.ProviderNone {
				tool = backend
			}
			fmt.Printf("%-20s  %-20s  %-36s  %s\n", a.ID, a.Name, truncate(a.Role, 36), tool)
		}
		return nil
	},
}
