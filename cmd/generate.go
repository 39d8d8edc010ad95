package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/badges"
	"github.com/abhisek/teachteam/internal/export"
	"github.com/abhisek/teachteam/internal/session"
	"github.com/abhisek/teachteam/internal/ui/markdown"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate the four learning documents for a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		styleFlag, _ := cmd.Flags().GetString("style")
		progress, _ := cmd.Flags().GetInt("progress")
		exportDir, _ := cmd.Flags().GetString("export")
		targetFlag, _ := cmd.Flags().GetString("target")
		raw, _ := cmd.Flags().GetBool("raw")
		width, _ := cmd.Flags().GetInt("width")

		style, err := session.ParseLearningStyle(styleFlag)
		if err != nil {
			return err
		}
		target, err := export.ParseTarget(targetFlag)
		if err != nil {
			return err
		}

		sess := session.New(badges.DefaultRules())
		if err := sess.SetTopic(strings.Join(args, " ")); err != nil {
			return err
		}
		sess.SetLearningStyle(style)
		if err := sess.AdjustProgress(progress); err != nil {
			return err
		}

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

		fmt.Fprintf(os.Stderr, "Asking the team about %q...\n", sess.Topic)
		content, err := team.GenerateAll(cmd.Context(), agents.Brief{
			Topic:    sess.Topic,
			Style:    sess.LearningStyle,
			Progress: sess.Progress,
		})
		if err != nil {
			return fmt.Errorf("generate content: %w", err)
		}
		sess.SetContent(*content)

		doc := export.Markdown(sess.Snapshot(), sess.Content, target)
		if exportDir != "" {
			path, err := export.WriteFile(exportDir, doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, doc.Hint)
			fmt.Fprintln(os.Stderr, "Wrote", path)
			return nil
		}

		if raw {
			fmt.Print(doc.Markdown)
			return nil
		}
		fmt.Print(markdown.Render(doc.Markdown, width))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("style", "s", string(session.StyleVisual), "Learning style: visual, auditory, kinesthetic or reading/writing")
	generateCmd.Flags().IntP("progress", "p", 0, "Current progress in percent (0-100)")
	generateCmd.Flags().StringP("export", "o", "", "Write the document to this directory instead of printing it")
	generateCmd.Flags().String("target", string(export.GoogleDocs), "Export target: google-docs or notion")
	generateCmd.Flags().Bool("raw", false, "Print raw Markdown instead of rendering it")
	generateCmd.Flags().Int("width", 100, "Word-wrap width for rendered output")
}
