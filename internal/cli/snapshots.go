package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	apperrors "github.com/chidanandgowda/huffman-coding/pkg/errors"
	"github.com/chidanandgowda/huffman-coding/pkg/render"
)

// snapshotsCommand creates the snapshots command group.
func (c *CLI) snapshotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshots",
		Aliases: []string{"snap"},
		Short:   "Manage saved tree snapshots",
	}

	cmd.AddCommand(c.snapshotsListCommand())
	cmd.AddCommand(c.snapshotsShowCommand())
	cmd.AddCommand(c.snapshotsExportCommand())
	cmd.AddCommand(c.snapshotsDeleteCommand())

	return cmd
}

// snapshotsListCommand creates the "snapshots list" subcommand.
func (c *CLI) snapshotsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer store.Close()

			infos, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list snapshots: %w", err)
			}
			if len(infos) == 0 {
				printInfo("No snapshots saved yet")
				printNextStep("Save one", fmt.Sprintf("%s build <file> --save <name>", appName))
				return nil
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					info.ID,
					info.Name,
					info.Source,
					fmt.Sprintf("%d", info.Symbols),
					fmt.Sprintf("%d", info.TotalBytes),
					info.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Name", "Source", "Symbols", "Bytes", "Created").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return StyleDim
					}
					return StyleValue
				})
			fmt.Println(t.Render())
			return nil
		},
	}
}

// snapshotsShowCommand creates the "snapshots show" subcommand.
func (c *CLI) snapshotsShowCommand() *cobra.Command {
	var codes bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a snapshot's tree and stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.getSnapshot(cmd, args[0])
			if err != nil {
				return err
			}

			printKeyValue("id", doc.ID)
			printKeyValue("name", doc.Name)
			printKeyValue("source", doc.Source)
			printKeyValue("created", doc.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			printKeyValue("bytes", fmt.Sprintf("%d", doc.TotalBytes))
			printKeyValue("symbols", fmt.Sprintf("%d", len(doc.Frequencies)))
			printNewline()

			tree, _ := doc.Tree()
			fmt.Print(render.Text(tree, render.TextOptions{ShowCodes: codes}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&codes, "codes", false, "annotate leaves with their bit codes")
	return cmd
}

// snapshotsExportCommand creates the "snapshots export" subcommand.
func (c *CLI) snapshotsExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a snapshot's tree document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.getSnapshot(cmd, args[0])
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				data, err := render.Marshal(doc)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := render.WriteDocumentFile(doc, output); err != nil {
				return fmt.Errorf("export snapshot: %w", err)
			}
			printSuccess("Exported snapshot %s", doc.ID)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// snapshotsDeleteCommand creates the "snapshots delete" subcommand.
func (c *CLI) snapshotsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete snapshot: %w", err)
			}
			printSuccess("Deleted snapshot %s", args[0])
			return nil
		},
	}
}

// getSnapshot loads one snapshot document, exiting with a clear message
// when the id is unknown.
func (c *CLI) getSnapshot(cmd *cobra.Command, id string) (*render.Document, error) {
	store, err := c.newStore(cmd)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	doc, err := store.Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	if doc == nil {
		printNextStep("List snapshots", fmt.Sprintf("%s snapshots list", appName))
		return nil, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "no snapshot with id %s", id)
	}
	return doc, nil
}
