package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/focuskeeper/internal/models"
)

func (c *Cli) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <type>",
		Short: "List stored entities of a type",
		Long: "List stored entities of a type. A table is printed on a terminal, YAML otherwise.\n" +
			"Types: " + entityTypeNames(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entityTypeArg(args[0])
			if err != nil {
				return err
			}
			return c.runList(cmd.Context(), t)
		},
	}
}

func (c *Cli) runList(ctx context.Context, t models.EntityType) error {
	entities, err := c.data.List(ctx, t, c.cfg.UserID)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", t, err)
	}

	if c.jsonOut || !c.io.IsTerminal() {
		return c.printEntities(entities)
	}

	if len(entities) == 0 {
		c.io.Printf("No %s found.\n", t)
		c.io.Println()
		c.io.Printf("Use 'focuskeeper add %s' to add one.\n", t)
		return nil
	}

	headers := listColumns(t)
	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		m, err := toMap(e)
		if err != nil {
			return fmt.Errorf("failed to render %s %s: %w", t, e.Meta().ID, err)
		}
		row := make([]string, len(headers))
		for i, key := range headers {
			row[i] = formatCell(m[key])
		}
		rows = append(rows, row)
	}

	c.printTitle(fmt.Sprintf("%s (%d)", t, len(entities)))
	c.printTable(headers, rows)
	return nil
}

// listColumns returns the table columns of t: id, the prompted fields and updated_at.
func listColumns(t models.EntityType) []string {
	fields := entityFields[t]
	cols := make([]string, 0, len(fields)+2)
	cols = append(cols, "id")
	for _, f := range fields {
		cols = append(cols, f.key)
	}
	return append(cols, "updated_at")
}
