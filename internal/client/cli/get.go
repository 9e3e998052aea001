package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/models"
)

func (c *Cli) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> <id>",
		Short: "Show all fields of an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entityTypeArg(args[0])
			if err != nil {
				return err
			}
			return c.runGet(cmd.Context(), t, args[1])
		},
	}
}

func (c *Cli) runGet(ctx context.Context, t models.EntityType, id string) error {
	e := models.NewEntity(t)
	if err := c.data.Get(ctx, id, e); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return fmt.Errorf("%s not found with ID: %s", t, id)
		}
		return err
	}
	return c.printEntities(e)
}
