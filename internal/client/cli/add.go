package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/focuskeeper/internal/client/storage"
	"github.com/iudanet/focuskeeper/internal/models"
)

// immutableKeys не меняются через update
var immutableKeys = map[string]bool{
	"id":         true,
	"user_id":    true,
	"created_at": true,
	"updated_at": true,
}

func (c *Cli) addCommand() *cobra.Command {
	var (
		dataJSON string
		syncNow  bool
	)

	cmd := &cobra.Command{
		Use:   "add <type>",
		Short: "Add an entity",
		Long: "Add an entity. Fields come from --data or are asked interactively.\n" +
			"Types: " + entityTypeNames(),
		Example: `  focuskeeper add project
  focuskeeper add mood_entry --data '{"level":4,"notes":"after lunch"}' --sync`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entityTypeArg(args[0])
			if err != nil {
				return err
			}
			return c.runAdd(cmd.Context(), t, dataJSON, syncNow)
		},
	}
	cmd.Flags().StringVar(&dataJSON, "data", "", "entity fields as a JSON object")
	cmd.Flags().BoolVar(&syncNow, "sync", false, "push the change right away")

	return cmd
}

func (c *Cli) runAdd(ctx context.Context, t models.EntityType, dataJSON string, syncNow bool) error {
	var (
		e   models.Entity
		err error
	)
	if dataJSON != "" {
		e, err = parseEntity(t, []byte(dataJSON))
	} else {
		c.printTitle("Add " + string(t))
		e, err = c.promptEntity(t, time.Now())
	}
	if err != nil {
		return err
	}

	e.Meta().UserID = c.cfg.UserID

	if err := c.data.Create(ctx, e); err != nil {
		return fmt.Errorf("failed to add %s: %w", t, err)
	}

	c.io.Println()
	c.io.Printf("✓ Added %s %s\n", t, e.Meta().ID)

	return c.afterChange(ctx, syncNow)
}

func (c *Cli) updateCommand() *cobra.Command {
	var (
		dataJSON string
		syncNow  bool
	)

	cmd := &cobra.Command{
		Use:   "update <type> <id>",
		Short: "Change fields of an entity",
		Long: "Change fields of an entity. --data is merged onto the stored entity; without it every\n" +
			"field is asked interactively and an empty answer keeps the current value.",
		Example: `  focuskeeper update small_task 3f1c... --data '{"completed":true}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entityTypeArg(args[0])
			if err != nil {
				return err
			}
			return c.runUpdate(cmd.Context(), t, args[1], dataJSON, syncNow)
		},
	}
	cmd.Flags().StringVar(&dataJSON, "data", "", "fields to change as a JSON object")
	cmd.Flags().BoolVar(&syncNow, "sync", false, "push the change right away")

	return cmd
}

func (c *Cli) runUpdate(ctx context.Context, t models.EntityType, id, dataJSON string, syncNow bool) error {
	existing := models.NewEntity(t)
	if err := c.data.Get(ctx, id, existing); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return fmt.Errorf("%s not found with ID: %s", t, id)
		}
		return err
	}

	current, err := toMap(existing)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", t, err)
	}

	var patch map[string]any
	if dataJSON != "" {
		if err := json.Unmarshal([]byte(dataJSON), &patch); err != nil {
			return fmt.Errorf("invalid --data: %w", err)
		}
	} else {
		c.printTitle("Update " + string(t))
		patch, err = c.promptPatch(t, current, time.Now())
		if err != nil {
			return err
		}
	}

	for k, v := range patch {
		if immutableKeys[k] {
			continue
		}
		current[k] = v
	}

	e, err := decodeEntity(t, current)
	if err != nil {
		return err
	}

	if err := c.data.Update(ctx, e); err != nil {
		return fmt.Errorf("failed to update %s: %w", t, err)
	}

	c.io.Println()
	c.io.Printf("✓ Updated %s %s\n", t, id)

	return c.afterChange(ctx, syncNow)
}

// promptPatch asks for every field showing its current value. Empty answers keep it.
func (c *Cli) promptPatch(t models.EntityType, current map[string]any, now time.Time) (map[string]any, error) {
	patch := make(map[string]any)
	for _, f := range entityFields[t] {
		raw, err := c.io.ReadInput(fmt.Sprintf("%s [%s]: ", f.prompt, formatCell(current[f.key])))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.key, err)
		}
		if raw == "" {
			continue
		}
		v, err := parseField(f, raw, now)
		if err != nil {
			return nil, err
		}
		patch[f.key] = v
	}
	return patch, nil
}

func (c *Cli) deleteCommand() *cobra.Command {
	var (
		yes     bool
		syncNow bool
	)

	cmd := &cobra.Command{
		Use:   "delete <type> <id>",
		Short: "Delete an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entityTypeArg(args[0])
			if err != nil {
				return err
			}
			return c.runDelete(cmd.Context(), t, args[1], yes, syncNow)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&syncNow, "sync", false, "push the change right away")

	return cmd
}

func (c *Cli) runDelete(ctx context.Context, t models.EntityType, id string, yes, syncNow bool) error {
	existing := models.NewEntity(t)
	if err := c.data.Get(ctx, id, existing); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			return fmt.Errorf("%s not found with ID: %s", t, id)
		}
		return err
	}

	if !yes {
		c.io.Println("About to delete:")
		if err := c.printEntities(existing); err != nil {
			return err
		}
		confirm, err := c.io.ReadInput("Are you sure? (yes/no): ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if confirm != "yes" && confirm != "y" {
			c.io.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := c.data.Delete(ctx, t, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", t, err)
	}

	c.io.Printf("✓ Deleted %s %s\n", t, id)

	return c.afterChange(ctx, syncNow)
}

// afterChange pushes the queue when asked, otherwise reminds that the change is queued.
func (c *Cli) afterChange(ctx context.Context, syncNow bool) error {
	if !syncNow {
		c.io.Println("The change is queued. Run 'focuskeeper sync' to push it now.")
		return nil
	}
	return c.runSync(ctx)
}
