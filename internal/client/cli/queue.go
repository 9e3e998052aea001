package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/focuskeeper/internal/models"
)

func (c *Cli) queueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the sync queue",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "Show queued changes in FIFO order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runQueueList(cmd.Context(), models.QueueStatus(status))
		},
	}
	list.Flags().StringVar(&status, "status", "", "only items with this status: pending, processing or failed")

	retry := &cobra.Command{
		Use:   "retry",
		Short: "Move rejected changes back to pending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.app.Push.RetryFailedItems(cmd.Context())
			if err != nil {
				return err
			}
			c.io.Printf("✓ %d item(s) will be pushed again\n", n)
			return nil
		},
	}

	clearFailed := &cobra.Command{
		Use:   "clear-failed",
		Short: "Discard rejected changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.app.Push.ClearFailedItems(cmd.Context())
			if err != nil {
				return err
			}
			c.io.Printf("✓ %d failed item(s) removed\n", n)
			return nil
		},
	}

	var yes bool
	clearAll := &cobra.Command{
		Use:   "clear",
		Short: "Discard every queued change; local data is kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runQueueClear(cmd.Context(), yes)
		},
	}
	clearAll.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, retry, clearFailed, clearAll)
	return cmd
}

func (c *Cli) runQueueList(ctx context.Context, status models.QueueStatus) error {
	items, err := c.app.Queue.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sync queue: %w", err)
	}

	if status != "" {
		filtered := items[:0]
		for _, item := range items {
			if item.Status == status {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if c.jsonOut || !c.io.IsTerminal() {
		if items == nil {
			items = []*models.SyncQueueItem{}
		}
		return c.printData(items)
	}

	if len(items) == 0 {
		c.io.Println("Sync queue is empty.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			fmt.Sprint(item.Seq),
			string(item.Operation),
			string(item.EntityType),
			item.EntityID,
			string(item.Status),
			fmt.Sprint(item.AttemptCount),
			formatCell(item.ErrorMessage),
		})
	}
	c.printTitle(fmt.Sprintf("Sync queue (%d)", len(items)))
	c.printTable([]string{"seq", "operation", "type", "entity", "status", "attempts", "error"}, rows)
	return nil
}

func (c *Cli) runQueueClear(ctx context.Context, yes bool) error {
	if !yes {
		confirm, err := c.io.ReadInput("Discard every queued change? They will never reach the server. (yes/no): ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if confirm != "yes" && confirm != "y" {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	if err := c.app.Queue.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear sync queue: %w", err)
	}
	if err := c.app.Push.RefreshCounts(ctx); err != nil {
		return err
	}
	c.io.Println("✓ Sync queue cleared")
	return nil
}
