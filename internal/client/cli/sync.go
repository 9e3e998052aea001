package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	fksync "github.com/iudanet/focuskeeper/internal/client/sync"
)

// syncReport результат команды sync
type syncReport struct {
	Pull *fksync.PullResult `json:"pull,omitempty" yaml:"pull,omitempty"`
	Push fksync.PushResult  `json:"push" yaml:"push"`
}

func (c *Cli) syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push the sync queue and pull remote changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runSync(cmd.Context())
		},
	}
}

func (c *Cli) pullCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Pull remote changes without pushing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runPull(cmd.Context())
		},
	}
}

// connect checks the server and releases items left in processing by an interrupted run.
func (c *Cli) connect(ctx context.Context) error {
	if n, err := c.app.Queue.RecoverProcessing(ctx); err != nil {
		return fmt.Errorf("failed to recover sync queue: %w", err)
	} else if n > 0 {
		c.logger.Info("Recovered interrupted queue items", "count", n)
	}

	if !c.app.Network.Probe(ctx) {
		return fmt.Errorf("server %s is unreachable: %w", c.cfg.ServerURL, fksync.ErrOffline)
	}
	return nil
}

func (c *Cli) runSync(ctx context.Context) error {
	if err := c.connect(ctx); err != nil {
		return err
	}

	var report syncReport
	push, err := c.app.Push.ForceSync(ctx)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	report.Push = push

	// Pull только если проход не был прерван
	if !push.Stopped {
		report.Pull = c.app.Pull.PullFromCloud(ctx, c.cfg.UserID)
	}

	if c.jsonOut {
		if err := c.printJSON(report); err != nil {
			return err
		}
	} else {
		c.printTitle("Synchronization")
		c.printPush(push)
		if report.Pull != nil {
			c.printPull(report.Pull)
		} else {
			c.io.Println("Pull skipped: the push pass was interrupted.")
		}
	}

	if report.Pull != nil && report.Pull.Err != nil {
		return fmt.Errorf("pull failed: %w", report.Pull.Err)
	}
	if push.Failed > 0 {
		c.io.Println()
		c.io.Println("Some changes were rejected. Run 'focuskeeper queue list' for details.")
	}
	return nil
}

func (c *Cli) runPull(ctx context.Context) error {
	if err := c.connect(ctx); err != nil {
		return err
	}

	result := c.app.Pull.PullFromCloud(ctx, c.cfg.UserID)

	if c.jsonOut {
		if err := c.printJSON(result); err != nil {
			return err
		}
	} else {
		c.printTitle("Pull")
		c.printPull(result)
	}

	if result.Err != nil {
		return fmt.Errorf("pull failed: %w", result.Err)
	}
	return nil
}

func (c *Cli) printPush(r fksync.PushResult) {
	c.io.Printf("Pushed to server:   %d\n", r.Pushed)
	if r.Retried > 0 {
		c.io.Printf("Scheduled to retry: %d\n", r.Retried)
	}
	if r.Failed > 0 {
		c.io.Printf("Rejected:           %d\n", r.Failed)
	}
	if r.Skipped > 0 {
		c.io.Printf("Waiting:            %d\n", r.Skipped)
	}
}

func (c *Cli) printPull(r *fksync.PullResult) {
	switch {
	case r.InProgress:
		c.io.Println("Another pull is already running.")
		return
	case r.Offline:
		c.io.Println("Offline, nothing pulled.")
		return
	}

	c.io.Printf("Fetched from server: %d\n", r.Fetched)
	c.io.Printf("New locally:         %d\n", r.Inserted)
	c.io.Printf("Updated locally:     %d\n", r.Updated)
	c.io.Printf("Kept local version:  %d\n", r.Unchanged)
	if r.Failed > 0 {
		c.io.Printf("Failed to merge:     %d\n", r.Failed)
	}
}
