package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/focuskeeper/internal/client/queue"
	"github.com/iudanet/focuskeeper/internal/models"
)

// statusReport сводка состояния клиента
type statusReport struct {
	LastPush  time.Time      `json:"last_push,omitzero" yaml:"last_push,omitempty"`
	Entities  map[string]int `json:"entities" yaml:"entities"`
	LastPull  string         `json:"last_pull_watermark,omitempty" yaml:"last_pull_watermark,omitempty"`
	ServerURL string         `json:"server_url" yaml:"server_url"`
	UserID    string         `json:"user_id" yaml:"user_id"`
	Queue     queue.Counts   `json:"queue" yaml:"queue"`
	Online    bool           `json:"online" yaml:"online"`
}

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity, queue and local data counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	report := statusReport{
		ServerURL: c.cfg.ServerURL,
		UserID:    c.cfg.UserID,
		Entities:  make(map[string]int),
	}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	report.Online = c.app.Network.Probe(probeCtx)
	cancel()

	counts, err := c.app.Queue.Counts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count sync queue: %w", err)
	}
	report.Queue = counts

	for _, t := range models.AllEntityTypes {
		n, err := c.data.Count(ctx, t)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", t, err)
		}
		report.Entities[string(t)] = n
	}

	if wm, err := c.app.Storage.GetLastPullTime(ctx); err == nil {
		report.LastPull = wm
	}
	report.LastPush = c.app.State.Snapshot().LastSyncTime

	if c.jsonOut {
		return c.printJSON(report)
	}

	c.printTitle("Status")
	c.io.Printf("Server:   %s\n", report.ServerURL)
	c.io.Printf("User:     %s\n", report.UserID)
	if report.Online {
		c.io.Println("Network:  online")
	} else {
		c.io.Println("Network:  offline")
	}
	if !report.LastPush.IsZero() {
		c.io.Printf("Last push: %s\n", report.LastPush.Local().Format(time.DateTime))
	}
	if report.LastPull != "" {
		c.io.Printf("Pulled up to: %s\n", report.LastPull)
	}
	c.io.Println()

	pending := counts.Pending + counts.Processing
	switch {
	case pending == 0 && counts.Failed == 0:
		c.io.Println("✓ All local changes are on the server")
	default:
		if pending > 0 {
			c.io.Printf("Pending sync: %d change(s) waiting to be pushed\n", pending)
			c.io.Println("Run 'focuskeeper sync' to push them now.")
		}
		if counts.Failed > 0 {
			c.io.Printf("Rejected: %d change(s), see 'focuskeeper queue list'\n", counts.Failed)
		}
	}
	c.io.Println()

	rows := make([][]string, 0, len(report.Entities))
	for _, t := range models.AllEntityTypes {
		rows = append(rows, []string{string(t), fmt.Sprint(report.Entities[string(t)])})
	}
	if c.io.IsTerminal() {
		c.printTable([]string{"type", "count"}, rows)
	} else {
		for _, row := range rows {
			c.io.Printf("%-16s %s\n", row[0], row[1])
		}
	}
	return nil
}
