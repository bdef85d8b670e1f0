package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rpggio/visitdesk/internal/directory"
	"github.com/rpggio/visitdesk/internal/domain/activity"
	"github.com/rpggio/visitdesk/internal/domain/live"
	"github.com/rpggio/visitdesk/internal/domain/review"
	"github.com/rpggio/visitdesk/internal/domain/session"
	"github.com/rpggio/visitdesk/internal/domain/visit"
	"github.com/rpggio/visitdesk/internal/logging"
	"github.com/rpggio/visitdesk/internal/sqlite"
	"github.com/spf13/cobra"
)

type rehearseOptions struct {
	mode       string
	seconds    int
	tick       time.Duration
	directory  string
	scriptPath string
}

func newRehearseCmd() *cobra.Command {
	opts := rehearseOptions{}

	cmd := &cobra.Command{
		Use:   "rehearse <customer-id>",
		Short: "Run one visit end to end and print what happened",
		Long: `Start a session with a customer, let the live feed run for the given number
of simulated seconds, end the visit and close the review as completed.

Examples:
  visitdesk rehearse p1
  visitdesk rehearse e1 --mode in-person --seconds 30
  visitdesk rehearse p2 --tick 1s   # real time`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRehearse(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", string(visit.ModePhone), "Visit mode (phone, in-person)")
	cmd.Flags().IntVar(&opts.seconds, "seconds", 25, "Simulated seconds of conversation")
	cmd.Flags().DurationVar(&opts.tick, "tick", 50*time.Millisecond, "Wall time per simulated second")
	cmd.Flags().StringVar(&opts.directory, "directory", "", "Directory YAML file (default: built-in)")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "Live feed script YAML (default: built-in)")
	return cmd
}

func runRehearse(ctx context.Context, w io.Writer, customerID string, opts rehearseOptions) error {
	if opts.seconds <= 0 {
		return errors.New("--seconds must be positive")
	}
	if opts.tick <= 0 {
		return errors.New("--tick must be positive")
	}
	mode, err := visit.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	dir, err := directory.Load(opts.directory)
	if err != nil {
		return err
	}
	c, ok := dir.Lookup(customerID)
	if !ok {
		return fmt.Errorf("unknown customer %q", customerID)
	}
	script, err := live.LoadScript(opts.scriptPath)
	if err != nil {
		return err
	}

	db, err := sqlite.Open(sqlite.MemoryDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := logging.Discard()
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	ctrl := session.NewController(session.Options{
		IDs:       visit.NewSequenceGenerator("rehearsal-"),
		Directory: dir,
		Feed:      live.NewFeed(script, opts.tick, nil, logger),
		Activity:  activitySvc,
		Logger:    logger,
	})
	defer ctrl.Close()

	existing := c.IsExisting()
	var st session.State
	if mode == visit.ModeInPerson {
		ctrl.SelectInPersonAutoStart(ctx, c, &existing)
		st = ctrl.StartRecording(ctx)
	} else {
		st = ctrl.StartDirectly(ctx, session.StartRequest{
			CustomerID:  c.ID,
			DisplayName: c.Name,
			Mode:        mode,
		}, &existing)
	}
	if st.Session == nil {
		return errors.New("session did not start")
	}
	fmt.Fprintf(w, "%s %s %s\n", boldStyle.Render("Visiting"), accentStyle.Render(c.Name), mutedStyle.Render("("+string(mode)+")"))

	snap, err := waitForFeed(ctx, ctrl, opts)
	if err != nil {
		return err
	}
	printFeed(w, snap)

	ctrl.EndVisit(ctx)
	if sheet, ok := ctrl.ReviewSheet(); ok {
		printSheet(w, sheet)
	}
	st = ctrl.CloseReview(ctx, review.ActionCompleted)

	entries, err := activitySvc.GetRecentActivity(ctx, activity.ListActivityOptions{CustomerID: activity.Ref(c.ID)})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s back on %s, %d events logged\n", passStyle.Render("Done:"), st.Tab, len(entries))
	return nil
}

// waitForFeed polls the live feed until it has run for opts.seconds.
func waitForFeed(ctx context.Context, ctrl *session.Controller, opts rehearseOptions) (live.Snapshot, error) {
	timeout := time.Duration(opts.seconds)*opts.tick*2 + 5*time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	interval := opts.tick / 2
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	poll := time.NewTicker(interval)
	defer poll.Stop()

	for {
		snap, ok := ctrl.LiveFeed()
		if !ok {
			return live.Snapshot{}, errors.New("live feed is not running")
		}
		if snap.Elapsed >= opts.seconds {
			return snap, nil
		}
		select {
		case <-ctx.Done():
			return snap, fmt.Errorf("waiting for live feed: %w", ctx.Err())
		case <-poll.C:
		}
	}
}

func printFeed(w io.Writer, snap live.Snapshot) {
	fmt.Fprintln(w, boldStyle.Render("Transcript"))
	if len(snap.Transcript) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  (silence)"))
	}
	for _, line := range snap.Transcript {
		role := line.Role
		if role == live.RoleRep {
			role = accentStyle.Render(role)
		}
		fmt.Fprintf(w, "  %s %s: %s\n", mutedStyle.Render(fmt.Sprintf("%02ds", line.Second)), role, line.Text)
	}
	for _, tip := range snap.Tips {
		fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("tip"), tip)
	}
	fmt.Fprintf(w, "  talk time: rep %ds, customer %ds\n", snap.RepTalk, snap.CustomerTalk)
}

func printSheet(w io.Writer, sheet review.SheetView) {
	fmt.Fprintln(w, boldStyle.Render("Review"))
	for _, t := range sheet.Tasks {
		mark := "[ ]"
		if t.IsSelected {
			mark = passStyle.Render("[x]")
		}
		fmt.Fprintf(w, "  %s %s %s\n", mark, t.Text, mutedStyle.Render(t.Priority))
	}
	for _, m := range sheet.Coaching {
		fmt.Fprintf(w, "  %s %s %d\n", m.Icon, m.Label, m.Score)
	}
	fmt.Fprintf(w, "  next visit: %s %s %s\n", sheet.NextVisit.Date, sheet.NextVisit.Time, sheet.NextVisit.Goal)
}
