package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/celebration/internal/diag"
	"github.com/vovakirdan/celebration/internal/platform/tui"
	"github.com/vovakirdan/celebration/internal/storage"
)

var (
	flagJournalLimit  int
	flagJournalClear  bool
	flagJournalBrowse bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recent session events",
	Long: `List session lifecycle events (started, won, reset, disabled) from the
journal, newest first. Scores are not journaled.

Examples:
  celebration journal
  celebration journal --limit 100
  celebration journal --browse
  celebration journal --clear`,
	Args: cobra.NoArgs,
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().IntVar(&flagJournalLimit, "limit", 20, "Number of events to show")
	journalCmd.Flags().BoolVar(&flagJournalClear, "clear", false, "Delete all recorded events")
	journalCmd.Flags().BoolVar(&flagJournalBrowse, "browse", false, "Browse events in an interactive table")
}

func runJournal(_ *cobra.Command, _ []string) {
	journal, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}
	defer journal.Close()

	if flagJournalClear {
		if err := journal.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Journal cleared.")
		return
	}

	events, err := journal.RecentEvents(flagJournalLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving events: %v\n", err)
		os.Exit(1)
	}

	if flagJournalBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunJournal(events, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Session Journal")
	fmt.Println()

	if len(events) == 0 {
		fmt.Println("No events recorded yet.")
		fmt.Println()
		fmt.Println("Run 'celebration play' to start a session.")
		return
	}

	fmt.Printf("  %-19s  %-9s  %-8s  %-8s  %s\n", "When", "Kind", "State", "Session", "Message")
	fmt.Printf("  %-19s  %-9s  %-8s  %-8s  %s\n", "----", "----", "-----", "-------", "-------")

	for _, e := range events {
		msg := e.Message
		if e.Detail != "" {
			msg = e.Detail
		}
		session := e.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		fmt.Printf("  %-19s  %-9s  %-8s  %-8s  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Kind, e.State, session, msg)
	}

	counts, err := journal.EventCounts()
	if err != nil {
		return
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	fmt.Println()
	fmt.Print("Totals:")
	for _, k := range kinds {
		fmt.Printf(" %s=%d", k, counts[diag.Kind(k)])
	}
	fmt.Println()
}
