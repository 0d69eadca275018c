package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/fieldboard/fieldboard/pkg/api"
	"github.com/fieldboard/fieldboard/pkg/config"
	"github.com/fieldboard/fieldboard/pkg/debug"
	"github.com/fieldboard/fieldboard/pkg/export"
	"github.com/fieldboard/fieldboard/pkg/journal"
	"github.com/fieldboard/fieldboard/pkg/model"
	"github.com/fieldboard/fieldboard/pkg/store"
	"github.com/fieldboard/fieldboard/pkg/ui"
)

const fbVersion = "0.1.0"

func main() {
	server := flag.String("server", "", "Base URL of the issue API (overrides config)")
	configPath := flag.String("config", config.DefaultPath(), "Path to config file")
	refresh := flag.Duration("refresh", 0, "Background reload interval, e.g. 30s (overrides config)")
	exportMap := flag.String("export-map", "", "Write a map snapshot (.svg or .png) and exit")
	journalPath := flag.String("journal", journal.DefaultPath(), "Path to the status-change journal (empty to disable)")
	history := flag.Int("history", 0, "Print the N most recent status changes and exit")
	debugFlag := flag.Bool("debug", false, "Enable debug logging on stderr (same as FB_DEBUG=1)")
	version := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *debugFlag && !debug.Enabled() {
		debug.SetEnabled(true)
	}

	if *help {
		fmt.Println("Usage: fb [options]")
		fmt.Println("\nA TUI dashboard for field-reported issues.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *version {
		fmt.Println("fb version " + fbVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Server = *server
	}
	if *refresh > 0 {
		cfg.RefreshInterval = config.Duration(*refresh)
	}

	client := api.NewClient(cfg.Server)

	if *history > 0 {
		printHistory(*journalPath, *history)
		return
	}

	if *exportMap != "" {
		exportSnapshot(client, cfg, *exportMap)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "fb needs a terminal; use --export-map or --history for headless output")
		os.Exit(1)
	}

	var jrnl *journal.Journal
	if *journalPath != "" {
		jrnl, err = journal.Open(*journalPath)
		if err != nil {
			debug.Log("journal disabled: %v", err)
			jrnl = nil
		} else {
			defer jrnl.Close()
		}
	}

	st := store.New(client)
	m := ui.New(client, st, jrnl, cfg)

	p := tea.NewProgram(m, tea.WithAltScreen())

	stopWatch, err := config.Watch(*configPath, func(reloaded config.Config) {
		if *server != "" {
			reloaded.Server = *server
		}
		p.Send(ui.ConfigReloadedMsg{Config: reloaded})
	})
	if err != nil {
		debug.Log("config watch unavailable: %v", err)
	} else {
		defer stopWatch()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running fb: %v\n", err)
		os.Exit(1)
	}
}

// exportSnapshot fetches the current collection and renders the map image
// without starting the TUI.
func exportSnapshot(client *api.Client, cfg config.Config, path string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	snap, err := export.Collect(ctx, client, model.FilterCriteria{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error collecting snapshot: %v\n", err)
		os.Exit(1)
	}
	if err := export.WriteFile(path, snap, cfg.Export.Width, cfg.Export.Height); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d markers, %d issues)\n", path, len(snap.Markers), snap.Total)
}

// printHistory dumps recent journal entries, newest first.
func printHistory(path string, limit int) {
	if path == "" {
		fmt.Fprintln(os.Stderr, "No journal path configured")
		os.Exit(1)
	}
	jrnl, err := journal.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal: %v\n", err)
		os.Exit(1)
	}
	defer jrnl.Close()

	entries, err := jrnl.Entries(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No recorded status changes.")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %-12s %s -> %s  [%s]\n",
			e.OccurredAt.Format("2006-01-02 15:04"),
			e.IssueID, e.FromStatus, e.ToStatus, e.Result)
	}
}
