package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/handiism/baran-dl/internal/config"
	"github.com/handiism/baran-dl/internal/download"
	"github.com/handiism/baran-dl/internal/model"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitCancelled = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configFlag     = flag.String("config", config.DefaultPath(), "Path to config file")
		musicDirFlag   = flag.String("music-dir", "", "Music library root (overrides config)")
		outputFlag     = flag.String("output", "", "Directory for the result file (overrides config)")
		driverFlag     = flag.String("driver", "", "Page driver: rod or static (overrides config)")
		timeoutFlag    = flag.Int("timeout", 0, "Navigation timeout in seconds (overrides config)")
		workersFlag    = flag.Int("workers", 0, "Detail pages processed concurrently (overrides config)")
		downloadFlag   = flag.Bool("download", false, "Download missing items into the library")
		playlistFlag   = flag.Bool("playlist", false, "Create a playlist for downloaded albums")
		lowBitrateFlag = flag.Bool("allow-128", false, "Accept 128 kbps links when nothing better exists")
		skipFlag       = flag.Bool("skip-unreadable", false, "Skip library folders that cannot be read")
		headfulFlag    = flag.Bool("show-browser", false, "Show the browser window")
		verboseFlag    = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag     = flag.Bool("dry-run", false, "Scan the library only, without touching the network")
		saveConfigFlag = flag.Bool("save-config", false, "Write the effective settings to the config file")
	)

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		return exitUsage
	}
	artist := strings.Join(flag.Args(), " ")

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitUsage
	}

	// Apply flags
	if *musicDirFlag != "" {
		settings.MusicDir = *musicDirFlag
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *driverFlag != "" {
		settings.Driver = *driverFlag
	}
	if *timeoutFlag > 0 {
		settings.NavigationTimeout = *timeoutFlag
	}
	if *workersFlag > 0 {
		settings.MaxConcurrentPages = *workersFlag
	}
	if *downloadFlag {
		settings.Download = true
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *lowBitrateFlag {
		settings.AllowLowBitrate = true
	}
	if *skipFlag {
		settings.SkipUnreadable = true
	}
	if *headfulFlag {
		settings.Headless = false
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		return exitUsage
	}
	if model.NewArtist(artist).Name == "" {
		fmt.Fprintln(os.Stderr, "Artist name is empty")
		return exitUsage
	}

	if *saveConfigFlag {
		if err := settings.Save(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			return exitFailure
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := newPrinter(os.Stdout, *verboseFlag)
	manager := download.NewManager(settings, out.event)

	out.title("baran-dl")
	out.println("")

	if *dryRunFlag {
		snap, err := manager.Scan(ctx, artist)
		if err != nil {
			return fail(ctx, err)
		}
		out.println("")
		out.library(snap)
		out.println("")
		out.println("[Dry run - site not contacted]")
		return exitOK
	}

	summary, err := manager.Run(ctx, artist)
	if err != nil {
		return fail(ctx, err)
	}

	out.summary(summary)
	return exitOK
}

func fail(ctx context.Context, err error) int {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "\nCancelled.")
		return exitCancelled
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitFailure
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w, "baran-dl - find the albums and tracks missing from your music library")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  baran-dl [options] <artist>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Writes <artist>.json mapping every album and track the site lists to its")
	fmt.Fprintln(w, "download URL, or to \"\" when it is already in the library.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "For interactive mode, use: baran-tui")
	fmt.Fprintln(w)
	flag.PrintDefaults()
}
