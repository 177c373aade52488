package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/handiism/baran-dl/internal/download"
	"github.com/handiism/baran-dl/internal/library"
	"github.com/handiism/baran-dl/internal/model"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("204"))
)

// printer writes progress events, styled when out is a terminal.
type printer struct {
	mu      sync.Mutex
	out     io.Writer
	styled  bool
	verbose bool
}

func newPrinter(out *os.File, verbose bool) *printer {
	fd := out.Fd()
	return &printer{
		out:     out,
		styled:  isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		verbose: verbose,
	}
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// event prints one progress event.
func (p *printer) event(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !p.verbose {
		return
	}

	var line string
	switch event.Level {
	case download.LevelError:
		line = p.render(errorStyle, "[error] "+event.Message)
	case download.LevelWarning:
		line = p.render(warningStyle, "[warn]  "+event.Message)
	case download.LevelSuccess:
		line = p.render(successStyle, "[ok]    "+event.Message)
	case download.LevelInfo:
		line = p.render(infoStyle, "[info]  "+event.Message)
	default:
		line = p.render(dimStyle, "        "+event.Message)
	}

	p.println(line)
}

func (p *printer) title(s string) {
	p.println(p.render(titleStyle, s))
}

func (p *printer) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, s)
}

// library lists what the scan found. Names are only printed in verbose mode.
func (p *printer) library(snap *library.Snapshot) {
	for _, kind := range model.Kinds {
		p.println(fmt.Sprintf("  %-7s %d in library", kind.String()+"s:", snap.Len(kind)))
		if !p.verbose {
			continue
		}
		for _, name := range snap.Names(kind) {
			p.println(p.render(dimStyle, "    "+name))
		}
	}
}

func (p *printer) summary(s *download.Summary) {
	p.println("")
	p.title("Done: " + s.Artist.Name)
	p.println(fmt.Sprintf("  Library:    %d albums, %d tracks", s.LibraryAlbums, s.LibraryTracks))
	p.println(fmt.Sprintf("  Result:     %d albums, %d tracks", s.Albums, s.Tracks))
	p.println(fmt.Sprintf("  Existing:   %d", s.Existing))
	p.println(fmt.Sprintf("  Resolved:   %d", s.Resolved))
	if s.Failed > 0 {
		p.println(p.render(warningStyle, fmt.Sprintf("  Failed:     %d", s.Failed)))
	}
	if s.Downloaded > 0 {
		p.println(fmt.Sprintf("  Downloaded: %d", s.Downloaded))
	}
	p.println("  Output:     " + s.OutputPath)
}
