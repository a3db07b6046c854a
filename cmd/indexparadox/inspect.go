package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ivlev/indexparadox/internal/director"
	"github.com/ivlev/indexparadox/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - headers

	sceneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")) // Cyan - scene names

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - indices, holds

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")) // Green

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // Yellow
)

func (c *InspectCmd) Run(g *Globals) error {
	doc, err := c.document(g)
	if err != nil {
		return err
	}
	return printDocument(os.Stdout, doc, c.Scene)
}

func (c *InspectCmd) document(g *Globals) (*director.Document, error) {
	if c.Schedule != "" {
		return director.ReadDocument(c.Schedule)
	}
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}
	c.Overrides.apply(cfg)

	if c.Latest {
		path, err := director.FindLatestSchedule(cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		fmt.Printf("[*] Расписание: %s\n", path)
		return director.ReadDocument(path)
	}

	p, err := engine.NewProject(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := signalContext()
	defer cancel()
	_, sched, err := p.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return director.Export(sched), nil
}

// printDocument renders the scene summary and the beat table.
func printDocument(w io.Writer, doc *director.Document, only string) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%-18s %8s %8s %8s  %s", "SCENE", "START", "END", "LENGTH", "WINDOW")))
	b.WriteString("\n")
	for _, sc := range doc.Scenes {
		if only != "" && sc.Name != only {
			continue
		}
		length := sc.End - sc.Start
		window := dimStyle.Render("-")
		if sc.Window != nil {
			text := fmt.Sprintf("[%.1f, %.1f]", sc.Window.Min, sc.Window.Max)
			if sc.Window.Check(length) != nil {
				window = warnStyle.Render(text + " miss")
			} else {
				window = okStyle.Render(text)
			}
		}
		fmt.Fprintf(&b, "%s %s %s %s  %s\n",
			sceneStyle.Render(fmt.Sprintf("%-18s", sc.Name)),
			valueStyle.Render(fmt.Sprintf("%8.2f", sc.Start)),
			valueStyle.Render(fmt.Sprintf("%8.2f", sc.End)),
			valueStyle.Render(fmt.Sprintf("%8.2f", length)),
			window)
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render(fmt.Sprintf("%-18s %4s  %-20s %8s %8s %6s %7s", "SCENE", "#", "BEAT", "START", "END", "HOLD", "CLIPS")))
	b.WriteString("\n")
	type beatKey struct {
		scene string
		index int
	}
	clips := make(map[beatKey]int)
	for _, e := range doc.Entries {
		clips[beatKey{e.Scene, e.Beat}]++
	}
	shown := 0
	for _, beat := range doc.Beats {
		if only != "" && beat.Scene != only {
			continue
		}
		shown++
		fmt.Fprintf(&b, "%s %s  %s %s %s %s %s\n",
			sceneStyle.Render(fmt.Sprintf("%-18s", beat.Scene)),
			dimStyle.Render(fmt.Sprintf("%4d", beat.Index)),
			valueStyle.Render(fmt.Sprintf("%-20s", beat.Label)),
			valueStyle.Render(fmt.Sprintf("%8.2f", beat.Start)),
			valueStyle.Render(fmt.Sprintf("%8.2f", beat.End)),
			dimStyle.Render(fmt.Sprintf("%6.2f", beat.Hold)),
			dimStyle.Render(fmt.Sprintf("%7d", clips[beatKey{beat.Scene, beat.Index}])))
	}
	if only != "" && shown == 0 {
		return fmt.Errorf("no beats for scene %q", only)
	}
	fmt.Fprintf(&b, "\n%s %.2fs\n", titleStyle.Render("TOTAL"), doc.Total)

	_, err := io.WriteString(w, b.String())
	return err
}
