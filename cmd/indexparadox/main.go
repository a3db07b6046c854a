// Command indexparadox resolves the narrative scenes into a schedule.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ivlev/indexparadox/internal/engine"
	"github.com/joho/godotenv"
)

func init() {
	// Load .env so INDEXPARADOX_* variables reach kong.
	_ = godotenv.Load()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("indexparadox"),
		kong.Description("Procedural scene composer for The Index Paradox."),
		kong.UsageOnError(),
		kongVars(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (r *RenderCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	r.apply(cfg)

	p, err := engine.NewProject(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	_, err = p.Run(ctx)
	return err
}

func (v *VersionCmd) Run(g *Globals) error {
	fmt.Printf("indexparadox %s (built %s)\n", version, buildTime)
	return nil
}
