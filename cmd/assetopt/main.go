package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/assetopt/cmd/assetopt/internal/commands"
	"github.com/wolfeidau/assetopt/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Build   commands.BuildCmd `cmd:"" help:"Optimize assets once"`
		Watch   commands.WatchCmd `cmd:"" help:"Optimize assets and rebuild on change"`
		Debug   bool              `help:"Enable debug mode."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	l := logger.Setup(cli.Debug)
	log.Logger = l
	logger.Install(l)

	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
