package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/pipeline"
	"git.home.luguber.info/inful/sitebuilder/internal/scaffold"
	"git.home.luguber.info/inful/sitebuilder/internal/version"
)

var CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Build struct {
		Site     string `short:"s" help:"Site name (overrides SITEBUILDER_SITE)"`
		SitesDir string `help:"Sites directory (overrides SITEBUILDER_SITES_DIR)"`
		Env      string `short:"e" help:"Build environment" enum:"dev,prod" default:"dev"`
		File     string `short:"f" help:"Build a single content file, skipping cross-document state"`
	} `cmd:"" help:"Build a site into its output directory"`

	Init struct {
		Name     string `arg:"" help:"Name of the new site"`
		SitesDir string `help:"Sites directory (overrides SITEBUILDER_SITES_DIR)"`
	} `cmd:"" help:"Scaffold a new site skeleton"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Vars{"version": version.String()})

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "build":
		buildID := uuid.NewString()
		slog.Debug("Starting build", logfields.BuildID(buildID))

		site, err := config.Resolve(config.Options{
			SiteName: CLI.Build.Site,
			SitesDir: CLI.Build.SitesDir,
			Env:      CLI.Build.Env,
		})
		if err != nil {
			slog.Error("Configuration failed", logfields.Error(err))
			os.Exit(1)
		}

		if CLI.Build.File != "" {
			slog.Warn("Single-file build skips navigation, tags and link validation",
				logfields.File(CLI.Build.File))
			err = pipeline.RunSingle(site, CLI.Build.File)
		} else {
			err = pipeline.Run(site)
		}
		if err != nil {
			slog.Error("Build failed", logfields.BuildID(buildID), logfields.Error(err))
			os.Exit(1)
		}

	case "init <name>":
		sitesDir := CLI.Init.SitesDir
		if sitesDir == "" {
			sitesDir = os.Getenv(config.EnvSitesDir)
		}
		if err := scaffold.Create(CLI.Init.Name, sitesDir); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}
