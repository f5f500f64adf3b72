package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/nathanieltooley/gokemon-showdown/agents"
	"github.com/nathanieltooley/gokemon-showdown/battle"
	"github.com/nathanieltooley/gokemon-showdown/config"
	"github.com/nathanieltooley/gokemon-showdown/dex"
	"github.com/nathanieltooley/gokemon-showdown/logging"
	"github.com/nathanieltooley/gokemon-showdown/render"
	"github.com/nathanieltooley/gokemon-showdown/showdown"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/term"
)

type flags struct {
	configPath string
	server     string
	user       string
	format     string
	player     string
	challenge  string
	teamPath   string
	battles    int
	strict     bool
	debug      bool
	render     bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", config.DefaultConfigLocation(), "path to the config file")
	flag.StringVar(&f.server, "server", "", "websocket url of the showdown server")
	flag.StringVar(&f.user, "user", "", "username to log in as")
	flag.StringVar(&f.format, "format", "", "battle format, e.g. gen9randombattle")
	flag.StringVar(&f.player, "player", "", "decision maker: random or maxpower")
	flag.StringVar(&f.challenge, "challenge", "", "challenge this user instead of searching the ladder")
	flag.StringVar(&f.teamPath, "team", "", "file holding a packed team, for formats without random teams")
	flag.IntVar(&f.battles, "battles", 1, "stop after this many battles, 0 to play until interrupted")
	flag.BoolVar(&f.strict, "strict", false, "fail the battle on an illegal order instead of sending a random one")
	flag.BoolVar(&f.debug, "debug", false, "log debug output")
	flag.BoolVar(&f.render, "render", false, "draw the battle after every decision")
	flag.Parse()
	return f
}

// apply overrides the loaded config with the flags that were set.
func (f flags) apply(c config.Config) config.Config {
	if f.server != "" {
		c.ServerURL = f.server
	}
	if f.user != "" {
		c.Username = f.user
	}
	if f.format != "" {
		c.Format = f.format
	}
	if f.player != "" {
		c.Player = f.player
	}
	c.Strict = c.Strict || f.strict
	c.Debug = c.Debug || f.debug
	return c
}

func newPlayer(name string) (showdown.Player, error) {
	switch strings.ToLower(name) {
	case "random":
		return agents.NewRandomPlayer(nil), nil
	case "maxpower", "maxbasepower":
		return agents.NewMaxBasePowerPlayer(nil), nil
	}
	return nil, fmt.Errorf("unknown player %q, expected random or maxpower", name)
}

// renderer prints the latest observation when stdout is a terminal.
func renderer() func(battle.Battle) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	return func(b battle.Battle) {
		width, _, err := term.GetSize(fd)
		if err != nil {
			width = 80
		}
		fmt.Printf("%s turn %d\n%s\n", b.Tag(), b.Turn(), render.Observation(b.CurrentObservation(), width))
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	cfg = f.apply(cfg)

	logger, err := logging.Setup(logging.Options{Dir: cfg.LogDir, Debug: cfg.Debug})
	if err != nil {
		return err
	}

	player, err := newPlayer(cfg.Player)
	if err != nil {
		return err
	}

	team := ""
	if f.teamPath != "" {
		contents, err := os.ReadFile(f.teamPath)
		if err != nil {
			return fmt.Errorf("reading team: %w", err)
		}
		team = strings.TrimSpace(string(contents))
	}

	data, err := dex.Default()
	if err != nil {
		return fmt.Errorf("loading dex: %w", err)
	}

	logger.Info().Str("server", cfg.ServerURL).Str("user", cfg.Username).Str("format", cfg.Format).Msg("connecting")
	client, err := showdown.Dial(ctx, cfg.ServerURL, logger)
	if err != nil {
		return err
	}

	opts := showdown.RunnerOptions{
		Username:      cfg.Username,
		Format:        cfg.Format,
		Team:          team,
		Battles:       f.battles,
		MaxConcurrent: cfg.MaxBattles,
		QueueSize:     cfg.QueueSize,
		Strict:        cfg.Strict,
		Search:        f.challenge == "",
		Challenge:     f.challenge,
		ReplayDir:     cfg.ReplayDir,
		Dex:           data,
		Login: func(ctx context.Context, challstr string) error {
			if cfg.Username == "" {
				return nil
			}
			return client.Rename(ctx, cfg.Username, cfg.Password, challstr)
		},
	}
	if f.render {
		opts.OnDecision = renderer()
	}

	runner := showdown.NewRunner(client, player, opts, logger)
	runErr := runner.Run(ctx)
	summarize(logger, runner.Results())

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func summarize(logger zerolog.Logger, results []showdown.Result) {
	wins := lo.CountBy(results, func(r showdown.Result) bool { return r.Won })
	ties := lo.CountBy(results, func(r showdown.Result) bool { return r.Tied })

	for _, result := range results {
		logger.Info().
			Str("battle", result.Tag).
			Bool("won", result.Won).
			Bool("tied", result.Tied).
			Int("turns", result.Turns).
			Str("replay", result.Replay).
			Msg("result")
	}
	logger.Info().Int("battles", len(results)).Int("wins", wins).Int("losses", len(results)-wins-ties).Int("ties", ties).Msg("done")
}

func main() {
	f := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, f); err != nil {
		fmt.Fprintln(os.Stderr, "showbot:", err)
		stop()
		os.Exit(1)
	}
}
