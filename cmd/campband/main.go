// Package main provides the campband UI-state simulator entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/purr/campband-sub002/internal/app/popup"
	"github.com/purr/campband-sub002/internal/app/queue"
	"github.com/purr/campband-sub002/internal/app/scenario"
	"github.com/purr/campband-sub002/internal/domain/track"
	"github.com/purr/campband-sub002/internal/infra/config"
	"github.com/purr/campband-sub002/internal/infra/logger"
)

var (
	app        = kingpin.New("campband", "campband UI-state simulator")
	configPath = app.Flag("config", "Path to config file").Default("config/campband.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	// run command (default)
	runCmd       = app.Command("run", "Run a scenario (default)").Default()
	scenarioPath = runCmd.Arg("scenario", "Path to scenario file").Default("scenarios/demo.yaml").String()

	// list-actions command
	listActionsCmd = app.Command("list-actions", "List available scenario actions and exit")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == listActionsCmd.FullCommand() {
		printActions()
		return
	}

	loggerConfig := logger.Config{
		Output: "stdout",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load config")
	}

	coordinator := popup.NewCoordinator(popup.Config{
		EnterDelay:        time.Duration(cfg.UI.Popup.EnterDelayMs) * time.Millisecond,
		AnimationDuration: time.Duration(cfg.UI.Popup.AnimationMs) * time.Millisecond,
		AnimationBuffer:   time.Duration(cfg.UI.Popup.AnimationBufferMs) * time.Millisecond,
		CloseGrace:        time.Duration(cfg.UI.Popup.CloseGraceMs) * time.Millisecond,
	})
	defer coordinator.Shutdown()

	engine := queue.NewEngine(&logPlayer{})
	mode, _ := queue.ParseRepeatMode(cfg.Playback.Repeat) // validated by config
	engine.SetRepeat(mode)
	engine.SetShuffleEnabled(cfg.Playback.Shuffle)

	unsubPopup := coordinator.Subscribe(func(s popup.State) {
		zlog.Info().Msgf("popup: kind=%s phase=%s visible=%t", s.Kind, s.Phase, s.Visible)
	})
	defer unsubPopup()

	unsubQueue := engine.Subscribe(func(s queue.Snapshot) {
		zlog.Info().Msgf("queue: len=%d cursor=%d repeat=%s shuffle=%t",
			len(s.Items), s.Cursor, s.Repeat, s.Shuffle)
	})
	defer unsubQueue()

	script, err := scenario.Load(*scenarioPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load scenario")
	}
	if script.Name != "" {
		zlog.Info().Msgf("Running scenario: %s", script.Name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := scenario.NewRunner(coordinator, engine)
	if err := runner.Run(ctx, script); err != nil {
		zlog.Fatal().Err(err).Msg("Scenario failed")
	}

	zlog.Info().Msg("Scenario completed")
}

// logPlayer logs playback-surface calls instead of driving real audio.
type logPlayer struct{}

func (p *logPlayer) Play(t track.Track) {
	zlog.Info().Msgf("player: play %s (%s)", t.DisplayName(), t.FormatDuration())
}

func (p *logPlayer) Pause() {
	zlog.Info().Msg("player: pause")
}

func printActions() {
	registered := scenario.GetRegistered()

	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available scenario actions:")
	for _, name := range names {
		a := registered[name]()
		fmt.Printf("  %-15s %s\n", name, a.Description())
	}
}
