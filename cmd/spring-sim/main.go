package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spring-sim/audio"
	"github.com/lixenwraith/spring-sim/config"
	"github.com/lixenwraith/spring-sim/render"
)

var (
	configFlag     = flag.String("config", "", "Path to config file (default: $SPRING_SIM_CONFIG or config.toml)")
	debugFlag      = flag.Bool("debug", false, "Write logs to logs/spring-sim.log")
	muteFlag       = flag.Bool("mute", false, "Disable audio cues")
	cellWidthFlag  = flag.Float64("cell-width", render.DefaultCellWidth, "World pixels per terminal column")
	cellHeightFlag = flag.Float64("cell-height", render.DefaultCellHeight, "World pixels per terminal row")
	fpsFlag        = flag.Int("fps", 60, "Target frames per second")
	summaryFlag    = flag.Bool("summary", true, "Print a session summary on exit")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}
	logger := log.Default()

	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Printf("WARN: %v", err)
	}
	cfg := config.LoadOrDefault(config.ResolvePath(*configFlag), logger)
	cfg.ApplyEnv(logger)
	cfg.Validate(logger)
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	// Restore the terminal before printing a crash so the trace is readable
	crash := func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSPRING-SIM CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	player := audio.NewPlayer(audio.Options{Enabled: cfg.Audio.Enabled, Volume: cfg.Audio.Volume}, logger)
	defer player.Close()

	game := NewGame(screen, cfg, player, gameOptions{
		CellWidth:  *cellWidthFlag,
		CellHeight: *cellHeightFlag,
		FPS:        *fpsFlag,
	}, logger)

	logger.Printf("started: gravity=%v damping=%v stiffness=%v max_dt=%v audio=%t",
		cfg.Physics.Gravity, cfg.Physics.Damping, cfg.Physics.Stiffness, cfg.Physics.MaxDelta, player.Enabled())

	game.run(crash)

	screen.Fini()
	if *summaryFlag {
		fmt.Println(game.summary.Render(time.Now()))
	}
}
