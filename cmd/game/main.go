// Package main provides the game binary: the turn-based text surface over
// the shared world, player, and save layers.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
	"go.uber.org/zap"

	"github.com/cmoritz/blackwood/internal/config"
	"github.com/cmoritz/blackwood/internal/game/command"
	"github.com/cmoritz/blackwood/internal/game/inventory"
	"github.com/cmoritz/blackwood/internal/game/item"
	"github.com/cmoritz/blackwood/internal/game/player"
	"github.com/cmoritz/blackwood/internal/game/save"
	"github.com/cmoritz/blackwood/internal/game/session"
	"github.com/cmoritz/blackwood/internal/observability"
)

var (
	stylePrompt = color.Style{color.FgMagenta, color.OpBold}
	styleDeath  = color.Style{color.FgRed, color.OpBold}
	styleWin    = color.Style{color.FgGreen, color.OpBold}
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	itemsDir := flag.String("items", "content/items", "directory of item definition YAML files")
	roomsPath := flag.String("rooms", "content/rooms.txt", "room layout file")
	spotsPath := flag.String("spots", "content/spots.txt", "search spot placement file")
	contentPath := flag.String("content", "content/content.yaml", "lock and enemy wiring file")
	playerName := flag.String("name", "Stranger", "player display name")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	defs, err := item.LoadDefs(*itemsDir)
	if err != nil {
		logger.Fatal("loading item definitions", zap.Error(err))
	}
	reg, err := item.NewRegistry(defs)
	if err != nil {
		logger.Fatal("building item registry", zap.Error(err))
	}

	w, err := buildWorld(*roomsPath, *spotsPath, reg)
	if err != nil {
		logger.Fatal("building world", zap.Error(err))
	}

	content, err := loadContent(*contentPath)
	if err != nil {
		logger.Fatal("loading content wiring", zap.Error(err))
	}
	if err := content.apply(w); err != nil {
		logger.Fatal("applying content wiring", zap.Error(err))
	}

	saves, err := save.NewManager(cfg.Saves.Dir, cfg.Saves.MaxRetained, logger)
	if err != nil {
		logger.Fatal("opening save directory", zap.Error(err))
	}

	p := player.New(*playerName, cfg.Game.MaxHealth, cfg.Game.MaxStamina,
		inventory.New(cfg.Game.InventoryCapacity))

	// One reader for both commands and confirmation prompts; a second
	// buffered reader on stdin would swallow typed-ahead input.
	stdin := bufio.NewReader(os.Stdin)
	confirm := func(prompt string) bool {
		stylePrompt.Printf("%s [y/n] ", prompt)
		line, err := stdin.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}

	sess := session.New(logger, w, p, reg, saves, confirm)
	defer sess.Close()

	logger.Info("game ready",
		zap.Int("rooms", len(w.Rooms())),
		zap.Int("items", len(defs)),
		zap.Duration("elapsed", time.Since(start)),
	)

	registry := command.DefaultRegistry()
	fmt.Println(sess.Look())

	for !sess.Over() {
		stylePrompt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			break
		}
		res := command.Dispatch(registry, sess, line)
		if res.Output != "" {
			fmt.Println(res.Output)
		}
		if res.Quit {
			return
		}
	}

	switch {
	case sess.Won():
		styleWin.Println("You escaped.")
	case sess.Over():
		styleDeath.Println("Your story ends here.")
	}
}
