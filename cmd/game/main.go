package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Dombrovo/dread-tactics/internal/battle"
	"github.com/Dombrovo/dread-tactics/internal/config"
	"github.com/Dombrovo/dread-tactics/internal/game"
)

func main() {
	configDir := flag.String("config", "assets", "directory holding weapons.yaml, archetypes.yaml and decks.yaml")
	scenarioPath := flag.String("scenario", "assets/scenarios/chapel.yaml", "scenario file to load")
	seed := flag.Int64("seed", 0, "rng seed; 0 picks one from the clock")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	bundle, err := config.LoadAll(*configDir)
	if err != nil {
		log.Printf("config dir %q unusable (%v), using built-in defaults", *configDir, err)
		bundle = config.Defaults()
	}
	scenario, err := config.LoadScenario(*scenarioPath)
	if err != nil {
		log.Printf("scenario %q unusable (%v), using built-in default", *scenarioPath, err)
		scenario = config.DefaultScenario()
	}

	build := func(s int64) (*battle.Session, error) {
		return config.BuildSession(scenario, bundle, s)
	}
	g, err := game.New(build, *seed)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Dread Tactics")
	ebiten.SetWindowSize(g.Width(), g.Height())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
