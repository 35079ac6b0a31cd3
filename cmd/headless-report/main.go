package main

import (
	"flag"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Dombrovo/dread-tactics/internal/battle"
	"github.com/Dombrovo/dread-tactics/internal/config"
)

// maxAutopilotActions caps player actions per run so a pathological layout
// (both sides unable to reach each other) cannot spin forever.
const maxAutopilotActions = 10000

type runStats struct {
	runIndex int
	seed     int64

	outcome battle.Outcome
	rounds  int

	playerHits   int
	playerMisses int
	oppHits      int
	oppMisses    int

	playerDown int
	oppDown    int

	firstBloodRound  int // round of the first incapacitation, -1 if none
	cardCounts       map[string]int
	sharedDeckCycles int
	survivors        []string
}

func main() {
	var runs int
	var maxRounds int
	var seedBase int64
	var seedStep int64
	var configDir string
	var scenarioPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless battle runs")
	flag.IntVar(&maxRounds, "max-rounds", 200, "round cap per run before calling it stalled")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configDir, "config", "assets", "directory holding the data tables")
	flag.StringVar(&scenarioPath, "scenario", "assets/scenarios/chapel.yaml", "scenario file")
	flag.BoolVar(&verbose, "verbose", false, "mirror every battle event to structured logging")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxRounds <= 0 {
		fmt.Println("error: -max-rounds must be > 0")
		return
	}

	bundle, err := config.LoadAll(configDir)
	if err != nil {
		fmt.Printf("config dir %q unusable (%v), using built-in defaults\n", configDir, err)
		bundle = config.Defaults()
	}
	scenario, err := config.LoadScenario(scenarioPath)
	if err != nil {
		fmt.Printf("scenario %q unusable (%v), using built-in default\n", scenarioPath, err)
		scenario = config.DefaultScenario()
	}

	var logger *zap.Logger
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Printf("error: cannot build logger: %v\n", err)
			return
		}
		defer logger.Sync()
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("scenario=%s runs=%d max_rounds=%d seed_base=%d seed_step=%d\n\n",
		scenario.Name, runs, maxRounds, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runBattle(i+1, seed, scenario, bundle, maxRounds, logger)
		if err != nil {
			fmt.Printf("error: run %d (seed=%d): %v\n", i+1, seed, err)
			return
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runBattle plays one full battle with the autopilot steering the player
// side by the same decision rule opponents use.
func runBattle(runIndex int, seed int64, sc *config.ScenarioDef, bundle *config.Bundle, maxRounds int, logger *zap.Logger) (runStats, error) {
	s, err := config.BuildSession(sc, bundle, seed)
	if err != nil {
		return runStats{}, err
	}
	if logger != nil {
		run := logger.With(zap.Int("run", runIndex), zap.Int64("seed", seed))
		s.Log.SetMirror(func(e battle.LogEntry) {
			run.Info(e.Key,
				zap.Int("round", e.Round),
				zap.String("actor", e.Actor),
				zap.String("team", e.Team),
				zap.String("category", e.Category),
				zap.String("detail", e.Value),
				zap.Float64("value", e.NumVal))
		})
	}

	s.Start()
	for actions := 0; s.State() != battle.StateTerminal && actions < maxAutopilotActions; actions++ {
		if s.Round() > maxRounds {
			break
		}
		active := s.ActiveUnit()
		if active == nil || active.Team != battle.TeamPlayer {
			s.Advance()
			continue
		}
		autoplayTurn(s, active)
	}

	return collectStats(runIndex, seed, s), nil
}

// autoplayTurn spends the active player unit's turn with the opponent
// decision rule. Actions can end the turn early by exhausting AP, so the
// active unit is re-checked after each step.
func autoplayTurn(s *battle.Session, u *battle.Unit) {
	var enemies []*battle.Unit
	for _, other := range s.Units {
		if other.Team == u.Team.Opposing() {
			enemies = append(enemies, other)
		}
	}
	dec := battle.Decide(u, enemies, s.Grid)
	if dec.Target == battle.NoUnit {
		s.EndTurn()
		return
	}
	if dec.Move != nil {
		s.AttemptMove(*dec.Move)
	}
	if s.ActiveUnit() != u {
		return
	}
	if dec.Attack {
		s.AttemptAttack(dec.Target)
	}
	if s.ActiveUnit() == u {
		s.EndTurn()
	}
}

func collectStats(runIndex int, seed int64, s *battle.Session) runStats {
	rs := runStats{
		runIndex:         runIndex,
		seed:             seed,
		outcome:          s.Outcome(),
		rounds:           s.Round(),
		firstBloodRound:  -1,
		cardCounts:       map[string]int{},
		sharedDeckCycles: s.SharedDeck().Reshuffles(),
	}
	for _, e := range s.Log.Entries() {
		if e.Category != "combat" {
			continue
		}
		player := e.Team == battle.TeamPlayer.String()
		switch e.Key {
		case "attack_hit":
			if player {
				rs.playerHits++
			} else {
				rs.oppHits++
			}
			rs.cardCounts[cardKindOf(e.Value)]++
		case "attack_miss":
			if player {
				rs.playerMisses++
			} else {
				rs.oppMisses++
			}
		case "incapacitated":
			if player {
				rs.playerDown++
			} else {
				rs.oppDown++
			}
			if rs.firstBloodRound < 0 {
				rs.firstBloodRound = e.Round
			}
		}
	}
	for _, u := range s.Units {
		if !u.IsIncapacitated() {
			rs.survivors = append(rs.survivors, u.Label())
		}
	}
	return rs
}

// cardKindOf extracts the drawn card's kind from an attack_hit log line,
// which carries "card <kind>," in its detail text.
func cardKindOf(value string) string {
	const marker = "card "
	i := strings.Index(value, marker)
	if i < 0 {
		return "unknown"
	}
	rest := value[i+len(marker):]
	if j := strings.IndexByte(rest, ','); j >= 0 {
		return rest[:j]
	}
	return rest
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: outcome=%s rounds=%d first_blood_round=%d\n", rs.outcome, rs.rounds, rs.firstBloodRound)
	fmt.Printf("attacks: player=%d/%d opponent=%d/%d (hits/attempts)\n",
		rs.playerHits, rs.playerHits+rs.playerMisses, rs.oppHits, rs.oppHits+rs.oppMisses)
	fmt.Printf("casualties: player_down=%d opponent_down=%d\n", rs.playerDown, rs.oppDown)
	fmt.Printf("cards_drawn: %s  shared_deck_cycles=%d\n", formatCardCounts(rs.cardCounts), rs.sharedDeckCycles)
	fmt.Printf("survivors: %s\n\n", strings.Join(rs.survivors, ","))
}

func printAggregate(all []runStats) {
	victories := 0
	defeats := 0
	stalled := 0
	totalRounds := 0
	totalPlayerHits := 0
	totalPlayerAttempts := 0
	totalOppHits := 0
	totalOppAttempts := 0
	totalCards := map[string]int{}

	for _, rs := range all {
		switch rs.outcome {
		case battle.OutcomeVictory:
			victories++
		case battle.OutcomeDefeat:
			defeats++
		default:
			stalled++
		}
		totalRounds += rs.rounds
		totalPlayerHits += rs.playerHits
		totalPlayerAttempts += rs.playerHits + rs.playerMisses
		totalOppHits += rs.oppHits
		totalOppAttempts += rs.oppHits + rs.oppMisses
		for k, n := range rs.cardCounts {
			totalCards[k] += n
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d victories=%d defeats=%d stalled=%d\n", len(all), victories, defeats, stalled)
	fmt.Printf("avg_rounds=%.1f\n", avg(totalRounds, len(all)))
	fmt.Printf("hit_rate: player=%s opponent=%s\n",
		rateString(totalPlayerHits, totalPlayerAttempts), rateString(totalOppHits, totalOppAttempts))
	fmt.Printf("cards_drawn_total: %s\n", formatCardCounts(totalCards))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func rateString(hits, attempts int) string {
	if attempts == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%% (%d/%d)", float64(hits)/float64(attempts)*100, hits, attempts)
}

// formatCardCounts renders kind counts in deck order so output lines stay
// comparable across runs.
func formatCardCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	order := []string{"null", "multiply", "plus", "minus", "zero", "unknown"}
	var parts []string
	for _, k := range order {
		if n, ok := counts[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	return strings.Join(parts, " ")
}
