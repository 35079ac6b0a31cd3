package battle

import (
	"fmt"
	"strings"
)

// LogEntry is one recorded battle event.
type LogEntry struct {
	Round    int
	Actor    string  // unit label e.g. "P0", "O2", or "--" for global events
	Team     string  // "player", "opponent", or "--"
	Category string  // turn, move, combat, battle
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[R=003] O1   combat  attack_hit   roll 12 vs 55 -> 6 dmg
func (e LogEntry) String() string {
	return fmt.Sprintf("[R=%03d] %-4s %-8s %-16s %s",
		e.Round, e.Actor, e.Category, e.Key, e.Value)
}

// BattleLog collects structured events during a battle. It is unbounded and
// machine-readable; tests and the headless reporter query it, the renderer
// tails it.
type BattleLog struct {
	entries []LogEntry
	mirror  func(LogEntry)
}

// NewBattleLog creates an empty log.
func NewBattleLog() *BattleLog {
	return &BattleLog{}
}

// SetMirror installs a hook invoked for every entry as it is added. The
// headless reporter uses this to stream events into its structured logger.
func (bl *BattleLog) SetMirror(fn func(LogEntry)) {
	bl.mirror = fn
}

// Add records a new entry.
func (bl *BattleLog) Add(round int, actor, team, category, key, value string, numVal float64) {
	e := LogEntry{
		Round:    round,
		Actor:    actor,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	bl.entries = append(bl.entries, e)
	if bl.mirror != nil {
		bl.mirror(e)
	}
}

// Entries returns all recorded entries.
func (bl *BattleLog) Entries() []LogEntry {
	return bl.entries
}

// Filter returns entries matching the given category and/or key. Pass empty
// string to match any value for that field.
func (bl *BattleLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific unit label.
func (bl *BattleLog) FilterActor(label string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (bl *BattleLog) CountCategory(category, key string) int {
	return len(bl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (bl *BattleLog) LastOf(category, key string) (LogEntry, bool) {
	entries := bl.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (bl *BattleLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range bl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Tail returns up to n of the most recent entries, oldest first.
func (bl *BattleLog) Tail(n int) []LogEntry {
	if n >= len(bl.entries) {
		return bl.entries
	}
	return bl.entries[len(bl.entries)-n:]
}

// Format returns the full log as a single string for t.Log output.
func (bl *BattleLog) Format() string {
	var sb strings.Builder
	for _, e := range bl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
