package battle

// TargetRule is the closed set of opponent targeting behaviors. Which rule a
// unit uses comes from its archetype config, never from per-type code.
type TargetRule uint8

const (
	TargetNearest   TargetRule = iota // minimum euclidean distance
	TargetMaxHealth                   // greatest current health
)

func (r TargetRule) String() string {
	if r == TargetMaxHealth {
		return "max_health"
	}
	return "nearest"
}

// Decision is a computed movement and attack intent. Decide performs no
// mutation; the scheduler applies the decision.
type Decision struct {
	Target UnitID  // chosen target, NoUnit when none is available
	Path   []Point // realized path including the start tile, nil to stay put
	Move   *Point  // final tile of Path, nil to stay put
	Attack bool    // attempt an attack after moving
}

// Decide computes a unit's turn: pick a target by its archetype rule, close
// to the nearest free tile adjacent to the target as far as the movement
// budget allows, then attack if the target is in range with line of sight
// from the final tile. No valid target and no reachable destination are
// ordinary no-op outcomes, not errors.
func Decide(u *Unit, enemies []*Unit, g *Grid) Decision {
	dec := Decision{Target: NoUnit}

	target := selectTarget(u.Targeting, u.Pos, enemies)
	if target == nil {
		return dec
	}
	dec.Target = target.ID

	final := u.Pos
	if !Adjacent(u.Pos, target.Pos) {
		if approach, ok := NearestApproachTile(g, u.Pos, target.Pos); ok && approach != u.Pos {
			if path := FindPath(g, u.Pos, approach, UnboundedCost); path != nil {
				realized := TrimPathToBudget(path, u.EffectiveMove())
				if len(realized) > 1 {
					dec.Path = realized
					end := realized[len(realized)-1]
					dec.Move = &end
					final = end
				}
			}
		}
	}

	if CanAttack(g, final, target.Pos, u.Weapon.Range) == AttackOK {
		dec.Attack = true
	}
	return dec
}

// selectTarget applies a targeting rule over the living opposing units. Ties
// keep the earliest unit in creation order, which is the order of the slice.
func selectTarget(rule TargetRule, from Point, enemies []*Unit) *Unit {
	var best *Unit
	for _, e := range enemies {
		if e == nil || !e.Placed || e.IsIncapacitated() {
			continue
		}
		if best == nil {
			best = e
			continue
		}
		switch rule {
		case TargetMaxHealth:
			if e.HP > best.HP {
				best = e
			}
		default: // TargetNearest
			if Euclidean(from, e.Pos) < Euclidean(from, best.Pos) {
				best = e
			}
		}
	}
	return best
}
