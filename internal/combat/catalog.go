package combat

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"tugsim/internal/config"
)

var (
	ErrInvalidArchetype = errors.New("invalid archetype")
	ErrUnknownRace      = errors.New("unknown race")
)

// Catalog is the validated, read-only set of archetypes grouped by race.
// It is safe to share between matches and goroutines.
type Catalog struct {
	races  []string
	byRace map[string][]Archetype
}

// NewCatalog validates every record and returns nil on the first violation,
// so a catalog is never partially populated.
func NewCatalog(cfg *config.ArchetypesConfig) (*Catalog, error) {
	if cfg == nil || len(cfg.Units) == 0 {
		return nil, fmt.Errorf("%w: empty archetype table", ErrInvalidArchetype)
	}
	c := &Catalog{byRace: map[string][]Archetype{}}
	seen := map[string]bool{}
	for i, def := range cfg.Units {
		a, err := buildArchetype(def)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if seen[a.Key] {
			return nil, fmt.Errorf("record %d: %w: duplicate unit key %q", i+1, ErrInvalidArchetype, a.Key)
		}
		seen[a.Key] = true
		if _, ok := c.byRace[a.Race]; !ok {
			c.races = append(c.races, a.Race)
		}
		c.byRace[a.Race] = append(c.byRace[a.Race], a)
	}
	return c, nil
}

// DefaultCatalog builds the bundled beast/alien/human catalog.
func DefaultCatalog() (*Catalog, error) {
	ac, err := config.DefaultArchetypes()
	if err != nil {
		return nil, err
	}
	return NewCatalog(ac)
}

// Races lists race ids in order of first appearance.
func (c *Catalog) Races() []string { return slices.Clone(c.races) }

// Race returns a copy of the race's archetypes in authored order.
func (c *Catalog) Race(id string) ([]Archetype, bool) {
	list, ok := c.byRace[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}

func (c *Catalog) roster(id string) ([]Archetype, error) {
	list, ok := c.byRace[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRace, id)
	}
	return list, nil
}

func buildArchetype(def config.ArchetypeDef) (Archetype, error) {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: unit %q: %s", ErrInvalidArchetype, def.Key, fmt.Sprintf(format, args...))
	}
	if def.Key == "" {
		return Archetype{}, fmt.Errorf("%w: missing unit key", ErrInvalidArchetype)
	}
	if def.Race == "" {
		return Archetype{}, invalid("missing race")
	}

	numbers := []struct {
		name string
		v    float64
	}{
		{"hp", def.HP}, {"shield", def.Shield}, {"armor", def.Armor}, {"damage", def.Damage},
		{"cooldownTicks", def.CooldownTicks}, {"range", def.Range}, {"speed", def.Speed},
		{"renderSize", def.RenderSize}, {"capacity", def.Capacity}, {"count", def.Count},
		{"explosiveRadius", def.ExplosiveRadius},
	}
	for _, n := range numbers {
		if math.IsNaN(n.v) || math.IsInf(n.v, 0) {
			return Archetype{}, invalid("%s is not finite", n.name)
		}
	}

	a := Archetype{
		Key:             def.Key,
		Race:            def.Race,
		HP:              def.HP,
		Shield:          def.Shield,
		Armor:           def.Armor,
		Damage:          def.Damage,
		Range:           def.Range,
		Speed:           def.Speed,
		ExplosiveRadius: def.ExplosiveRadius,
		RenderSize:      def.RenderSize,
		Capacity:        def.Capacity,
		Note:            def.Note,
	}

	switch def.Layer {
	case "grounded":
		a.Layer = LayerGrounded
	case "flying":
		a.Layer = LayerFlying
	default:
		return Archetype{}, invalid("layer %q", def.Layer)
	}
	switch def.AttackStyle {
	case "melee":
		a.Style = StyleMelee
	case "ranged":
		a.Style = StyleRanged
	default:
		return Archetype{}, invalid("attack style %q", def.AttackStyle)
	}
	switch def.AttackMask {
	case "grounded":
		a.Mask = AttackGrounded
	case "flying":
		a.Mask = AttackFlying
	case "both":
		a.Mask = AttackBoth
	default:
		return Archetype{}, invalid("attack mask %q", def.AttackMask)
	}

	if def.CooldownTicks < 0 || def.CooldownTicks > 65535 || def.CooldownTicks != math.Trunc(def.CooldownTicks) {
		return Archetype{}, invalid("cooldownTicks must be an integer in [0, 65535]")
	}
	a.CooldownTicks = int(def.CooldownTicks)
	if def.Count < 0 || def.Count != math.Trunc(def.Count) {
		return Archetype{}, invalid("count must be a non-negative integer")
	}
	a.Count = int(def.Count)

	if a.ExplosiveRadius < 0 {
		return Archetype{}, invalid("explosiveRadius must be >= 0")
	}
	if a.Style == StyleMelee && a.Mask != AttackGrounded {
		return Archetype{}, invalid("melee units must use the grounded attack mask")
	}
	if a.Style == StyleRanged && a.Range < RangedMinRange {
		return Archetype{}, invalid("ranged units must author range >= %v", RangedMinRange)
	}
	return a, nil
}
