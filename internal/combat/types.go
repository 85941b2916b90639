package combat

type Event struct {
	Tick    int            `json:"tick"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Team uint8

const (
	TeamLeft Team = iota
	TeamRight
)

func (t Team) Enemy() Team { return 1 - t }

func (t Team) String() string {
	if t == TeamLeft {
		return "left"
	}
	return "right"
}

type Layer uint8

const (
	LayerGrounded Layer = iota
	LayerFlying
)

// AttackMask is a bitset of layers a unit can hit.
type AttackMask uint8

const (
	AttackGrounded AttackMask = 1 << iota
	AttackFlying
	AttackBoth = AttackGrounded | AttackFlying
)

func (m AttackMask) CanHit(l Layer) bool {
	if l == LayerGrounded {
		return m&AttackGrounded != 0
	}
	return m&AttackFlying != 0
}

type AttackStyle uint8

const (
	StyleMelee AttackStyle = iota
	StyleRanged
)

type AttackMedium uint8

const (
	MediumDirect AttackMedium = iota
	MediumProjectile
)

type ImpactMode uint8

const (
	ImpactSingle ImpactMode = iota
	ImpactExplosive
)

const (
	NoTarget = -1
	NoWinner = -1
)

// Event types emitted through the Sim event hook.
const (
	EventSpawn      = "Spawn"
	EventCoreBreach = "CoreBreach"
	EventFinish     = "Finish"
)
