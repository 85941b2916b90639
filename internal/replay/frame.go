package replay

import "tugsim/internal/combat"

type Unit struct {
	ID     int     `msgpack:"id" json:"id"`
	Team   uint8   `msgpack:"tm" json:"team"`
	Layer  uint8   `msgpack:"ly" json:"layer"`
	X      float32 `msgpack:"x" json:"x"`
	Y      float32 `msgpack:"y" json:"y"`
	HP     float32 `msgpack:"hp" json:"hp"`
	Shield float32 `msgpack:"sh" json:"shield,omitempty"`
	Size   float32 `msgpack:"sz" json:"size"`
	Target int32   `msgpack:"tg" json:"target"`
}

type Projectile struct {
	Team      uint8   `msgpack:"tm" json:"team"`
	Explosive bool    `msgpack:"ex" json:"explosive,omitempty"`
	X         float32 `msgpack:"x" json:"x"`
	Y         float32 `msgpack:"y" json:"y"`
	PrevX     float32 `msgpack:"px" json:"prev_x"`
	PrevY     float32 `msgpack:"py" json:"prev_y"`
}

type Explosion struct {
	Team    uint8   `msgpack:"tm" json:"team"`
	X       float32 `msgpack:"x" json:"x"`
	Y       float32 `msgpack:"y" json:"y"`
	Radius  float32 `msgpack:"r" json:"radius"`
	Life    uint8   `msgpack:"l" json:"life"`
	LifeMax uint8   `msgpack:"lm" json:"life_max"`
}

// Frame is one tick of the host-visible match state. Only living units and
// active pool slots are included.
type Frame struct {
	Tick        int          `msgpack:"t" json:"tick"`
	Finished    bool         `msgpack:"f" json:"finished"`
	Winner      int          `msgpack:"w" json:"winner"`
	CoreHP      [2]float64   `msgpack:"c" json:"core_hp"`
	Alive       [2]int       `msgpack:"a" json:"alive"`
	Capacity    [2]float64   `msgpack:"cap" json:"capacity"`
	Checksum    uint32       `msgpack:"cs" json:"checksum"`
	Units       []Unit       `msgpack:"u" json:"units"`
	Projectiles []Projectile `msgpack:"p" json:"projectiles"`
	Explosions  []Explosion  `msgpack:"e" json:"explosions"`
}

// Capture copies the current state of s into a new Frame.
func Capture(s *combat.Sim) Frame {
	f := Frame{
		Tick:     s.Tick(),
		Finished: s.Finished(),
		Winner:   s.Winner(),
		Checksum: s.Checksum(),
	}
	for _, t := range [...]combat.Team{combat.TeamLeft, combat.TeamRight} {
		f.CoreHP[t] = s.CoreHP(t)
		f.Alive[t] = s.AliveCount(t)
		f.Capacity[t] = s.RemainingCapacity(t)
	}

	u := s.Units()
	f.Units = make([]Unit, 0, f.Alive[0]+f.Alive[1])
	for i, alive := range u.Alive {
		if alive == 0 {
			continue
		}
		f.Units = append(f.Units, Unit{
			ID:     i,
			Team:   uint8(u.Team[i]),
			Layer:  uint8(u.Layer[i]),
			X:      u.X[i],
			Y:      u.Y[i],
			HP:     u.HP[i],
			Shield: u.Shield[i],
			Size:   u.RenderSize[i],
			Target: u.Target[i],
		})
	}

	p := s.Projectiles()
	for i, active := range p.Active {
		if active == 0 {
			continue
		}
		f.Projectiles = append(f.Projectiles, Projectile{
			Team:      uint8(p.Team[i]),
			Explosive: p.Explosive[i] != 0,
			X:         p.X[i],
			Y:         p.Y[i],
			PrevX:     p.PrevX[i],
			PrevY:     p.PrevY[i],
		})
	}

	e := s.Explosions()
	for i, active := range e.Active {
		if active == 0 {
			continue
		}
		f.Explosions = append(f.Explosions, Explosion{
			Team:    uint8(e.Team[i]),
			X:       e.X[i],
			Y:       e.Y[i],
			Radius:  e.Radius[i],
			Life:    e.Life[i],
			LifeMax: e.LifeMax[i],
		})
	}
	return f
}
