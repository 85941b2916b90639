package combat

import "math"

type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) LenSq() float64       { return a.X*a.X + a.Y*a.Y }

// Len is sqrt(LenSq) rather than math.Hypot so replays match bit for bit.
func (a Vec2) Len() float64 { return math.Sqrt(a.LenSq()) }
