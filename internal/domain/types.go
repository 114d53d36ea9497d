package domain

import "math"

// Vec2 - позиция или направление в мировых координатах арены.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize возвращает единичный вектор. Нулевой вектор остается нулевым,
// чтобы ввод (0,0) не превращался в NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Rotate поворачивает вектор на угол в радианах.
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Angle возвращает угол вектора в радианах.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// DirFromAngle строит единичный вектор из угла в радианах.
func DirFromAngle(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{cos, sin}
}
