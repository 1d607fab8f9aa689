// Package types 定义共享的基础类型
package types

import "math"

// Vec3 世界坐标
// X 为横向（车道方向左右），Y 为高度，Z 为纵深（敌人沿 -Z 方向逼近玩家）
type Vec3 struct {
	X, Y, Z float64
}

// Forward 前方单位向量（+Z）
var Forward = Vec3{Z: 1}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized 返回单位向量，零向量返回 Forward
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l < 1e-9 {
		return Forward
	}
	return v.Scale(1 / l)
}

// PlanarDistance 忽略高度的水平距离（X/Z 平面）
func (v Vec3) PlanarDistance(o Vec3) float64 {
	dx := v.X - o.X
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// YawDirection 以 +Z 为基准绕 Y 轴偏转 degrees 度的单位方向
func YawDirection(degrees float64) Vec3 {
	rad := degrees * math.Pi / 180
	return Vec3{X: math.Sin(rad), Z: math.Cos(rad)}
}
