package app

import (
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/types"
)

// 逻辑屏幕尺寸（竖屏）
const (
	ScreenWidth  = 540
	ScreenHeight = 960
)

// Camera 把世界坐标投影到屏幕
// 相机位于小队后上方，朝 +Z 看，近大远小
type Camera struct {
	CenterX  float64 // 屏幕中心对应的世界 X
	Z        float64 // 相机所在的世界 Z
	Height   float64 // 相机高度
	Focal    float64 // 焦距（像素）
	HorizonY float64 // 地平线的屏幕 Y
	ScreenW  float64
}

// NewCamera 按车道布局创建相机
// 相机放在玩家位置后方，使近处的桥面刚好铺满屏幕宽度
func NewCamera(lanes config.LaneTuning) *Camera {
	return &Camera{
		CenterX:  (lanes.CombatCenterX + lanes.UpgradeCenterX) / 2,
		Z:        lanes.PlayerZ - 15.2,
		Height:   12,
		Focal:    887,
		HorizonY: 120,
		ScreenW:  ScreenWidth,
	}
}

// 近裁剪距离，比它更近的点不绘制
const nearClip = 0.5

// Project 返回世界点的屏幕坐标和该深度下每世界单位的像素数
// ok 为 false 表示点在相机后方
func (c *Camera) Project(p types.Vec3) (x, y, scale float64, ok bool) {
	depth := p.Z - c.Z
	if depth < nearClip {
		return 0, 0, 0, false
	}
	scale = c.Focal / depth
	x = c.ScreenW/2 + (p.X-c.CenterX)*scale
	y = c.HorizonY + (c.Height-p.Y)*scale
	return x, y, scale, true
}

// PixelsPerUnitAt 给定世界 Z 处每世界单位的像素数
func (c *Camera) PixelsPerUnitAt(z float64) float64 {
	depth := z - c.Z
	if depth < nearClip {
		return 0
	}
	return c.Focal / depth
}
