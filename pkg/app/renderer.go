package app

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/scenes"
	"github.com/decker502/infinistacker/pkg/types"
)

var (
	colorSky        = color.RGBA{R: 24, G: 30, B: 48, A: 255}
	colorBridgeA    = color.RGBA{R: 88, G: 96, B: 118, A: 255}
	colorBridgeB    = color.RGBA{R: 76, G: 83, B: 104, A: 255}
	colorLaneLine   = color.RGBA{R: 150, G: 160, B: 190, A: 120}
	colorBreachLine = color.RGBA{R: 230, G: 70, B: 60, A: 180}
	colorSoldier    = color.RGBA{R: 80, G: 170, B: 255, A: 255}
	colorEnemy      = color.RGBA{R: 220, G: 60, B: 70, A: 255}
	colorBullet     = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	colorEffect     = color.RGBA{R: 255, G: 170, B: 80, A: 200}
	colorGateGood   = color.RGBA{R: 60, G: 190, B: 110, A: 170}
	colorGateBad    = color.RGBA{R: 200, G: 60, B: 60, A: 170}
	colorGateUsed   = color.RGBA{R: 120, G: 120, B: 120, A: 110}
	colorIce        = color.RGBA{R: 170, G: 220, B: 255, A: 230}
	colorBlock      = color.RGBA{R: 240, G: 190, B: 60, A: 255}
	colorTurret     = color.RGBA{R: 160, G: 240, B: 200, A: 255}
)

// 桥面按该步长（世界单位）切成横条绘制
const bridgeRowStep = 1.0

// 闸门面板的高度（世界单位）
const gatePanelHeight = 1.4

// Renderer 俯视透视渲染
// 每帧从场景读取实体记录直接绘制，不持有游戏状态
type Renderer struct {
	camera *Camera
	lanes  config.LaneTuning
	turret config.TurretTuning
	face   *text.GoXFace

	nearZ, farZ float64

	// 抖动偏移，仅在 Draw 期间有效
	offsetX, offsetY float64
}

// NewRenderer 创建渲染器
func NewRenderer(tuning *config.Tuning) *Renderer {
	farZ := max(tuning.EnemySpawn.SpawnZ+tuning.EnemySpawn.SpawnZJitter, tuning.Upgrades.SpawnZ+tuning.Upgrades.SpawnZJitter)
	return &Renderer{
		camera: NewCamera(tuning.Lanes),
		lanes:  tuning.Lanes,
		turret: tuning.Turret,
		face:   text.NewGoXFace(basicfont.Face7x13),
		nearZ:  tuning.Lanes.PlayerZ - 3,
		farZ:   farZ,
	}
}

// Camera 渲染使用的相机
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Draw 绘制整个战场
func (r *Renderer) Draw(screen *ebiten.Image, scene *scenes.BattleScene, offsetX, offsetY float64) {
	r.offsetX, r.offsetY = offsetX, offsetY
	screen.Fill(colorSky)

	r.drawBridge(screen)
	r.drawGroundLine(screen, r.camera.CenterX-r.lanes.BridgeHalfWidth, scene.Tuning().Enemies.BreachZ,
		r.camera.CenterX+r.lanes.BridgeHalfWidth, scene.Tuning().Enemies.BreachZ, colorBreachLine)

	// 大致由远及近绘制，近处的实体盖住远处的
	r.drawGates(screen, scene)
	scene.Obstacles().Each(func(o *components.IceObstacleComponent) {
		r.drawBox(screen, o.Position, o.Collision.Radius, colorIce, strconv.Itoa(o.Health.CurrentHealth))
	})
	scene.Blocks().Each(func(b *components.UpgradeBlockComponent) {
		r.drawBox(screen, b.Position, b.Collision.Radius, colorBlock, "+"+strconv.Itoa(b.Reward))
	})
	scene.Enemies().Each(func(e *components.EnemyComponent) {
		r.drawBall(screen, e.Position, e.Collision.Radius*e.Scale, colorEnemy)
	})
	r.drawSquad(screen, scene)
	scene.Bullets().Each(func(b *components.BulletComponent) {
		r.drawBall(screen, b.Position, 0.12, colorBullet)
	})
	scene.Effects().Each(func(fx *components.HitEffectComponent) {
		r.drawBall(screen, fx.Position, 0.5*fx.Scale, colorEffect)
	})
}

func (r *Renderer) project(p types.Vec3) (x, y, scale float64, ok bool) {
	x, y, scale, ok = r.camera.Project(p)
	return x + r.offsetX, y + r.offsetY, scale, ok
}

// drawBridge 用横条近似透视下的梯形桥面
func (r *Renderer) drawBridge(screen *ebiten.Image) {
	half := r.lanes.BridgeHalfWidth
	row := 0
	for z := r.farZ; z > r.nearZ; z -= bridgeRowStep {
		_, top, _, ok := r.project(types.Vec3{X: r.camera.CenterX, Z: z})
		if !ok {
			continue
		}
		left, bottom, _, ok := r.project(types.Vec3{X: r.camera.CenterX - half, Z: z - bridgeRowStep})
		if !ok {
			continue
		}
		right, _, _, _ := r.project(types.Vec3{X: r.camera.CenterX + half, Z: z - bridgeRowStep})

		clr := colorBridgeA
		if row%2 == 1 {
			clr = colorBridgeB
		}
		row++
		vector.FillRect(screen, float32(left), float32(top), float32(right-left), float32(bottom-top)+1, clr, false)
	}

	for _, laneX := range []float64{r.lanes.CombatCenterX, r.lanes.UpgradeCenterX} {
		r.drawGroundLine(screen, laneX, r.nearZ, laneX, r.farZ, colorLaneLine)
	}
}

func (r *Renderer) drawGroundLine(screen *ebiten.Image, x0, z0, x1, z1 float64, clr color.Color) {
	sx0, sy0, _, ok0 := r.project(types.Vec3{X: x0, Z: z0})
	sx1, sy1, _, ok1 := r.project(types.Vec3{X: x1, Z: z1})
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, float32(sx0), float32(sy0), float32(sx1), float32(sy1), 2, clr, true)
}

func (r *Renderer) drawBall(screen *ebiten.Image, p types.Vec3, radius float64, clr color.Color) {
	x, y, scale, ok := r.project(p)
	if !ok {
		return
	}
	vector.FillCircle(screen, float32(x), float32(y), float32(max(1, radius*scale)), clr, true)
}

func (r *Renderer) drawBox(screen *ebiten.Image, p types.Vec3, radius float64, clr color.Color, label string) {
	x, y, scale, ok := r.project(p)
	if !ok {
		return
	}
	size := radius * 2 * scale
	vector.FillRect(screen, float32(x-size/2), float32(y-size/2), float32(size), float32(size), clr, false)
	vector.StrokeRect(screen, float32(x-size/2), float32(y-size/2), float32(size), float32(size), 1, color.Black, false)
	if label != "" {
		r.drawLabel(screen, label, x, y-6, color.Black)
	}
}

func (r *Renderer) drawGates(screen *ebiten.Image, scene *scenes.BattleScene) {
	center := scene.Gates().LaneCenter()
	offset := scene.Gates().ChoiceOffset()
	scene.Gates().Each(func(g *components.GatePairComponent) {
		r.drawGatePanel(screen, center-offset, g.Z, offset, g.Left, g.Applied && g.Chosen != components.GateSideLeft)
		r.drawGatePanel(screen, center+offset, g.Z, offset, g.Right, g.Applied && g.Chosen != components.GateSideRight)
	})
}

func (r *Renderer) drawGatePanel(screen *ebiten.Image, x, z, halfWidth float64, op components.GateOperation, faded bool) {
	left, bottom, _, ok := r.project(types.Vec3{X: x - halfWidth, Z: z})
	if !ok {
		return
	}
	right, top, _, _ := r.project(types.Vec3{X: x + halfWidth, Y: gatePanelHeight, Z: z})

	clr := colorGateBad
	switch {
	case faded:
		clr = colorGateUsed
	case op.IsPositive():
		clr = colorGateGood
	}
	vector.FillRect(screen, float32(left)+2, float32(top), float32(right-left)-4, float32(bottom-top), clr, false)
	r.drawLabel(screen, op.String(), (left+right)/2, (top+bottom)/2-6, color.White)
}

func (r *Renderer) drawSquad(screen *ebiten.Image, scene *scenes.BattleScene) {
	squad := scene.Squad()
	pos := squad.Position()
	for _, slot := range squad.Slots() {
		r.drawBall(screen, pos.Add(slot), 0.28, colorSoldier)
	}

	if scene.AutoFire().TurretActive() {
		for _, x := range r.turret.OffsetsX {
			p := types.Vec3{X: x, Y: r.turret.Height, Z: pos.Z + r.turret.ForwardOffset}
			r.drawBall(screen, p, 0.35, colorTurret)
		}
	}
}

func (r *Renderer) drawLabel(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, str, r.face, op)
}
