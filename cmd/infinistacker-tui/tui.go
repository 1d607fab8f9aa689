package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/scenes"
	"github.com/decker502/infinistacker/pkg/types"
)

const (
	frameDuration = time.Second / 60
	frameDelta    = 1.0 / 60.0

	// 终端里没有按键松开事件，按下后在该时长内视为按住
	keyHoldTimeout = 0.15

	// 每帧按住方向键相当于的拖拽像素，以及对应的参考屏宽
	keyDragPixels = 9.0
	dragScreenW   = 540.0

	sidebarWidth = 30
)

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBridge  = tcell.StyleDefault.Foreground(tcell.PaletteColor(240))
	styleBreach  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleSquad   = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBullet  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEffect  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleIce     = tcell.StyleDefault.Foreground(tcell.PaletteColor(51))
	styleBlock   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGood    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBad     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleUsed    = tcell.StyleDefault.Foreground(tcell.PaletteColor(240))
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// keyHold 用最近一次按键时间近似按住状态
type keyHold struct {
	last    float64
	pressed bool
}

func (k *keyHold) press(now float64) {
	k.last = now
	k.pressed = true
}

func (k *keyHold) held(now float64) bool {
	return k.pressed && now-k.last < keyHoldTimeout
}

// hudState 实现 game.PresentationSink，保存最近一次通知
type hudState struct {
	squad     int
	baseHP    int
	baseMax   int
	remaining float64
	state     game.GameState
	result    game.GameResult
	weapon    game.WeaponState
}

func (h *hudState) SquadChanged(count int)                { h.squad = count }
func (h *hudState) TimerChanged(sec float64)              { h.remaining = sec }
func (h *hudState) WeaponStateChanged(w game.WeaponState) { h.weapon = w }

func (h *hudState) BaseHpChanged(current, max int) {
	h.baseHP = current
	h.baseMax = max
}

func (h *hudState) StateChanged(state game.GameState, result game.GameResult) {
	h.state = state
	h.result = result
}

// terminalGame 终端宿主
type terminalGame struct {
	screen tcell.Screen
	scene  *scenes.BattleScene
	sounds *beepFeedback
	hud    *hudState

	left, right keyHold
	clock       float64
	shaking     bool

	toast      string
	toastTimer float64
}

func (g *terminalGame) run() {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if g.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			g.step()
			g.draw()
		}
	}
}

// handleEvent 处理一个终端事件，返回 true 表示退出
func (g *terminalGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyLeft:
			g.left.press(g.clock)
		case tcell.KeyRight:
			g.right.press(g.clock)
		case tcell.KeyEnter:
			g.scene.StartGame()
		case tcell.KeyRune:
			return g.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return false
}

func (g *terminalGame) handleRune(r rune) bool {
	switch r {
	case 'q':
		return true
	case 'a', 'h':
		g.left.press(g.clock)
	case 'd', 'l':
		g.right.press(g.clock)
	case ' ':
		g.scene.StartGame()
	case 'r':
		if g.scene.RestartGame() {
			g.left, g.right = keyHold{}, keyHold{}
		}
	case 'm':
		if g.sounds.toggleMute() {
			g.showToast("muted")
		} else {
			g.showToast("sound on")
		}
	case 'c':
		if err := clipboard.WriteAll(g.scene.Summary().String()); err != nil {
			log.Printf("clipboard write failed: %v", err)
			g.showToast("clipboard unavailable")
		} else {
			g.showToast("summary copied")
		}
	case '1', '2', '3', '4', '5', '6':
		if g.scene.DebugHook(int(r - '0')) {
			log.Printf("debug hook %c", r)
		}
	}
	return false
}

func (g *terminalGame) step() {
	g.clock += frameDelta

	left, right := g.left.held(g.clock), g.right.held(g.clock)
	switch {
	case left && !right:
		g.scene.Drag(-keyDragPixels, dragScreenW)
	case right && !left:
		g.scene.Drag(keyDragPixels, dragScreenW)
	default:
		g.scene.ReleaseDrag()
	}

	g.scene.Update(frameDelta)
	g.shaking = g.sounds.tick(frameDelta)

	if g.toastTimer > 0 {
		g.toastTimer -= frameDelta
		if g.toastTimer <= 0 {
			g.toast = ""
		}
	}
}

func (g *terminalGame) showToast(msg string) {
	g.toast = msg
	g.toastTimer = 1.5
}

func (g *terminalGame) draw() {
	g.screen.Clear()
	width, height := g.screen.Size()
	fieldW := max(10, min(48, width-sidebarWidth-2))
	fieldH := max(5, height-2)
	grid := newFieldGrid(g.scene.Tuning(), fieldW, fieldH)

	g.drawField(grid)
	g.drawSidebar(fieldW+3, 1)
	g.screen.Show()
}

func (g *terminalGame) drawField(grid fieldGrid) {
	frame := styleBridge
	if g.shaking {
		frame = styleBreach
	}
	for row := 0; row < grid.rows; row++ {
		g.screen.SetContent(0, row+1, '|', nil, frame)
		g.screen.SetContent(grid.cols+1, row+1, '|', nil, frame)
	}

	tuning := g.scene.Tuning()
	for _, laneX := range []float64{tuning.Lanes.CombatCenterX, tuning.Lanes.UpgradeCenterX} {
		col := grid.column(laneX)
		for row := 0; row < grid.rows; row += 2 {
			g.put(grid, col, row, '.', styleBridge)
		}
	}
	if _, row, ok := grid.cell(types.Vec3{X: grid.minX, Z: tuning.Enemies.BreachZ}); ok {
		for col := 0; col < grid.cols; col++ {
			g.put(grid, col, row, '-', styleBreach)
		}
	}

	gates := g.scene.Gates()
	gates.Each(func(gp *components.GatePairComponent) {
		g.drawGateLabel(grid, gates.LaneCenter()-gates.ChoiceOffset(), gp.Z, gp.Left, gp.Applied && gp.Chosen != components.GateSideLeft)
		g.drawGateLabel(grid, gates.LaneCenter()+gates.ChoiceOffset(), gp.Z, gp.Right, gp.Applied && gp.Chosen != components.GateSideRight)
	})
	g.scene.Obstacles().Each(func(o *components.IceObstacleComponent) {
		g.putWorld(grid, o.Position, '#', styleIce)
	})
	g.scene.Blocks().Each(func(b *components.UpgradeBlockComponent) {
		g.putWorld(grid, b.Position, '$', styleBlock)
	})
	g.scene.Enemies().Each(func(e *components.EnemyComponent) {
		g.putWorld(grid, e.Position, 'E', styleEnemy)
	})
	g.scene.Bullets().Each(func(b *components.BulletComponent) {
		g.putWorld(grid, b.Position, '\'', styleBullet)
	})
	g.scene.Effects().Each(func(fx *components.HitEffectComponent) {
		g.putWorld(grid, fx.Position, '*', styleEffect)
	})

	squad := g.scene.Squad()
	pos := squad.Position()
	for _, slot := range squad.Slots() {
		g.putWorld(grid, pos.Add(slot), '@', styleSquad)
	}
}

func (g *terminalGame) drawGateLabel(grid fieldGrid, x, z float64, op components.GateOperation, faded bool) {
	col, row, ok := grid.cell(types.Vec3{X: x, Z: z})
	if !ok {
		return
	}
	style := styleBad
	switch {
	case faded:
		style = styleUsed
	case op.IsPositive():
		style = styleGood
	}
	label := "[" + op.String() + "]"
	start := max(0, min(grid.cols-len(label), col-len(label)/2))
	for i, r := range label {
		g.put(grid, start+i, row, r, style)
	}
}

func (g *terminalGame) putWorld(grid fieldGrid, p types.Vec3, r rune, style tcell.Style) {
	if col, row, ok := grid.cell(p); ok {
		g.put(grid, col, row, r, style)
	}
}

// put 在桥面格子内写字符，坐标相对桥面左上角
func (g *terminalGame) put(grid fieldGrid, col, row int, r rune, style tcell.Style) {
	if col < 0 || col >= grid.cols || row < 0 || row >= grid.rows {
		return
	}
	g.screen.SetContent(col+1, row+1, r, nil, style)
}

func (g *terminalGame) drawSidebar(x, y int) {
	lines := g.sidebarLines()
	for i, line := range lines {
		style := styleDefault
		if i == 0 {
			style = styleTitle
		}
		g.drawText(x, y+i, line, style)
	}
}

func (g *terminalGame) sidebarLines() []string {
	h := g.hud
	next := strconv.Itoa(h.weapon.NextRequirement)
	if h.weapon.NextRequirement == 0 {
		next = "MAX"
	}
	lines := []string{
		"INFINISTACKER",
		"",
		fmt.Sprintf("Squad    %d", h.squad),
		fmt.Sprintf("Base     %d/%d", h.baseHP, h.baseMax),
		fmt.Sprintf("Time     %.1fs", h.remaining),
		fmt.Sprintf("Weapon   %s", h.weapon.TierName),
		fmt.Sprintf("Upgrade  %d/%s", h.weapon.Progress, next),
		fmt.Sprintf("Turret   x%d", h.weapon.TurretCharges),
		fmt.Sprintf("Enemies  %d", g.scene.Enemies().ActiveCount()),
		fmt.Sprintf("Kills    %d", g.scene.Enemies().Kills()),
		"",
	}

	switch h.state {
	case game.StateStart:
		lines = append(lines, "SPACE/ENTER  start")
	case game.StatePlaying:
		lines = append(lines, "LEFT/RIGHT   move", "1-6          debug")
	case game.StateVictory:
		lines = append(lines, "VICTORY", "R  play again", "C  copy summary")
	case game.StateGameOver:
		lines = append(lines, "GAME OVER: "+h.result.String(), "R  retry", "C  copy summary")
	}
	lines = append(lines, "M  mute   Q  quit")
	if g.toast != "" {
		lines = append(lines, "", strings.ToUpper(g.toast))
	}
	return lines
}

func (g *terminalGame) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}
