package app

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/utils"
)

// HUD 抬头显示
// 实现 game.PresentationSink，只保存最近一次通知的值，绘制时读取
type HUD struct {
	face  *text.GoXFace
	touch bool // 只显示触屏操作提示

	squad     int
	baseHP    int
	baseMax   int
	remaining float64
	state     game.GameState
	result    game.GameResult
	weapon    game.WeaponState

	toast      string
	toastTimer float64
}

// 提示信息显示时长（秒）
const toastDuration = 1.6

// NewHUD 创建抬头显示
func NewHUD() *HUD {
	return &HUD{
		face:  text.NewGoXFace(basicfont.Face7x13),
		touch: utils.IsMobile(),
	}
}

func (h *HUD) SquadChanged(count int) { h.squad = count }

func (h *HUD) BaseHpChanged(current, max int) {
	h.baseHP = current
	h.baseMax = max
}

func (h *HUD) TimerChanged(remaining float64) { h.remaining = remaining }

func (h *HUD) StateChanged(state game.GameState, result game.GameResult) {
	h.state = state
	h.result = result
}

func (h *HUD) WeaponStateChanged(state game.WeaponState) { h.weapon = state }

// ShowToast 短暂显示一条提示
func (h *HUD) ShowToast(message string) {
	h.toast = message
	h.toastTimer = toastDuration
}

// Update 推进提示计时
func (h *HUD) Update(deltaTime float64) {
	if h.toastTimer > 0 {
		h.toastTimer -= deltaTime
		if h.toastTimer <= 0 {
			h.toast = ""
		}
	}
}

// StatusLines 顶部状态栏文本
func (h *HUD) StatusLines() []string {
	weapon := fmt.Sprintf("%s  %d/%d", h.weapon.TierName, h.weapon.Progress, h.weapon.NextRequirement)
	if h.weapon.NextRequirement == 0 {
		weapon = fmt.Sprintf("%s  MAX", h.weapon.TierName)
	}
	return []string{
		fmt.Sprintf("SQUAD %d   BASE %d/%d   TIME %s", h.squad, h.baseHP, h.baseMax, formatClock(h.remaining)),
		fmt.Sprintf("WEAPON %s   TURRET x%d", weapon, h.weapon.TurretCharges),
	}
}

// Banner 居中的大字提示，进行中时为空
func (h *HUD) Banner() string {
	var lines []string
	switch h.state {
	case game.StateStart:
		lines = []string{"TAP TO START", "DRAG TO MOVE THE SQUAD"}
		if !h.touch {
			lines[0] = "TAP OR PRESS SPACE TO START"
		}
	case game.StateVictory:
		lines = []string{"VICTORY", "TAP TO PLAY AGAIN"}
	case game.StateGameOver:
		reason := "SQUAD WIPED OUT"
		if h.result == game.ResultDefeatByBase {
			reason = "BASE DESTROYED"
		}
		lines = []string{"GAME OVER", reason, "TAP TO RETRY"}
	default:
		return ""
	}

	if h.state.IsTerminal() && !h.touch {
		lines[len(lines)-1] = strings.Replace(lines[len(lines)-1], "TAP", "TAP OR PRESS R", 1)
		lines = append(lines, "C COPIES THE RUN SUMMARY")
	}
	return strings.Join(lines, "\n")
}

// Draw 绘制抬头显示
func (h *HUD) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, ScreenWidth, 44, color.RGBA{A: 150}, false)
	for i, line := range h.StatusLines() {
		h.drawText(screen, line, 10, 8+float64(i)*18, color.White, text.AlignStart)
	}

	// 基地血条
	if h.baseMax > 0 {
		const barW, barH = ScreenWidth - 40, 8
		ratio := float32(h.baseHP) / float32(h.baseMax)
		vector.FillRect(screen, 20, ScreenHeight-24, barW, barH, color.RGBA{R: 60, G: 20, B: 20, A: 220}, false)
		vector.FillRect(screen, 20, ScreenHeight-24, barW*ratio, barH, color.RGBA{R: 230, G: 70, B: 60, A: 255}, false)
	}

	if banner := h.Banner(); banner != "" {
		lines := strings.Count(banner, "\n") + 1
		top := float32(ScreenHeight/2 - 20 - lines*9)
		vector.FillRect(screen, 30, top, ScreenWidth-60, float32(lines*18+40), color.RGBA{A: 180}, false)
		h.drawText(screen, banner, ScreenWidth/2, float64(top)+20, color.White, text.AlignCenter)
	}

	if h.toast != "" {
		h.drawText(screen, h.toast, ScreenWidth/2, ScreenHeight-60, color.RGBA{R: 255, G: 230, B: 120, A: 255}, text.AlignCenter)
	}
}

func (h *HUD) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = 18
	op.PrimaryAlign = align
	text.Draw(screen, str, h.face, op)
}

// formatClock 把秒数格式化为 m:ss，不足一秒向上取整
func formatClock(seconds float64) string {
	total := int(seconds)
	if float64(total) < seconds {
		total++
	}
	total = max(0, total)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
