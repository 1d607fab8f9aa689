// Package app 提供游戏应用的核心包装器
//
// 该包把战斗场景包装成 ebiten.Game，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/scenes"
	"github.com/decker502/infinistacker/pkg/utils"
)

// 方向键拖拽时每帧相当于的像素位移
const keyboardDragPixels = 9

// 固定步长
const frameDelta = 1.0 / 60.0

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Tuning 调参，为 nil 时使用默认值
	Tuning *config.Tuning
	// Seed 随机种子，相同种子加相同输入得到相同的一局
	Seed int64
	// Mute 关闭提示音
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	scene    *scenes.BattleScene
	hud      *HUD
	renderer *Renderer
	shake    *ScreenShake
	sounds   *AudioFeedback
	drag     *DragTracker

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tuning := cfg.Tuning
	if tuning == nil {
		tuning = config.DefaultTuning()
	}

	// 初始化音频上下文
	audioContext := audio.CurrentContext()
	if audioContext == nil {
		audioContext = audio.NewContext(SampleRate)
	}

	hud := NewHUD()
	renderer := NewRenderer(tuning)
	shake := NewScreenShake(renderer.Camera().PixelsPerUnitAt(tuning.Lanes.PlayerZ))
	sounds := NewAudioFeedback(audioContext, cfg.Mute)

	scene, err := scenes.NewBattleScene(scenes.BattleSceneOptions{
		Tuning:   tuning,
		Rand:     rand.New(rand.NewSource(cfg.Seed)),
		Feedback: game.FeedbackFanout{shake, sounds},
		Sink:     hud,
	})
	if err != nil {
		return nil, fmt.Errorf("战斗场景创建失败: %w", err)
	}
	log.Printf("[App] Battle scene ready (seed=%d)", cfg.Seed)

	return &App{
		scene:    scene,
		hud:      hud,
		renderer: renderer,
		shake:    shake,
		sounds:   sounds,
		drag:     NewDragTracker(),
		verbose:  cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.drag.Update()
	a.handleInput()

	a.scene.Update(frameDelta)
	a.shake.Update(frameDelta)
	a.hud.Update(frameDelta)
	a.sounds.Tick()
	return nil
}

func (a *App) handleInput() {
	tapped, _, _ := IsPointerJustPressed()

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.sounds.SetMuted(!a.sounds.Muted())
	}

	state := a.scene.StateMachine().State()
	switch {
	case state == game.StateStart:
		if tapped || inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			a.drag.Reset()
			a.scene.StartGame()
		}
		return

	case state.IsTerminal():
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			a.copySummary()
		}
		if tapped || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			a.drag.Reset()
			a.shake.Reset()
			a.scene.RestartGame()
		}
		return
	}

	// 调试快捷键 1-6
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6} {
		if inpututil.IsKeyJustPressed(key) && a.scene.DebugHook(i+1) {
			log.Printf("[App] Debug hook %d", i+1)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copySummary()
	}

	switch {
	case a.drag.IsDragging():
		a.scene.Drag(float64(a.drag.FrameDeltaX()), ScreenWidth)
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA):
		a.scene.Drag(-keyboardDragPixels, ScreenWidth)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD):
		a.scene.Drag(keyboardDragPixels, ScreenWidth)
	default:
		a.scene.ReleaseDrag()
	}
}

// copySummary 把本局摘要复制到剪贴板
func (a *App) copySummary() {
	if utils.IsMobile() {
		return
	}
	if err := clipboard.WriteAll(a.scene.Summary().String()); err != nil {
		log.Printf("[App] Clipboard write failed: %v", err)
		a.hud.ShowToast("CLIPBOARD UNAVAILABLE")
		return
	}
	a.hud.ShowToast("SUMMARY COPIED")
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	dx, dy := a.shake.Offset()
	a.renderer.Draw(screen, a.scene, dx, dy)
	a.hud.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Scene 返回当前战斗场景
func (a *App) Scene() *scenes.BattleScene {
	return a.scene
}

// Close 释放场景持有的事件订阅
func (a *App) Close() {
	a.scene.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
