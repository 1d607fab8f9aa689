// infinistacker-tui 在终端里运行一局
//
// 用法：
//
//	go run ./cmd/infinistacker-tui -seed 42
//
// 方向键或 a/d 移动小队，空格开局，r 重开，q 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/scenes"
)

var (
	tuningPath = flag.String("tuning", "", "调参 YAML 文件路径，为空时使用默认参数")
	seed       = flag.Int64("seed", 0, "随机种子，0 表示取当前时间")
	logPath    = flag.String("log", "", "日志输出文件，为空时丢弃日志")
	mute       = flag.Bool("mute", false, "关闭提示音")
)

func main() {
	flag.Parse()

	// 终端被界面占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	overrides, err := config.LoadHostOverrides()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	tuning, err := config.ResolveTuning(*tuningPath, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load tuning: %v\n", err)
		os.Exit(1)
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
		if overrides.HasSeed {
			runSeed = overrides.Seed
		}
	}

	sounds := newBeepFeedback(*mute)
	if err := sounds.initialize(); err != nil {
		log.Printf("audio unavailable: %v", err)
	}

	hud := &hudState{}
	scene, err := scenes.NewBattleScene(scenes.BattleSceneOptions{
		Tuning:   tuning,
		Rand:     rand.New(rand.NewSource(runSeed)),
		Feedback: game.Feedback(sounds),
		Sink:     hud,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer scene.Close()
	log.Printf("seed=%d", runSeed)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorDefault).Foreground(tcell.ColorWhite))
	screen.Clear()

	g := &terminalGame{
		screen: screen,
		scene:  scene,
		sounds: sounds,
		hud:    hud,
	}
	g.run()
}
