package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/infinistacker/pkg/app"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/embedded"
)

var (
	tuningPath = flag.String("tuning", "", "调参 YAML 文件路径，为空时使用内置参数")
	seed       = flag.Int64("seed", 0, "随机种子，未指定时取当前时间")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	mute       = flag.Bool("mute", false, "关闭提示音")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	overrides, err := config.LoadHostOverrides()
	if err != nil {
		log.Fatalf("环境变量加载失败: %v", err)
	}

	tuning, err := config.ResolveTuning(*tuningPath, overrides)
	if err != nil {
		log.Fatalf("调参加载失败: %v", err)
	}

	cfg := app.Config{
		Verbose: *verbose || overrides.Verbose,
		Tuning:  tuning,
		Seed:    resolveSeed(overrides),
		Mute:    *mute,
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("InfiniStacker")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

// resolveSeed 命令行参数 > 环境变量 > 当前时间
func resolveSeed(overrides config.HostOverrides) int64 {
	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	switch {
	case seedSet:
		return *seed
	case overrides.HasSeed:
		return overrides.Seed
	default:
		return time.Now().UnixNano()
	}
}
