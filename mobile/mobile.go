//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译，构建前先准备 mobile/data/tuning.yaml（见 embed.go）。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.infinistacker -o build/android/infinistacker.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/InfiniStacker.xcframework -v ./mobile
package mobile

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/infinistacker/pkg/app"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/embedded"
)

func init() {
	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	tuning, err := config.LoadEmbeddedTuning()
	if err != nil {
		log.Printf("内置调参加载失败，使用默认值: %v", err)
		tuning = config.DefaultTuning()
	}

	cfg := app.Config{
		Verbose: true,
		Tuning:  tuning,
		Seed:    time.Now().UnixNano(),
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
