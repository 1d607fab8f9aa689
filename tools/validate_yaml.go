// validate_yaml.go 检查调参文件
//
// 用法：
//
//	go run ./tools [data/tuning.yaml]
//
// 先用严格模式解码以发现拼错的键，再走正常的加载与校验流程。
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/infinistacker/pkg/config"
)

func main() {
	path := "data/tuning.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	var strict config.Tuning
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&strict); err != nil && !errors.Is(err, io.EOF) {
		fmt.Printf("❌ YAML 解析失败（含未知字段）: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ YAML 格式正确，没有未知字段\n")

	tuning, err := config.ParseTuning(data)
	if err != nil {
		fmt.Printf("❌ 参数校验失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ 参数校验通过\n")
	fmt.Printf("✅ 生存时长: %.0f 秒\n", tuning.Run.SurvivalSeconds)
	fmt.Printf("✅ 武器等级数量: %d\n", len(tuning.Weapon.Tiers))
	fmt.Printf("✅ 冰块槽位数量: %d\n", len(tuning.Obstacles.LaneOffsets))
}
