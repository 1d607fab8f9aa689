package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// 宿主程序读取的环境变量
const (
	EnvTuningPath = "INFINISTACKER_TUNING"
	EnvSeed       = "INFINISTACKER_SEED"
	EnvVerbose    = "INFINISTACKER_VERBOSE"
)

// HostOverrides 来自环境变量（或 .env 文件）的宿主覆盖项
// 命令行参数优先于这里的值
type HostOverrides struct {
	TuningPath string
	Seed       int64
	HasSeed    bool
	Verbose    bool
}

// LoadHostOverrides 读取环境变量覆盖项
// envFiles 为空时尝试加载工作目录下的 .env，文件不存在不算错误；
// 已存在的进程环境变量不会被 .env 覆盖
func LoadHostOverrides(envFiles ...string) (HostOverrides, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return HostOverrides{}, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}

	overrides := HostOverrides{
		TuningPath: os.Getenv(EnvTuningPath),
	}

	if raw := os.Getenv(EnvSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return HostOverrides{}, fmt.Errorf("invalid %s %q: %w", EnvSeed, raw, err)
		}
		overrides.Seed = seed
		overrides.HasSeed = true
	}

	if raw := os.Getenv(EnvVerbose); raw != "" {
		verbose, err := strconv.ParseBool(raw)
		if err != nil {
			return HostOverrides{}, fmt.Errorf("invalid %s %q: %w", EnvVerbose, raw, err)
		}
		overrides.Verbose = verbose
	}

	return overrides, nil
}

// ResolveTuning 按优先级选择调参来源：显式路径 > 环境变量 > 嵌入文件 > 默认值
func ResolveTuning(flagPath string, overrides HostOverrides) (*Tuning, error) {
	path := flagPath
	if path == "" {
		path = overrides.TuningPath
	}
	if path != "" {
		return LoadTuning(path)
	}
	return LoadEmbeddedTuning()
}
