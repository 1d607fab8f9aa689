// headless-report 不开窗口批量跑多局，输出每局的结果
//
// 用法：
//
//	go run ./cmd/headless-report -runs 10 -seed-base 100 -seconds 60
//	go run ./cmd/headless-report -runs 3 -format yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/decker502/infinistacker/pkg/config"
)

var (
	runs       = flag.Int("runs", 5, "运行局数")
	seedBase   = flag.Int64("seed-base", 1, "第一局的随机种子，后续依次加一")
	seconds    = flag.Float64("seconds", 0, "每局最多模拟的秒数，0 表示使用调参中的生存时长再加 1 秒")
	tuningPath = flag.String("tuning", "", "调参 YAML 文件路径")
	format     = flag.String("format", "table", "输出格式：table 或 yaml")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
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

	limit := *seconds
	if limit <= 0 {
		limit = tuning.Run.SurvivalSeconds + 1
	}

	rows := make([]reportRow, 0, max(0, *runs))
	for i := range max(0, *runs) {
		row, err := simulate(tuning, *seedBase+int64(i), limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		rows = append(rows, row)
	}

	if err := writeReport(os.Stdout, *format, rows); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func writeReport(w io.Writer, format string, rows []reportRow) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()

	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SEED\tRESULT\tTIME\tSQUAD\tBASE\tTIER\tKILLS\tBREACH\tGATES\tBLOCKS\tICE\tTURRET\tSHOTS\tIMPACTS")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
				r.Seed, r.Result, r.Elapsed, r.Squad, r.BaseHP, r.Tier, r.Kills, r.Breaches,
				r.Gates, r.Blocks, r.Obstacles, r.TurretDeploys, r.Bullets, r.Impacts)
		}
		return tw.Flush()

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
