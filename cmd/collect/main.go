// collect 手动运行一次采集：go run ./cmd/collect --source reddit
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"PainRadar/internal/app"
	"PainRadar/internal/config"
	"PainRadar/internal/service"

	"github.com/spf13/cobra"
)

func main() {
	var (
		source   string
		minScore int
	)
	cmd := &cobra.Command{
		Use:           "collect",
		Short:         "手动运行一次采集并输出各数据源汇总",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("加载配置文件失败: %w", err)
			}
			if minScore >= 0 {
				cfg.Scoring.MinScore = minScore
			}
			logger := app.NewLogger(cfg.Log)

			a, err := app.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("初始化失败: %w", err)
			}
			defer a.Close()

			var summaries []*service.BatchSummary
			if source != "" {
				summary, err := a.Sync.SyncSource(cmd.Context(), source)
				if err != nil {
					return fmt.Errorf("采集%s失败: %w", source, err)
				}
				summaries = append(summaries, summary)
			} else {
				summaries, err = a.Sync.SyncAll(cmd.Context())
				if err != nil {
					return fmt.Errorf("采集失败: %w", err)
				}
			}

			for _, s := range summaries {
				s.Results = nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summaries)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "只采集指定数据源，空则采集所有已启用数据源")
	cmd.Flags().IntVar(&minScore, "min-score", -1, "覆盖配置中的最低分")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
