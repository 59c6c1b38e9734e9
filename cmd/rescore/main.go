// rescore 按当前评分口径重算所有机会：go run ./cmd/rescore --rubric generic
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"PainRadar/internal/app"
	"PainRadar/internal/config"
	"PainRadar/internal/scoring"

	"github.com/spf13/cobra"
)

func main() {
	var (
		rubricName string
		topOnly    bool
	)
	cmd := &cobra.Command{
		Use:           "rescore",
		Short:         "用当前评分口径重算所有机会的分数",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("加载配置文件失败: %w", err)
			}
			logger := app.NewLogger(cfg.Log)

			if rubricName == "" {
				rubricName = cfg.Scoring.RescoreRubric
			}
			rubric, err := scoring.ParseRubric(rubricName)
			if err != nil {
				return err
			}

			a, err := app.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("初始化失败: %w", err)
			}
			defer a.Close()

			report, err := a.Rescore.Run(cmd.Context(), rubric)
			if err != nil {
				return fmt.Errorf("重新评分失败: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if topOnly {
				return enc.Encode(report.Top)
			}
			return enc.Encode(report)
		},
	}
	cmd.Flags().StringVar(&rubricName, "rubric", "", "评分口径 generic/microsaas，空则取配置")
	cmd.Flags().BoolVar(&topOnly, "top-only", false, "只输出新分数前 N 的机会")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
