package chatrewind

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sjzar/chatrewind/internal/analyzer"
	"github.com/sjzar/chatrewind/internal/chatrewind/conf"
	"github.com/sjzar/chatrewind/internal/loader"
)

var (
	reportDataFile string
	reportYear     int
	reportTimezone string
	reportOutput   string
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportDataFile, "file", "f", "", "聊天数据 JSON 文件路径")
	reportCmd.Flags().IntVarP(&reportYear, "year", "y", 0, "目标年份，默认为去年")
	reportCmd.Flags().StringVarP(&reportTimezone, "timezone", "t", "", "IANA 时区名，默认本机时区")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "输出文件路径，缺省写到标准输出")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "生成年度报告 JSON",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := conf.Load(configFile)
		if err != nil {
			log.Err(err).Msg("load config failed")
			os.Exit(1)
		}
		applyReportFlags(cfg)

		report, err := buildReport(cfg)
		if err != nil {
			log.Err(err).Msg("build report failed")
			os.Exit(1)
		}

		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Err(err).Msg("marshal report failed")
			os.Exit(1)
		}

		if reportOutput == "" {
			os.Stdout.Write(b)
			os.Stdout.WriteString("\n")
			return
		}
		if err := os.WriteFile(reportOutput, b, 0o644); err != nil {
			log.Err(err).Msg("write report failed")
			os.Exit(1)
		}
		log.Info().Str("path", reportOutput).Msg("report written")
	},
}

func applyReportFlags(cfg *conf.Config) {
	if reportDataFile != "" {
		cfg.DataFile = reportDataFile
	}
	if reportYear != 0 {
		cfg.Year = reportYear
	}
	if reportTimezone != "" {
		cfg.Timezone = reportTimezone
	}
}

func newAnalyzer(cfg *conf.Config) (*analyzer.Analyzer, error) {
	data, err := loader.Load(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	return analyzer.New(data, cfg.Year, analyzer.WithLocation(cfg.Location())), nil
}

func buildReport(cfg *conf.Config) (any, error) {
	a, err := newAnalyzer(cfg)
	if err != nil {
		return nil, err
	}
	return a.BuildReport(), nil
}
