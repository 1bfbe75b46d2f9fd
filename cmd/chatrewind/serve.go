package chatrewind

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sjzar/chatrewind/internal/chatrewind/conf"
	"github.com/sjzar/chatrewind/internal/chatrewind/http"
	"github.com/sjzar/chatrewind/internal/index"
)

var (
	serveAddr     string
	serveDataFile string
	serveYear     int
	serveTimezone string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "监听地址，默认 127.0.0.1:5030")
	serveCmd.Flags().StringVarP(&serveDataFile, "file", "f", "", "聊天数据 JSON 文件路径")
	serveCmd.Flags().IntVarP(&serveYear, "year", "y", 0, "目标年份，默认为去年")
	serveCmd.Flags().StringVarP(&serveTimezone, "timezone", "t", "", "IANA 时区名，默认本机时区")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "以 HTTP / MCP 服务方式提供报告查询",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := conf.Load(configFile)
		if err != nil {
			log.Err(err).Msg("load config failed")
			os.Exit(1)
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		if serveDataFile != "" {
			cfg.DataFile = serveDataFile
		}
		if serveYear != 0 {
			cfg.Year = serveYear
		}
		if serveTimezone != "" {
			cfg.Timezone = serveTimezone
		}

		a, err := newAnalyzer(cfg)
		if err != nil {
			log.Err(err).Msg("load chat data failed")
			os.Exit(1)
		}

		idx, err := index.New()
		if err != nil {
			log.Err(err).Msg("create search index failed")
			os.Exit(1)
		}
		defer idx.Close()
		if err := idx.IndexMessages(a.YearMessages(), a.SenderID); err != nil {
			log.Err(err).Msg("index messages failed")
			os.Exit(1)
		}

		svc := http.NewService(cfg, a, idx)

		done := make(chan os.Signal, 1)
		signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-done
			_ = svc.Stop()
		}()

		if err := svc.ListenAndServe(); err != nil {
			log.Err(err).Msg("http server exited")
		}
	},
}
