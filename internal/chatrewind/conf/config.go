// Package conf 负责加载运行配置：配置文件、环境变量与默认值。
package conf

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/sjzar/chatrewind/internal/errors"
)

// Config 运行配置。
type Config struct {
	// DataFile 上游导出工具产出的 JSON 数据包路径
	DataFile string `mapstructure:"data_file" json:"data_file"`

	// Year 报告目标年份，0 表示取当前年份的上一年
	Year int `mapstructure:"year" json:"year"`

	// Timezone IANA 时区名，空则使用本机时区
	Timezone string `mapstructure:"timezone" json:"timezone"`

	// Addr HTTP 服务监听地址
	Addr string `mapstructure:"addr" json:"addr"`

	Debug bool `mapstructure:"debug" json:"debug"`
}

// Load 读取配置。configFile 为空时只依赖环境变量和默认值。
// 环境变量前缀 CHATREWIND_，如 CHATREWIND_DATA_FILE。
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("year", 0)
	v.SetDefault("addr", "127.0.0.1:5030")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("CHATREWIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, 0, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, 0, "unmarshal config")
	}
	if cfg.Year == 0 {
		cfg.Year = time.Now().Year() - 1
	}

	log.Debug().Str("dataFile", cfg.DataFile).Int("year", cfg.Year).Msg("config loaded")
	return &cfg, nil
}

// Location resolves the configured timezone, falling back to local time.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Str("timezone", c.Timezone).Err(err).Msg("invalid timezone, using local")
		return time.Local
	}
	return loc
}
