package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 INKWELL_* 可覆盖文件中的值
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("INKWELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.trusted_proxies", []string{"localhost"})
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 100)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("mongo.database", "inkwell")
	v.SetDefault("elastic.indices.post_index", "inkwell_posts")
	v.SetDefault("jwt.issuer", "Inkwell")
	v.SetDefault("jwt.expiration_hours", 24*7)
	v.SetDefault("logstash.index", "logstash-inkwell")
	v.SetDefault("comment.max_length", 1000)
	v.SetDefault("comment.promote_orphans", false)
	v.SetDefault("cron.ban_expiry_spec", "@every 1m")
	v.SetDefault("cron.orphan_sweep_spec", "@daily")
}
