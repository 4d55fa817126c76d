package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"hyperstat/internal/structures"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const AppName = "HyperStatProxy"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("nexon.baseUrl", "https://open.api.nexon.com")
	v.SetDefault("nexon.path", "/maplestory/v1/character/hyper-stat")
	v.SetDefault("nexon.apiKeyHeader", "x-nxopen-api-key")
	v.SetDefault("nexon.timeout", 10*time.Second)
	v.SetDefault("nexon.burst", 1)
	v.SetDefault("cache.ttl", time.Minute)

	v.BindEnv("logger.level", "HYPERSTAT_LOG_LEVEL")
	v.BindEnv("cache.enabled", "HYPERSTAT_CACHE_ENABLED")
	v.BindEnv("cache.size", "HYPERSTAT_CACHE_SIZE")
	v.BindEnv("nexon.apiKey", "NEXON_API_KEY")
	v.BindEnv("nexon.baseUrl", "NEXON_BASE_URL")
	v.BindEnv("nexon.timeout", "NEXON_TIMEOUT")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
