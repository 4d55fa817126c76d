package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// NexonConfig describes the upstream Open API endpoint and how to call it.
type NexonConfig struct {
	BaseURL      string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Path         string        `yaml:"path" validate:"required"`
	APIKeyHeader string        `yaml:"apiKeyHeader" validate:"required"`
	APIKey       string        `yaml:"apiKey"`
	Timeout      time.Duration `yaml:"timeout" validate:"required|min:1"`
	RateLimit    float64       `yaml:"rateLimit"`
	Burst        int           `yaml:"burst"`
}

// CharacterConfig holds the defaults used when a caller omits ocid or date.
type CharacterConfig struct {
	OCID string `yaml:"ocid"`
	Date string `yaml:"date"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Logger    LoggerConfig    `yaml:"logger"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Nexon     NexonConfig     `yaml:"nexon"`
	Character CharacterConfig `yaml:"character"`
}
