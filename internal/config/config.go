package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/infrastructure/storage"
	"github.com/spf13/viper"
)

const (
	configName = "pits"
	configType = "toml"
	envPrefix  = "PITS"
)

// Ключи viper. Они же имена полей в pits.toml и суффиксы PITS_* переменных.
const (
	KeyAddr  = "server.addr"
	KeyDebug = "server.debug"

	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"

	KeyCellSize         = "game.cell_size"
	KeyVisibilityRadius = "game.visibility_radius"
	KeyMaxInitialTokens = "game.max_initial_tokens"
	KeySpawnProbability = "game.spawn_probability"
	KeyOriginLat        = "game.origin_lat"
	KeyOriginLng        = "game.origin_lng"
	KeyStrict           = "game.strict"
	KeyAutosave         = "game.autosave"

	KeyStorageBackend = "storage.backend"
	KeyStoragePath    = "storage.path"
	KeyRedisAddr      = "storage.redis_addr"
	KeyRedisPrefix    = "storage.redis_prefix"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Game    GameConfig    `mapstructure:"game"`
	Storage StorageConfig `mapstructure:"storage"`
}

type ServerConfig struct {
	Addr  string `mapstructure:"addr"`
	Debug bool   `mapstructure:"debug"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type GameConfig struct {
	CellSize         float64       `mapstructure:"cell_size"`
	VisibilityRadius int           `mapstructure:"visibility_radius"`
	MaxInitialTokens int           `mapstructure:"max_initial_tokens"`
	SpawnProbability float64       `mapstructure:"spawn_probability"`
	OriginLat        float64       `mapstructure:"origin_lat"`
	OriginLng        float64       `mapstructure:"origin_lng"`
	Strict           bool          `mapstructure:"strict"`
	Autosave         time.Duration `mapstructure:"autosave"`
}

type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	Path        string `mapstructure:"path"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// SetDefaults прописывает значения по умолчанию.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyDebug, false)

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetDefault(KeyCellSize, domain.DefaultCellSize)
	v.SetDefault(KeyVisibilityRadius, domain.DefaultVisibilityRadius)
	v.SetDefault(KeyMaxInitialTokens, domain.DefaultMaxInitialTokens)
	v.SetDefault(KeySpawnProbability, domain.DefaultSpawnProbability)
	v.SetDefault(KeyOriginLat, domain.OriginLat)
	v.SetDefault(KeyOriginLng, domain.OriginLng)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyAutosave, time.Minute)

	v.SetDefault(KeyStorageBackend, storage.BackendBolt)
	v.SetDefault(KeyStoragePath, "pits.db")
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisPrefix, "pits:")
}

// Load читает конфиг: значения по умолчанию, затем pits.toml, затем PITS_* окружение.
// Флаги cobra должны быть привязаны к v заранее (BindPFlag) - у них наивысший приоритет.
// path == "" - ищем pits.toml в текущей директории, отсутствие файла не ошибка.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.EngineConfig().Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EngineConfig - параметры игрового мира.
func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		CellSize:         c.Game.CellSize,
		VisibilityRadius: c.Game.VisibilityRadius,
		MaxInitialTokens: c.Game.MaxInitialTokens,
		SpawnProbability: c.Game.SpawnProbability,
		Origin:           domain.LatLng{Lat: c.Game.OriginLat, Lng: c.Game.OriginLng},
		Strict:           c.Game.Strict,
		AutosaveInterval: c.Game.Autosave,
	}
}

// StorageConfig - куда сохранять сессию.
func (c Config) StorageConfig() storage.Config {
	return storage.Config{
		Backend:     c.Storage.Backend,
		Path:        c.Storage.Path,
		RedisAddr:   c.Storage.RedisAddr,
		RedisPrefix: c.Storage.RedisPrefix,
	}
}
