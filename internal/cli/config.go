package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/trainyard/internal/paths"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Environment variables override file values, e.g. TRAINYARD_LOG_LEVEL.
	envPrefix = "TRAINYARD"

	cfgKeyLogLevel   = "log_level"
	cfgKeyLogFormat  = "log_format"
	cfgKeyTableStyle = "table_style"
	cfgKeySeed       = "seed"
	cfgKeyJournal    = "journal"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; every key has a default.
func loadConfig(configDir string) (types.Config, error) {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyLogFormat, def.LogFormat)
	v.SetDefault(cfgKeyTableStyle, def.TableStyle)
	v.SetDefault(cfgKeySeed, def.Seed)
	v.SetDefault(cfgKeyJournal, def.Journal)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// resolveConfig resolves the config directory from the flag and loads it.
func resolveConfig(flags *rootFlags) (string, types.Config, error) {
	dir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return "", types.Config{}, sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return dir, types.Config{}, err
	}
	return dir, cfg, nil
}
