package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"rostersync/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "ROSTERSYNC_LOG_LEVEL")
	viper.BindEnv("api.baseUrl", "ROSTERSYNC_API_BASE_URL")
	viper.BindEnv("api.token", "ROSTERSYNC_API_TOKEN")
	viper.BindEnv("sync.debounceDelay", "ROSTERSYNC_DEBOUNCE_DELAY")
	viper.BindEnv("sync.refreshInterval", "ROSTERSYNC_REFRESH_INTERVAL")
	viper.BindEnv("persistence.saveInterval", "ROSTERSYNC_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "ROSTERSYNC_CACHE_ENABLED")
	viper.BindEnv("cache.size", "ROSTERSYNC_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "RosterSyncDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
