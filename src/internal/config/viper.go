package config

import (
	"strings"

	"github.com/spf13/viper"
)

// NewViper loads config.json when present and lets environment
// variables override (WEB_PORT -> web.port).
func NewViper() *viper.Viper {
	config := viper.New()
	config.SetConfigName("config")
	config.SetConfigType("json")
	config.AddConfigPath(".")
	config.AddConfigPath("./../../")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	_ = config.ReadInConfig()

	return config
}
