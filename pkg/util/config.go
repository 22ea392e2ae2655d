package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig loads the optional converter config (./data/config.yaml).
// Missing config is not an error, flags cover every knob.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
