// File: cmd/chatcli/config.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var configDir string

// initConfig loads ~/.go-chat/config.yaml, creating it with defaults on first run.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	configDir = filepath.Join(home, ".go-chat")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	viper.SetConfigFile(filepath.Join(configDir, "config.yaml"))
	viper.SetConfigType("yaml")
	viper.SetDefault("server.url", "http://localhost:8080")
	viper.SetDefault("auth.token", "")
	viper.SetEnvPrefix("GO_CHAT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("read config: %w", err)
			}
		}
		_ = viper.SafeWriteConfig()
	}
	return nil
}

func serverURL() string {
	return viper.GetString("server.url")
}

func authToken() string {
	return viper.GetString("auth.token")
}

func saveToken(token string) error {
	viper.Set("auth.token", token)
	return viper.WriteConfig()
}

func statePath() string {
	return filepath.Join(configDir, "state.json")
}
