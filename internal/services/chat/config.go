// File: internal/services/chat/config.go
package chat

import (
	"fmt"
	"time"
)

const (
	FallbackText     = "Apologies, I couldn't generate a text response right now."
	FallbackImageURL = "https://placehold.co/300x200/FF0000/FFFFFF?text=Image+Gen+Failed"
)

type Config struct {
	CompletionTimeout time.Duration // bound on one provider call
	SaveTimeout       time.Duration // bound on persisting the model reply
}

func (c *Config) Validate() error {
	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("completion timeout must be positive")
	}
	if c.SaveTimeout <= 0 {
		return fmt.Errorf("save timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		CompletionTimeout: 60 * time.Second,
		SaveTimeout:       5 * time.Second,
	}
}
