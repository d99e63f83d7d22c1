// File: cmd/chatcli/logout.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-chat/internal/client"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved token and active session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.NewStore(statePath()).Clear(); err != nil {
			return fmt.Errorf("clear state: %w", err)
		}
		if err := saveToken(""); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		fmt.Println("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
