// File: cmd/chatcli/root.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iyunix/go-chat/internal/client"
)

var requestTimeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "chatcli",
	Short: "Terminal client for the go-chat server",
	Long: `chatcli talks to a go-chat server over its RPC endpoint.

The active session is remembered in ~/.go-chat/state.json, so "send" and
"image" keep writing to the same conversation until you switch with "use".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("server", "s", "", "server base URL (default http://localhost:8080)")
	rootCmd.PersistentFlags().String("token", "", "session token sent as a bearer credential")
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, "timeout", 2*time.Minute, "per-command timeout")
	_ = viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("auth.token", rootCmd.PersistentFlags().Lookup("token"))
}

// loadState builds a SessionState against the configured server and syncs it.
func loadState(ctx context.Context) (*client.SessionState, error) {
	api := client.NewClient(serverURL(), authToken())
	state := client.NewSessionState(api, client.NewStore(statePath()))
	if err := state.Load(ctx); err != nil {
		return nil, err
	}
	return state, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}

func formatError(err error) string {
	var rpcErr *client.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == "UNAUTHORIZED" {
		return fmt.Sprintf("%v\nrun 'chatcli dev-token --save' or pass --token", err)
	}
	return err.Error()
}
