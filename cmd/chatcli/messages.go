// File: cmd/chatcli/messages.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-chat/internal/client"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show the active session's transcript",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		state, err := loadState(ctx)
		if err != nil {
			return err
		}
		printTranscript(state)
		return nil
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <prompt...>",
	Short: "Send a text prompt to the active session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		state, err := loadState(ctx)
		if err != nil {
			return err
		}
		res, err := state.SendText(ctx, strings.Join(args, " "))
		if err != nil {
			return reportUnsent(err)
		}
		if res.AIMessage != nil {
			printMessage(*res.AIMessage)
		}
		return nil
	},
}

var imageCmd = &cobra.Command{
	Use:   "image <prompt...>",
	Short: "Generate an image in the active session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		state, err := loadState(ctx)
		if err != nil {
			return err
		}
		res, err := state.GenerateImage(ctx, strings.Join(args, " "))
		if err != nil {
			return reportUnsent(err)
		}
		fmt.Printf("model> [image] %s\n", abbreviate(res.ImageURL, 120))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(messagesCmd, sendCmd, imageCmd)
}

// reportUnsent echoes the prompt of a failed send so it can be retried.
func reportUnsent(err error) error {
	var se *client.SendError
	if errors.As(err, &se) {
		fmt.Fprintf(os.Stderr, "not sent: %q\n", se.Prompt)
		return se.Err
	}
	return err
}
