// File: cmd/chatcli/sessions.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-chat/internal/client"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List your sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		state, err := loadState(ctx)
		if err != nil {
			return err
		}
		printSessions(state)
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a session and make it active",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		state, err := loadState(ctx)
		if err != nil {
			return err
		}
		var title *string
		if len(args) == 1 {
			title = &args[0]
		}
		created, err := state.NewSession(ctx, title)
		if err != nil {
			return err
		}
		fmt.Printf("created %s  %s\n", created.ID, created.Title)
		return nil
	},
}

var useCmd = &cobra.Command{
	Use:   "use <session-id>",
	Short: "Switch the active session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		state, err := loadState(ctx)
		if err != nil {
			return err
		}
		if err := state.Select(ctx, args[0]); err != nil {
			return err
		}
		printTranscript(state)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <session-id> <title>",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		state, err := loadState(ctx)
		if err != nil {
			return err
		}
		if err := state.Rename(ctx, args[0], args[1]); err != nil {
			return err
		}
		printSessions(state)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		state, err := loadState(ctx)
		if err != nil {
			return err
		}
		if err := state.Delete(ctx, args[0]); err != nil {
			return err
		}
		printSessions(state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd, newCmd, useCmd, renameCmd, deleteCmd)
}

func printSessions(state *client.SessionState) {
	if len(state.Sessions) == 0 {
		fmt.Println("no sessions")
		return
	}
	for _, s := range state.Sessions {
		marker := " "
		if s.ID == state.ActiveID {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %s\n", marker, s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Title)
	}
}

func printTranscript(state *client.SessionState) {
	if active, ok := state.Active(); ok {
		fmt.Printf("== %s ==\n", active.Title)
	}
	if len(state.Messages) == 0 {
		fmt.Println("(no messages)")
		return
	}
	for _, m := range state.Messages {
		printMessage(m)
	}
}

func printMessage(m client.Message) {
	speaker := "you"
	if m.Role == "model" {
		speaker = "model"
	}
	switch m.Type {
	case "image":
		fmt.Printf("%s> [image] %s\n", speaker, abbreviate(m.Content, 120))
	case "image_prompt":
		fmt.Printf("%s> [image prompt] %s\n", speaker, m.Content)
	default:
		fmt.Printf("%s> %s\n", speaker, m.Content)
	}
}

// abbreviate shortens data URIs, which can run to megabytes.
func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if strings.HasPrefix(s, "data:") {
		return s[:n] + fmt.Sprintf("... (%d bytes)", len(s))
	}
	return s
}
