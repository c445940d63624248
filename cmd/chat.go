package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chris-regnier/moodctl/internal/reflection"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatTranscript bool

// newTransport builds the chat transport; tests replace it.
var newTransport = func() reflection.Transport {
	c := appConfig.Chat
	return reflection.NewClient(c.Endpoint, c.Model, c.APIKey, c.TimeoutDuration())
}

var chatCmd = &cobra.Command{
	Use:   "chat <id> [message...]",
	Short: "Reflect on an entry with an AI assistant",
	Long: `Hold a reflective conversation about an entry. The assistant sees the
entry's date, mood and text. Every turn is stored with the entry, so a later
chat continues where the last one stopped.

With a message, one turn is sent and the reply printed. Without one, an
interactive session reads lines until EOF or /quit. --transcript prints the
stored conversation.

The endpoint must speak the OpenAI chat completions API; see chat.endpoint,
chat.model and chat.api_key in the config.`,
	Example: `  moodctl chat a3kf9x2m "Why did this day feel so heavy?"
  moodctl chat a3kf9x2m
  moodctl chat a3kf9x2m --transcript`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if chatTranscript {
			return chatTranscriptRun(cmd.OutOrStdout(), id)
		}
		return chatRun(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), id, strings.Join(args[1:], " "), newTransport())
	},
}

func openSession(id string, transport reflection.Transport) (*reflection.Session, error) {
	return reflection.NewSession(store, transport, id, appConfig.Chat.SystemPrompt,
		reflection.WithLogger(log), reflection.WithClock(now))
}

func chatRun(ctx context.Context, in io.Reader, w io.Writer, id, message string, transport reflection.Transport) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(id, transport)
	if err != nil {
		return err
	}

	if strings.TrimSpace(message) != "" {
		reply, err := s.Send(ctx, message)
		if err != nil {
			return err
		}
		if jsonOutput {
			return ui.FormatJSON(w, reply)
		}
		fmt.Fprintln(w, reply.Content)
		return nil
	}

	interactive := in == os.Stdin && term.IsTerminal(int(os.Stdin.Fd()))
	e := s.Entry()
	if interactive {
		fmt.Fprintf(w, "Reflecting on %s %s. Type /quit to stop.\n", e.Date, e.Mood)
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(w, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return nil
		}
		reply, err := s.Send(ctx, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n\n", reply.Content)
	}
}

func chatTranscriptRun(w io.Writer, id string) error {
	if _, err := store.Get(id); err != nil {
		return err
	}
	msgs, err := store.ListMessages(id)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, msgs)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No conversation yet.")
		return nil
	}
	ui.FormatTranscript(w, msgs)
	return nil
}

func init() {
	chatCmd.Flags().BoolVar(&chatTranscript, "transcript", false, "print the stored conversation and exit")
	rootCmd.AddCommand(chatCmd)
}
