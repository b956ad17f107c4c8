package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/omarzayed/supportdesk/internal/config"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the support assistant in the terminal",
	Long: `Starts an interactive terminal session against an in-process assistant.
Type your question and press enter; use /escalate to hand the
conversation to a human, /summary to inspect it, /quit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		a, _, _, _, cleanup, err := buildAssistant(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("creating renderer: %w", err)
		}

		fmt.Println("Support Desk — type /quit to exit.")

		conversationID := ""
		prompt := promptui.Prompt{Label: "you"}

		for {
			input, err := prompt.Run()
			if err != nil {
				// Ctrl-C / Ctrl-D end the session.
				return nil
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}

			switch {
			case input == "/quit" || input == "/exit":
				return nil

			case input == "/summary":
				if conversationID == "" {
					fmt.Println("no conversation yet")
					continue
				}
				summary := a.Store().Summarize(conversationID)
				if summary == nil {
					fmt.Println("conversation not found")
					continue
				}
				fmt.Printf("messages: %d, intents: %s, escalated: %v\n",
					summary.MessageCount,
					strings.Join(summary.IntentsDiscussed, ", "),
					summary.Escalated)

			case strings.HasPrefix(input, "/escalate"):
				if conversationID == "" {
					fmt.Println("no conversation yet")
					continue
				}
				issue := strings.TrimSpace(strings.TrimPrefix(input, "/escalate"))
				message, ok := a.Escalate(conversationID, issue)
				if !ok {
					fmt.Println("conversation not found")
					continue
				}
				printReply(renderer, message)

			default:
				reply := a.Respond(cmd.Context(), conversationID, input)
				conversationID = reply.ConversationID
				printReply(renderer, reply.Response)
			}
		}
	},
}

func printReply(renderer *glamour.TermRenderer, text string) {
	rendered, err := renderer.Render(text)
	if err != nil {
		fmt.Println(text)
		return
	}
	fmt.Print(rendered)
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
