package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newPlaygroundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playground",
		Short: "Realtime playground commands",
	}

	cmd.AddCommand(newPlaygroundWatchCmd())

	return cmd
}

func newPlaygroundWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Connect to the playground and stream events",
		Long: `Connect to the playground websocket and print server events as they arrive.

Events include:
  - init: World snapshot on connect
  - player-joined / player-left: Arrivals and departures
  - player-moved: Position updates
  - nearby-players: Your proximity report
  - chat-invite-received / chat-invite-sent / chat-invite-declined
  - chat-room-joined / private-message-received / chat-room-closed
  - error: A request of yours was rejected

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchPlayground(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

func watchPlayground(jsonOutput bool) error {
	if cfg.Token == "" {
		return fmt.Errorf("not logged in; run 'kmctl player login' first")
	}

	wsURL, err := playgroundURL(cfg.ServerURL, cfg.Token)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	if !jsonOutput {
		fmt.Println("Connected to the playground")
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				if !jsonOutput {
					fmt.Println("\nDisconnected")
				}
				return nil
			}
			// Local close from the signal handler surfaces as a
			// read error too
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
		printPlaygroundEvent(raw, jsonOutput)
	}
}

// playgroundURL converts the configured server URL to the websocket
// endpoint, carrying the token as a query parameter
func playgroundURL(serverURL, token string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(serverURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/api/v1/playground/ws"
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func printPlaygroundEvent(raw []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(string(raw))
		return
	}

	var event map[string]any
	if err := json.Unmarshal(raw, &event); err != nil {
		fmt.Println(string(raw))
		return
	}

	eventType, _ := event["type"].(string)
	delete(event, "type")

	display, _ := json.Marshal(event)
	text := string(display)
	if len(text) > 100 {
		text = text[:100] + "..."
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Printf("[%s] %s: %s\n", timestamp, eventType, text)
}
