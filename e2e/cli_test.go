package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "kmctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/kmctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		PairingService:   app.PairingService,
		MemoriesService:  app.MemoriesService,
		PlaygroundServer: app.PlaygroundServer,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type playerResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Gender      string `json:"gender"`
}

type authResponse struct {
	Player playerResponse `json:"player"`
	Token  string         `json:"token"`
}

type pairCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type pairResponse struct {
	ID      string         `json:"id"`
	Partner playerResponse `json:"partner"`
}

type noteResponse struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

type dateResponse struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("player", "register", "--name", "Alice", "--user", "alice", "--pass", "hunter22", "--gender", "female")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.Equal(t, "female", authResp.Player.Gender)
	assert.NotEmpty(t, authResp.Token)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)

	// Update display name
	output, err = cli.run("player", "update", "--name", "Allie", "--gender", "female")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Allie", player.DisplayName)

	// Login with the same account
	output, err = cli.run("player", "login", "--user", "alice", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Allie", authResp.Player.DisplayName)
	assert.NotEmpty(t, authResp.Token)
}

func TestCLI_PairFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	// Two CLI runners with separate token files
	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	output, err := cli1.run("player", "register", "--name", "Alice", "--user", "alice", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))

	output, err = cli2.run("player", "register", "--name", "Bob", "--user", "bob", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))

	// Alice issues a pairing code
	output, err = cli1.run("pair", "code")
	require.NoError(t, err, "output: %s", output)
	var codeResp pairCodeResponse
	require.NoError(t, json.Unmarshal([]byte(output), &codeResp))
	assert.NotEmpty(t, codeResp.Code)

	// Bob redeems it (lowercase input should still work)
	output, err = cli2.run("pair", "redeem", strings.ToLower(codeResp.Code))
	require.NoError(t, err, "output: %s", output)
	var pair pairResponse
	require.NoError(t, json.Unmarshal([]byte(output), &pair))
	assert.Equal(t, auth1.Player.ID, pair.Partner.ID)

	// Both sides see the pair
	output, err = cli1.run("pair", "show")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &pair))
	assert.Equal(t, auth2.Player.ID, pair.Partner.ID)

	// Unpair requires confirmation
	output, err = cli1.run("pair", "unpair")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "--yes")

	output, err = cli1.run("pair", "unpair", "--yes")
	require.NoError(t, err, "output: %s", output)
	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Unpaired.", msgResp.Message)

	// Pair is gone for both sides
	output, err = cli2.run("pair", "show")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not")
}

func TestCLI_MemoriesFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	output, err := cli1.run("player", "register", "--name", "Alice", "--user", "alice", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))

	output, err = cli2.run("player", "register", "--name", "Bob", "--user", "bob", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)

	output, err = cli1.run("pair", "code")
	require.NoError(t, err, "output: %s", output)
	var codeResp pairCodeResponse
	require.NoError(t, json.Unmarshal([]byte(output), &codeResp))

	_, err = cli2.run("pair", "redeem", codeResp.Code)
	require.NoError(t, err)

	// Alice writes a note, Bob sees it
	output, err = cli1.run("memories", "note", "add", "--title", "First trip", "--body", "The lighthouse at dawn")
	require.NoError(t, err, "output: %s", output)
	var note noteResponse
	require.NoError(t, json.Unmarshal([]byte(output), &note))
	assert.Equal(t, "First trip", note.Title)
	assert.Equal(t, auth1.Player.ID, note.AuthorID)

	output, err = cli2.run("memories", "note", "list")
	require.NoError(t, err, "output: %s", output)
	var notes []noteResponse
	require.NoError(t, json.Unmarshal([]byte(output), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, note.ID, notes[0].ID)

	// Bob records a special date, Alice sees it
	output, err = cli2.run("memories", "date", "add", "--label", "Anniversary", "--date", "2023-06-15")
	require.NoError(t, err, "output: %s", output)
	var date dateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &date))
	assert.Equal(t, "Anniversary", date.Label)

	output, err = cli1.run("memories", "date", "list")
	require.NoError(t, err, "output: %s", output)
	var dates []dateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &dates))
	require.Len(t, dates, 1)
	assert.Equal(t, "2023-06-15", dates[0].Date.Format("2006-01-02"))

	// Bob deletes Alice's note
	output, err = cli2.run("memories", "note", "rm", note.ID)
	require.NoError(t, err, "output: %s", output)
	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Note deleted.", msgResp.Message)

	output, err = cli1.run("memories", "note", "list")
	require.NoError(t, err, "output: %s", output)
	notes = nil
	require.NoError(t, json.Unmarshal([]byte(output), &notes))
	assert.Empty(t, notes)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	output, err = cli.run("player", "register", "--name", "Alice", "--user", "alice", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))

	// Notes require a pair
	output, err = cli.runWithToken(auth.Token, "memories", "note", "list")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not paired")

	// Unknown pair code
	output, err = cli.runWithToken(auth.Token, "pair", "redeem", "NOPE42")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
