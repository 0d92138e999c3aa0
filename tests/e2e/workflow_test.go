package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	TEST_SERVER_TIMEOUT = 15 * time.Second
	TEST_PASSWORD       = "correct-horse-battery"
)

// testEnv locates the daybook binary and builds an isolated environment
// around a temp home directory
func testEnv(t *testing.T) (string, []string, string) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("DAYBOOK_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	cliPath := filepath.Join(binDir, "daybook")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it first with: go build -o bin/daybook ./cmd/daybook", cliPath)
	}

	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "daybook", "daybook.db")

	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "DAYBOOK_") {
			continue
		}
		env = append(env, e)
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("DAYBOOK_DB=%s", dbPath),
		"DAYBOOK_TIMEZONE=UTC",
	)
	return cliPath, env, tempDir
}

func TestCLIWorkflow(t *testing.T) {
	cliPath, env, _ := testEnv(t)

	t.Log("Initializing storage...")
	runCmd(t, cliPath, env, "init")

	out := runCmd(t, cliPath, env, "prompts", "list")
	if !strings.Contains(out, "Daily Reflection") {
		t.Errorf("expected seeded prompts, got: %s", out)
	}
	runCmd(t, cliPath, env, "quote")
	if out := runCmd(t, cliPath, env, "resources"); out == "" {
		t.Error("expected resources output")
	}

	runCmd(t, cliPath, env, "settings", "--history-limit=5")
	if out := runCmd(t, cliPath, env, "settings", "--list"); !strings.Contains(out, "History Limit:  5") {
		t.Errorf("expected updated history limit, got: %s", out)
	}

	out = runCmd(t, cliPath, env, "doctor")
	if !strings.Contains(out, "Database reachable: OK") {
		t.Errorf("unexpected doctor output: %s", out)
	}

	// Sessions live in the OS keyring, which headless CI usually lacks
	regEnv := append(env, "DAYBOOK_PASSWORD="+TEST_PASSWORD)
	reg := exec.Command(cliPath, "auth", "register", "writer@example.com")
	reg.Env = regEnv
	regOut, err := reg.CombinedOutput()
	if err != nil {
		if strings.Contains(strings.ToLower(string(regOut)), "keyring") {
			t.Skipf("OS keyring unavailable: %s", regOut)
		}
		t.Fatalf("register failed: %v\nOutput: %s", err, regOut)
	}
	defer func() {
		logout := exec.Command(cliPath, "auth", "logout")
		logout.Env = env
		_ = logout.Run()
	}()

	t.Log("Writing an entry...")
	out = runCmd(t, cliPath, env, "write", "-p", "gratitude", "-m", "4", "Morning walk by the river")
	if !strings.Contains(out, "Entry saved successfully!") {
		t.Errorf("unexpected write output: %s", out)
	}

	out = runCmd(t, cliPath, env, "search", "river")
	if !strings.Contains(out, "Morning walk") {
		t.Errorf("expected search hit, got: %s", out)
	}

	out = runCmd(t, cliPath, env, "streak")
	if !strings.Contains(out, "1 day streak") {
		t.Errorf("unexpected streak output: %s", out)
	}

	out = runCmd(t, cliPath, env, "stats")
	if !strings.Contains(out, "Total Entries") {
		t.Errorf("unexpected stats output: %s", out)
	}

	runCmd(t, cliPath, env, "backup", "create")
	out = runCmd(t, cliPath, env, "backup", "list")
	if !strings.Contains(out, "daybook-") {
		t.Errorf("expected a backup listing, got: %s", out)
	}
}

func TestServeWorkflow(t *testing.T) {
	cliPath, env, _ := testEnv(t)
	runCmd(t, cliPath, env, "init")

	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveCmd := exec.CommandContext(ctx, cliPath, "serve", "--addr", addr, "--jwt-secret", "e2e-secret")
	serveCmd.Env = env
	var stderrBuf bytes.Buffer
	serveCmd.Stderr = &stderrBuf
	if err := serveCmd.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	defer func() {
		cancel()
		_ = serveCmd.Wait()
		if t.Failed() {
			t.Logf("Server stderr: %s", stderrBuf.String())
		}
	}()

	base := "http://" + addr
	waitForServer(t, base+"/api/prompts", TEST_SERVER_TIMEOUT)

	var session struct {
		Token string `json:"token"`
	}
	status := postJSON(t, base+"/api/auth/register", "", map[string]string{
		"email":    "writer@example.com",
		"password": TEST_PASSWORD,
	}, &session)
	if status != http.StatusCreated || session.Token == "" {
		t.Fatalf("register returned %d, token %q", status, session.Token)
	}

	var saved struct {
		Created bool `json:"created"`
		Streak  struct {
			CurrentStreak int `json:"current_streak"`
		} `json:"streak"`
	}
	status = postJSON(t, base+"/api/entries", session.Token, map[string]any{
		"prompt_id": "gratitude",
		"content":   "Coffee with a friend",
		"mood":      5,
	}, &saved)
	if status != http.StatusCreated || !saved.Created || saved.Streak.CurrentStreak != 1 {
		t.Errorf("submit returned %d: %+v", status, saved)
	}

	req, _ := http.NewRequest(http.MethodGet, base+"/api/entries/search?q=coffee", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("search request failed: %v", err)
	}
	defer resp.Body.Close()
	var body bytes.Buffer
	_, _ = body.ReadFrom(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body.String(), "Coffee with a friend") {
		t.Errorf("search returned %d: %s", resp.StatusCode, body.String())
	}

	anon, err := http.Get(base + "/api/entries")
	if err != nil {
		t.Fatalf("anonymous request failed: %v", err)
	}
	anon.Body.Close()
	if anon.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous history returned %d, want 401", anon.StatusCode)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func postJSON(t *testing.T, url, token string, payload, into any) int {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to encode payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if into != nil {
		_ = json.NewDecoder(resp.Body).Decode(into)
	}
	return resp.StatusCode
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	defer l.Close()
	return l.Addr().String()
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	t.Helper()
	start := time.Now()
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			return
		}
		if time.Since(start) > timeout {
			t.Fatalf("Timed out waiting for server at %s", url)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
