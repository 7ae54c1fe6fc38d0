package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pongBody = `{"choices":[{"message":{"content":"pong"}}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`

// resetFlags restores every flag of both roots to its default and clears
// the Changed markers left by a previous Execute.
func resetFlags() {
	reset := func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	for _, root := range []*cobra.Command{gatewayCmd, kimiCmd} {
		root.Flags().VisitAll(reset)
		root.PersistentFlags().VisitAll(reset)
		for _, sub := range root.Commands() {
			sub.Flags().VisitAll(reset)
		}
	}
}

// isolate clears every configuration source the resolver might pick up and
// moves into an empty working directory.
func isolate(t *testing.T) string {
	t.Helper()
	for _, p := range []string{"OPENAI", "ANTHROPIC", "GOOGLE", "KIMI"} {
		for _, suffix := range []string{"_API_KEY", "_API_URL", "_MODEL", "_TEMPERATURE", "_MAX_TOKENS"} {
			t.Setenv(p+suffix, "")
		}
	}
	for _, k := range []string{"GEMINI_API_KEY", "DEFAULT_MODEL", "DEFAULT_TEMPERATURE", "MAX_TOKENS"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, root *cobra.Command, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	resetFlags()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	code = execute(root)
	return out.String(), errOut.String(), code
}

type stub struct {
	*httptest.Server
	calls   atomic.Int32
	payload map[string]any
	header  http.Header
}

func newStub(t *testing.T, status int, body string) *stub {
	t.Helper()
	s := &stub{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.header = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &s.payload)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func decode(t *testing.T, stdout string) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got), stdout)
	return got
}

// --- completion ---

func TestKimi_EndToEnd(t *testing.T) {
	isolate(t)
	s := newStub(t, http.StatusOK, pongBody)

	stdout, _, code := run(t, kimiCmd, "--prompt", "ping", "--api-key", "sk-test", "--endpoint", s.URL)

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, `"response": "pong"`)
	assert.Contains(t, stdout, `"total_tokens": 2`)
	got := decode(t, stdout)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "kimi", got["provider"])
	assert.Equal(t, "moonshot-v1-8k", got["model"])
	assert.Equal(t, "Bearer sk-test", s.header.Get("Authorization"))
	assert.Equal(t, 0.7, s.payload["temperature"])
	assert.Equal(t, float64(4096), s.payload["max_tokens"])
}

func TestGateway_EndToEnd(t *testing.T) {
	isolate(t)
	s := newStub(t, http.StatusOK, pongBody)
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_API_URL", s.URL)

	stdout, _, code := run(t, gatewayCmd,
		"--provider", "openai", "--model", "gpt-4o-mini", "--prompt", "ping",
		"--temperature", "0", "--max-tokens", "16")

	assert.Equal(t, ExitSuccess, code, stdout)
	got := decode(t, stdout)
	assert.Equal(t, "pong", got["response"])
	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.Equal(t, "Bearer env-key", s.header.Get("Authorization"))
	assert.Equal(t, 0.0, s.payload["temperature"])
	assert.Equal(t, float64(16), s.payload["max_tokens"])
}

func TestKimi_MissingAPIKey(t *testing.T) {
	isolate(t)
	s := newStub(t, http.StatusOK, pongBody)

	stdout, _, code := run(t, kimiCmd, "--prompt", "ping", "--endpoint", s.URL)

	assert.Equal(t, ExitFailure, code)
	got := decode(t, stdout)
	assert.Equal(t, false, got["success"])
	assert.Contains(t, got["error"], "KIMI_API_KEY")
	assert.NotContains(t, got, "response")
	assert.Zero(t, s.calls.Load())
}

func TestKimi_ServerError(t *testing.T) {
	isolate(t)
	s := newStub(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`)

	stdout, _, code := run(t, kimiCmd, "--prompt", "ping", "--api-key", "k-1234", "--endpoint", s.URL)

	assert.Equal(t, ExitFailure, code)
	got := decode(t, stdout)
	assert.Contains(t, got["error"], "kimi")
	assert.Contains(t, got["error"], "500")
}

func TestKimi_MissingContentField(t *testing.T) {
	isolate(t)
	s := newStub(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant"}}]}`)

	stdout, _, code := run(t, kimiCmd, "--prompt", "ping", "--api-key", "k-1234", "--endpoint", s.URL)

	assert.Equal(t, ExitFailure, code)
	got := decode(t, stdout)
	assert.Contains(t, got["error"], "choices[0].message.content")
}

func TestKimi_ReasoningInOutput(t *testing.T) {
	isolate(t)
	s := newStub(t, http.StatusOK, `{"choices":[{"message":{"content":"42","reasoning_content":"6x7"}}]}`)

	stdout, _, code := run(t, kimiCmd, "--model", "kimi-k2-thinking", "--prompt", "q", "--api-key", "k-1234", "--endpoint", s.URL)

	assert.Equal(t, ExitSuccess, code)
	got := decode(t, stdout)
	assert.Equal(t, "6x7", got["reasoning"])
}

func TestKimi_MissingPromptFlag(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, kimiCmd, "--api-key", "k")
	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stderr)
	got := decode(t, stdout)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "kimi", got["provider"])
	assert.Contains(t, got["error"], `"prompt" not set`)
	assert.NotContains(t, got, "response")
}

func TestKimi_EmptyPromptFlag(t *testing.T) {
	isolate(t)
	stdout, _, code := run(t, kimiCmd, "--prompt", "")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, decode(t, stdout)["error"], `"prompt" not set`)
}

func TestGateway_MissingProvider(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, gatewayCmd, "--prompt", "hi")
	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stderr)
	got := decode(t, stdout)
	assert.Equal(t, false, got["success"])
	assert.Contains(t, got["error"], `"provider" not set`)
}

func TestGateway_UnknownProvider(t *testing.T) {
	isolate(t)
	stdout, _, code := run(t, gatewayCmd, "--provider", "mistral", "--prompt", "hi")
	assert.Equal(t, ExitFailure, code)
	got := decode(t, stdout)
	assert.Equal(t, false, got["success"])
	assert.Contains(t, got["error"], "unknown provider")
}

func TestGateway_InvalidTemperature(t *testing.T) {
	isolate(t)
	stdout, _, code := run(t, gatewayCmd, "--provider", "google", "--prompt", "hi", "--api-key", "k", "--temperature", "5")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, decode(t, stdout)["error"], "temperature")
}

func TestKimi_ConfigFileInWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	s := newStub(t, http.StatusOK, pongBody)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	env := "# kimi\nKIMI_API_KEY=file-key\nDEFAULT_MODEL=moonshot-v1-32k\nKIMI_API_URL=" + s.URL + "\nMAX_TOKENS=128\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", ".env"), []byte(env), 0o644))

	stdout, _, code := run(t, kimiCmd, "--prompt", "ping")

	assert.Equal(t, ExitSuccess, code, stdout)
	assert.Equal(t, "Bearer file-key", s.header.Get("Authorization"))
	assert.Equal(t, "moonshot-v1-32k", s.payload["model"])
	assert.Equal(t, float64(128), s.payload["max_tokens"])
}

func TestKimi_FlagBeatsConfigFile(t *testing.T) {
	isolate(t)
	s := newStub(t, http.StatusOK, pongBody)
	file := filepath.Join(t.TempDir(), "custom.env")
	require.NoError(t, os.WriteFile(file, []byte("KIMI_API_KEY=file-key\nDEFAULT_TEMPERATURE=1.2\n"), 0o644))

	_, _, code := run(t, kimiCmd, "--prompt", "ping", "--config", file, "--endpoint", s.URL, "--temperature", "0.3")

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Bearer file-key", s.header.Get("Authorization"))
	assert.Equal(t, 0.3, s.payload["temperature"])
}

func TestKimi_TextFormat(t *testing.T) {
	isolate(t)
	s := newStub(t, http.StatusOK, pongBody)
	stdout, _, code := run(t, kimiCmd, "--prompt", "ping", "--api-key", "k", "--endpoint", s.URL, "--format", "text")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "pong\n", stdout)
}

func TestKimi_BadFormat(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, kimiCmd, "--prompt", "ping", "--api-key", "k", "--format", "xml")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "unsupported output format")
}

func TestKimi_DebugLogging(t *testing.T) {
	isolate(t)
	s := newStub(t, http.StatusOK, pongBody)
	stdout, stderr, code := run(t, kimiCmd, "--prompt", "ping", "--api-key", "secret-key-value", "--endpoint", s.URL, "--log-level", "debug")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "sending completion request")
	assert.NotContains(t, stderr, "secret-key-value")
	assert.NotContains(t, stdout, "level=")
}

// --- subcommands ---

func TestModels_Kimi(t *testing.T) {
	isolate(t)
	stdout, _, code := run(t, kimiCmd, "models")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "moonshot-v1-8k (default)")
	assert.Contains(t, stdout, "kimi-k2-thinking")
	assert.Contains(t, stdout, "256K")
	assert.NotContains(t, stdout, "gpt-4o")
}

func TestModels_GatewayFilter(t *testing.T) {
	isolate(t)
	stdout, _, code := run(t, gatewayCmd, "models", "--provider", "gemini")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "gemini-1.5-pro")
	assert.NotContains(t, stdout, "moonshot")

	stdout, _, code = run(t, gatewayCmd, "models")
	assert.Equal(t, ExitSuccess, code)
	for _, m := range []string{"gpt-4o", "claude-3-5-sonnet-20241022", "gemini-1.5-pro", "moonshot-v1-8k"} {
		assert.Contains(t, stdout, m)
	}
}

func TestConfig_ShowsMaskedKey(t *testing.T) {
	isolate(t)
	t.Setenv("KIMI_API_KEY", "sk-abcdefghijkl")
	t.Setenv("DEFAULT_MODEL", "moonshot-v1-128k")

	stdout, _, code := run(t, kimiCmd, "config", "--max-tokens", "100")

	assert.Equal(t, ExitSuccess, code)
	got := decode(t, stdout)
	assert.Equal(t, "****ijkl", got["api_key"])
	assert.Equal(t, "moonshot-v1-128k", got["model"])
	assert.Equal(t, float64(100), got["max_tokens"])
	assert.NotContains(t, stdout, "sk-abcdefghijkl")
}

func TestConfig_MissingKeyFails(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, gatewayCmd, "config", "--provider", "anthropic")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, `"provider": "anthropic"`)
	assert.Contains(t, stderr, "ANTHROPIC_API_KEY")
}

func TestConfig_GatewayRequiresProvider(t *testing.T) {
	isolate(t)
	_, _, code := run(t, gatewayCmd, "config")
	assert.Equal(t, ExitFailure, code)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, code := run(t, gatewayCmd, "version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, version)
	assert.Contains(t, stdout, "goVersion:")
}

// --- helpers ---

func TestBuildExplicit(t *testing.T) {
	resetFlags()
	require.NoError(t, kimiCmd.ParseFlags([]string{"--prompt", "hi", "--temperature", "0"}))

	e := buildExplicit(kimiCmd, &kimiFlags)
	assert.Equal(t, "hi", e.Prompt)
	require.NotNil(t, e.Temperature)
	assert.Equal(t, 0.0, *e.Temperature)
	assert.Nil(t, e.MaxTokens, "max-tokens was not set")
	resetFlags()
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "debug").Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	buf.Reset()
	newLogger(&buf, "nonsense").Info("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	newLogger(&buf, "error").Warn("hidden")
	assert.Empty(t, buf.String())
	assert.True(t, newLogger(&buf, "warn").Enabled(context.Background(), slog.LevelWarn))
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitFailure)
}
