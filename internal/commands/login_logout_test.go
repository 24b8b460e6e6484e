package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TestLoginCommand_NoOAuthClient verifies login fails without oauth_client.json
func TestLoginCommand_NoOAuthClient(t *testing.T) {
	env := newEnv(t, nil, false)

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, env)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: oauth_client.json not found in "+env.Config.Dir) {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if !strings.Contains(stderr, "taskman login") {
		t.Error("setup instructions should mention taskman login")
	}
}

// TestLoginCommand_InvalidOAuthClient verifies a corrupt client file is reported
func TestLoginCommand_InvalidOAuthClient(t *testing.T) {
	env := newEnv(t, nil, false)
	writeConfigFile(t, env.Config.Dir, config.OAuthClientFile, "{")

	_, stderr, code := runCommand(t, &commands.LoginCmd{}, env)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid oauth_client.json") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// TestLoginCommand_UnusableToken verifies login starts a new flow when the
// stored token cannot be used.
func TestLoginCommand_UnusableToken(t *testing.T) {
	tokens := map[string]string{
		"corrupt":          `{not json`,
		"no refresh token": `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`,
	}

	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			env := newEnv(t, nil, false)
			writeConfigFile(t, env.Config.Dir, config.OAuthClientFile, testOAuthClient)
			writeConfigFile(t, env.Config.Dir, config.TokenFile, token)

			// Cancel up front so the flow does not wait for a browser.
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			var out, errOut strings.Builder
			code := (&commands.LoginCmd{}).Run(ctx, env, nil, &out, &errOut)

			if out.String() == "already logged in\n" {
				t.Error("should not report an unusable token as logged in")
			}
			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
		})
	}
}

// TestLogoutCommand_OnlyRemovesToken verifies logout only removes token.json
func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	env := newEnv(t, nil, false)
	oauthPath := writeConfigFile(t, env.Config.Dir, config.OAuthClientFile, testOAuthClient)
	tokenPath := writeConfigFile(t, env.Config.Dir, config.TokenFile, `{"access_token":"test","refresh_token":"test"}`)

	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, env)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}
	if _, err := os.Stat(oauthPath); err != nil {
		t.Error("oauth_client.json should NOT have been deleted")
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout handles not being logged in
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	for _, quiet := range []bool{false, true} {
		stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, newEnv(t, nil, quiet))

		want := "not logged in\n"
		if quiet {
			want = ""
		}
		if code != exitcode.Success {
			t.Errorf("quiet=%v: expected exit code %d, got %d", quiet, exitcode.Success, code)
		}
		if stderr != "" {
			t.Errorf("quiet=%v: expected no stderr, got %q", quiet, stderr)
		}
		if stdout != want {
			t.Errorf("quiet=%v: expected %q, got %q", quiet, want, stdout)
		}
	}
}
