// Package testsupport provides helpers for testscript-driven CLI tests.
package testsupport

import (
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/ramble/backend"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce  sync.Once
	ramblePath string
	buildErr   error

	serverOnce sync.Once
	serverURL  string
)

// BuildRamble builds the ramble binary once and returns its path.
func BuildRamble(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "ramble-bin-")
		if err != nil {
			buildErr = err
			return
		}

		ramblePath = filepath.Join(binDir, "ramble")
		cmd := exec.Command("go", "build", "-o", ramblePath, "./cmd/ramble")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build ramble: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return ramblePath
}

// DevServerURL starts a shared in-process dev server once and returns its
// address. The server lives for the remainder of the test process.
func DevServerURL(t testing.TB) string {
	t.Helper()

	serverOnce.Do(func() {
		server := backend.NewServer(backend.ServerOptions{
			Logger: log.New(io.Discard, "", 0),
		})
		serverURL = httptest.NewServer(server.Handler()).URL
	})

	return serverURL
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("RAMBLE", BuildRamble(t))
	env.Setenv("RAMBLE_SERVER", DevServerURL(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	return nil
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
