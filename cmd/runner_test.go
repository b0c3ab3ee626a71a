package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/curator/internal/shared"
	tu "github.com/desertthunder/curator/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.spotify == nil {
				t.Error("expected a default spotify service")
			}
			if runner.engine == nil {
				t.Error("expected an export engine")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("requireClient", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if _, err := runner.requireClient(); err == nil {
			t.Error("expected an error without a configured client")
		}
	})
}

func TestManualItemsFromFlags(t *testing.T) {
	// Parsing is exercised through a throwaway command so flag handling
	// matches the real CLI path.
	parse := func(t *testing.T, args ...string) ([]string, error) {
		t.Helper()
		var titles []string
		var parseErr error
		app := &cli.Command{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "file"},
				&cli.StringSliceFlag{Name: "item"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				items, err := manualItemsFromFlags(cmd)
				if err != nil {
					parseErr = err
					return nil
				}
				for _, item := range items {
					titles = append(titles, item.Title+"/"+item.Creator)
				}
				return nil
			},
		}
		if err := app.Run(context.Background(), append([]string{"test"}, args...)); err != nil {
			t.Fatalf("command failed: %v", err)
		}
		return titles, parseErr
	}

	t.Run("parses repeated item flags", func(t *testing.T) {
		titles, err := parse(t, "--item", "Only Shallow|My Bloody Valentine", "--item", "Vapour Trail|Ride")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(titles) != 2 || titles[0] != "Only Shallow/My Bloody Valentine" {
			t.Errorf("unexpected items: %v", titles)
		}
	})

	t.Run("rejects entries without a separator", func(t *testing.T) {
		_, err := parse(t, "--item", "No Separator Here")
		if err == nil {
			t.Error("expected an error for a malformed item")
		}
	})

	t.Run("requires some input", func(t *testing.T) {
		_, err := parse(t)
		if err == nil {
			t.Error("expected an error with no items")
		}
	})
}
