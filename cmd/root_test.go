package cmd

import (
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "root command without args shows help",
			args:           []string{},
			wantErr:        false,
			expectedOutput: "record user interviews and cut them per question",
		},
		{
			name:           "root command with --help",
			args:           []string{"--help"},
			wantErr:        false,
			expectedOutput: "Available Commands:",
		},
		{
			name:           "root command with invalid flag",
			args:           []string{"--invalid-flag"},
			wantErr:        true,
			expectedOutput: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, nil, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.expectedOutput != "" && !strings.Contains(out, tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, out)
			}
		})
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"serve", "record", "cut", "marks", "probe", "doctor", "report", "questions", "migrate", "version"} {
		if found, _, err := cmd.Find([]string{name}); err != nil || found.Name() != name {
			t.Errorf("Expected %s command to be registered", name)
		}
	}
}

func TestLogFlags(t *testing.T) {
	cmd := NewRootCmd()

	// Test that log-level flag is registered
	logFlag := cmd.PersistentFlags().Lookup("log-level")
	if logFlag == nil {
		t.Error("Expected log-level flag to be registered")
		return
	}

	if logFlag.DefValue != "info" {
		t.Errorf("Expected default log-level to be 'info', got %s", logFlag.DefValue)
	}

	// Test that json-logs flag is registered
	jsonFlag := cmd.PersistentFlags().Lookup("json-logs")
	if jsonFlag == nil {
		t.Error("Expected json-logs flag to be registered")
		return
	}

	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("Expected config flag to be registered")
	}
}

func TestNewLoggerPrefersFlags(t *testing.T) {
	cfg := useConfig(t)
	cfg.Logging.Level = "warn"

	log := newLogger(versionCmd)
	if log.GetLevel().String() != "warning" {
		t.Errorf("Expected level from config, got %s", log.GetLevel())
	}

	if err := rootCmd.PersistentFlags().Set("log-level", "debug"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resetFlags(rootCmd) })

	log = newLogger(versionCmd)
	if log.GetLevel().String() != "debug" {
		t.Errorf("Expected level from flag, got %s", log.GetLevel())
	}
}
