package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Moomken/deploy-frappe/config"
)

// A usage error (here: restore without its backup-id) must reach the
// operator even though errors are silenced on the command tree.
func TestExecuteReportsUsageErrors(t *testing.T) {
	oldCfg := cfg
	defer func() { cfg = oldCfg }()

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	rootCmd.SetArgs([]string{"restore"})
	err := Execute(&config.Config{})
	rootCmd.SetArgs([]string{})

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err == nil {
		t.Fatal("Execute() error = nil, want usage error for missing backup-id")
	}
	if output == "" {
		t.Error("Execute() printed nothing to the operator for a usage error")
	}
	if !strings.Contains(output, err.Error()) {
		t.Errorf("Execute() stderr %q does not contain %q", output, err.Error())
	}
}

func TestReadConfirmation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Yes", "y\n", true},
		{"Yes word", "YES\n", true},
		{"No", "n\n", false},
		{"Plain enter cancels", "\n", false},
		{"EOF cancels", "", false},
		{"Garbage cancels", "sure\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readConfirmation(strings.NewReader(tt.input)); got != tt.expected {
				t.Errorf("readConfirmation(%q) = %t, want %t", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetSiteName(t *testing.T) {
	oldCfg := cfg
	defer func() { cfg = oldCfg }()
	cfg = &config.Config{SiteName: "erp.example.com"}

	cmd := &cobra.Command{}
	cmd.Flags().StringP("site", "s", "", "")

	if got := getSiteName(cmd); got != "erp.example.com" {
		t.Errorf("getSiteName() = %s, want %s", got, "erp.example.com")
	}

	if err := cmd.Flags().Set("site", "staging.example.com"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}
	if got := getSiteName(cmd); got != "staging.example.com" {
		t.Errorf("getSiteName() = %s, want %s", got, "staging.example.com")
	}
}
