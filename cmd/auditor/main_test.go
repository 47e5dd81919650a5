package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	if cmd == nil {
		t.Fatal("newRootCmd returned nil")
	}
	if cmd.Use != "firewall-auditor [rules-file]" {
		t.Errorf("Expected use 'firewall-auditor [rules-file]', got '%s'", cmd.Use)
	}
}

func TestReportFormats(t *testing.T) {
	tests := []struct {
		flag     string
		expected []string
		wantErr  bool
	}{
		{"html", []string{"html"}, false},
		{"csv", []string{"csv"}, false},
		{"both", []string{"html", "csv"}, false},
		{"BOTH", []string{"html", "csv"}, false},
		{"none", nil, false},
		{"pdf", nil, true},
	}
	for _, tt := range tests {
		got, err := reportFormats(tt.flag)
		if tt.wantErr {
			if err == nil {
				t.Errorf("reportFormats(%q): expected error", tt.flag)
			}
			continue
		}
		if err != nil {
			t.Errorf("reportFormats(%q): unexpected error %v", tt.flag, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("reportFormats(%q) = %v, expected %v", tt.flag, got, tt.expected)
		}
	}
}

func TestLoadRulesRejectsMissingInputs(t *testing.T) {
	if _, err := loadRules("file", nil, ""); err == nil {
		t.Error("expected error when file provider has no path")
	}
	if _, err := loadRules("mariadb", nil, ""); err == nil {
		t.Error("expected error when mariadb provider has no DSN")
	}
	if _, err := loadRules("netconf", nil, ""); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestSetupLogger(t *testing.T) {
	levels := []string{"DEBUG", "INFO", "WARN", "ERROR", "UNKNOWN"}
	for _, lvl := range levels {
		l := setupLogger(lvl, "")
		if l == nil {
			t.Errorf("setupLogger returned nil for level %s", lvl)
		}
	}

	tmpDir, _ := os.MkdirTemp("", "log-test")
	defer os.RemoveAll(tmpDir)
	logFile := filepath.Join(tmpDir, "test.log")
	l1 := setupLogger("INFO", logFile)
	if l1 == nil {
		t.Fatal("setupLogger returned nil with log file")
	}
	l1.Info("test entry")
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("expected log file to be created: %v", err)
	}
}
