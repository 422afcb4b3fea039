package handlers

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/imamik/ecsdisco/internal/config"
)

// captureOutput captures stdout during function execution.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// saveAndRestoreFactories saves and restores every replaceable collaborator.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origLoadConfig := loadConfig
	origIsTTY := isInteractiveTTY
	origFileExists := fileExists
	origRunWizard := runWizard
	origWriteConfig := writeConfig
	origBuildPlan := buildPlan
	origSynthesize := synthesize
	origNewAssociator := newAssociator
	origNewPublisher := newPublisher

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		isInteractiveTTY = origIsTTY
		fileExists = origFileExists
		runWizard = origRunWizard
		writeConfig = origWriteConfig
		buildPlan = origBuildPlan
		synthesize = origSynthesize
		newAssociator = origNewAssociator
		newPublisher = origNewPublisher
	})
}

// useConfig makes loadConfig return cfg and disables TTY detection.
func useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	saveAndRestoreFactories(t)

	loadConfig = func(string) (*config.Config, error) {
		return cfg, nil
	}
	isInteractiveTTY = func() bool { return false }
}
