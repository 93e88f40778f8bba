package main

import (
	"testing"

	"specsync/cmd"
)

func TestVersion(t *testing.T) {
	if version != "dev" {
		t.Errorf("Expected default version to be 'dev', got %s", version)
	}

	cmd.SetVersion(version)
	if got := cmd.GetVersion(); got != "dev" {
		t.Errorf("Expected root command version 'dev', got %s", got)
	}
}
