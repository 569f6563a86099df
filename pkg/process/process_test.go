package process

import (
	"os"
	"testing"
)

func TestIsProcessAlive(t *testing.T) {
	if !IsProcessAlive(os.Getpid()) {
		t.Error("current process should be alive")
	}
	if IsProcessAlive(0) || IsProcessAlive(-1) {
		t.Error("non-positive PIDs are never alive")
	}
}
