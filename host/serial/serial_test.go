package serial

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Device != "/dev/ttyACM0" || cfg.Baud != 115200 || cfg.ReadTimeout != 100 {
		t.Errorf("Unexpected default config %+v", *cfg)
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Expected error for nil config")
	}
	if _, err := Open(&Config{}); !errors.Is(err, ErrNoDevice) {
		t.Errorf("Expected ErrNoDevice, got %v", err)
	}
	if _, err := Open(DefaultConfig("/nonexistent/tty-gecko")); err == nil {
		t.Error("Expected error opening a missing device")
	}
}
