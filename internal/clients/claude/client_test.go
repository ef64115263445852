package claude

import (
	"testing"
	"time"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("test-key")
	if c.model != defaultModel {
		t.Errorf("model = %q, want %q", c.model, defaultModel)
	}
	if c.maxTokens != defaultMaxTokens {
		t.Errorf("maxTokens = %d, want %d", c.maxTokens, defaultMaxTokens)
	}
	if c.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", c.timeout, defaultTimeout)
	}
}

func TestNewClientOptions(t *testing.T) {
	c := NewClient("test-key", WithModel("claude-opus-4-1"), WithMaxTokens(2000))
	if c.model != "claude-opus-4-1" {
		t.Errorf("model = %q", c.model)
	}
	if c.maxTokens != 2000 {
		t.Errorf("maxTokens = %d", c.maxTokens)
	}

	// Empty model and non-positive values keep the defaults.
	c = NewClient("test-key", WithModel(""), WithMaxTokens(0), WithTimeout(0))
	if c.model != defaultModel || c.maxTokens != defaultMaxTokens || c.timeout != defaultTimeout {
		t.Errorf("defaults not preserved: %q %d %v", c.model, c.maxTokens, c.timeout)
	}
}

func TestNewClientTimeout(t *testing.T) {
	c := NewClient("test-key", WithTimeout(90*time.Second))
	if c.timeout != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", c.timeout)
	}
}
