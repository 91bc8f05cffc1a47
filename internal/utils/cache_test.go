package utils

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := GetCache()

	c.Set("k1", "v1", time.Minute)
	if got := c.Get("k1"); got != "v1" {
		t.Errorf("Get(k1) = %v, want v1", got)
	}

	if got := c.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}

	c.Delete("k1")
	if got := c.Get("k1"); got != nil {
		t.Errorf("Get after Delete = %v, want nil", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := GetCache()

	c.Set("ttl", 1, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if got := c.Get("ttl"); got != nil {
		t.Errorf("expired entry still returned: %v", got)
	}
}
