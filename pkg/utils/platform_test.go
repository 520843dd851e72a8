//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("SHOWREEL_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv("SHOWREEL_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("SHOWREEL_MOBILE_EMULATE=1 should emulate mobile")
	}
}
