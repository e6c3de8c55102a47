package models

import "testing"

func TestDeriveState(t *testing.T) {
	cases := []struct {
		hasSecurity bool
		hasChecker  bool
		want        InspectionState
	}{
		{false, false, StatePendingSecurity},
		{true, false, StatePendingChecker},
		{true, true, StateComplete},
	}
	for _, c := range cases {
		if got := DeriveState(c.hasSecurity, c.hasChecker); got != c.want {
			t.Errorf("DeriveState(%v, %v) = %s, want %s", c.hasSecurity, c.hasChecker, got, c.want)
		}
	}
}
