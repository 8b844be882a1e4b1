package model

import "testing"

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{
		OrderStatusNew, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCanceled,
	} {
		if !ValidOrderStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	for _, s := range []string{"", "new", "SHIPPED", "DONE"} {
		if ValidOrderStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
