package model

import "testing"

func TestOrderStatusValid(t *testing.T) {
	valid := []OrderStatus{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusRejected}
	for _, s := range valid {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}

	for _, s := range []OrderStatus{"", "UNKNOWN", "processing", "CANCELLED"} {
		if s.Valid() {
			t.Fatalf("%q should not be valid", s)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusProcessing.Terminal() || OrderStatusShipped.Terminal() {
		t.Fatal("open statuses must not be terminal")
	}
	if !OrderStatusDelivered.Terminal() || !OrderStatusRejected.Terminal() {
		t.Fatal("delivered and rejected must be terminal")
	}
}

func TestOrderStatusTitle(t *testing.T) {
	cases := map[OrderStatus]string{
		OrderStatusProcessing: "В обработке",
		OrderStatusShipped:    "Отправлен",
		OrderStatusDelivered:  "Доставлен",
		OrderStatusRejected:   "Отклонён",
	}
	for status, want := range cases {
		if got := status.Title(); got != want {
			t.Fatalf("%s title = %q, want %q", status, got, want)
		}
	}
	if got := OrderStatus("X").Title(); got != "X" {
		t.Fatalf("unknown status should echo raw value, got %q", got)
	}
}
