package delivery

import "testing"

func TestStatusTransitionTable(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusAccepted}:    true,
		{StatusPending, StatusCancelled}:   true,
		{StatusAccepted, StatusInTransit}:  true,
		{StatusAccepted, StatusCancelled}:  true,
		{StatusInTransit, StatusDelivered}: true,
	}

	all := []Status{StatusPending, StatusAccepted, StatusInTransit, StatusDelivered, StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			want := allowed[[2]Status{from, to}]
			if got != want {
				t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusDelivered, StatusCancelled} {
		if !s.IsTerminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusAccepted, StatusInTransit} {
		if s.IsTerminal() {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
}

func TestStatusValidity(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAccepted, StatusInTransit, StatusDelivered, StatusCancelled} {
		if !s.IsValid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if Status("shipped").IsValid() {
		t.Fatal("expected unknown status to be invalid")
	}
	if Status("shipped").IsTerminal() {
		t.Fatal("unknown status must not report terminal")
	}
}

func TestPaymentTransitionTable(t *testing.T) {
	allowed := map[[2]PaymentStatus]bool{
		{PaymentPending, PaymentInEscrow}:  true,
		{PaymentInEscrow, PaymentReleased}: true,
		{PaymentInEscrow, PaymentRefunded}: true,
	}

	all := []PaymentStatus{PaymentPending, PaymentInEscrow, PaymentReleased, PaymentRefunded}
	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			want := allowed[[2]PaymentStatus{from, to}]
			if got != want {
				t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}

	for _, ps := range []PaymentStatus{PaymentReleased, PaymentRefunded} {
		if !ps.IsTerminal() {
			t.Fatalf("expected %s to be terminal", ps)
		}
	}
}
