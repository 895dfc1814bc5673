package service

import (
	"errors"
	"testing"

	"github.com/rasoi-next/internal/constants"
)

func TestTransitionTableIsForwardOnly(t *testing.T) {
	flow := OrderStatusFlow()
	for i, from := range flow {
		for j, to := range flow {
			got := CanTransition(from, to)
			want := j > i
			if got != want {
				t.Fatalf("transition %s -> %s want %v got %v", from, to, want, got)
			}
		}
	}
}

func TestValidateTransitionErrors(t *testing.T) {
	err := validateTransition(constants.OrderStatusReady, constants.OrderStatusPreparing)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("backward move want ErrInvalidTransition got %v", err)
	}
	err = validateTransition(constants.OrderStatusDelivered, constants.OrderStatusDelivered)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("terminal self move want ErrInvalidTransition got %v", err)
	}
	err = validateTransition(constants.OrderStatusConfirmed, "cancelled")
	if !errors.Is(err, ErrInvalidOrderStatus) || !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown status want ErrInvalidOrderStatus got %v", err)
	}
	if err := validateTransition(constants.OrderStatusConfirmed, constants.OrderStatusPreparing); err != nil {
		t.Fatalf("forward move should pass: %v", err)
	}
}

func TestTerminalStatus(t *testing.T) {
	if !isTerminalOrderStatus(constants.OrderStatusDelivered) {
		t.Fatalf("delivered should be terminal")
	}
	if isTerminalOrderStatus(constants.OrderStatusOutForDelivery) {
		t.Fatalf("out_for_delivery should not be terminal")
	}
}
