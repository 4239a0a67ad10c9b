package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCloseStoresUsesFreshDeadline(t *testing.T) {
	var got context.Context
	st := &stores{close: func(ctx context.Context) error {
		got = ctx
		return ctx.Err()
	}}

	if err := closeStores(st); err != nil {
		t.Fatalf("closeStores() unexpected error: %v", err)
	}
	deadline, ok := got.Deadline()
	if !ok {
		t.Fatal("closeStores() passed a context without a deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > storeCloseTimeout {
		t.Errorf("deadline in %v, want within %v", remaining, storeCloseTimeout)
	}
}

func TestCloseStoresReturnsError(t *testing.T) {
	boom := errors.New("disconnect failed")
	st := &stores{close: func(context.Context) error { return boom }}

	if err := closeStores(st); !errors.Is(err, boom) {
		t.Errorf("closeStores() = %v, want %v", err, boom)
	}
}
