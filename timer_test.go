// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"code.hybscloud.com/fiber"
)

// TestCountdown: one fiber, three consecutive waits, exact output.
func TestCountdown(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	var out strings.Builder
	f := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		tm := fiber.NewTimer(l)
		for i := 3; i >= 1; i-- {
			tm.ExpiresAfter(100 * time.Millisecond)
			tm.Wait(tf)
			if i > 1 {
				fmt.Fprintf(&out, "%d... ", i)
			} else {
				fmt.Fprintf(&out, "%d...\n", i)
			}
		}
	})
	f.Detach()
	start := time.Now()
	l.Run()
	if got := out.String(); got != "3... 2... 1...\n" {
		t.Fatalf("got %q, want %q", got, "3... 2... 1...\n")
	}
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Fatalf("countdown finished in %v, want three full waits", elapsed)
	}
}

// TestTimerCancelRedirect: cancellation without an interruption request is
// a genuine operation error, written into the redirect slot untranslated.
func TestTimerCancelRedirect(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	var waitErr error
	start := time.Now()
	f := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		tm := fiber.NewTimer(l)
		canceller := fiber.SpawnFrom(tf, func(fiber.ThisFiber) {
			tm.Cancel()
		})
		canceller.Detach()
		tm.ExpiresAfter(60 * time.Second)
		tm.Wait(tf.Redirect(&waitErr))
	})
	f.Detach()
	l.Run()
	if !errors.Is(waitErr, fiber.ErrOperationAborted) {
		t.Fatalf("got %v, want ErrOperationAborted in the slot", waitErr)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("cancelled wait took %v", elapsed)
	}
}

// TestTimerCancelRaises: with the plain token, the same cancellation is
// raised at the resume site as *OpError.
func TestTimerCancelRaises(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	var raised error
	f := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			oe, ok := r.(*fiber.OpError)
			if !ok {
				panic(r)
			}
			raised = oe
		}()
		tm := fiber.NewTimer(l)
		canceller := fiber.SpawnFrom(tf, func(fiber.ThisFiber) {
			tm.Cancel()
		})
		canceller.Detach()
		tm.ExpiresAfter(60 * time.Second)
		tm.Wait(tf)
	})
	f.Detach()
	l.Run()
	if raised == nil {
		t.Fatal("cancelled wait did not raise at the resume site")
	}
	if !errors.Is(raised, fiber.ErrOperationAborted) {
		t.Fatalf("raised %v, want to unwrap to ErrOperationAborted", raised)
	}
}

// TestRedirectClearsSlotOnSuccess: a successful wait resets a dirty slot.
func TestRedirectClearsSlotOnSuccess(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	waitErr := errors.New("stale")
	f := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		tm := fiber.NewTimer(l)
		tm.ExpiresAfter(10 * time.Millisecond)
		tm.Wait(tf.Redirect(&waitErr))
	})
	f.Detach()
	l.Run()
	if waitErr != nil {
		t.Fatalf("slot not cleared on success: %v", waitErr)
	}
}

// TestAwaitValue: the adapter carries a completion value through to the
// resume site.
func TestAwaitValue(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	var got int
	f := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		got = fiber.Await(tf, func(complete func(int, error)) {
			go func() {
				time.Sleep(5 * time.Millisecond)
				complete(42, nil)
			}()
		})
	})
	f.Detach()
	l.Run()
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}
