package engine

import (
	"testing"
	"time"
)

func TestTimedOutRespectsDeadline(t *testing.T) {
	e := New(time.Now().Add(-time.Second), DefaultBudget, nil)
	if !e.TimedOut() {
		t.Fatal("expected a past deadline to report timed out")
	}
}

func TestTimedOutZeroDeadlineNeverExpires(t *testing.T) {
	e := New(time.Time{}, DefaultBudget, nil)
	if e.TimedOut() {
		t.Fatal("zero deadline means no deadline")
	}
}

func TestCancelForcesTimedOut(t *testing.T) {
	e := New(time.Time{}, DefaultBudget, nil)
	e.Cancel()
	if !e.TimedOut() {
		t.Fatal("Cancel must force TimedOut to report true")
	}
}

func TestWithDeadlineRestoresPriorState(t *testing.T) {
	orig := time.Now().Add(time.Hour)
	e := New(orig, DefaultBudget, nil)

	var sawTimedOutDuring bool
	e.WithDeadline(time.Now().Add(-time.Second), func() {
		sawTimedOutDuring = e.TimedOut()
	})

	if !sawTimedOutDuring {
		t.Fatal("nested deadline should have been in effect during fn")
	}
	if e.TimedOut() {
		t.Fatal("WithDeadline must restore the prior deadline/timedOut flag on return")
	}
}

func TestConsumeBudgetUnlimitedAlwaysTrue(t *testing.T) {
	e := New(time.Time{}, -1, nil)
	for i := 0; i < 5; i++ {
		if !e.ConsumeBudget() {
			t.Fatal("negative budget must never be exhausted")
		}
	}
}

func TestConsumeBudgetExhausts(t *testing.T) {
	e := New(time.Time{}, 1, nil)
	if !e.ConsumeBudget() {
		t.Fatal("first step should succeed, consuming the last unit of budget")
	}
	if e.ConsumeBudget() {
		t.Fatal("second step should report exhausted once budget reaches zero")
	}
}

func TestEnterExitLambdaTracksDepth(t *testing.T) {
	e := New(time.Time{}, -1, nil)
	e.SetMaxLambdaDepth(2)

	if !e.EnterLambda() || e.LambdaDepth() != 1 {
		t.Fatal("first EnterLambda should succeed and set depth to 1")
	}
	if !e.EnterLambda() || e.LambdaDepth() != 2 {
		t.Fatal("second EnterLambda should succeed and set depth to 2")
	}
	if e.EnterLambda() {
		t.Fatal("third EnterLambda should fail: max depth is 2")
	}

	e.ExitLambda()
	if e.LambdaDepth() != 1 {
		t.Fatal("ExitLambda should decrement depth")
	}
}

func TestExitLambdaFloorsAtZero(t *testing.T) {
	e := New(time.Time{}, -1, nil)
	e.ExitLambda()
	if e.LambdaDepth() != 0 {
		t.Fatal("ExitLambda on an empty stack must not go negative")
	}
}
