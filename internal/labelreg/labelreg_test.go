package labelreg

import "testing"

func TestCheckUnregisteredLabelErrors(t *testing.T) {
	r := New()
	_, err := r.Check("positive", 1)
	if err == nil {
		t.Fatal("expected an error for an unregistered label, not a silent pass")
	}
}

func TestCheckRegisteredLabel(t *testing.T) {
	r := New()
	r.Register("positive", func(subject interface{}) bool {
		n, ok := subject.(int)
		return ok && n > 0
	})

	ok, err := r.Check("positive", 5)
	if err != nil || !ok {
		t.Fatalf("expected positive(5) to hold, got ok=%v err=%v", ok, err)
	}

	ok, err = r.Check("positive", -5)
	if err != nil || ok {
		t.Fatalf("expected positive(-5) to fail, got ok=%v err=%v", ok, err)
	}
}

func TestCheckAllShortCircuitsOnFirstFailure(t *testing.T) {
	r := New()
	var secondCalled bool
	r.Register("never", func(interface{}) bool { return false })
	r.Register("tracks", func(interface{}) bool {
		secondCalled = true
		return true
	})

	ok, err := r.CheckAll([]string{"never", "tracks"}, 0)
	if err != nil || ok {
		t.Fatalf("expected CheckAll to fail on the first label, got ok=%v err=%v", ok, err)
	}
	if secondCalled {
		t.Fatal("CheckAll should short circuit and never evaluate later labels")
	}
}

func TestCheckAllPropagatesLookupError(t *testing.T) {
	r := New()
	r.Register("known", func(interface{}) bool { return true })

	_, err := r.CheckAll([]string{"known", "missing"}, 0)
	if err == nil {
		t.Fatal("expected an error for the unregistered label in the list")
	}
}
