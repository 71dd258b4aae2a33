package strategies

import (
	"errors"
	"testing"

	lockman "github.com/takeshishimada/lockman-go"
)

func TestDynamicConditionStrategy_NilConditionAlwaysSucceeds(t *testing.T) {
	t.Parallel()

	s := NewDynamicConditionStrategy()
	boundary := lockman.NewBoundaryId("screen")
	if r := s.CanLock(boundary, NewDynamicConditionInfo("a", nil)); r.IsCancel() {
		t.Fatal("a nil Condition should always succeed")
	}
}

func TestDynamicConditionStrategy_ConditionSeesExistingSnapshot(t *testing.T) {
	t.Parallel()

	s := NewDynamicConditionStrategy()
	boundary := lockman.NewBoundaryId("screen")
	s.Lock(boundary, NewDynamicConditionInfo("existing", nil))

	var sawExisting bool
	condition := func(existing []lockman.LockmanInfo) (bool, string) {
		for _, e := range existing {
			if e.ActionID() == "existing" {
				sawExisting = true
			}
		}
		return true, ""
	}
	s.CanLock(boundary, NewDynamicConditionInfo("new", condition))
	if !sawExisting {
		t.Fatal("Condition was not given the existing lock snapshot")
	}
}

func TestDynamicConditionStrategy_RefusalCarriesHint(t *testing.T) {
	t.Parallel()

	s := NewDynamicConditionStrategy()
	boundary := lockman.NewBoundaryId("screen")
	condition := func(existing []lockman.LockmanInfo) (bool, string) {
		return false, "quota exhausted"
	}

	result := s.CanLock(boundary, NewDynamicConditionInfo("a", condition))
	if !result.IsCancel() {
		t.Fatal("a false condition must refuse")
	}
	var notMet *ConditionNotMetError
	if !errors.As(result.Err, &notMet) {
		t.Fatalf("Err = %v, want *ConditionNotMetError", result.Err)
	}
	if notMet.Hint != "quota exhausted" {
		t.Errorf("Hint = %q, want %q", notMet.Hint, "quota exhausted")
	}
}
