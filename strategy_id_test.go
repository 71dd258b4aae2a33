package lockman

import "testing"

func TestStrategyId_String(t *testing.T) {
	t.Parallel()

	t.Run("bare", func(t *testing.T) {
		id := NewStrategyId("singleExecution")
		if got := id.String(); got != "singleExecution" {
			t.Errorf("String() = %q, want %q", got, "singleExecution")
		}
	})

	t.Run("with config", func(t *testing.T) {
		id := NewStrategyIdWithConfig("concurrencyLimited", "uploads")
		if got := id.String(); got != "concurrencyLimited:uploads" {
			t.Errorf("String() = %q, want %q", got, "concurrencyLimited:uploads")
		}
		config, ok := id.Config()
		if !ok || config != "uploads" {
			t.Errorf("Config() = (%q, %v), want (\"uploads\", true)", config, ok)
		}
	})
}

func TestCompositeStrategyId(t *testing.T) {
	t.Parallel()

	for arity := 2; arity <= 5; arity++ {
		id := CompositeStrategyId(arity)
		want := "Lockman.CompositeStrategy" + string(rune('0'+arity))
		if got := id.String(); got != want {
			t.Errorf("CompositeStrategyId(%d).String() = %q, want %q", arity, got, want)
		}
	}
}

func TestStrategyId_Equality(t *testing.T) {
	t.Parallel()

	if NewStrategyId("a") != NewStrategyId("a") {
		t.Error("identical bare ids should be equal")
	}
	if NewStrategyId("a") == NewStrategyIdWithConfig("a", "") {
		t.Error("a bare id and a config id with an empty config should differ (hasConfig discriminates)")
	}
}
