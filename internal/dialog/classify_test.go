package dialog

import "testing"

func TestClassify_Total(t *testing.T) {
	valid := map[Category]bool{
		CategoryTriage:  true,
		CategoryNetwork: true,
		CategoryWindows: true,
		CategoryAccount: true,
		CategoryApp:     true,
	}

	inputs := []string{
		"",
		"my wifi keeps dropping",
		"blue screen on boot",
		"forgot my password",
		"excel keeps crashing",
		"hello there",
		"!!!###",
		"APPLICATION FOR A JOB", // known substring false positive, still total
	}
	for _, in := range inputs {
		if got := Classify(in, nil); !valid[got] {
			t.Fatalf("Classify(%q) = %q, not a known category", in, got)
		}
	}
}

func TestClassify_EarlierRuleWins(t *testing.T) {
	// contains both a network and an account keyword; network is checked first
	if got := Classify("wifi password reset", nil); got != CategoryNetwork {
		t.Fatalf("expected network, got %q", got)
	}
}

func TestClassify_UsesKeyPhrases(t *testing.T) {
	if got := Classify("something feels off", []string{"router issues"}); got != CategoryNetwork {
		t.Fatalf("expected network via key phrase, got %q", got)
	}
}

func TestClassify_DefaultsToTriage(t *testing.T) {
	if got := Classify("my computer is being weird", nil); got != CategoryTriage {
		t.Fatalf("expected triage default, got %q", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	if got := Classify("WIFI IS DOWN", nil); got != CategoryNetwork {
		t.Fatalf("expected network, got %q", got)
	}
}
