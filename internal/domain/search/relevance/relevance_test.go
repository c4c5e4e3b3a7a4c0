package relevance

import "testing"

func TestScore_Empty(t *testing.T) {
	if got := Score("", []string{"x"}); got != 0 {
		t.Errorf("empty text scored %d", got)
	}
	if got := Score("some text", nil); got != 0 {
		t.Errorf("no keywords scored %d", got)
	}
}

func TestScore_WholeWordWeighting(t *testing.T) {
	whole := Score("the deploy step", []string{"deploy"})
	sub := Score("the deployment step", []string{"deploy"})
	if whole != 3 {
		t.Errorf("whole-word match scored %d, want 3", whole)
	}
	if sub != 1 {
		t.Errorf("substring match scored %d, want 1", sub)
	}
	if whole <= sub {
		t.Errorf("whole word (%d) must outrank substring (%d)", whole, sub)
	}
}

func TestScore_MixedOccurrences(t *testing.T) {
	// One whole word plus one extra substring occurrence.
	got := Score("deploy the redeployment", []string{"deploy"})
	if got != 4 {
		t.Errorf("got %d, want 4", got)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	if got := Score("Deploy NOW", []string{"deploy"}); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestScore_MultipleKeywordsSum(t *testing.T) {
	got := Score("alpha beta", []string{"alpha", "beta"})
	if got != 6 {
		t.Errorf("got %d, want 6", got)
	}
}

func TestScore_NoMatch(t *testing.T) {
	if got := Score("nothing relevant here", []string{"zebra"}); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestScore_UnderscoreIsWordChar(t *testing.T) {
	// retry_limit must not count as a whole-word match of "retry".
	got := Score("retry_limit", []string{"retry"})
	if got != 1 {
		t.Errorf("got %d, want 1 (substring only)", got)
	}
}

func TestCombine(t *testing.T) {
	if got := Combine(5, 3); got != 11 {
		t.Errorf("got %d, want 11", got)
	}
	if got := Combine(0, 0); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
