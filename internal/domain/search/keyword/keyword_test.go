package keyword

import (
	"reflect"
	"testing"
)

func TestExtract_Empty(t *testing.T) {
	if got := Extract(""); len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
}

func TestExtract_AllStopwords(t *testing.T) {
	if got := Extract("can you show me all the"); len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
}

func TestExtract_DropsShortTokens(t *testing.T) {
	got := Extract("go to it")
	if len(got) != 0 {
		t.Errorf("expected no keywords from short tokens, got %v", got)
	}
}

func TestExtract_PlainWords(t *testing.T) {
	got := Extract("deployment checklist for staging")
	want := []string{"deployment", "checklist", "staging"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtract_QuotedPhraseKeptVerbatim(t *testing.T) {
	got := Extract(`find "API Key Rotation" notes`)
	if len(got) == 0 || got[0] != "API Key Rotation" {
		t.Fatalf("expected quoted phrase first, got %v", got)
	}
}

func TestExtract_IdentifiersKeptVerbatim(t *testing.T) {
	got := Extract("where is maxRetryCount or retry_limit used")
	seen := map[string]bool{}
	for _, k := range got {
		seen[k] = true
	}
	if !seen["maxRetryCount"] {
		t.Errorf("camelCase identifier not preserved: %v", got)
	}
	if !seen["retry_limit"] {
		t.Errorf("snake_case identifier not preserved: %v", got)
	}
}

func TestExtract_Deduplicates(t *testing.T) {
	got := Extract("deploy deploy deploy")
	if len(got) != 1 {
		t.Errorf("expected 1 keyword, got %v", got)
	}
}

func TestExtract_Lowercases(t *testing.T) {
	got := Extract("Deployment NOTES")
	want := []string{"deployment", "notes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtract_StripsPunctuation(t *testing.T) {
	got := Extract("roadmap, milestones!")
	want := []string{"roadmap", "milestones"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
