package snippet

import (
	"strings"
	"testing"
)

func TestExtract_ShortTextReturnedWhole(t *testing.T) {
	text := "a short note"
	if got := Extract(text, []string{"note"}, 200); got != text {
		t.Errorf("got %q, want %q", got, text)
	}
}

func TestExtract_BoundedLength(t *testing.T) {
	text := strings.Repeat("filler words here ", 100) + "target keyword lives here " + strings.Repeat("more filler ", 50)
	got := Extract(text, []string{"keyword"}, 200)
	if len(got) > 200+6 {
		t.Errorf("snippet length %d exceeds max+ellipses", len(got))
	}
}

func TestExtract_PicksDensestWindow(t *testing.T) {
	text := strings.Repeat("padding ", 60) + "keyword keyword keyword" + strings.Repeat(" trailing", 40)
	got := Extract(text, []string{"keyword"}, 100)
	if !strings.Contains(got, "keyword") {
		t.Errorf("snippet missed the dense window: %q", got)
	}
}

func TestExtract_EllipsisWhenTruncated(t *testing.T) {
	text := strings.Repeat("padding ", 60) + "special term" + strings.Repeat(" trailing", 60)
	got := Extract(text, []string{"special"}, 100)
	if !strings.HasPrefix(got, "...") {
		t.Errorf("expected leading ellipsis: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected trailing ellipsis: %q", got)
	}
}

func TestExtract_NoEllipsisAtTextStart(t *testing.T) {
	text := "keyword first " + strings.Repeat("then filler ", 60)
	got := Extract(text, []string{"keyword"}, 100)
	if strings.HasPrefix(got, "...") {
		t.Errorf("window at offset 0 must not get a leading ellipsis: %q", got)
	}
}

func TestExtract_DefaultLength(t *testing.T) {
	text := strings.Repeat("word ", 200)
	got := Extract(text, []string{"word"}, 0)
	if len(got) > DefaultMaxLength+6 {
		t.Errorf("default-length snippet too long: %d", len(got))
	}
}
