package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadContent(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "content"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "content", "blog.md"), []byte("\n# Blog\n\nPosts.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadContent(root, "content/blog.md")
	if err != nil {
		t.Fatalf("LoadContent failed: %v", err)
	}
	if got != "# Blog\n\nPosts." {
		t.Errorf("Expected trimmed document, got %q", got)
	}

	for _, ref := range []string{"content/missing.md", ""} {
		got, err := LoadContent(root, ref)
		if err != nil || got != noContent {
			t.Errorf("LoadContent(%q) = %q, %v; want placeholder", ref, got, err)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps\n\nover", 10)
	want := []string{"the quick", "brown fox", "jumps", "", "over"}

	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}

	long := wrapText("supercalifragilistic ok", 5)
	if long[0] != "supercalifragilistic" || long[1] != "ok" {
		t.Errorf("Expected long word on its own line, got %q", long)
	}
}

func TestContentPanelSlides(t *testing.T) {
	closed := false
	p := NewContentPanel(60, func() { closed = true })

	p.Open("Blog", "Posts.")
	if !p.IsOpen() || p.Title != "Blog" {
		t.Fatal("Expected panel to open with its title")
	}
	for i := 0; i < 120; i++ {
		p.Update()
	}
	if p.Reveal() < 0.99 {
		t.Errorf("Expected panel fully shown after 2s, got %f", p.Reveal())
	}

	p.Close()
	for i := 0; i < 120; i++ {
		p.Update()
	}
	if p.Reveal() != 0 {
		t.Errorf("Expected panel hidden after closing, got %f", p.Reveal())
	}
	if closed {
		t.Error("Close should not invoke the close callback")
	}
}

func TestContentPanelBounds(t *testing.T) {
	p := NewContentPanel(60, nil)
	p.Open("About", "")
	for i := 0; i < 120; i++ {
		p.Update()
	}

	wide := p.Bounds(1280, 720, false)
	if wide.X < 1280*0.5 || wide.Height != 720 {
		t.Errorf("Expected a right-hand sheet, got %+v", wide)
	}
	narrow := p.Bounds(400, 800, true)
	if narrow.Width != 400 || narrow.Y < 300 {
		t.Errorf("Expected a bottom sheet, got %+v", narrow)
	}
}
