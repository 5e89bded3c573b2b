package cli

import (
	"context"
	"io"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/chidanandgowda/huffman-coding/pkg/pipeline"
	"github.com/chidanandgowda/huffman-coding/pkg/render"
)

// exploreDoc runs the pipeline over ABCC and returns the document, the
// same path the explore command takes for file input.
func exploreDoc(t *testing.T) *render.Document {
	t.Helper()

	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	result, err := runner.Execute(context.Background(), pipeline.Options{
		Source: "test",
		Input:  []byte("ABCC"),
		Format: pipeline.FormatJSON,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	return result.Document
}

func testExploreModel(t *testing.T) exploreModel {
	t.Helper()
	return newExploreModel(exploreDoc(t), DefaultConfig(), false)
}

func pressKey(m exploreModel, key string) exploreModel {
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(exploreModel)
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestExploreZoomKeys(t *testing.T) {
	m := testExploreModel(t)

	m = pressKey(m, "+")
	if !closeTo(m.vp.Zoom(), 1.1) {
		t.Errorf("zoom after + = %v, want 1.1", m.vp.Zoom())
	}

	m = pressKey(m, "-")
	if !closeTo(m.vp.Zoom(), 1.0) {
		t.Errorf("zoom after +- = %v, want 1.0", m.vp.Zoom())
	}
}

func TestExploreZoomClamps(t *testing.T) {
	m := testExploreModel(t)

	for i := 0; i < 30; i++ {
		m = pressKey(m, "+")
	}
	if m.vp.Zoom() != 3.0 {
		t.Errorf("zoom after 30 notches = %v, want clamp at 3.0", m.vp.Zoom())
	}

	for i := 0; i < 60; i++ {
		m = pressKey(m, "-")
	}
	if m.vp.Zoom() != 0.3 {
		t.Errorf("zoom after 60 reverse notches = %v, want clamp at 0.3", m.vp.Zoom())
	}
}

func TestExplorePanKeys(t *testing.T) {
	m := testExploreModel(t)

	m = pressKey(m, "left")
	m = pressKey(m, "down")

	x, y := m.vp.Pan()
	if !closeTo(x, panStepX) || !closeTo(y, -panStepY) {
		t.Errorf("pan = (%v, %v), want (%v, %v)", x, y, panStepX, -panStepY)
	}
}

func TestExploreZeroKeyResetsZoomOnly(t *testing.T) {
	m := testExploreModel(t)
	m = pressKey(m, "+")
	m = pressKey(m, "left")

	m = pressKey(m, "0")

	if !closeTo(m.vp.Zoom(), 1.0) {
		t.Errorf("zoom after 0 = %v, want 1.0", m.vp.Zoom())
	}
	if x, _ := m.vp.Pan(); x == 0 {
		t.Error("0 key should keep the pan offset")
	}
}

func TestExploreRecenter(t *testing.T) {
	m := testExploreModel(t)
	m = pressKey(m, "+")
	m = pressKey(m, "left")
	m = pressKey(m, "up")

	m = pressKey(m, "r")

	x, y := m.vp.Pan()
	if m.vp.Zoom() != 1.0 || x != 0 || y != 0 {
		t.Errorf("after r: zoom=%v pan=(%v, %v), want identity view", m.vp.Zoom(), x, y)
	}
}

func TestExploreFitOnFirstResize(t *testing.T) {
	m := testExploreModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(exploreModel)

	if m.width != 80 || m.height != 24 {
		t.Fatalf("size = %dx%d, want 80x24", m.width, m.height)
	}
	zoom := m.vp.Zoom()
	if zoom <= 0 || zoom > 1.0 {
		t.Errorf("fitted zoom = %v, want in (0, 1]", zoom)
	}
}

func TestExploreToggleCodes(t *testing.T) {
	m := testExploreModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = updated.(exploreModel)

	if strings.Contains(m.statusBar(), "=") {
		t.Fatal("codes shown before toggle")
	}

	m = pressKey(m, "c")
	if !m.showCodes {
		t.Fatal("c should enable codes")
	}
	bar := m.statusBar()
	if !strings.Contains(bar, "C=") {
		t.Errorf("status bar = %q, want code for C", bar)
	}

	m = pressKey(m, "c")
	if m.showCodes {
		t.Error("second c should disable codes")
	}
}

func TestExploreQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := testExploreModel(t)

		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("key %q: cmd = nil, want quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q: cmd() = %T, want tea.QuitMsg", key, cmd())
		}
	}
}

func TestExploreView(t *testing.T) {
	m := testExploreModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(exploreModel)

	view := m.View()
	if !strings.Contains(view, "4 bytes") || !strings.Contains(view, "3 symbols") {
		t.Errorf("view header missing stats:\n%s", view)
	}
	if !strings.Contains(view, "zoom") || !strings.Contains(view, "5 nodes") {
		t.Errorf("view status bar missing viewport info:\n%s", view)
	}
	if !strings.Contains(view, "C") {
		t.Error("view missing leaf label C")
	}
}
