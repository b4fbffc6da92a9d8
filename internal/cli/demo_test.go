package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// keyMsg builds the tea.KeyMsg whose String form matches name.
func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

func TestDemoNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range demos {
		if seen[d.Name] {
			t.Errorf("duplicate demo name %q", d.Name)
		}
		seen[d.Name] = true
	}
}

func TestDemoOptionsValid(t *testing.T) {
	for _, d := range demos {
		opts := d.Opts
		opts.Formats = []string{"svg"}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Errorf("demo %q has invalid options: %v", d.Name, err)
		}
	}
}

func TestFindDemo(t *testing.T) {
	if findDemo("ring") == nil {
		t.Error("findDemo(ring) should find the ring demo")
	}
	if findDemo("nope") != nil {
		t.Error("findDemo(nope) should return nil")
	}
}

func TestRenderEquivalent(t *testing.T) {
	bar := findDemo("bar")
	if bar == nil {
		t.Fatal("bar demo missing")
	}

	cmd := renderEquivalent(*bar)
	for _, want := range []string{"gsplot render", "--generator ring", "--bar"} {
		if !strings.Contains(cmd, want) {
			t.Errorf("renderEquivalent(bar) = %q, should contain %q", cmd, want)
		}
	}

	hl := findDemo("highlight")
	if hl == nil {
		t.Fatal("highlight demo missing")
	}
	if cmd := renderEquivalent(*hl); !strings.Contains(cmd, "--highlight 5") {
		t.Errorf("renderEquivalent(highlight) = %q, should contain --highlight 5", cmd)
	}
}

func TestDemoListModelNavigation(t *testing.T) {
	m := newDemoListModel(demos)

	if m.cursor != 0 {
		t.Errorf("initial cursor = %d, want 0", m.cursor)
	}

	// Moving above the first entry stays put
	updated, _ := m.Update(keyMsg("up"))
	m = updated.(demoListModel)
	if m.cursor != 0 {
		t.Errorf("cursor after up at top = %d, want 0", m.cursor)
	}

	updated, _ = m.Update(keyMsg("down"))
	m = updated.(demoListModel)
	if m.cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.cursor)
	}

	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(demoListModel)
	if m.selected == nil {
		t.Fatal("enter should select the entry under the cursor")
	}
	if m.selected.Name != demos[1].Name {
		t.Errorf("selected = %q, want %q", m.selected.Name, demos[1].Name)
	}
}

func TestDemoListModelQuitWithoutSelection(t *testing.T) {
	m := newDemoListModel(demos)

	updated, _ := m.Update(keyMsg("q"))
	m = updated.(demoListModel)
	if m.selected != nil {
		t.Error("quit should not select an entry")
	}

	if view := m.View(); view == "" {
		t.Error("View() should render the list")
	}
}
