package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"symdisplay/internal/display"
)

func sampleParts() display.Parts {
	return display.Parts{
		{Kind: display.PartKeyword, Text: "int"},
		{Kind: display.PartSpace, Text: " "},
		{Kind: display.PartClassName, Text: "C"},
		{Kind: display.PartPunctuation, Text: "."},
		{Kind: display.PartMethodName, Text: "M"},
	}
}

func TestHighlightDisabledIsPlain(t *testing.T) {
	if got := Highlight(sampleParts(), DefaultTheme(), false); got != "int C.M" {
		t.Fatalf("Highlight = %q", got)
	}
	if got := Highlight(sampleParts(), Theme{}, true); got != "int C.M" {
		t.Fatalf("zero theme Highlight = %q", got)
	}
}

func TestHighlightKeepsText(t *testing.T) {
	got := Highlight(sampleParts(), DefaultTheme(), true)
	for _, want := range []string{"int", "C", "M", "."} {
		if !strings.Contains(got, want) {
			t.Errorf("highlighted output %q lacks %q", got, want)
		}
	}
	if _, ok := DefaultTheme().Style(display.PartPunctuation); ok {
		t.Error("punctuation should be unstyled")
	}
	if _, ok := DefaultTheme().Style(display.PartErrorTypeName); !ok {
		t.Error("error type names should be styled")
	}
}

func TestTableAlignment(t *testing.T) {
	tab := NewTable(0, "PATH", "KIND", "DISPLAY")
	tab.Add("N.C", "class", "class C")
	tab.Add("N.C.Method", "method", "void C.Method()")
	got := tab.String()
	want := "" +
		"PATH        KIND    DISPLAY\n" +
		"N.C         class   class C\n" +
		"N.C.Method  method  void C.Method()\n"
	if got != want {
		t.Fatalf("table:\n%s\nwant:\n%s", got, want)
	}
	if tab.Len() != 2 {
		t.Fatalf("Len = %d", tab.Len())
	}
}

func TestTableTruncatesWideColumns(t *testing.T) {
	tab := NewTable(6, "A", "B")
	tab.Add("abcdefghij", "tail is never cut")
	got := tab.String()
	if !strings.Contains(got, "abc...  tail is never cut") {
		t.Fatalf("table:\n%s", got)
	}
}

func TestProgressModelCountsSteps(t *testing.T) {
	steps := make(chan Step)
	m := NewProgressModel("render", 2, steps).(*progressModel)

	var model tea.Model = m
	model, _ = model.Update(stepMsg{Label: "N.C"})
	model, _ = model.Update(stepMsg{Label: "N.D", Failed: true})
	model, cmd := model.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("done should quit")
	}
	view := model.View()
	for _, want := range []string{"done: render 2/2", "(1 failed)", "N.C", "N.D"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}
