package shapes

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"heart", Heart},
		{"Heart", Heart},
		{"flower", Flower},
		{"ringed_sphere", RingedSphere},
		{"Saturn", RingedSphere},
		{"stacked-figure", StackedFigure},
		{"Zen Statue", StackedFigure},
		{"burst", Burst},
		{"FIREWORK", Burst},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if err != nil {
			t.Errorf("ParseKind(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := ParseKind("cube"); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("expected ErrUnknownShape, got %v", err)
	}
}

func TestKindsCoverCatalog(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != int(numKinds) {
		t.Fatalf("expected %d kinds, got %d", numKinds, len(kinds))
	}
	for _, k := range kinds {
		if !k.Valid() {
			t.Errorf("kind %d reported invalid", k)
		}
		back, err := ParseKind(k.String())
		if err != nil || back != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), back, err)
		}
	}
}

func TestKindYAML(t *testing.T) {
	type doc struct {
		Shape Kind `yaml:"shape"`
	}

	var d doc
	if err := yaml.Unmarshal([]byte("shape: saturn\n"), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Shape != RingedSphere {
		t.Errorf("expected ringed_sphere, got %s", d.Shape)
	}

	out, err := yaml.Marshal(doc{Shape: Burst})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "shape: burst\n" {
		t.Errorf("unexpected yaml %q", out)
	}
}
