package inspector

import (
	"testing"
)

type sample struct {
	Level  float32    `inspect:"bar,max:3"`
	Phase  float32    `inspect:"angle"`
	Color  [3]float32 `inspect:"bar,labels:r|g|b"`
	Hidden int        `inspect:"skip"`
	On     bool
	Count  int
	Nested struct {
		Depth float64 `inspect:"label,fmt:%.1f"`
	}
	private int
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"label, fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"bar,labels:r|g|b", WidgetBar, map[string]string{"labels": "r|g|b"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"sparkle", WidgetAuto, map[string]string{}},
	}
	for _, tc := range tests {
		w, opts := ParseTag(tc.tag)
		if w != tc.widget {
			t.Errorf("%q: expected widget %d, got %d", tc.tag, tc.widget, w)
		}
		if len(opts) != len(tc.opts) {
			t.Errorf("%q: expected options %v, got %v", tc.tag, tc.opts, opts)
			continue
		}
		for k, v := range tc.opts {
			if opts[k] != v {
				t.Errorf("%q: option %s = %q, want %q", tc.tag, k, opts[k], v)
			}
		}
	}
}

func TestExtractFields(t *testing.T) {
	var s sample
	s.Level = 1.5
	s.Nested.Depth = 2

	fields := ExtractFields(&s)
	want := []struct {
		name   string
		widget Widget
	}{
		{"Level", WidgetBar},
		{"Phase", WidgetAngle},
		{"Color", WidgetBar},
		{"On", WidgetBool},
		{"Count", WidgetLabel},
		{"Nested.Depth", WidgetLabel},
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d: %+v", len(want), len(fields), fields)
	}
	for i, w := range want {
		if fields[i].Name != w.name || fields[i].Widget != w.widget {
			t.Errorf("field %d: expected %s/%d, got %s/%d", i, w.name, w.widget, fields[i].Name, fields[i].Widget)
		}
	}
	if got := FormatValue(fields[5].Value, fields[5].Options["fmt"]); got != "2.0" {
		t.Errorf("expected formatted nested value 2.0, got %q", got)
	}
	if GetMax(fields[0].Options) != 3 {
		t.Errorf("expected max 3, got %v", GetMax(fields[0].Options))
	}
}

func TestExtractFieldsNonStruct(t *testing.T) {
	if ExtractFields(42) != nil {
		t.Error("expected nil for non-struct")
	}
	var p *sample
	if ExtractFields(p) != nil {
		t.Error("expected nil for nil pointer")
	}
}

func TestFloatHelpers(t *testing.T) {
	if v, ok := GetFloatValue(int32(7)); !ok || v != 7 {
		t.Errorf("expected 7, got %v (%v)", v, ok)
	}
	if _, ok := GetFloatValue("x"); ok {
		t.Error("expected strings to be rejected")
	}
	vals, ok := GetFloatSlice([3]float32{0.1, 0.2, 0.3})
	if !ok || len(vals) != 3 || vals[2] != 0.3 {
		t.Errorf("unexpected slice %v (%v)", vals, ok)
	}
	if _, ok := GetFloatSlice([]int{1}); ok {
		t.Error("expected int slices to be rejected")
	}
}

func TestParseLabels(t *testing.T) {
	opts := map[string]string{"labels": "r| g |b"}
	got := parseLabels(opts, 3)
	if len(got) != 3 || got[1] != "g" {
		t.Errorf("unexpected labels %v", got)
	}
	if parseLabels(opts, 4) != nil {
		t.Error("expected nil on count mismatch")
	}
}

func TestPanelHeightGrowsWithFields(t *testing.T) {
	var s sample
	one := PanelHeight([][]Field{ExtractFields(s)})
	two := PanelHeight([][]Field{ExtractFields(s), ExtractFields(s)})
	if two <= one {
		t.Errorf("expected two sections to be taller: %d <= %d", two, one)
	}
}
