package window

import (
	"strings"
	"testing"
)

func TestDefaultPresets(t *testing.T) {
	ps := DefaultPresets()
	if len(ps) != 5 {
		t.Fatalf("want 5 presets, got %d", len(ps))
	}
	p, ok := PresetByLabel(ps, "second half")
	if !ok || p.Start != 0.5 || p.End != 1 {
		t.Fatalf("unexpected preset %+v ok=%v", p, ok)
	}
	if _, ok := PresetByLabel(ps, "Third Half"); ok {
		t.Fatalf("unexpected match")
	}
}

func TestLoadPresets(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantErr bool
		wantLen int
	}{
		{name: "ok", in: "presets:\n  - label: All\n    start: 0\n    end: 1\n  - label: Tail\n    start: 0.9\n    end: 1\n", wantLen: 2},
		{name: "empty document", in: "", wantErr: true},
		{name: "no presets", in: "presets: []\n", wantErr: true},
		{name: "missing label", in: "presets:\n  - start: 0\n    end: 1\n", wantErr: true},
		{name: "duplicate label", in: "presets:\n  - label: All\n  - label: all\n", wantErr: true},
		{name: "bad yaml", in: "presets: [\n", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ps, err := LoadPresets(strings.NewReader(tc.in))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", ps)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(ps) != tc.wantLen {
				t.Fatalf("want %d presets, got %d", tc.wantLen, len(ps))
			}
			if ps[1].Start != 0.9 {
				t.Fatalf("unexpected preset %+v", ps[1])
			}
		})
	}
}
