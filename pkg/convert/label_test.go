package convert

import "testing"

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name       string
		repeat     string
		class      string
		wantFamily string
		wantClass  string
		wantRule   string
		wantOK     bool
	}{
		{"Bare", "ROO_LTR", "LTR/Pao", "ROO_LTR", "LTR/Pao", "bare", true},
		{"HashWithClass", "rnd-1_family-5#LTR/Gypsy", "Unknown", "rnd-1_family-5", "LTR/Gypsy", "hash", true},
		{"Colon", "DM412:LTR", "LTR/Gypsy", "DM412", "LTR", "colon", true},
		{"Slash", "HETA/LINE", "LINE/I", "HETA", "LINE", "slash", true},
		{"HashBeatsSlash", "FB4/x#DNA", "DNA/TcMar", "FB4/x", "DNA", "hash", true},
		{"EmptyLeft", "#LTR/Gypsy", "LTR", "", "", "", false},
		{"EmptyLeftNoFallthrough", "#a:b", "LTR", "", "", "", false},
		{"ColonBeatsSlash", "Gypsy2/I:LTR", "LTR/Gypsy", "Gypsy2/I", "LTR", "colon", true},
		{"TrimmedFamily", "  jockey #LINE", "x", "jockey", "LINE", "hash", true},
		{"EmptyRightUsesColumn", "DOC#", "LINE/I", "DOC", "LINE/I", "hash", true},
		{"Blank", "   ", "LTR", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLabel(tt.repeat, tt.class)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (%+v)", ok, tt.wantOK, got)
			}
			if !ok {
				return
			}
			if got.Family != tt.wantFamily || got.Class != tt.wantClass || got.rule != tt.wantRule {
				t.Errorf("ParseLabel(%q) = %+v, want family=%q class=%q rule=%q",
					tt.repeat, got, tt.wantFamily, tt.wantClass, tt.wantRule)
			}
		})
	}
}
