package velocut

import "testing"

func TestParseTarget(t *testing.T) {
	tests := []struct {
		input   string
		want    Target
		wantErr bool
	}{
		{"x86_64-pc-windows-gnu", Target{"x86_64", "pc", "windows", "gnu"}, false},
		{"x86_64-unknown-linux-gnu", Target{"x86_64", "unknown", "linux", "gnu"}, false},
		{"aarch64-apple-darwin", Target{"aarch64", "apple", "darwin", ""}, false},
		{"x86_64-linux", Target{}, true},
		{"", Target{}, true},
		{"a-b-c-d-e", Target{}, true},
	}

	for _, tt := range tests {
		got, err := ParseTarget(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTarget(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseTarget(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestTargetString(t *testing.T) {
	for _, triple := range []string{"x86_64-pc-windows-gnu", "aarch64-apple-darwin"} {
		if got := MustParseTarget(triple).String(); got != triple {
			t.Errorf("String() = %q, want %q", got, triple)
		}
	}
}

func TestTargetOSPredicates(t *testing.T) {
	if !MustParseTarget("x86_64-pc-windows-gnu").IsWindows() {
		t.Error("windows triple should report IsWindows")
	}
	if MustParseTarget("x86_64-unknown-linux-gnu").IsWindows() {
		t.Error("linux triple should not report IsWindows")
	}
	if !MustParseTarget("aarch64-apple-darwin").IsDarwin() {
		t.Error("darwin triple should report IsDarwin")
	}
}

func TestMustParseTargetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseTarget should panic on malformed triple")
		}
	}()
	MustParseTarget("nope")
}
