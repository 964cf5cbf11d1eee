package gameloop

import "testing"

func TestKeyString(t *testing.T) {
	tests := map[Key]string{
		KeyUp:    "up",
		KeyDown:  "down",
		KeyLeft:  "left",
		KeyRight: "right",
		keyCount: "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Key(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestParseKey(t *testing.T) {
	for k := Key(0); k < keyCount; k++ {
		got, ok := parseKey(k.String())
		if !ok || got != k {
			t.Errorf("parseKey(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := parseKey("jump"); ok {
		t.Error("parseKey(jump) should fail")
	}
}

func TestKeyBindingsCoverEveryKey(t *testing.T) {
	for k := Key(0); k < keyCount; k++ {
		if len(keyBindings[k]) == 0 {
			t.Errorf("%v has no bindings", k)
		}
	}
	if (EbitenInput{}).KeyDown(keyCount) {
		t.Error("out of range key reported down")
	}
}
