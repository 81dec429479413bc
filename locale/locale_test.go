package locale

import "testing"

func TestGetTranslates(t *testing.T) {
	t.Cleanup(func() { _ = SetLanguage(Fallback) })

	cases := []struct {
		lang string
		key  string
		vars []any
		want string
	}{
		{"en", "ITEM_COMPUTER_TURN_ON", nil, "Press SPACE or E to turn on the computer"},
		{"fr_FR.UTF-8", "HUD_RESUME", nil, "Reprendre"},
		{"en", "HUD_ITEM_STATUS", []any{"computer", 7, "on"}, "computer #7: on"},
		{"en", "UNKNOWN_KEY", nil, "UNKNOWN_KEY"},
	}
	for _, c := range cases {
		t.Run(c.lang+"/"+c.key, func(t *testing.T) {
			if err := SetLanguage(c.lang); err != nil {
				t.Fatalf("set language: %v", err)
			}
			if got := Get(c.key, c.vars...); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	t.Cleanup(func() { _ = SetLanguage(Fallback) })

	if err := SetLanguage("xx"); err == nil {
		t.Fatalf("expected error for missing catalog")
	}
	if got := Get("HUD_TITLE"); got != "Paused" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{
		"":            "en",
		"FR":          "fr",
		"fr_FR.UTF-8": "fr",
		"en-US":       "en",
	} {
		if got := normalize(in); got != want {
			t.Fatalf("normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
