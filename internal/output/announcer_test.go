package output

import "testing"

func TestAnnouncerPhrases(t *testing.T) {
	var spoken []string
	interrupted := 0
	a := NewAnnouncer(func(s string) { spoken = append(spoken, s) }, func() { interrupted++ }, nil)

	a.NoFocus()
	a.APIDisabled()
	a.NotAccessible("editor")
	a.NoResponse("editor")
	a.Interrupt()

	want := []string{
		"no focused application",
		"accessibility API is disabled",
		"editor is not accessible",
		"editor is not responding",
	}
	if len(spoken) != len(want) {
		t.Fatalf("spoken: %v", spoken)
	}
	for i := range want {
		if spoken[i] != want[i] {
			t.Fatalf("phrase %d: got %q want %q", i, spoken[i], want[i])
		}
	}
	if interrupted != 1 {
		t.Fatalf("interrupt count: %d", interrupted)
	}
}

func TestAnnouncerWithoutSpeech(t *testing.T) {
	a := NewAnnouncer(nil, nil, nil)
	// must not panic with no callbacks wired
	a.NoFocus()
	a.Interrupt()
}
