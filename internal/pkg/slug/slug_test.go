package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Intro to Health Informatics", "intro-to-health-informatics"},
		{"  Día 1: Señales & Datos  ", "dia-1-senales-datos"},
		{"Already-a-slug", "already-a-slug"},
		{"***", ""},
		{"Q&A session", "qa-session"},
		{"Crème Brûlée 2025", "creme-brulee-2025"},
	}
	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Fatalf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
