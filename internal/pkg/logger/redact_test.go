package logger

import "testing"

func TestRedactEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"a@example.com", "***@example.com"},
		{"not-an-email", "***@***"},
		{"two@at@signs", "***@***"},
	}
	for _, c := range cases {
		if got := RedactEmail(c.in); got != c.want {
			t.Errorf("RedactEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRedactValue_EmbeddedEmail(t *testing.T) {
	got := redactValue("detail", "send to ursula_le_guin@gmail.com failed")
	want := "send to ur***@gmail.com failed"
	if got != want {
		t.Errorf("redactValue() = %q, want %q", got, want)
	}
}
