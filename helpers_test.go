package portfolio

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-slugged", "already-slugged"},
		{"Symbols & Punctuation!", "symbols-punctuation"},
		{"CamelCase Title 2", "camelcase-title-2"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestValidationMessages(t *testing.T) {
	err := validate.Struct(ContactForm{Email: "bad"})
	msgs := validationMessages(err)
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3: %v", len(msgs), msgs)
	}
	want := []string{
		"name: This field is required.",
		"email: Invalid email address.",
		"message: This field is required.",
	}
	for i, w := range want {
		if msgs[i] != w {
			t.Errorf("message %d = %q, want %q", i, msgs[i], w)
		}
	}
}

func TestValidationMessagesMax(t *testing.T) {
	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'a'
	}
	err := validate.Struct(ContactForm{Name: "Ada", Email: "ada@example.com", Message: string(long)})
	msgs := validationMessages(err)
	if len(msgs) != 1 || msgs[0] != "message: Must be at most 2000 characters long." {
		t.Errorf("messages = %v", msgs)
	}
}
