package domain

import "testing"

func TestAllowedUploadName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want bool
	}{
		{"guide.pdf", true},
		{"guide.PDF", true},
		{"plan.docx", true},
		{"deck.ppt", true},
		{"sheet.xlsx", true},
		{"movie.mp4", false},
		{"archive.zip", false},
		{"noext", false},
		{"", false},
	}
	for _, c := range cases {
		if got := AllowedUploadName(c.name); got != c.want {
			t.Errorf("AllowedUploadName(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestValidToolkitInput(t *testing.T) {
	t.Parallel()

	if !ValidToolkitInput("Sewing Basics", "Intro guide", []string{"sewing", "beginner"}) {
		t.Error("valid input rejected")
	}
	if ValidToolkitInput("", "desc", []string{"a"}) {
		t.Error("empty title accepted")
	}
	if ValidToolkitInput("t", "   ", []string{"a"}) {
		t.Error("blank description accepted")
	}
	if ValidToolkitInput("t", "d", nil) {
		t.Error("empty categories accepted")
	}
	if ValidToolkitInput("t", "d", []string{"a", " "}) {
		t.Error("blank category accepted")
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"guide.pdf", "guide.pdf"},
		{"../../etc/passwd", "passwd"},
		{`..\..\boot.ini`, "boot.ini"},
		{"dir/sub/report.docx", "report.docx"},
		{".hidden.pdf", "hidden.pdf"},
		{"bad\x00name.pdf", "badname.pdf"},
		{"///", "file"},
		{"", "file"},
	}
	for _, c := range cases {
		if got := SanitizeFilename(c.in); got != c.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
