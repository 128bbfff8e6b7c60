package archive

import (
	"strings"
	"testing"
)

func TestExtractPage(t *testing.T) {
	htmlContent := `<html>
<head><title>  Field Report 12  </title><style>body{}</style></head>
<body>
<script>var x = 1;</script>
<h1>Field Report 12</h1>
<p>Witnesses described the incident.</p>
</body></html>`

	summary, err := ExtractPage(htmlContent)
	if err != nil {
		t.Fatalf("ExtractPage failed: %v", err)
	}

	if summary.Title != "Field Report 12" {
		t.Errorf("title = %q", summary.Title)
	}
	if !strings.Contains(summary.Text, "Witnesses described the incident.") {
		t.Errorf("text = %q", summary.Text)
	}
	if strings.Contains(summary.Text, "var x") {
		t.Errorf("script content leaked into text: %q", summary.Text)
	}
	if strings.Contains(summary.Text, "body{}") {
		t.Errorf("style content leaked into text: %q", summary.Text)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 100); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}

	got := Truncate("one two three four", 9)
	if got != "one two…" {
		t.Errorf("Truncate = %q", got)
	}
}
