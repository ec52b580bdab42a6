package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "mailto" {
		return fmt.Errorf("refusing to open URL with scheme %q", u.Scheme)
	}
	return launch(rawURL)
}

// Compose opens the default mail client with a prefilled message.
func Compose(to, subject, body string) error {
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if body != "" {
		q.Set("body", body)
	}
	mailto := "mailto:" + to
	if encoded := q.Encode(); encoded != "" {
		// mailto expects %20, not + for spaces
		mailto += "?" + strings.ReplaceAll(encoded, "+", "%20")
	}
	return launch(mailto)
}

func launch(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "linux":
		return exec.Command("xdg-open", target).Start()
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}
