package wizard

import (
	"regexp"
	"strings"
)

const InvalidEmbedMessage = "Código de inserción no válido. Pega el iframe o el enlace de YouTube."

var (
	iframeSrcRe = regexp.MustCompile(`(?i)<iframe[^>]*\ssrc\s*=\s*["']([^"']+)["']`)
	youtubeRes  = []*regexp.Regexp{
		regexp.MustCompile(`^(?:https?:)?//(?:www\.)?youtube(?:-nocookie)?\.com/embed/([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`^(?:https?:)?//(?:www\.|m\.)?youtube\.com/watch\?(?:.*&)?v=([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`^(?:https?:)?//youtu\.be/([A-Za-z0-9_-]+)`),
	}
)

// ParseEmbed extracts a YouTube embed URL from an iframe snippet or a plain
// YouTube link. ok is false when raw is not a YouTube embed.
func ParseEmbed(raw string) (previewURL string, ok bool) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", false
	}
	if m := iframeSrcRe.FindStringSubmatch(candidate); m != nil {
		candidate = strings.TrimSpace(m[1])
	}
	for _, re := range youtubeRes {
		if m := re.FindStringSubmatch(candidate); m != nil {
			return "https://www.youtube.com/embed/" + m[1], true
		}
	}
	return "", false
}

// EmbedMessage returns the message shown under the video field: nothing for
// an empty or valid value, InvalidEmbedMessage otherwise.
func EmbedMessage(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if _, ok := ParseEmbed(raw); ok {
		return ""
	}
	return InvalidEmbedMessage
}
