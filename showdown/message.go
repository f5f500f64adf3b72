package showdown

import (
	"strings"

	"github.com/nathanieltooley/gokemon-showdown/battle"
	"github.com/nathanieltooley/gokemon-showdown/dex"
)

// Message is one websocket frame from the server. Room is empty for global messages.
type Message struct {
	Room string
	// each line split on "|", with the empty field before the leading pipe kept
	Lines [][]string
}

// ParseMessage splits a raw frame into its room and lines. Lines without a leading pipe are
// plain text and come back as a "raw" line.
func ParseMessage(raw string) Message {
	message := Message{}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], ">") {
		message.Room = strings.TrimSpace(lines[0][1:])
		lines = lines[1:]
	}

	for _, line := range lines {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "|") {
			message.Lines = append(message.Lines, []string{"", "raw", line})
			continue
		}
		message.Lines = append(message.Lines, strings.Split(line, "|"))
	}

	return message
}

func (m Message) IsBattle() bool {
	return strings.HasPrefix(m.Room, "battle-")
}

// Has reports whether any line in the frame uses keyword.
func (m Message) Has(keyword string) bool {
	for _, line := range m.Lines {
		if keyword == line[1] {
			return true
		}
	}
	return false
}

// Payload joins the fields after the keyword back together, for lines whose content may
// itself contain pipes (JSON, chat text).
func Payload(line []string) string {
	if len(line) < 3 {
		return ""
	}
	return strings.Join(line[2:], "|")
}

// ParseRequestLine decodes the JSON of a "|request|" line. An empty payload, which the
// server sends to clear a pending request, returns nil with no error.
func ParseRequestLine(line []string) (*battle.Request, error) {
	payload := strings.TrimSpace(Payload(line))
	if payload == "" || payload == "null" {
		return nil, nil
	}
	return battle.ParseRequestJSON([]byte(payload))
}

// FormatFromTag pulls the format id out of a battle room id, "battle-gen9ou-123" -> "gen9ou".
// Rated rooms may carry a password suffix after the number.
func FormatFromTag(tag string) string {
	parts := strings.Split(tag, "-")
	if len(parts) < 3 || parts[0] != "battle" {
		return ""
	}
	return parts[1]
}

// GenFromFormat reads the generation prefix of a format id, defaulting to the latest.
func GenFromFormat(format string) int {
	rest, ok := strings.CutPrefix(format, "gen")
	if !ok {
		return dex.LATEST_GEN
	}

	gen := 0
	for _, r := range rest {
		if r < '0' || r > '9' {
			break
		}
		gen = gen*10 + int(r-'0')
	}
	if gen == 0 {
		return dex.LATEST_GEN
	}
	return gen
}

// IsDoublesFormat is true for formats with two active pokemon per side.
func IsDoublesFormat(format string) bool {
	for _, marker := range []string{"doubles", "vgc", "multi", "2v2"} {
		if strings.Contains(format, marker) {
			return true
		}
	}
	return false
}
