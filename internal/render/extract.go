package render

import "strings"

// Embedded is one fenced task block found in a note.
type Embedded struct {
	// Body is the block content without the fence lines.
	Body string

	// Line is the 1-based line number of the opening fence.
	Line int
}

// ExtractBlocks scans note text for fenced blocks tagged "tasks" and
// returns their bodies. An unterminated fence runs to the end of the
// note.
func ExtractBlocks(note string) []Embedded {
	var out []Embedded
	lines := strings.Split(note, "\n")

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "```") {
			continue
		}
		tag := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
		if !strings.EqualFold(tag, "tasks") {
			// Skip over a foreign fenced block entirely.
			for i++; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
					break
				}
			}
			continue
		}

		start := i
		var body []string
		for i++; i < len(lines); i++ {
			if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
				break
			}
			body = append(body, lines[i])
		}
		out = append(out, Embedded{
			Body: strings.Join(body, "\n"),
			Line: start + 1,
		})
	}

	return out
}
