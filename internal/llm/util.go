package llm

import "strings"

// CleanHTMLBlock removes markdown code fences from model output. Models often
// wrap documents in ```html ... ``` blocks even when instructed not to.
func CleanHTMLBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```html") {
		text = strings.TrimPrefix(text, "```html")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "<") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
