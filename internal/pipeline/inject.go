package pipeline

import "strings"

// InjectTags inserts tags into an HTML document, one per line.
// Tries </head> first, then after <body>, then prepends.
func InjectTags(htmlContent string, tags []string) string {
	if len(tags) == 0 {
		return htmlContent
	}

	block := strings.Join(tags, "\n") + "\n"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + "\n" + block + htmlContent[insertPos:]
		}
	}

	return block + htmlContent
}

// IsHTMLDocument reports whether content looks like a complete HTML
// document rather than a fragment.
func IsHTMLDocument(content string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html")
}
