package extraction

import "regexp"

var urlRe = regexp.MustCompile(`https?://[^\s<>()"']+`)

// scanLinks pulls http(s) URLs out of free text.
func scanLinks(text string) []string {
	return dedupe(urlRe.FindAllString(text, -1))
}

// dedupe removes duplicates while keeping first-seen order.
func dedupe(links []string) []string {
	if len(links) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(links))
	out := links[:0]
	for _, l := range links {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
