package pysrc

import "strings"

// NormalizeIndentation rewrites a snippet to a uniform 4-space indent.
// Tabs count as 4 spaces, 2/4/8-space units are rescaled, trailing
// whitespace is stripped and blank lines are emptied. Snippets pasted
// from editors with mixed settings go through this before parsing.
func NormalizeIndentation(src string) string {
	src = strings.ReplaceAll(src, "\t", "    ")
	lines := strings.Split(src, "\n")

	unit := detectIndentUnit(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			out[i] = ""
			continue
		}
		spaces := leadingSpaces(trimmed)
		level := spaces / unit
		out[i] = strings.Repeat("    ", level) + strings.TrimLeft(trimmed, " ")
	}
	return strings.Join(out, "\n")
}

// detectIndentUnit finds the indentation step as the GCD of all leading
// space counts, accepting only 2, 4 or 8 and defaulting to 4.
func detectIndentUnit(lines []string) int {
	g := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := leadingSpaces(line)
		if n == 0 {
			continue
		}
		g = gcd(g, n)
	}
	switch g {
	case 2, 4, 8:
		return g
	default:
		return 4
	}
}

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
