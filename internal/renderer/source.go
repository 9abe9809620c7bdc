package renderer

import "strings"

const (
	desktopPreamble = "#version 330 core\n"
	webglPreamble   = "#version 300 es\nprecision highp float;\n"
)

// buildShaderSource prefixes source with the version header of the target
// context. Sources that already declare a version are passed through.
func buildShaderSource(preamble, source string) string {
	if strings.HasPrefix(strings.TrimSpace(source), "#version") {
		return source
	}
	var sb strings.Builder
	sb.Grow(len(preamble) + len(source) + 1)
	sb.WriteString(preamble)
	sb.WriteString(source)
	if !strings.HasSuffix(source, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}
