package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	pointerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	fieldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#c8c8dc"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)

	modeStyles = map[string]lipgloss.Style{
		"none":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		"attract": lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true),
		"repel":   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		"orbit":   lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
	}
)

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(keyStyle.Render(pairs[i]))
		b.WriteString(subtleStyle.Render(" " + pairs[i+1]))
	}
	return b.String()
}

// sparkline renders the last width values scaled between their min and max.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	out := make([]rune, len(values))
	for i, v := range values {
		idx := int((v-lo)/rng*float64(len(chars)-1) + 0.5)
		out[i] = chars[min(max(idx, 0), len(chars)-1)]
	}
	return string(out)
}
