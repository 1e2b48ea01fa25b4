package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The ASCII table ships inside JSON responses, so the color profile is
// pinned to ANSI instead of sniffing a terminal that is not there.
var (
	asciiRenderer = lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.ANSI))
	primeStyle    = asciiRenderer.NewStyle().Foreground(lipgloss.Color("1"))
)

// ASCIITable draws 0..limit in a square grid with box-drawing borders,
// primes highlighted in red.
func ASCIITable(primes []int, limit int) string {
	size := isqrt(limit) + 1

	primeSet := make(map[int]struct{}, len(primes))
	for _, p := range primes {
		primeSet[p] = struct{}{}
	}

	var b strings.Builder

	cell := strings.Repeat("─", 3)
	b.WriteString("┌" + strings.Repeat(cell+"┬", size-1) + cell + "┐\n")

	for row := 0; row < size; row++ {
		line := make([]string, 0, size)
		for col := 0; col < size; col++ {
			number := row*size + col
			if number > limit {
				line = append(line, "   ")
			} else if _, ok := primeSet[number]; ok {
				line = append(line, primeStyle.Render(fmt.Sprintf("%3d", number)))
			} else {
				line = append(line, fmt.Sprintf("%3d", number))
			}
		}
		b.WriteString("│" + strings.Join(line, "│") + "│\n")
		if row < size-1 {
			b.WriteString("├" + strings.Repeat(cell+"┼", size-1) + cell + "┤\n")
		}
	}

	b.WriteString("└" + strings.Repeat(cell+"┴", size-1) + cell + "┘")

	return b.String()
}

func isqrt(n int) int {
	if n < 0 {
		return 0
	}
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
