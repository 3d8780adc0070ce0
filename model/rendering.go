package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	cellAlive = 'X'
	cellDead  = ' '

	borderTopLeft     = "┌"
	borderTopRight    = "┐"
	borderBottomLeft  = "└"
	borderBottomRight = "┘"
	borderHorizontal  = "-"
	borderVertical    = "│"

	clearCmd = "clear"
)

// Render returns the grid as a bordered block of text, X for alive and space for dead
func Render(g *Grid) string {
	var (
		sb   strings.Builder
		edge = strings.Repeat(borderHorizontal, g.cols)
	)

	sb.WriteString(borderTopLeft + edge + borderTopRight + "\n")
	for _, row := range g.cells {
		sb.WriteString(borderVertical)
		for _, alive := range row {
			if alive {
				sb.WriteByte(cellAlive)
			} else {
				sb.WriteByte(cellDead)
			}
		}
		sb.WriteString(borderVertical + "\n")
	}
	sb.WriteString(borderBottomLeft + edge + borderBottomRight + "\n")

	return sb.String()
}

// TerminalRenderer owns the console side effects of showing a game
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display writes pre-rendered text to the terminal
func (r *TerminalRenderer) Display(text string) {
	fmt.Fprint(r.out(), text)
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.out()
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error clearing terminal:", err)
	}
}
