package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/spring-sim/engine"
)

var (
	summaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")).
			Padding(0, 1)

	summaryTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	summaryLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	summaryValue = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// Summary accumulates session statistics printed after the terminal is restored
type Summary struct {
	Started        time.Time
	Ticks          uint64
	SimTime        float64
	PeakParticles  int
	PeakSprings    int
	FinalParticles int
	FinalSprings   int
}

func (s *Summary) observe(w *engine.World, particles, springs int) {
	s.Ticks = w.Ticks()
	s.SimTime = w.SimTime()
	s.FinalParticles = particles
	s.FinalSprings = springs
	s.PeakParticles = max(s.PeakParticles, particles)
	s.PeakSprings = max(s.PeakSprings, springs)
}

// Render formats the summary as a bordered box
func (s *Summary) Render(now time.Time) string {
	rows := [][2]string{
		{"wall time", now.Sub(s.Started).Round(time.Second).String()},
		{"sim time", fmt.Sprintf("%.2fs", s.SimTime)},
		{"ticks", fmt.Sprintf("%d", s.Ticks)},
		{"particles", fmt.Sprintf("%d (peak %d)", s.FinalParticles, s.PeakParticles)},
		{"springs", fmt.Sprintf("%d (peak %d)", s.FinalSprings, s.PeakSprings)},
	}

	var b strings.Builder
	b.WriteString(summaryTitle.Render("spring-sim session"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(summaryLabel.Render(fmt.Sprintf("%-10s", r[0])))
		b.WriteString(summaryValue.Render(r[1]))
	}
	return summaryBox.Render(b.String())
}
