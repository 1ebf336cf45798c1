package render

import (
	"fmt"

	"github.com/lixenwraith/spring-sim/status"
)

// HelpText is shown at the right of the status bar when it fits
const HelpText = "LMB add/connect  MMB anchor  RMB delete  SPC run  TAB step  s kind  +/- mass  c clear  q quit"

// StatusBar draws simulation metrics on the last screen row
type StatusBar struct {
	metrics status.SimMetrics
}

// NewStatusBar caches metric pointers from the registry
func NewStatusBar(reg *status.Registry) *StatusBar {
	return &StatusBar{metrics: reg.Sim()}
}

// Draw renders the bar onto the bottom row of tr
func (s *StatusBar) Draw(tr *TerminalRenderer) {
	w, h := tr.Screen().Size()
	if h == 0 || w == 0 {
		return
	}
	y := h - 1
	tr.FillRow(y, RgbStatusBg)

	x := 0
	if s.metrics.Running.Load() {
		x = tr.DrawText(x, y, " RUNNING ", RgbStatusText, RgbRunningBg)
	} else {
		x = tr.DrawText(x, y, " PAUSED ", RgbStatusText, RgbPausedBg)
	}

	mode := s.metrics.Mode.Load()
	modeBg := RgbModeDynamic
	if mode == "static" {
		modeBg = RgbModeStatic
	}
	if mode != "" {
		x = tr.DrawText(x, y, fmt.Sprintf(" %s m=%.0f ", mode, s.metrics.Mass.Get()), RgbStatusText, modeBg)
	}

	stats := fmt.Sprintf(" P:%d S:%d T:%d dt:%.1fms t:%.1fs FPS:%d ",
		s.metrics.Particles.Load(),
		s.metrics.Springs.Load(),
		s.metrics.Ticks.Load(),
		s.metrics.Delta.Get()*1000,
		s.metrics.SimTime.Get(),
		s.metrics.FPS.Load(),
	)
	x = tr.DrawText(x, y, stats, RgbStatusFg, RgbStatusBg)

	if remaining := w - x; remaining > len(HelpText)+1 {
		tr.DrawText(w-len(HelpText)-1, y, HelpText, RgbStatusFg, RgbStatusBg)
	}
}
