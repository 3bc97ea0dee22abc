package render

import "math"

// DrawUnavailable replaces a widget whose reading is missing or failed.
func DrawUnavailable(s Surface, pal Palette, title, reason string) {
	w, h := s.Size()
	s.Clear(pal.Panel)
	if w <= 0 || h <= 0 {
		return
	}

	s.Stroke(Rect(0.5, 0.5, w-1, h-1), pal.Border, 1)
	size := math.Min(w, h)
	if title != "" {
		s.Text(w/2, h*0.3, title, TextStyle{Color: pal.Muted, Size: size * 0.14, Align: AlignCenter})
	}
	s.Text(w/2, h/2, "unavailable", TextStyle{Color: pal.Muted, Size: size * 0.12, Align: AlignCenter})
	if reason != "" {
		s.Text(w/2, h*0.7, reason, TextStyle{Color: pal.Muted, Size: size * 0.09, Align: AlignCenter})
	}
}
