package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/chemlab/internal/sim"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// SnapshotSVG draws a session snapshot: particles scaled from their bounds,
// and molecule bonds and atoms centred in the frame, back to front.
func SnapshotSVG(snap sim.Snapshot, width, height int) string {
	var sb strings.Builder
	header(&sb, width, height)

	if snap.Bounds != nil && len(snap.Particles) > 0 {
		b := *snap.Bounds
		sx := float64(width) / b.Width()
		sy := float64(height) / b.Height()
		sb.WriteString("<g>\n")
		for _, p := range snap.Particles {
			cx := (p.X - b.MinX) * sx
			cy := (p.Y - b.MinY) * sy
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, p.Radius, p.Color))
			if p.PartnerOffset > 0 {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx+p.PartnerOffset*sx, cy, p.Radius, p.PartnerColor))
			}
		}
		sb.WriteString("</g>\n")
	}

	if len(snap.Atoms) > 0 {
		ox, oy := float64(width)/2, float64(height)/2
		sb.WriteString(`<g stroke="#a1a1aa">` + "\n")
		for _, b := range snap.Bonds {
			dash := ""
			if b.Dashed {
				dash = ` stroke-dasharray="4 3"`
			}
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-width="%d" opacity="%.2f"%s/>
`, ox+b.X1, oy+b.Y1, ox+b.X2, oy+b.Y2, 2*b.Order, b.Opacity, dash))
		}
		sb.WriteString("</g>\n<g>\n")
		for _, a := range snap.Atoms {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" opacity="%.2f"/>
`, ox+a.X, oy+a.Y, a.Radius, roleColor(a.Role.String()), a.Opacity))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func roleColor(role string) string {
	switch role {
	case "central":
		return "#3b82f6"
	case "lone-pair":
		return "#f59e0b"
	default:
		return "#e4e4e7"
	}
}

// SeriesSVG plots one output's history as a polyline.
func SeriesSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
