package demos

import (
	"time"

	"github.com/san-kum/chemlab/internal/chem"
	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
)

// DropVolume is the titrant added per tick while dropping.
const DropVolume = 0.5

// Titration adds strong acid titrant to a strong base. The burette reading
// is the "volume" parameter, so a user can also set it directly.
type Titration struct {
	params    *param.Store
	model     chem.Titration
	indicator *revisions
}

func NewTitration() *Titration {
	t := &Titration{
		params: param.NewStore(
			param.Parameter{Name: "volume", Min: 0, Max: chem.MaxTitrantVolume, Step: DropVolume, Unit: "mL"},
			selector("indicator", len(chem.Indicators), 0),
			toggle("dropping", true),
		),
		model: chem.DefaultTitration(),
	}
	t.indicator = watch(t.params, "indicator")
	return t
}

func (t *Titration) Kind() dynamo.Kind           { return dynamo.KindTitration }
func (t *Titration) Params() *param.Store        { return t.params }
func (t *Titration) TickInterval() time.Duration { return 200 * time.Millisecond }

func (t *Titration) Indicator() chem.Indicator {
	return pick(chem.Indicators, t.params.Int("indicator"))
}

func (t *Titration) Step(tick int) dynamo.Outputs {
	if t.indicator.changed() {
		t.params.Set("volume", 0)
		t.params.Set("dropping", 0)
	}
	if t.params.Flag("dropping") {
		if v := t.params.Get("volume"); v >= chem.MaxTitrantVolume {
			t.params.Set("dropping", 0)
		} else {
			t.params.Set("volume", v+DropVolume)
		}
	}

	v := t.params.Get("volume")
	pH := t.model.PH(v)
	tint := t.Indicator().Tint(pH)
	return dynamo.Outputs{
		"volume":      v,
		"ph":          pH,
		"equivalence": t.model.EquivalenceVolume(),
		"opacity":     tint.Opacity,
		"blend":       tint.Blend,
		"dropping":    dynamo.Bool(t.params.Flag("dropping")),
	}
}

// Settle keeps an indicator chosen before the run from restarting it.
func (t *Titration) Settle() { t.indicator.sync() }

func (t *Titration) Reset() {
	t.params.Set("volume", 0)
	t.indicator.sync()
}

func (t *Titration) Labels() map[string]string {
	tint := t.Indicator().Tint(t.model.PH(t.params.Get("volume")))
	color := tint.Color.Hex()
	if tint.Transparent() {
		color = "transparent"
	}
	return map[string]string{
		"indicator": t.Indicator().Name,
		"color":     color,
	}
}
