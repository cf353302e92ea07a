package demos

import (
	"time"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/steps"
)

// IonicPhases shows Na giving its valence electron to Cl. Offsets are in
// drawing units: the electron's x position and the translation of each ion.
var IonicPhases = []steps.Phase{
	{Name: "initial", Title: "Neutral atoms", Visual: steps.Visual{
		Visible: map[string]bool{"valence-electron": true},
		Offsets: map[string]float64{"electron-x": 80, "na-x": 0, "cl-x": 0},
	}},
	{Name: "electron-transfer", Title: "Electron transfer", Visual: steps.Visual{
		Visible: map[string]bool{"valence-electron": true, "transfer-arrow": true},
		Offsets: map[string]float64{"electron-x": 220, "na-x": 0, "cl-x": 0},
	}},
	{Name: "ions-formed", Title: "Ions formed", Visual: steps.Visual{
		Visible: map[string]bool{"charges": true},
		Offsets: map[string]float64{"electron-x": 220, "na-x": 0, "cl-x": 0},
	}},
	{Name: "ionic-bond", Title: "Ionic bond", Visual: steps.Visual{
		Visible: map[string]bool{"charges": true, "bond": true},
		Offsets: map[string]float64{"electron-x": 220, "na-x": 50, "cl-x": -50},
	}},
}

// ionicEvery is two seconds of 100ms ticks.
const ionicEvery = 20

type Ionic struct {
	params  *param.Store
	machine *steps.Machine
}

func NewIonic() *Ionic {
	m, _ := steps.NewMachine(IonicPhases, ionicEvery)
	m.SetAutoplay(true)
	return &Ionic{params: param.NewStore(), machine: m}
}

func (i *Ionic) Kind() dynamo.Kind           { return dynamo.KindIonic }
func (i *Ionic) Params() *param.Store        { return i.params }
func (i *Ionic) TickInterval() time.Duration { return 100 * time.Millisecond }
func (i *Ionic) Machine() *steps.Machine     { return i.machine }

func (i *Ionic) Step(tick int) dynamo.Outputs {
	i.machine.Tick()
	v := i.machine.Current().Visual
	return dynamo.Outputs{
		"step":      float64(i.machine.Index()),
		"electronX": v.Offset("electron-x"),
		"naOffset":  v.Offset("na-x"),
		"clOffset":  v.Offset("cl-x"),
		"charged":   dynamo.Bool(v.Shows("charges")),
		"bonded":    dynamo.Bool(v.Shows("bond")),
	}
}

func (i *Ionic) Reset() {
	i.machine.Reset()
	i.machine.SetAutoplay(true)
}

func (i *Ionic) Labels() map[string]string {
	return map[string]string{"phase": i.machine.Current().Title}
}
