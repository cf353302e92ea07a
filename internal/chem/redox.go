package chem

// RedoxPhase is the discrete stage of a reaction's 0..100 progress.
type RedoxPhase int

const (
	PhaseInitial RedoxPhase = iota
	PhaseTransfer
	PhaseForming
	PhaseComplete
)

const (
	transferThreshold = 20
	formingThreshold  = 80
	// MaxProgress is the value at which a reaction is complete.
	MaxProgress = 100
)

var redoxPhaseNames = [...]string{"initial", "electron-transfer", "product-forming", "complete"}

func (p RedoxPhase) String() string {
	if p < 0 || int(p) >= len(redoxPhaseNames) {
		return "unknown"
	}
	return redoxPhaseNames[p]
}

// RedoxPhaseAt classifies progress. Phases are level-triggered: the same
// progress always yields the same phase.
func RedoxPhaseAt(progress float64) RedoxPhase {
	switch {
	case progress >= MaxProgress:
		return PhaseComplete
	case progress >= formingThreshold:
		return PhaseForming
	case progress >= transferThreshold:
		return PhaseTransfer
	default:
		return PhaseInitial
	}
}

// RedoxVisual holds the per-progress styling of the two reactants.
type RedoxVisual struct {
	ReducerRadius   float64
	ReducerOpacity  float64
	ShowTransfer    bool
	ProductColoured bool
	ShowProduct     bool
}

// RedoxVisualAt derives reactant styling from progress alone.
func RedoxVisualAt(progress float64) RedoxVisual {
	v := RedoxVisual{ReducerRadius: 30, ReducerOpacity: 1}
	if progress > 50 {
		v.ReducerRadius = 30 - 0.2*(progress-50)
	}
	phase := RedoxPhaseAt(progress)
	if phase >= PhaseForming {
		v.ReducerOpacity = 0.3
		v.ProductColoured = true
	}
	v.ShowTransfer = phase == PhaseTransfer
	v.ShowProduct = phase == PhaseComplete
	return v
}

// SpawnsElectron reports whether a new electron leaves the reducer at this progress.
func SpawnsElectron(progress int) bool {
	return progress > transferThreshold && progress < formingThreshold && progress%10 == 0
}
