package config

import "sort"

// Presets holds named parameter sets per simulation kind.
var Presets = map[string]map[string]map[string]float64{
	"equilibrium": {
		"high-pressure": {"pressure": 5},
		"hot":           {"temperature": 90},
		"concentrated":  {"concentration": 3},
		"cold-dilute":   {"temperature": 0, "concentration": 0.5},
	},
	"titration": {
		"methyl-orange":    {"indicator": 1},
		"near-equivalence": {"volume": 24},
		"excess-titrant":   {"volume": 40},
	},
	"dispersion": {
		"colloid-beam": {"system": 1, "tyndall": 1},
		"suspension":   {"system": 2},
	},
	"matter": {
		"compound": {"type": 1},
		"mixture":  {"type": 2},
		"frozen":   {"animate": 0},
	},
	"redox": {
		"sodium-chlorine": {"reaction": 1},
		"rusting":         {"reaction": 2},
	},
	"vsepr": {
		"tetrahedral": {"shape": 3},
		"water":       {"shape": 5},
	},
	"hybridization": {
		"sp":    {"type": 0},
		"sp3d2": {"type": 4},
	},
	"atom": {
		"carbon": {"element": 5},
		"argon":  {"element": 17, "cloud": 1},
	},
	"covalent": {
		"nitrogen": {"molecule": 2},
		"water":    {"molecule": 4},
	},
	"benzene": {
		"kekule":      {"view": 0},
		"delocalized": {"view": 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(kind, preset string) map[string]float64 {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	params, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
