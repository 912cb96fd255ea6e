package weights

// Presets are named raw weight profiles selectable from the UI. Raw values are
// on the same arbitrary scale as slider input; normalization handles the rest.
var presetFns = map[string]func() Raw{
	"balanced": Equal,
	"budgetFirst": func() Raw {
		return Raw{
			"priceFit":        5,
			"resalePotential": 4,
			"condition":       2,
			"layout":          2,
			"location":        1.5,
			"schools":         1,
			"commute":         1,
			"emotionalPull":   1,
		}
	},
	"lifestyleFirst": func() Raw {
		return Raw{
			"priceFit":        1,
			"resalePotential": 1,
			"condition":       1.5,
			"layout":          1.5,
			"location":        4,
			"schools":         3,
			"commute":         3,
			"emotionalPull":   4,
		}
	},
	"resaleFocused": func() Raw {
		return Raw{
			"priceFit":        2,
			"resalePotential": 5,
			"condition":       4,
			"layout":          1.5,
			"location":        1.5,
			"schools":         1,
			"commute":         1,
			"emotionalPull":   1,
		}
	},
	"familyMode": func() Raw {
		return Raw{
			"priceFit":        1.5,
			"resalePotential": 2,
			"condition":       2,
			"layout":          2,
			"location":        3,
			"schools":         5,
			"commute":         4,
			"emotionalPull":   1.5,
		}
	},
}

// PresetNames returns the available preset names.
func PresetNames() []string {
	return []string{"balanced", "budgetFirst", "lifestyleFirst", "resaleFocused", "familyMode"}
}

// Preset returns the raw weights for a named profile. The second return is
// false for unknown names.
func Preset(name string) (Raw, bool) {
	fn, ok := presetFns[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}
