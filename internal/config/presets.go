package config

import "sort"

var Presets = map[string]*Config{
	"water": preset(300, 400,
		SpawnConfig{"water", 20},
	),
	"air": preset(273, 400,
		SpawnConfig{"nitrogen", 16},
		SpawnConfig{"oxygen", 4},
		SpawnConfig{"carbon-dioxide", 1},
	),
	"salt": preset(273, 600,
		SpawnConfig{"sodium-chloride", 8},
		SpawnConfig{"calcium-fluoride", 4},
		SpawnConfig{"magnesium-oxide", 4},
	),
	"organic": preset(298, 500,
		SpawnConfig{"methane", 8},
		SpawnConfig{"ethanol", 6},
		SpawnConfig{"water", 6},
	),
	"shapes": preset(273, 300,
		SpawnConfig{"boron-trifluoride", 2},
		SpawnConfig{"ammonia", 2},
		SpawnConfig{"sulfur-dioxide", 2},
		SpawnConfig{"sulfur-tetrafluoride", 2},
		SpawnConfig{"chlorine-trifluoride", 2},
		SpawnConfig{"phosphorus-pentachloride", 2},
		SpawnConfig{"sulfur-hexafluoride", 2},
	),
	"hot": preset(1500, 400,
		SpawnConfig{"water", 10},
		SpawnConfig{"carbon-dioxide", 10},
	),
	"cold": preset(40, 400,
		SpawnConfig{"helium", 12},
		SpawnConfig{"hydrogen", 12},
	),
}

func preset(temperature float64, ticks int, spawn ...SpawnConfig) *Config {
	cfg := DefaultConfig()
	cfg.Temperature = temperature
	cfg.Ticks = ticks
	cfg.Spawn = spawn
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
