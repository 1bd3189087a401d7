package preset

import (
	"fable/internal/domain/models"
)

// serviceFallbacks are the hard-coded minimal-viable parameter sets used
// when a chat defers to its service default and the user has never
// configured per-service defaults.
var serviceFallbacks = map[string]models.Preset{
	models.ServiceHorde: {
		ID:   "fallback-horde",
		Name: "Horde",
		Settings: models.GenSettings{
			Service:                models.ServiceHorde,
			Temp:                   0.65,
			TopP:                   0.9,
			TopA:                   1.0,
			TypicalP:               1.0,
			TailFreeSampling:       0.9,
			RepetitionPenalty:      1.08,
			RepetitionPenaltyRange: 1024,
			RepetitionPenaltySlope: 0.9,
			MaxTokens:              80,
			MaxContextLength:       1024,
		},
	},
	models.ServiceKobold: {
		ID:   "fallback-kobold",
		Name: "Kobold",
		Settings: models.GenSettings{
			Service:                models.ServiceKobold,
			Temp:                   0.85,
			TopP:                   1.0,
			TopA:                   1.0,
			TypicalP:               1.0,
			TailFreeSampling:       0.95,
			RepetitionPenalty:      1.1,
			RepetitionPenaltyRange: 1024,
			RepetitionPenaltySlope: 0.9,
			MaxTokens:              80,
			MaxContextLength:       2048,
			Order:                  []int{0, 1, 2, 3, 4, 5, 6},
		},
	},
	models.ServiceNovel: {
		ID:   "fallback-novel",
		Name: "Novel",
		Settings: models.GenSettings{
			Service:                models.ServiceNovel,
			Temp:                   0.63,
			TopP:                   0.975,
			TopK:                   140,
			TopA:                   1.0,
			TypicalP:               0.968,
			TailFreeSampling:       0.967,
			RepetitionPenalty:      2.975,
			RepetitionPenaltyRange: 2048,
			RepetitionPenaltySlope: 0.09,
			MaxTokens:              100,
			MaxContextLength:       2048,
		},
	},
	models.ServiceOpenAI: {
		ID:   "fallback-openai",
		Name: "Turbo",
		Settings: models.GenSettings{
			Service:          models.ServiceOpenAI,
			Temp:             0.67,
			TopP:             1.0,
			MaxTokens:        300,
			MaxContextLength: 4095,
		},
	},
	models.ServiceOoba: {
		ID:   "fallback-ooba",
		Name: "Ooba",
		Settings: models.GenSettings{
			Service:           models.ServiceOoba,
			Temp:              0.65,
			TopP:              0.9,
			TypicalP:          1.0,
			RepetitionPenalty: 1.08,
			MaxTokens:         80,
			MaxContextLength:  2048,
		},
	},
}

// FallbackFor synthesizes the fallback preset for a service. Unknown
// services get a generic minimal parameter set so a generation request can
// always be built.
func FallbackFor(service string) models.Preset {
	if fallback, ok := serviceFallbacks[service]; ok {
		return fallback
	}
	return models.Preset{
		ID: "fallback-" + service,
		Settings: models.GenSettings{
			Service:          service,
			Temp:             0.8,
			TopP:             1.0,
			MaxTokens:        80,
			MaxContextLength: 2048,
		},
	}
}
