package config

const (
	// MaxPresetNameLength is the maximum length for preset names.
	// Kept short so names stay usable in selection lists.
	MaxPresetNameLength = 255

	// MaxGenTokens is the largest response length a preset may request.
	// Services reject larger values; validating here reports the problem
	// before a request is built.
	MaxGenTokens = 2048

	// MaxContextTokens is the largest prompt context a preset may request.
	MaxContextTokens = 32768

	// MaxStopSequences is the maximum number of stop sequences per preset.
	MaxStopSequences = 10

	// MaxSamplerOrderValue is the highest sampler index accepted in an
	// order specification. Services expose at most this many samplers.
	MaxSamplerOrderValue = 10
)
