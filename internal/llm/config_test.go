package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultGeminiConfig(t *testing.T) {
	cfg := DefaultGeminiConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
}

func TestGetModel_FallbackChain(t *testing.T) {
	cfg := &Config{
		Models: map[ModelTier]string{
			TierStandard: "standard-model",
		},
	}

	assert.Equal(t, "standard-model", cfg.GetModel(TierAdvanced))

	cfg = &Config{
		Models: map[ModelTier]string{
			TierLite: "lite-model",
		},
	}
	assert.Equal(t, "lite-model", cfg.GetModel(TierAdvanced))

	cfg = &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", cfg.GetModel(TierAdvanced))
}

func TestGetMaxTokens(t *testing.T) {
	cfg := DefaultGeminiConfig()

	assert.Equal(t, int32(1000), cfg.GetMaxTokens(TierLite))
	assert.Equal(t, int32(3000), cfg.GetMaxTokens(TierStandard))
	assert.Equal(t, int32(4000), cfg.GetMaxTokens(TierAdvanced))
	assert.Equal(t, int32(0), cfg.GetMaxTokens(ModelTier("unknown")))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	cfg := DefaultGeminiConfig()
	modified := cfg.WithModel(TierLite, "custom-model")

	assert.Equal(t, "custom-model", modified.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, cfg.GetMaxTokens(TierLite), modified.GetMaxTokens(TierLite))
}
