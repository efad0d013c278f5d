package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, ModeHybrid, cfg.Mode)
	assert.InDelta(t, 0.7, cfg.WeightSemantic, 1e-9)
	assert.InDelta(t, 0.3, cfg.WeightLexical, 1e-9)
	assert.Equal(t, 5, cfg.TopK)
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults pass",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "zero chunk size rejected",
			mutate:  func(c *Config) { c.ChunkSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative chunk size rejected",
			mutate:  func(c *Config) { c.ChunkSize = -100 },
			wantErr: true,
		},
		{
			name:    "negative overlap rejected",
			mutate:  func(c *Config) { c.ChunkOverlap = -1 },
			wantErr: true,
		},
		{
			name:    "overlap equal to chunk size rejected",
			mutate:  func(c *Config) { c.ChunkOverlap = c.ChunkSize },
			wantErr: true,
		},
		{
			name:    "overlap above chunk size rejected",
			mutate:  func(c *Config) { c.ChunkOverlap = c.ChunkSize + 1 },
			wantErr: true,
		},
		{
			name:    "zero overlap allowed",
			mutate:  func(c *Config) { c.ChunkOverlap = 0 },
			wantErr: false,
		},
		{
			name:    "unknown mode rejected",
			mutate:  func(c *Config) { c.Mode = RetrievalMode("keyword") },
			wantErr: true,
		},
		{
			name:    "negative semantic weight rejected",
			mutate:  func(c *Config) { c.WeightSemantic = -0.1 },
			wantErr: true,
		},
		{
			name:    "negative lexical weight rejected",
			mutate:  func(c *Config) { c.WeightLexical = -0.1 },
			wantErr: true,
		},
		{
			name: "zero lexical weight allowed",
			mutate: func(c *Config) {
				c.WeightLexical = 0
			},
			wantErr: false,
		},
		{
			name: "weights need not sum to one",
			mutate: func(c *Config) {
				c.WeightSemantic = 2.5
				c.WeightLexical = 1.5
			},
			wantErr: false,
		},
		{
			name:    "zero top-k rejected",
			mutate:  func(c *Config) { c.TopK = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetrievalMode_IsValid(t *testing.T) {
	assert.True(t, ModeSemantic.IsValid())
	assert.True(t, ModeHybrid.IsValid())
	assert.False(t, RetrievalMode("").IsValid())
	assert.False(t, RetrievalMode("full").IsValid())
}

func TestOrigin_IsValid(t *testing.T) {
	assert.True(t, OriginPDF.IsValid())
	assert.True(t, OriginURL.IsValid())
	assert.True(t, OriginText.IsValid())
	assert.False(t, Origin("docx").IsValid())
}

func TestAIProvider(t *testing.T) {
	assert.True(t, AIProviderOllama.IsValid())
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.False(t, AIProvider("gemini").IsValid())

	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
}
