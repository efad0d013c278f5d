package normalisers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

func TestForOrigin(t *testing.T) {
	for _, origin := range []domain.Origin{domain.OriginText, domain.OriginURL, domain.OriginPDF} {
		normaliser, err := ForOrigin(origin)
		require.NoError(t, err)
		require.NotNil(t, normaliser)
		assert.Equal(t, origin, normaliser.Origin())
	}
}

func TestForOrigin_Unknown(t *testing.T) {
	normaliser, err := ForOrigin("carrier-pigeon")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, normaliser)
}
