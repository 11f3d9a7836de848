package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("creates active service", func(t *testing.T) {
		svc, err := NewService("frenos", "Revisión de frenos", decimal.NewFromInt(15000))
		require.NoError(t, err)
		assert.Equal(t, "frenos", svc.Name)
		assert.True(t, svc.Active)
		assert.True(t, svc.UnitPrice.Equal(decimal.NewFromInt(15000)))
		assert.NotEqual(t, svc.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("trims the name", func(t *testing.T) {
		svc, err := NewService("  alineado  ", "", decimal.NewFromInt(7000))
		require.NoError(t, err)
		assert.Equal(t, "alineado", svc.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewService("   ", "", decimal.NewFromInt(1000))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewService("frenos", "", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestService_Update(t *testing.T) {
	svc, err := NewService("frenos", "desc", decimal.NewFromInt(15000))
	require.NoError(t, err)

	t.Run("patches provided fields only", func(t *testing.T) {
		newPrice := decimal.NewFromInt(18000)
		require.NoError(t, svc.Update(nil, nil, &newPrice))
		assert.Equal(t, "frenos", svc.Name)
		assert.True(t, svc.UnitPrice.Equal(newPrice))
	})

	t.Run("rejects blank name", func(t *testing.T) {
		blank := "  "
		assert.Error(t, svc.Update(&blank, nil, nil))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		bad := decimal.NewFromInt(-5)
		assert.Error(t, svc.Update(nil, nil, &bad))
	})
}

func TestService_Deactivate(t *testing.T) {
	svc, err := NewService("gases", "", decimal.NewFromInt(5000))
	require.NoError(t, err)

	svc.Deactivate()
	assert.False(t, svc.Active)

	svc.Activate()
	assert.True(t, svc.Active)
}

func TestDefaultServices(t *testing.T) {
	seeds := DefaultServices()
	assert.Len(t, seeds, 14)

	names := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		assert.NotEmpty(t, s.Name)
		assert.True(t, s.UnitPrice.IsPositive())
		assert.False(t, names[s.Name], "seed names must be unique")
		names[s.Name] = true
	}
	assert.True(t, names["frenos"])
}
