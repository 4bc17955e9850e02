package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestCompareRarity_SolidsRarestFirst(t *testing.T) {
	ordered := []shared.ResourceKind{shared.Titanium, shared.Gold, shared.Aluminium, shared.Iron, shared.Carbon}

	for i, a := range ordered {
		for j, b := range ordered {
			t.Run(string(a)+"_vs_"+string(b), func(t *testing.T) {
				want := sign(i - j)
				assert.Equal(t, want, sign(a.CompareRarity(b)))
				assert.Equal(t, -want, sign(b.CompareRarity(a)), "antisymmetric")
			})
		}
	}
}

func TestCompareRarity_IsTransitive(t *testing.T) {
	kinds := shared.AllResourceKinds

	for _, a := range kinds {
		for _, b := range kinds {
			for _, c := range kinds {
				if a.CompareRarity(b) < 0 && b.CompareRarity(c) < 0 {
					assert.Negative(t, a.CompareRarity(c), "%s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func TestCompareRarity_ZeroOnlyForSameKind(t *testing.T) {
	for _, a := range shared.AllResourceKinds {
		for _, b := range shared.AllResourceKinds {
			if a == b {
				assert.Zero(t, a.CompareRarity(b))
			} else {
				assert.NotZero(t, a.CompareRarity(b), "%s vs %s", a, b)
			}
		}
	}
	assert.Positive(t, shared.Water.CompareRarity(shared.Carbon))
	assert.Positive(t, shared.Oxygen.CompareRarity(shared.Carbon))
}

func TestResourceKind_Category(t *testing.T) {
	assert.Equal(t, shared.Liquid, shared.Water.Category())
	assert.Equal(t, shared.Gaseous, shared.Oxygen.Category())
	for _, k := range []shared.ResourceKind{shared.Carbon, shared.Iron, shared.Gold, shared.Aluminium, shared.Titanium} {
		assert.Equal(t, shared.Solid, k.Category(), string(k))
	}
}

func TestParseResourceKind(t *testing.T) {
	k, err := shared.ParseResourceKind(" Titanium ")
	require.NoError(t, err)
	assert.Equal(t, shared.Titanium, k)

	_, err = shared.ParseResourceKind("unobtainium")
	assert.ErrorIs(t, err, shared.ErrInvalidRequest)
}
