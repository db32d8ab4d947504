package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPercentage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
		found    bool
	}{
		{"basic percentage", "45%", 45.0, true},
		{"percentage with space", "45 %", 45.0, true},
		{"percentage with abv", "45% ABV", 45.0, true},
		{"alc vol notation", "45% Alc./Vol.", 45.0, true},
		{"decimal percentage", "45.5%", 45.5, true},
		{"percent word", "45 percent", 45.0, true},
		{"alc prefix", "alc. 45", 45.0, true},
		{"alcohol prefix", "alcohol 40", 40.0, true},
		{"no percentage", "Just text without numbers", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ExtractPercentage(tt.text)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.expected, v)
			}
		})
	}
}

func TestExtractVolume(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{"ml volume", "750 mL", "750", true},
		{"ml no space", "750mL", "750", true},
		{"liter volume", "1 L", "1", true},
		{"liters word", "2 liters", "2", true},
		{"oz volume", "12 oz", "12", true},
		{"fluid oz volume", "16 fl oz", "16", true},
		{"decimal volume", "750.5 mL", "750.5", true},
		{"large volume not truncated", "1750 mL", "1750", true},
		{"no volume", "Just text without volume", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ExtractVolume(tt.text)
			require.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestExtractBrandName(t *testing.T) {
	t.Run("first line", func(t *testing.T) {
		brand, ok := ExtractBrandName("EAGLE PEAK\nKENTUCKY BOURBON\nAged 4 Years")
		require.True(t, ok)
		assert.Equal(t, "EAGLE PEAK", brand)
	})

	t.Run("skips empty lines", func(t *testing.T) {
		brand, ok := ExtractBrandName("\n\nEAGLE PEAK\nBOURBON")
		require.True(t, ok)
		assert.Equal(t, "EAGLE PEAK", brand)
	})

	t.Run("skips single characters", func(t *testing.T) {
		brand, ok := ExtractBrandName("*\nEAGLE PEAK")
		require.True(t, ok)
		assert.Equal(t, "EAGLE PEAK", brand)
	})

	t.Run("empty text", func(t *testing.T) {
		_, ok := ExtractBrandName("")
		assert.False(t, ok)
	})
}

func TestExtractProductType(t *testing.T) {
	t.Run("bourbon whiskey", func(t *testing.T) {
		pt, ok := ExtractProductType("EAGLE PEAK\nKENTUCKY STRAIGHT BOURBON WHISKEY\n45%")
		require.True(t, ok)
		assert.Contains(t, pt, "bourbon")
	})

	t.Run("vodka", func(t *testing.T) {
		pt, ok := ExtractProductType("BRAND NAME\nPREMIUM VODKA\n40% ABV")
		require.True(t, ok)
		assert.Equal(t, "vodka", pt)
	})

	t.Run("longest term wins", func(t *testing.T) {
		pt, ok := ExtractProductType("KENTUCKY STRAIGHT BOURBON WHISKEY")
		require.True(t, ok)
		assert.Equal(t, "kentucky straight bourbon whiskey", pt)
	})

	t.Run("no product type", func(t *testing.T) {
		_, ok := ExtractProductType("Just random text")
		assert.False(t, ok)
	})
}

func TestExtractVintageYear(t *testing.T) {
	t.Run("finds year", func(t *testing.T) {
		year, ok := ExtractVintageYear("CHATEAU EXAMPLE\n2019\nRED WINE")
		require.True(t, ok)
		assert.Equal(t, "2019", year)
	})

	t.Run("ignores implausible years", func(t *testing.T) {
		_, ok := ExtractVintageYear("batch 1750 bottled 3046")
		assert.False(t, ok)
	})

	t.Run("ignores short numbers", func(t *testing.T) {
		_, ok := ExtractVintageYear("750 mL 45% ABV")
		assert.False(t, ok)
	})
}

func TestHasSulfiteDeclaration(t *testing.T) {
	assert.True(t, HasSulfiteDeclaration("CONTAINS SULFITES"))
	assert.True(t, HasSulfiteDeclaration("contains sulphites"))
	assert.False(t, HasSulfiteDeclaration("RED WINE 13.5% ABV"))
}

func TestHasIngredientsList(t *testing.T) {
	t.Run("full ingredients line", func(t *testing.T) {
		assert.True(t, HasIngredientsList("INGREDIENTS: Water, Malted Barley, Hops, Yeast"))
	})

	t.Run("single incidental keyword is not enough", func(t *testing.T) {
		assert.False(t, HasIngredientsList("brewed with pure spring water"))
	})

	t.Run("plain spirits label", func(t *testing.T) {
		assert.False(t, HasIngredientsList("EAGLE PEAK BOURBON 45% ABV 750 mL"))
	})
}
