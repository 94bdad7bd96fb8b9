package lipgloss_test

import (
	"testing"

	"github.com/fwojciec/starprep"
	"github.com/fwojciec/starprep/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	t.Run("implements Theme interface", func(t *testing.T) {
		t.Parallel()

		var _ starprep.Theme = lipgloss.DefaultTheme()
	})

	t.Run("colors the elements that carry meaning", func(t *testing.T) {
		t.Parallel()

		styles := lipgloss.DefaultTheme().Styles()

		assert.NotEmpty(t, styles.Error.Foreground)
		assert.NotEmpty(t, styles.Warning.Foreground)
		assert.NotEmpty(t, styles.Selected.Background)
		assert.NotEmpty(t, styles.StatusBar.Background)
	})
}

func TestLightAndDarkThemesDiffer(t *testing.T) {
	t.Parallel()

	dark := lipgloss.DarkTheme().Styles()
	light := lipgloss.LightTheme().Styles()

	assert.NotEqual(t, dark.Title.Foreground, light.Title.Foreground)
	assert.NotEqual(t, dark.StatusBar.Background, light.StatusBar.Background)
}
