package coalesced

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		action ParseAction
		number int
		name   string
	}{
		{New, 0, "New"},
		{RemoveProperty, 1, "RemoveProperty"},
		{Add, 2, "Add"},
		{AddUnique, 3, "AddUnique"},
		{Remove, 4, "Remove"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.number, int(tt.action))
			assert.Equal(t, tt.name, tt.action.String())
			assert.True(t, tt.action.IsKnown())

			parsed, err := ParseActionFromString(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.action, parsed)
		})
	}

	assert.False(t, ParseAction(9).IsKnown())
	assert.Equal(t, "ParseAction(9)", ParseAction(9).String())

	_, err := ParseActionFromString("Replace")
	assert.Error(t, err)

	var a ParseAction
	require.NoError(t, a.UnmarshalText([]byte("addunique")))
	assert.Equal(t, AddUnique, a)
}

func TestGame(t *testing.T) {
	tests := []struct {
		name        string
		legendary   bool
		addTyping   bool
		looseConfig bool
	}{
		{"ME1", false, false, true},
		{"ME2", false, false, true},
		{"ME3", false, false, true},
		{"LE1", true, true, true},
		{"LE2", true, false, true},
		{"LE3", true, false, true},
		{"LELauncher", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGame(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, g.String())
			assert.Equal(t, tt.legendary, g.IsLegendary())
			assert.Equal(t, tt.addTyping, g.ForcesAddTyping())
			assert.Equal(t, tt.looseConfig, g.HasLooseConfig())
		})
	}

	g, err := ParseGame("le3")
	require.NoError(t, err)
	assert.Equal(t, LE3, g)

	_, err = ParseGame("ME4")
	assert.Error(t, err)
	assert.False(t, GameUnknown.HasLooseConfig())
}

func TestSplitDeltaSectionName(t *testing.T) {
	tests := []struct {
		input   string
		asset   string
		section string
		ok      bool
	}{
		{"BIOGame.ini SFXGame.BioWorldInfo", "BIOGame.ini", "SFXGame.BioWorldInfo", true},
		{"BIOEngine.ini Engine.Engine Extra", "BIOEngine.ini", "Engine.Engine Extra", true},
		{"BIOGame.ini", "", "", false},
		{" SFXGame.BioWorldInfo", "", "", false},
		{"BIOGame.ini ", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			asset, section, ok := SplitDeltaSectionName(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.asset, asset)
				assert.Equal(t, tt.section, section)
				assert.Equal(t, tt.input, DeltaSectionName(asset, section))
			}
		})
	}
}

func TestConfigSection_Properties(t *testing.T) {
	s := NewConfigSection("Engine.Engine")
	s.AddValue("Zeta", NewValue("1", New))
	s.AddValue("Alpha", NewValue("2", New))
	s.AddValue("zeta", NewValue("3", Add))

	props := s.Properties()
	require.Len(t, props, 2)
	assert.Equal(t, "Zeta", props[0].Name, "first spelling and position are kept")
	assert.Equal(t, []string{"1", "3"}, props[0].Strings())
	assert.Equal(t, "Alpha", props[1].Name)

	assert.True(t, s.RemoveProperty("ZETA"))
	assert.False(t, s.RemoveProperty("ZETA"))
	assert.Equal(t, 1, s.Len())
}

func TestConfigAsset_CloneIsDeep(t *testing.T) {
	a := NewConfigAsset("BIOGame.ini")
	s, created := a.GetOrAddSection("SFXGame.SFXGame")
	require.True(t, created)
	s.AddValue("Foo", NewValue("a", New))

	_, created = a.GetOrAddSection("sfxgame.sfxgame")
	assert.False(t, created)

	clone := a.Clone()
	cs, ok := clone.Section("SFXGame.SFXGame")
	require.True(t, ok)
	cs.AddValue("Foo", NewValue("b", Add))
	cs.AddValue("Bar", NewValue("c", New))

	assert.Equal(t, 1, a.ValueCount())
	assert.Equal(t, 3, clone.ValueCount())
	assert.True(t, a.RemoveSection("SFXGame.SFXGame"))
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 1, clone.Len())
}

func TestSuggestNames(t *testing.T) {
	candidates := []string{"BIOGame.ini", "BIOInput.ini", "BIOEngine.ini", "BIOUI.ini"}

	assert.Equal(t, []string{"BIOGame.ini"}, SuggestNames("BioGame.ini", candidates, 3))
	assert.Equal(t, []string{"BIOGame.ini"}, SuggestNames("BIOGam.ini", candidates, 3))
	assert.Empty(t, SuggestNames("Coalesced.bin", candidates, 3))
	assert.Len(t, SuggestNames("BIOUX.ini", candidates, 1), 1)
}
