package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dn-damage-calc/internal/calc"
)

func newPresets(t *testing.T) *Presets {
	t.Helper()
	p := NewPresets(NewMemory(), nil)
	p.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return p
}

func TestPresetSaveNames(t *testing.T) {
	ctx := context.Background()
	p := newPresets(t)

	first, err := p.Save(ctx, "me", 0, "  ", snapshot(calc.Archer, 1))
	require.NoError(t, err)
	assert.Equal(t, "Preset 1", first.Name)
	assert.Equal(t, calc.Archer, first.Class)
	assert.Equal(t, int64(1_700_000_000_000), first.SavedAt)

	// Past the end appends at the next free slot.
	second, err := p.Save(ctx, "me", 5, "", snapshot(calc.Cleric, 2))
	require.NoError(t, err)
	assert.Equal(t, "Preset 2", second.Name)

	renamed, err := p.Save(ctx, "me", 0, " Boss run ", snapshot(calc.Archer, 3))
	require.NoError(t, err)
	assert.Equal(t, "Boss run", renamed.Name)
	assert.NotEqual(t, first.ID, renamed.ID)

	kept, err := p.Save(ctx, "me", 0, "", snapshot(calc.Academic, 4))
	require.NoError(t, err)
	assert.Equal(t, "Boss run", kept.Name)

	list, err := p.List(ctx, "me")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, kept.ID, list[0].ID)
	assert.Equal(t, calc.Academic, list[0].Build.Class)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestPresetSlotRange(t *testing.T) {
	ctx := context.Background()
	p := newPresets(t)
	_, err := p.Save(ctx, "me", -1, "", calc.DefaultSnapshot())
	assert.ErrorIs(t, err, ErrSlotRange)
	_, err = p.Save(ctx, "me", MaxPresets, "", calc.DefaultSnapshot())
	assert.ErrorIs(t, err, ErrSlotRange)

	for i := 0; i < MaxPresets+3; i++ {
		_, err := p.Save(ctx, "me", min(i, MaxPresets-1), "", calc.DefaultSnapshot())
		require.NoError(t, err)
	}
	list, err := p.List(ctx, "me")
	require.NoError(t, err)
	assert.Len(t, list, MaxPresets)
}

func TestPresetDeleteCompacts(t *testing.T) {
	ctx := context.Background()
	p := newPresets(t)
	var ids []string
	for i := 0; i < 3; i++ {
		pr, err := p.Save(ctx, "me", i, "", calc.DefaultSnapshot())
		require.NoError(t, err)
		ids = append(ids, pr.ID)
	}

	require.NoError(t, p.Delete(ctx, "me", ids[1]))
	assert.ErrorIs(t, p.Delete(ctx, "me", ids[1]), ErrNotFound)

	list, err := p.List(ctx, "me")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, ids[2], list[1].ID)

	got, err := p.Get(ctx, "me", ids[2])
	require.NoError(t, err)
	assert.Equal(t, "Preset 3", got.Name)
	_, err = p.Get(ctx, "me", ids[1])
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPresetListUnreadable(t *testing.T) {
	ctx := context.Background()
	p := newPresets(t)
	require.NoError(t, p.kv.Set(ctx, profileKey("me", KeyPresets), "{broken"))
	list, err := p.List(ctx, "me")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPresetImportBrowser(t *testing.T) {
	ctx := context.Background()
	p := newPresets(t)

	raw := `[
	  {"id":"abc123","name":"Nest","classType":"Sorceress","savedAt":1699999999999,
	   "build":{"class":"Sorceress","classBaseInt":"500"},
	   "skill":{"skillType":"magic","skillElement":"light","skillPct":"300","fixedValue":"0","patchLv":70,"targetRes":"","debuffSum":""}},
	  {"id":"bad","name":"Broken","build":{"class":"Paladin"}},
	  {"name":"","build":{"class":"Archer"}}
	]`
	imported, skipped, err := p.ImportBrowser(ctx, "me", raw)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, imported, 2)

	assert.Equal(t, "abc123", imported[0].ID)
	assert.Equal(t, calc.Sorceress, imported[0].Class)
	assert.Equal(t, calc.Light, imported[0].Skill.Element)
	assert.Equal(t, int64(1699999999999), imported[0].SavedAt)
	assert.Equal(t, "Preset 2", imported[1].Name)
	assert.NotEmpty(t, imported[1].ID)

	list, err := p.List(ctx, "me")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, _, err = p.ImportBrowser(ctx, "me", `{"not":"a list"}`)
	assert.ErrorIs(t, err, calc.ErrMalformed)
}
