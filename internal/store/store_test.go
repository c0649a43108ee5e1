package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dn-damage-calc/internal/calc"
	"dn-damage-calc/internal/stat"
)

func snapshot(class calc.Class, str float64) calc.Snapshot {
	s := calc.DefaultSnapshot()
	s.Build.Class = class
	s.Build.ClassBaseStr = stat.N(str)
	return s
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "a", "1"))
	v, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	require.NoError(t, kv.Del(ctx, "a", "b"))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewSelectsMemory(t *testing.T) {
	kv, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)
}

// TestRedisKV runs against a live server when DNCALC_TEST_REDIS is set.
func TestRedisKV(t *testing.T) {
	addr := os.Getenv("DNCALC_TEST_REDIS")
	if addr == "" {
		t.Skip("DNCALC_TEST_REDIS not set")
	}
	ctx := context.Background()
	prefix := fmt.Sprintf("dncalc-test-%d:", time.Now().UnixNano())
	kv := NewRedisFromClient(goredis.NewClient(&goredis.Options{Addr: addr}), prefix)
	t.Cleanup(func() { kv.Close() })

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, kv.Set(ctx, "k", "v"))
	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	require.NoError(t, kv.Del(ctx, "k"))
}

func TestWorkspaceRoundTrip(t *testing.T) {
	ctx := context.Background()
	w := NewWorkspace(NewMemory(), nil)

	assert.Equal(t, calc.DefaultSkill(), w.Load(ctx, "alice").Skill)

	snap := snapshot(calc.Cleric, 321)
	snap.Skill.PatchLv = 90
	require.NoError(t, w.Save(ctx, "alice", snap))

	got := w.Load(ctx, "alice")
	assert.Equal(t, calc.Cleric, got.Build.Class)
	assert.Equal(t, 321.0, got.Build.ClassBaseStr.Value())
	assert.Equal(t, 90, got.Skill.PatchLv)

	// Profiles do not share state.
	assert.Equal(t, calc.Warrior, w.Load(ctx, "bob").Build.Class)

	require.NoError(t, w.Reset(ctx, "alice"))
	assert.Equal(t, calc.DefaultPatch, w.Load(ctx, "alice").Skill.PatchLv)
}

func TestWorkspaceFallsBackOnCorruptDocuments(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	w := NewWorkspace(kv, nil)

	require.NoError(t, kv.Set(ctx, profileKey("", KeyBuild), `{"class":"Paladin"}`))
	require.NoError(t, kv.Set(ctx, profileKey("", KeySkill), `not json`))

	got := w.Load(ctx, "")
	assert.Equal(t, calc.Warrior, got.Build.Class)
	assert.Len(t, got.Build.ArmorSlots, 5)
	assert.Equal(t, calc.DefaultSkill(), got.Skill)
}

func TestWorkspaceSaveRejectsInvalidSkill(t *testing.T) {
	w := NewWorkspace(NewMemory(), nil)
	snap := calc.DefaultSnapshot()
	snap.Skill.PatchLv = 1
	assert.Error(t, w.Save(context.Background(), "p", snap))
}
