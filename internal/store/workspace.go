package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dn-damage-calc/internal/calc"
)

// Workspace holds the build and skill a profile is currently editing.
type Workspace struct {
	kv  KV
	log *zap.Logger
}

func NewWorkspace(kv KV, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workspace{kv: kv, log: log}
}

// Load returns the stored workspace of profile. A missing or unreadable
// document yields the default for that half, so Load never fails.
func (w *Workspace) Load(ctx context.Context, profile string) calc.Snapshot {
	snap := calc.DefaultSnapshot()
	if err := w.get(ctx, profile, KeyBuild, &snap.Build); err != nil {
		snap.Build = calc.DefaultBuild()
	}
	if err := w.get(ctx, profile, KeySkill, &snap.Skill); err != nil {
		snap.Skill = calc.DefaultSkill()
	}
	return snap
}

func (w *Workspace) get(ctx context.Context, profile, name string, v any) error {
	raw, err := w.kv.Get(ctx, profileKey(profile, name))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			w.log.Warn("workspace read failed", zap.String("profile", profile), zap.String("key", name), zap.Error(err))
		}
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		w.log.Warn("workspace document unreadable, using default",
			zap.String("profile", profile), zap.String("key", name), zap.Error(err))
		return err
	}
	return nil
}

// Save stores both halves of the workspace.
func (w *Workspace) Save(ctx context.Context, profile string, snap calc.Snapshot) error {
	if err := snap.Skill.Validate(); err != nil {
		return err
	}
	if err := w.put(ctx, profile, KeyBuild, snap.Build); err != nil {
		return err
	}
	return w.put(ctx, profile, KeySkill, snap.Skill)
}

func (w *Workspace) put(ctx context.Context, profile, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := w.kv.Set(ctx, profileKey(profile, name), string(data)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Reset drops the stored workspace so the next Load returns defaults.
func (w *Workspace) Reset(ctx context.Context, profile string) error {
	return w.kv.Del(ctx, profileKey(profile, KeyBuild), profileKey(profile, KeySkill))
}
