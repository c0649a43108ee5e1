package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"dn-damage-calc/internal/calc"
)

// MaxPresets is the number of preset slots per profile.
const MaxPresets = 8

// Preset is a named, saved workspace.
type Preset struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Class   calc.Class       `json:"classType"`
	SavedAt int64            `json:"savedAt"` // unix milliseconds
	Build   calc.Build       `json:"build"`
	Skill   calc.SkillConfig `json:"skill"`
}

// Snapshot returns the build and skill of p.
func (p Preset) Snapshot() calc.Snapshot { return calc.Snapshot{Build: p.Build, Skill: p.Skill} }

// Presets manages the preset list of each profile.
type Presets struct {
	kv  KV
	log *zap.Logger
	now func() time.Time

	// Serialises read-modify-write cycles within this process.
	mu sync.Mutex
}

func NewPresets(kv KV, log *zap.Logger) *Presets {
	if log == nil {
		log = zap.NewNop()
	}
	return &Presets{kv: kv, log: log, now: time.Now}
}

// List returns the presets of profile in slot order. An unreadable list is
// reported as empty.
func (p *Presets) List(ctx context.Context, profile string) ([]Preset, error) {
	raw, err := p.kv.Get(ctx, profileKey(profile, KeyPresets))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []Preset
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		p.log.Warn("preset list unreadable, treating as empty", zap.String("profile", profile), zap.Error(err))
		return nil, nil
	}
	return list, nil
}

func (p *Presets) write(ctx context.Context, profile string, list []Preset) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	return p.kv.Set(ctx, profileKey(profile, KeyPresets), string(data))
}

// Save stores snap in slot. An occupied slot is replaced by a new preset;
// a slot past the end of the list appends, so the list never has holes.
// A blank name keeps the replaced preset's name or falls back to
// "Preset N".
func (p *Presets) Save(ctx context.Context, profile string, slot int, name string, snap calc.Snapshot) (Preset, error) {
	if slot < 0 || slot >= MaxPresets {
		return Preset{}, ErrSlotRange
	}
	if err := snap.Skill.Validate(); err != nil {
		return Preset{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	list, err := p.List(ctx, profile)
	if err != nil {
		return Preset{}, err
	}
	slot = min(slot, len(list))

	name = strings.TrimSpace(name)
	if name == "" && slot < len(list) {
		name = list[slot].Name
	}
	if name == "" {
		name = fmt.Sprintf("Preset %d", slot+1)
	}
	preset := Preset{
		ID:      uuid.NewString(),
		Name:    name,
		Class:   snap.Build.Class,
		SavedAt: p.now().UnixMilli(),
		Build:   snap.Build,
		Skill:   snap.Skill,
	}
	if slot < len(list) {
		list[slot] = preset
	} else {
		list = append(list, preset)
	}
	if err := p.write(ctx, profile, list); err != nil {
		return Preset{}, err
	}
	p.log.Info("preset saved", zap.String("profile", profile), zap.Int("slot", slot), zap.String("id", preset.ID))
	return preset, nil
}

// Get returns the preset with id.
func (p *Presets) Get(ctx context.Context, profile, id string) (Preset, error) {
	list, err := p.List(ctx, profile)
	if err != nil {
		return Preset{}, err
	}
	i := slices.IndexFunc(list, func(x Preset) bool { return x.ID == id })
	if i < 0 {
		return Preset{}, ErrNotFound
	}
	return list[i], nil
}

// Delete removes the preset with id. Later presets move up a slot.
func (p *Presets) Delete(ctx context.Context, profile, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	list, err := p.List(ctx, profile)
	if err != nil {
		return err
	}
	next := slices.DeleteFunc(slices.Clone(list), func(x Preset) bool { return x.ID == id })
	if len(next) == len(list) {
		return ErrNotFound
	}
	return p.write(ctx, profile, next)
}

// ImportBrowser replaces the preset list of profile with a dn-presets
// document exported from the browser calculator. Entries past MaxPresets are
// dropped. Entries that cannot be read are skipped and counted.
func (p *Presets) ImportBrowser(ctx context.Context, profile, raw string) (imported []Preset, skipped int, err error) {
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsArray() {
		return nil, 0, calc.ErrMalformed
	}
	gjson.Parse(raw).ForEach(func(_, v gjson.Result) bool {
		if len(imported) == MaxPresets {
			skipped++
			return true
		}
		build, err := calc.ImportBrowserBuild(v.Get("build").Raw)
		if err != nil {
			skipped++
			return true
		}
		skill := calc.DefaultSkill()
		if s := v.Get("skill"); s.Exists() {
			if skill, err = calc.ImportBrowserSkill(s.Raw); err != nil {
				skipped++
				return true
			}
		}
		preset := Preset{
			ID:      v.Get("id").String(),
			Name:    strings.TrimSpace(v.Get("name").String()),
			Class:   build.Class,
			SavedAt: v.Get("savedAt").Int(),
			Build:   build,
			Skill:   skill,
		}
		if preset.ID == "" {
			preset.ID = uuid.NewString()
		}
		if preset.Name == "" {
			preset.Name = fmt.Sprintf("Preset %d", len(imported)+1)
		}
		imported = append(imported, preset)
		return true
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.write(ctx, profile, imported); err != nil {
		return nil, 0, err
	}
	if skipped > 0 {
		p.log.Warn("preset import skipped entries", zap.String("profile", profile), zap.Int("skipped", skipped))
	}
	return imported, skipped, nil
}
