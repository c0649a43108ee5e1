package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dn-damage-calc/internal/stat"
)

const browserBuild = `{
  "class": "Warrior",
  "classBaseStr": "100", "classBaseAgi": "", "classBaseInt": "",
  "weaponMain": {
    "physMin": "50", "physMax": "80", "physMinCmp": "", "physMaxCmp": "1,000",
    "statPair": [[{"id":"a1","type":"STR","value":"10","isPercent":false}],[{"id":"a2","type":"","value":"","isPercent":false}]]
  },
  "armorSlots": [
    {"statPair": [[{"id":"b1","type":"agi","value":"4","isPercent":false}],[]]}
  ],
  "generalSetBonus": [
    {"pieces": 4, "effects": [{"id":"e2","pair":[[{"id":"c2","type":"STR","value":"20","isPercent":false}],[]]}], "enabledCur": true, "enabledCmp": false},
    {"pieces": 2, "effects": [{"id":"e1","pair":[[{"id":"c1","type":"STR","value":"5","isPercent":false}],[]]}], "enabledCur": false, "enabledCmp": false}
  ],
  "expertStats": [[{"id":"x1","type":"Final Damage","value":"abc","isPercent":true}],[]]
}`

func TestImportBrowserBuild(t *testing.T) {
	b, err := ImportBrowserBuild(browserBuild)
	require.NoError(t, err)

	assert.Equal(t, Warrior, b.Class)
	assert.Equal(t, 100.0, b.ClassBaseStr.Value())
	assert.True(t, b.ClassBaseAgi.Blank())

	assert.Equal(t, 50.0, b.WeaponMain.PhysMin.Get(stat.Comparison))
	assert.Equal(t, 1000.0, b.WeaponMain.PhysMax.Get(stat.Comparison))
	assert.Equal(t, "a1", b.WeaponMain.Stat.Base[0].ID)
	assert.Len(t, b.WeaponSub.Stat.Base, 1)

	require.Len(t, b.ArmorSlots, 1)
	assert.Equal(t, stat.AGI, b.ArmorSlots[0].Stat.Base[0].Type)
	assert.Len(t, b.CostumeSlots, costumeSlotCount)
	assert.Len(t, b.GeneralAcc, accessorySlots)

	// The enabled 4-piece tier pulls the 2-piece tier on with it.
	assert.True(t, b.GeneralSetBonus.Enabled(2, stat.Current))
	assert.True(t, b.GeneralSetBonus.Enabled(4, stat.Current))
	assert.False(t, b.GeneralSetBonus.Enabled(2, stat.Comparison))

	// Malformed numbers are present but worth nothing.
	fd := b.ExpertStats.Base[0]
	assert.False(t, fd.Value.Blank())
	assert.Zero(t, fd.Value.Value())

	r := Calculate(b, physSkill(), stat.Current)
	assert.Equal(t, 135, r.Str)
}

func TestImportBrowserBuildErrors(t *testing.T) {
	_, err := ImportBrowserBuild(`{"class":`)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ImportBrowserBuild(`{"class":"Paladin"}`)
	assert.Error(t, err)

	b, err := ImportBrowserBuild(`{}`)
	require.NoError(t, err)
	assert.Equal(t, Warrior, b.Class)
}

func TestImportBrowserSkill(t *testing.T) {
	s, err := ImportBrowserSkill(`{"skillPct":"250","fixedValue":"1,200","skillType":"phys","skillElement":"dark","patchLv":80,"targetRes":"","debuffSum":"15"}`)
	require.NoError(t, err)
	assert.Equal(t, Physical, s.Type)
	assert.Equal(t, Dark, s.Element)
	assert.Equal(t, 250.0, s.Pct.Value())
	assert.Equal(t, 1200.0, s.Fixed.Value())
	assert.True(t, s.TargetRes.Blank())
	assert.Equal(t, 80, s.PatchLv)

	s, err = ImportBrowserSkill(`{}`)
	require.NoError(t, err)
	assert.Equal(t, DefaultSkill(), s)

	_, err = ImportBrowserSkill(`{"patchLv":33}`)
	assert.Error(t, err)
}
