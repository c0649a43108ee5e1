package stat

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomRows(r *rand.Rand, n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		t := TypeNone
		if r.Intn(4) > 0 {
			t = Types[r.Intn(len(Types))]
		}
		v := Num{}
		if r.Intn(4) > 0 {
			v = N(float64(r.Intn(2000) - 500))
		}
		rows[i] = NewRow(t, v, r.Intn(2) == 0)
	}
	return rows
}

func TestPairFallsBackWhenAltIsBlank(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p := Pair{
			Base: randomRows(r, r.Intn(6)),
			Alt:  make([]Row, r.Intn(4)),
		}
		for j := range p.Alt {
			p.Alt[j] = EmptyRow()
		}
		assert.Equal(t, p.Rows(Current), p.Rows(Comparison))
	}
}

func TestPairUsesAltOnceDiverged(t *testing.T) {
	base := []Row{NewRow(STR, N(10), false)}
	alt := []Row{EmptyRow(), NewRow(TypeNone, N(0), false)}
	p := Pair{Base: base, Alt: alt}

	assert.True(t, p.Diverged(), "a typed zero counts as filled in")
	assert.Equal(t, alt, p.Rows(Comparison))
	assert.Equal(t, base, p.Rows(Current))

	p.Alt = []Row{NewRow(AGI, Num{}, false)}
	assert.True(t, p.Diverged(), "a chosen type with a blank value counts as filled in")

	p.Alt = []Row{NewRow(TypeNone, ParseNum(" "), false)}
	assert.True(t, p.Diverged(), "a space typed into the value counts as filled in")
	assert.Equal(t, p.Alt, p.Rows(Comparison))
}

func TestPairUnmarshalForms(t *testing.T) {
	var tuple Pair
	require.NoError(t, json.Unmarshal([]byte(`[[{"id":"a","type":"STR","value":"10","isPercent":false}],[]]`), &tuple))
	require.Len(t, tuple.Base, 1)
	assert.Equal(t, STR, tuple.Base[0].Type)
	assert.Equal(t, 10.0, tuple.Base[0].Value.Value())
	assert.Empty(t, tuple.Alt)

	var obj Pair
	require.NoError(t, json.Unmarshal([]byte(`{"base":[],"alt":[{"type":"INT","value":5,"isPercent":true}]}`), &obj))
	require.Len(t, obj.Alt, 1)
	assert.True(t, obj.Alt[0].IsPercent)

	var null Pair
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	assert.True(t, null.IsZero())
}
