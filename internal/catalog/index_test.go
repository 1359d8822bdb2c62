package catalog_test

import (
	"strings"
	"testing"

	"github.com/strenvy/strenvy/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDataset = `[
	{
		"id": "0001",
		"name": "3/4 sit-up",
		"bodyPart": "waist",
		"target": "abs",
		"equipment": "body weight",
		"secondaryMuscles": ["hip flexors", "lower back"],
		"instructions": ["Lie flat on your back."],
		"gifUrl": "https://cdn.example.com/exercises/IDqImN3"
	},
	{
		"id": "0008",
		"name": "archer pull up",
		"bodyPart": "back",
		"target": "lats",
		"equipment": "body weight",
		"gifUrl": "https://cdn.example.com/exercises/bOMHKvy"
	},
	{
		"id": "0025",
		"name": "barbell bench press",
		"bodyPart": "chest",
		"target": "pectorals",
		"equipment": "barbell",
		"gifUrl": "https://cdn.example.com/exercises/NgQEperf"
	}
]`

func newTestIndex(t *testing.T) *catalog.Index {
	t.Helper()
	index, err := catalog.NewIndex(strings.NewReader(testDataset))
	require.NoError(t, err)
	return index
}

func TestIndex_Load(t *testing.T) {
	index := newTestIndex(t)
	assert.Len(t, index.All(), 3)

	situp, ok := index.Get("0001")
	require.True(t, ok)
	assert.Equal(t, "3/4 sit-up", situp.Name)
	assert.Equal(t, "/gifs/IDqImN3.gif", situp.LocalGif)
	assert.Equal(t, "/gifs/IDqImN3.png", situp.LocalPng)

	_, ok = index.Get("9999")
	assert.False(t, ok)
}

func TestIndex_LoadInvalidDataset(t *testing.T) {
	index, err := catalog.NewIndex(strings.NewReader("{broken"))
	require.Error(t, err)
	assert.Nil(t, index)
}

func TestIndex_Facets(t *testing.T) {
	index := newTestIndex(t)

	facets := index.Facets()
	assert.Equal(t, []string{"back", "chest", "waist"}, facets.BodyParts)
	assert.Equal(t, []string{"barbell", "body weight"}, facets.Equipments)
	assert.Equal(t, []string{"abs", "lats", "pectorals"}, facets.Targets)
}

func TestIndex_Filter(t *testing.T) {
	index := newTestIndex(t)

	all := index.Filter(catalog.FilterParams{})
	assert.Len(t, all, 3)

	bodyWeight := index.Filter(catalog.FilterParams{Equipment: "body weight"})
	assert.Len(t, bodyWeight, 2)

	chest := index.Filter(catalog.FilterParams{BodyPart: "chest"})
	require.Len(t, chest, 1)
	assert.Equal(t, "0025", chest[0].ID)

	// search is case-insensitive substring match on name
	archer := index.Filter(catalog.FilterParams{Search: "ARCHER"})
	require.Len(t, archer, 1)
	assert.Equal(t, "archer pull up", archer[0].Name)

	// facets are AND-ed
	none := index.Filter(catalog.FilterParams{Search: "archer", BodyPart: "chest"})
	assert.Empty(t, none)

	// repeated filtering serves from the cache and stays consistent
	archerAgain := index.Filter(catalog.FilterParams{Search: "ARCHER"})
	assert.Equal(t, archer, archerAgain)
}
