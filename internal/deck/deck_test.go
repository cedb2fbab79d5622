package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridclash/gridclash-server-go/internal/catalog"
)

func TestBuildResolvesAgainstCatalog(t *testing.T) {
	cat := catalog.Builtin()
	entry := Entry{
		Name: "aggro",
		Cards: []CardCount{
			{Name: "Footman", Count: 2},
			{Name: "Wolf Rider", Count: 2},
			{Name: "Lightning Bolt", Count: 1},
		},
	}

	cards, err := Build(entry, cat, DefaultLimits())
	require.NoError(t, err)
	assert.Len(t, cards, 5)
	assert.Equal(t, "Footman", cards[0].Name)
	assert.Equal(t, "Lightning Bolt", cards[4].Name)
}

func TestBuildRejectsUnknownCard(t *testing.T) {
	entry := Entry{Name: "bad", Cards: []CardCount{{Name: "Chaos Orb", Count: 1}}}
	_, err := Build(entry, catalog.Builtin(), DefaultLimits())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Chaos Orb")
}

func TestBuildEnforcesCopyLimit(t *testing.T) {
	entry := Entry{Name: "stacked", Cards: []CardCount{{Name: "Footman", Count: 3}}}
	_, err := Build(entry, catalog.Builtin(), DefaultLimits())
	assert.Error(t, err)

	// Split across two entries it is still three copies.
	entry = Entry{Name: "split", Cards: []CardCount{
		{Name: "Footman", Count: 2},
		{Name: "Footman", Count: 1},
	}}
	_, err = Build(entry, catalog.Builtin(), DefaultLimits())
	assert.Error(t, err)
}

func TestBuildEnforcesDeckLimit(t *testing.T) {
	cat := catalog.Builtin()
	var counts []CardCount
	for _, card := range cat.Cards() {
		counts = append(counts, CardCount{Name: card.Name, Count: 2})
	}
	entry := Entry{Name: "everything", Cards: counts}

	_, err := Build(entry, cat, DefaultLimits()) // 42 cards > 20
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}

func TestBuildRejectsEmptyAndBadCounts(t *testing.T) {
	_, err := Build(Entry{Name: "empty"}, catalog.Builtin(), DefaultLimits())
	assert.Error(t, err)

	entry := Entry{Name: "zero", Cards: []CardCount{{Name: "Footman", Count: 0}}}
	_, err = Build(entry, catalog.Builtin(), DefaultLimits())
	assert.Error(t, err)
}

func TestLoadFileBuildsAllDecks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	content := `decks:
  - name: player1
    cards:
      - name: Footman
        count: 2
      - name: Riverbank Archer
        count: 2
  - name: player2
    cards:
      - name: Grunt Axeman
        count: 2
      - name: Fireball
        count: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	decks, err := LoadFile(path, catalog.Builtin(), DefaultLimits())
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Len(t, decks["player1"], 4)
	assert.Len(t, decks["player2"], 3)
}

func TestLoadFileFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	content := `decks:
  - name: player1
    cards:
      - name: Not A Card
        count: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadFile(path, catalog.Builtin(), DefaultLimits())
	assert.Error(t, err, "invalid deck must be a startup error")

	_, err = LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), catalog.Builtin(), DefaultLimits())
	assert.Error(t, err)
}

func TestStockRespectsLimits(t *testing.T) {
	cards := Stock(catalog.Builtin(), DefaultLimits())
	assert.Len(t, cards, 20)

	copies := make(map[string]int)
	for _, c := range cards {
		copies[c.Name]++
		assert.LessOrEqual(t, copies[c.Name], 2)
	}
}
