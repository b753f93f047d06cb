package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/spellbook/pkg/api"
	"github.com/coolbeans/spellbook/pkg/extract"
	"github.com/coolbeans/spellbook/pkg/library"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) (*gin.Engine, *bytes.Buffer) {
	t.Helper()
	spells := extract.NewParser().ParseLines([]string{
		"Acid Arrow",
		"Level 2 Evocation (Wizard)",
		"Casting Time: Action",
		"Range: 90 feet",
		"Components: V, S, M (powdered rhubarb leaf)",
		"Duration: Instantaneous",
		"On a hit, the target takes 4d4 Acid damage.",
		"Using a Higher-Level Spell Slot. The damage increases by 1d4 for each spell slot level above 2.",
		"",
		"Bless",
		"Level 1 Enchantment (Cleric, Paladin)",
		"Casting Time: Action",
		"Range: 30 feet",
		"Components: V, S, M (a Holy Symbol worth 5+ GP)",
		"Duration: Concentration, up to 1 minute",
		"You bless up to three creatures within range.",
	})
	var logs bytes.Buffer
	return api.Setup(library.NewCatalog(spells), log.New(&logs, "", 0)), &logs
}

func doGet(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHealthz(t *testing.T) {
	engine, logs := newTestEngine(t)
	w := doGet(engine, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Contains(t, logs.String(), "GET /healthz 200")
}

func TestRequestIDIsPropagated(t *testing.T) {
	engine, _ := newTestEngine(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	engine.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestGetSpell(t *testing.T) {
	engine, _ := newTestEngine(t)
	w := doGet(engine, "/api/spells/acid-arrow")

	require.Equal(t, http.StatusOK, w.Code)
	spell := decode[extract.Spell](t, w.Body)
	assert.Equal(t, "Acid Arrow", spell.Name)
	assert.Equal(t, []string{"5d4 Acid"}, spell.Damage[3])
}

func TestGetSpell_NotFound(t *testing.T) {
	engine, _ := newTestEngine(t)
	w := doGet(engine, "/api/spells/wish")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]string{"error": "Spell not found"}, decode[map[string]string](t, w.Body))
}

func TestListSpells(t *testing.T) {
	engine, _ := newTestEngine(t)

	all := decode[[]library.SpellSummary](t, doGet(engine, "/api/spells").Body)
	assert.Equal(t, []library.SpellSummary{
		{Name: "Acid Arrow", Index: "acid-arrow", URL: "/api/spells/acid-arrow"},
		{Name: "Bless", Index: "bless", URL: "/api/spells/bless"},
	}, all)

	byLevel := decode[[]library.SpellSummary](t, doGet(engine, "/api/spells?level=1").Body)
	require.Len(t, byLevel, 1)
	assert.Equal(t, "bless", byLevel[0].Index)

	concentration := decode[[]library.SpellSummary](t, doGet(engine, "/api/spells?concentration=true").Body)
	require.Len(t, concentration, 1)
	assert.Equal(t, "bless", concentration[0].Index)

	byClass := decode[[]library.SpellSummary](t, doGet(engine, "/api/spells?class=wizard").Body)
	require.Len(t, byClass, 1)
	assert.Equal(t, "acid-arrow", byClass[0].Index)
}

func TestListSpells_BadQuery(t *testing.T) {
	engine, _ := newTestEngine(t)

	assert.Equal(t, http.StatusBadRequest, doGet(engine, "/api/spells?level=nine").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(engine, "/api/spells?concentration=maybe").Code)
}

func TestSpellsByClass(t *testing.T) {
	engine, _ := newTestEngine(t)
	w := doGet(engine, "/api/classes/Paladin/spells")

	require.Equal(t, http.StatusOK, w.Code)
	summaries := decode[[]library.SpellSummary](t, w.Body)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Bless", summaries[0].Name)

	empty := decode[[]library.SpellSummary](t, doGet(engine, "/api/classes/Monk/spells").Body)
	assert.Empty(t, empty)
}

func TestStats(t *testing.T) {
	engine, _ := newTestEngine(t)
	stats := decode[library.CatalogStats](t, doGet(engine, "/api/stats").Body)

	assert.Equal(t, 2, stats.TotalSpells)
	assert.Equal(t, 1, stats.Concentration)
	assert.Equal(t, 1, stats.WithDamageTables)
}
