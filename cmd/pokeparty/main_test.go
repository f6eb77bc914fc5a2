package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ramonehamilton/pokeparty/internal/config"
	"github.com/ramonehamilton/pokeparty/internal/events"
	"github.com/ramonehamilton/pokeparty/internal/moves"
)

const testMoveList = `[
  {"id": 85, "name": "thunderbolt", "displayName": "Thunderbolt", "type": "electric", "power": 90, "damageClass": "special"},
  {"id": 87, "name": "thunder", "displayName": "Thunder", "type": "electric", "power": 110, "damageClass": "special"},
  {"id": 86, "name": "thunder-wave", "displayName": "Thunder Wave", "type": "electric", "power": null, "damageClass": "status"},
  {"id": 52, "name": "ember", "displayName": "Ember", "type": "fire", "power": 40, "damageClass": "special"}
]`

// writeConfig writes a config file with the given catalog path and returns its path.
func writeConfig(t *testing.T, catalogPath string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Log.Level = "error"
	cfg.Catalog.Path = catalogPath
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, cfg.Save(path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMatchup(t *testing.T) {
	cfgPath := writeConfig(t, "")

	out, err := run(t, "--config", cfgPath, "matchup", "fire", "grass", "steel")
	require.NoError(t, err)
	assert.Equal(t, "Fire -> Grass/Steel: ×4 It's extremely effective!!\n", out)

	out, err = run(t, "--config", cfgPath, "matchup", "electric", "ground", "--lang", "ja")
	require.NoError(t, err)
	assert.Equal(t, "でんき -> じめん: ×0 こうかがないようだ...\n", out)
}

func TestMatchup_InvalidTypes(t *testing.T) {
	cfgPath := writeConfig(t, "")

	_, err := run(t, "--config", cfgPath, "matchup", "sound", "grass")
	assert.Error(t, err)

	_, err = run(t, "--config", cfgPath, "matchup", "fire", "grass", "grass")
	assert.Error(t, err)

	_, err = run(t, "--config", cfgPath, "matchup", "fire")
	assert.Error(t, err, "needs a defender")
}

func TestDefense(t *testing.T) {
	cfgPath := writeConfig(t, "")

	out, err := run(t, "--config", cfgPath, "defense", "water", "ground")
	require.NoError(t, err)
	assert.Contains(t, out, "Grass ×4")
	assert.Contains(t, out, "Electric ×0")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "weak"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "immune"))
}

func TestMovesSearch(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "moves.json")
	require.NoError(t, os.WriteFile(list, []byte(testMoveList), 0o644))
	cfgPath := writeConfig(t, list)

	out, err := run(t, "--config", cfgPath, "moves", "search", "thunder", "--limit", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Thunderbolt")
	assert.Contains(t, lines[2], "Thunder Wave")
	assert.Contains(t, lines[2], "-", "status moves have no power")
}

func TestMovesSearch_NoCatalog(t *testing.T) {
	cfgPath := writeConfig(t, "")

	_, err := run(t, "--config", cfgPath, "moves", "search", "thunder")
	assert.ErrorContains(t, err, "no move catalog")
}

const testSpeciesList = `[
  {"id": 26, "name": "raichu", "japaneseName": "ライチュウ", "types": ["electric"]},
  {"id": 25, "name": "pikachu", "japaneseName": "ピカチュウ", "types": ["electric"]},
  {"id": 172, "name": "pichu", "japaneseName": "ピチュー", "types": ["electric"]},
  {"id": 1, "name": "bulbasaur", "japaneseName": "フシギダネ", "types": ["grass", "poison"]}
]`

func TestPokemonSearch(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "pokemon.json")
	require.NoError(t, os.WriteFile(list, []byte(testSpeciesList), 0o644))

	cfg := config.DefaultConfig()
	cfg.Log.Level = "error"
	cfg.Catalog.SpeciesPath = list
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, cfg.Save(cfgPath))

	out, err := run(t, "--config", cfgPath, "pokemon", "search", "ピ")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "ピカチュウ")
	assert.Contains(t, lines[1], "Electric")
	assert.Contains(t, lines[2], "pichu")

	out, err = run(t, "--config", cfgPath, "pokemon", "search", "チュ", "--limit", "1")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "pikachu")
}

func TestPokemonSearch_NoList(t *testing.T) {
	cfgPath := writeConfig(t, "")

	_, err := run(t, "--config", cfgPath, "pokemon", "search", "ピカ")
	assert.ErrorContains(t, err, "no species list")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	out, err := run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, err = run(t, "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	cfgPath := writeConfig(t, "/data/moves.json")

	out, err := run(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "/data/moves.json")
	assert.Contains(t, out, "[party]")
}

func TestInvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm]\nprovider = \"oracle\"\n"), 0o644))

	_, err := run(t, "--config", path, "matchup", "fire", "grass")
	assert.ErrorContains(t, err, "invalid config")
}

func TestBuildLogger(t *testing.T) {
	logger, err := buildLogger(config.LogConfig{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = buildLogger(config.LogConfig{Level: "warn", Format: "console"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = buildLogger(config.LogConfig{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	entries, err := loadCatalog(context.Background(), config.CatalogConfig{}, "en")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = loadCatalog(context.Background(), config.CatalogConfig{Path: filepath.Join(t.TempDir(), "missing.json")}, "en")
	assert.Error(t, err)
}

func TestLoadPokedex(t *testing.T) {
	entries, err := loadPokedex(context.Background(), config.CatalogConfig{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = loadPokedex(context.Background(), config.CatalogConfig{SpeciesPath: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}

func TestNewApp(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "moves.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testMoveList), 0o644))
	speciesPath := filepath.Join(dir, "pokemon.json")
	require.NoError(t, os.WriteFile(speciesPath, []byte(testSpeciesList), 0o644))

	cfg := config.DefaultConfig()
	cfg.Catalog.Path = catalogPath
	cfg.Catalog.SpeciesPath = speciesPath

	a, err := newApp(context.Background(), cfg, zap.NewNop(), false)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 4, a.catalog.Len())
	assert.Equal(t, 4, a.pokedex.Len())
	assert.NotNil(t, a.generator)
	assert.Nil(t, a.ollama(), "hosted provider by default")
}

func TestNewApp_ReloadClearsMovepools(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "moves.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testMoveList), 0o644))

	cfg := config.DefaultConfig()
	cfg.Catalog.Path = catalogPath

	a, err := newApp(context.Background(), cfg, zap.NewNop(), false)
	require.NoError(t, err)
	defer a.Close()

	store := moves.NewMemoryStore()
	store.Set(25, []moves.Entry{{ID: 85, Name: "thunderbolt"}})
	a.learnable = moves.NewLearnable(a.catalog, a.pokeapi, store)

	a.dispatcher.Dispatch(events.NewTypedEvent(context.Background(), events.CatalogReloaded, events.CatalogReloadedEvent{}))

	_, ok := store.Get(25)
	assert.False(t, ok)
}
