package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/frota/pkg/config"
	"github.com/ssargent/frota/pkg/di"
	"github.com/ssargent/frota/pkg/query"
	"github.com/ssargent/frota/pkg/vehicle"
)

const sampleCatalog = "11-AAA-22,Toyota,Corolla,2015-03-01\n99-ZZZ-88,Ford,Focus,2020-07-10\n"

type testEnv struct {
	dir     string
	catalog string
}

// newTestEnv points HOME at a temp dir so no user config is read.
func newTestEnv(t *testing.T, content string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	path := filepath.Join(dir, "viaturas.csv")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return &testEnv{dir: dir, catalog: path}
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := newApp(di.NewContainer())
	root := newRootCmd(a)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--file", e.catalog}, args...))

	err := execute(context.Background(), a, root)
	return out.String(), err
}

func (e *testEnv) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.catalog)
	require.NoError(t, err)
	return string(data)
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t, sampleCatalog)

	t.Run("table", func(t *testing.T) {
		out, err := env.run(t, "", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "PLATE")
		assert.Contains(t, out, "11-AAA-22")
		assert.Contains(t, out, "99-ZZZ-88")
	})

	t.Run("make filter", func(t *testing.T) {
		out, err := env.run(t, "", "list", "--make", "ford")
		require.NoError(t, err)
		assert.Contains(t, out, "99-ZZZ-88")
		assert.NotContains(t, out, "11-AAA-22")
	})

	t.Run("json", func(t *testing.T) {
		out, err := env.run(t, "", "list", "-o", "json")
		require.NoError(t, err)

		var vehicles []vehicleJSON
		require.NoError(t, json.Unmarshal([]byte(out), &vehicles))
		assert.Equal(t, []vehicleJSON{
			{Plate: "11-AAA-22", Make: "Toyota", Model: "Corolla", Date: "2015-03-01"},
			{Plate: "99-ZZZ-88", Make: "Ford", Model: "Focus", Date: "2020-07-10"},
		}, vehicles)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := env.run(t, "", "list", "--format", "xml")
		assert.ErrorContains(t, err, "unknown output format")
	})
}

func TestMissingAndMalformedCatalog(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		env := newTestEnv(t, "")
		out, err := env.run(t, "", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "not found, starting with an empty catalog")
		assert.Contains(t, out, "No vehicles found")
	})

	t.Run("malformed file is fatal", func(t *testing.T) {
		env := newTestEnv(t, "11-AAA-22,Toyota,Corolla,2015-03-01\n99-ZZZ-88,Ford\n")
		_, err := env.run(t, "", "list")
		require.ErrorIs(t, err, vehicle.ErrFormat)
		assert.ErrorContains(t, err, "line 2")
	})

	t.Run("duplicate plates are fatal", func(t *testing.T) {
		env := newTestEnv(t, sampleCatalog+"11-AAA-22,Opel,Corsa,2018-01-01\n")
		_, err := env.run(t, "", "list")
		assert.ErrorIs(t, err, vehicle.ErrDuplicateKey)
	})
}

func TestGetCommand(t *testing.T) {
	env := newTestEnv(t, sampleCatalog)

	out, err := env.run(t, "", "get", "11-aaa-22")
	require.NoError(t, err)
	assert.Contains(t, out, "Make:")
	assert.Contains(t, out, "Toyota")
	assert.Contains(t, out, "2015-03-01")

	_, err = env.run(t, "", "get", "12-AB-34")
	assert.ErrorIs(t, err, vehicle.ErrNotFound)
}

func TestAddCommand(t *testing.T) {
	env := newTestEnv(t, sampleCatalog)

	out, err := env.run(t, "", "add", "12-ab-34", "Renault", "Clio", "2019-05-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 12-AB-34")
	assert.Equal(t,
		"Matricula,Marca,Modelo,Data\n"+
			"11-AAA-22,Toyota,Corolla,2015-03-01\n"+
			"99-ZZZ-88,Ford,Focus,2020-07-10\n"+
			"12-AB-34,Renault,Clio,2019-05-02\n",
		env.read(t))

	// the rewritten file, header included, loads again
	out, err = env.run(t, "", "get", "12-AB-34")
	require.NoError(t, err)
	assert.Contains(t, out, "Renault")

	before := env.read(t)
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"duplicate", []string{"add", "11-AAA-22", "Opel", "Corsa", "2018-01-01"}, vehicle.ErrDuplicateKey},
		{"invalid plate", []string{"add", "1-AB-34", "Opel", "Corsa", "2018-01-01"}, vehicle.ErrInvalidAttribute},
		{"too old", []string{"add", "13-AB-34", "Opel", "Corsa", "1989-12-31"}, vehicle.ErrInvalidAttribute},
		{"bad date", []string{"add", "13-AB-34", "Opel", "Corsa", "2018-13-01"}, vehicle.ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, "", tt.args...)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, env.read(t))
		})
	}
}

func TestRemoveCommand(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		env := newTestEnv(t, sampleCatalog)
		out, err := env.run(t, "y\n", "remove", "11-AAA-22")
		require.NoError(t, err)
		assert.Contains(t, out, "Are you sure")
		assert.Contains(t, out, "Removed 11-AAA-22")
		assert.Equal(t, "Matricula,Marca,Modelo,Data\n99-ZZZ-88,Ford,Focus,2020-07-10\n", env.read(t))
	})

	t.Run("cancelled", func(t *testing.T) {
		env := newTestEnv(t, sampleCatalog)
		out, err := env.run(t, "n\n", "remove", "11-AAA-22")
		require.NoError(t, err)
		assert.Contains(t, out, "Removal cancelled")
		assert.Equal(t, sampleCatalog, env.read(t))
	})

	t.Run("yes flag", func(t *testing.T) {
		env := newTestEnv(t, sampleCatalog)
		out, err := env.run(t, "", "rm", "--yes", "99-zzz-88")
		require.NoError(t, err)
		assert.NotContains(t, out, "Are you sure")
		assert.NotContains(t, env.read(t), "99-ZZZ-88")
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t, sampleCatalog)
		_, err := env.run(t, "", "remove", "-y", "12-AB-34")
		assert.ErrorIs(t, err, vehicle.ErrNotFound)
		assert.Equal(t, sampleCatalog, env.read(t))
	})
}

func TestSearchCommand(t *testing.T) {
	env := newTestEnv(t, sampleCatalog)

	out, err := env.run(t, "", "search", "--where", "year>=2016")
	require.NoError(t, err)
	assert.Contains(t, out, "99-ZZZ-88")
	assert.NotContains(t, out, "11-AAA-22")

	out, err = env.run(t, "", "search", "-w", "make~o", "-w", "model~cor")
	require.NoError(t, err)
	assert.Contains(t, out, "11-AAA-22")
	assert.NotContains(t, out, "99-ZZZ-88")

	out, err = env.run(t, "", "search", "-w", "make=Tesla")
	require.NoError(t, err)
	assert.Contains(t, out, "No vehicles found")

	_, err = env.run(t, "", "search", "-w", "colour=red")
	assert.ErrorIs(t, err, query.ErrInvalidQuery)
}

func TestExportCommand(t *testing.T) {
	env := newTestEnv(t, sampleCatalog)
	path := filepath.Join(env.dir, "out", "backup.csv")

	out, err := env.run(t, "", "export", "--output-delimiter", ";", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 vehicle(s)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Matricula;Marca;Modelo;Data\n11-AAA-22;Toyota;Corolla;2015-03-01\n99-ZZZ-88;Ford;Focus;2020-07-10\n",
		string(data))

	// the catalog itself is untouched
	assert.Equal(t, sampleCatalog, env.read(t))

	_, err = env.run(t, "", "export", "--output-delimiter", `"`, path)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestDelimiterFlag(t *testing.T) {
	env := newTestEnv(t, "11-AAA-22;Toyota;Corolla;2015-03-01\n")

	out, err := env.run(t, "", "--delimiter", ";", "get", "11-AAA-22")
	require.NoError(t, err)
	assert.Contains(t, out, "Corolla")

	_, err = env.run(t, "", "--delimiter", ";;", "list")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestHistoryCommand(t *testing.T) {
	env := newTestEnv(t, sampleCatalog)

	_, err := env.run(t, "", "history")
	assert.ErrorIs(t, err, errJournalDisabled)

	cfg := config.DefaultConfig()
	cfg.Journal = config.Journal{Enabled: true, Dir: filepath.Join(env.dir, "journal")}
	cfg.Metrics.Textfile = filepath.Join(env.dir, "frota.prom")
	configPath := filepath.Join(env.dir, "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, configPath))

	_, err = env.run(t, "", "--config", configPath, "add", "12-AB-34", "Renault", "Clio", "2019-05-02")
	require.NoError(t, err)
	_, err = env.run(t, "", "--config", configPath, "remove", "-y", "11-AAA-22")
	require.NoError(t, err)

	out, err := env.run(t, "", "--config", configPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "OP")
	assert.Contains(t, out, "12-AB-34")
	assert.Contains(t, out, "11-AAA-22")

	out, err = env.run(t, "", "--config", configPath, "history", "--limit", "1", "-o", "json")
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "remove", entries[0]["op"])
	assert.Equal(t, "11-AAA-22", entries[0]["plate"])

	prom, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "frota_catalog_records")
}

func TestInitCommand(t *testing.T) {
	env := newTestEnv(t, "")
	configPath := filepath.Join(env.dir, "cfg", "config.yaml")

	out, err := env.run(t, "", "--config", configPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote config to "+configPath)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, env.catalog, cfg.Catalog.Path)

	out, err = env.run(t, "", "--config", configPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	_, err = env.run(t, "", "--config", configPath, "init", "--force")
	require.NoError(t, err)

	t.Run("default location", func(t *testing.T) {
		_, err := env.run(t, "", "init")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(env.dir, ".config", "frota", "config.yaml"))
	})
}

func TestShellCommand(t *testing.T) {
	env := newTestEnv(t, sampleCatalog)

	out, err := env.run(t, "L\nT\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Fleet catalog")
	assert.Contains(t, out, "11-AAA-22")

	exportPath := filepath.Join(env.dir, "export.csv")
	_, err = env.run(t, "A\n12-ab-34\nRenault\nClio\n2019-05-02\nG\n"+exportPath+"\nT\n", "shell")
	require.NoError(t, err)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "12-AB-34,RENAULT,CLIO,2019-05-02")
	// the shell only writes where it is told to
	assert.Equal(t, sampleCatalog, env.read(t))
}

func TestExplicitConfigMustExist(t *testing.T) {
	env := newTestEnv(t, sampleCatalog)
	_, err := env.run(t, "", "--config", filepath.Join(env.dir, "missing.yaml"), "list")
	assert.ErrorContains(t, err, "config file does not exist")
}
