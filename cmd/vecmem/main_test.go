package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/vecmem/internal/cli"
	"github.com/hyperjump/vecmem/internal/ident"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func decodeReports(t *testing.T, out string) []cli.QueryReport {
	t.Helper()
	var reports []cli.QueryReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports), out)
	return reports
}

func TestDemo_randomQuery(t *testing.T) {
	out, _, err := execute(t, "--seed", "7", "--dimensions", "8", "--top-k", "2", "--output", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, randomQueryLabel, r.Query)
	assert.Equal(t, 2, r.K)
	assert.Equal(t, 6, r.StoreSize)
	require.Len(t, r.Hits, 2)
	assert.GreaterOrEqual(t, r.Hits[0].Score, r.Hits[1].Score)
	for _, h := range r.Hits {
		assert.Contains(t, strings.Fields("Ceci est un exemple de phrase"), h.Label)
	}
}

func TestDemo_seedIsReproducible(t *testing.T) {
	for _, seed := range []string{"42", "-1", "1"} {
		t.Run("seed "+seed, func(t *testing.T) {
			args := []string{"demo", "--seed", seed, "--dimensions", "16", "--output", "compact"}
			first, _, err := execute(t, args...)
			require.NoError(t, err)
			second, _, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, first, second)
			assert.Len(t, strings.Split(strings.TrimSpace(first), "\n"), 3)
		})
	}
}

func TestQuerySeed(t *testing.T) {
	tests := []struct {
		seed int64
		want int64
	}{
		{0, 0},
		{-1, 1},
		{42, ^int64(42)},
		{1, -2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, querySeed(tt.seed), "seed %d", tt.seed)
	}
}

func TestDemo_queryMatchesWord(t *testing.T) {
	out, _, err := execute(t, "demo", "--seed", "3", "--dimensions", "16",
		"--phrase", "le chat dort", "--query", "chat", "--top-k", "1", "--output", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Hits, 1)
	assert.Equal(t, "chat", reports[0].Query)
	assert.Equal(t, "chat", reports[0].Hits[0].Label)
	assert.InDelta(t, 1.0, reports[0].Hits[0].Score, 1e-5)
}

func TestDemo_stableIDsOverwrite(t *testing.T) {
	out, _, err := execute(t, "--embedder", "hash", "--dimensions", "32", "--stable-ids",
		"--phrase", "le chat et le chien", "--query", "chien", "--query", "chat",
		"--top-k", "1", "--output", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 2)
	assert.Equal(t, 4, reports[0].StoreSize, "repeated word overwrites its entry")
	assert.Equal(t, ident.FromName("chien"), reports[0].Hits[0].ID)
	assert.Equal(t, ident.FromName("chat"), reports[1].Hits[0].ID)
	assert.InDelta(t, 1.0, reports[1].Hits[0].Score, 1e-5)
}

func TestDemo_repeatedWords(t *testing.T) {
	base := []string{"--seed", "9", "--dimensions", "16", "--phrase", "le chat le",
		"--query", "le", "--top-k", "3", "--output", "json"}

	t.Run("cache shares one vector per word", func(t *testing.T) {
		out, _, err := execute(t, base...)
		require.NoError(t, err)
		hits := decodeReports(t, out)[0].Hits
		require.Len(t, hits, 3)
		assert.Equal(t, "le", hits[0].Label)
		assert.Equal(t, "le", hits[1].Label)
		assert.NotEqual(t, hits[0].ID, hits[1].ID)
		assert.InDelta(t, 1.0, hits[1].Score, 1e-5)
	})

	t.Run("no cache draws per occurrence", func(t *testing.T) {
		out, _, err := execute(t, append(base, "--cache-size", "-1")...)
		require.NoError(t, err)
		hits := decodeReports(t, out)[0].Hits
		require.Len(t, hits, 3)
		for _, h := range hits {
			assert.Less(t, h.Score, float32(0.9999), "query %s matched %s exactly", "le", h.Label)
		}
	})
}

func TestDemo_zeroK(t *testing.T) {
	out, _, err := execute(t, "--seed", "1", "--dimensions", "4", "--top-k", "0", "--output", "json")
	require.NoError(t, err)
	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Hits)
}

func TestDemo_textOutput(t *testing.T) {
	out, _, err := execute(t, "--seed", "5", "--dimensions", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Top 3 most similar vectors")
	assert.Equal(t, 3, strings.Count(out, "UUID: "))
}

func TestDemo_metrics(t *testing.T) {
	_, stderr, err := execute(t, "--seed", "5", "--dimensions", "4", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, stderr, `vecmem_operations_total{op="insert",status="success"} 6`)
	assert.Contains(t, stderr, `vecmem_operations_total{op="query",status="success"} 1`)
}

func TestDemo_configFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecmem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
embedding:
  dimensions: 8
  seed: 11
demo:
  phrase: "un deux trois quatre"
  top_k: 1
output:
  format: json
`), 0600))

	out, _, err := execute(t, "--config", path)
	require.NoError(t, err)
	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	assert.Equal(t, 4, reports[0].StoreSize)
	assert.Len(t, reports[0].Hits, 1)

	out, _, err = execute(t, "--config", path, "--top-k", "3")
	require.NoError(t, err)
	reports = decodeReports(t, out)
	assert.Len(t, reports[0].Hits, 3, "flag overrides config")
}

func TestDemo_invalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown output", []string{"--output", "xml"}},
		{"unknown embedder", []string{"--embedder", "onnx"}},
		{"negative k", []string{"--top-k", "-1"}},
		{"zero dimensions", []string{"--dimensions", "0"}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}},
		{"positional args", []string{"demo", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "vecmem version dev\n", out)
}
