package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command line against in-memory streams.
func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Metrics(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name:  "levenshtein with defaults",
			args:  []string{"levenshtein", "-t", "2"},
			input: "apple\nbanana\napply\nzebra\nbandana\n",
			want:  "apple\napply\n\nbanana\nbandana\n\nzebra\n",
		},
		{
			name:  "alias and short flags",
			args:  []string{"l", "-t", "2", "--ors", "line", "--ofs", ":"},
			input: "apple\nbanana\napply\nzebra\nbandana\n",
			want:  "apple:apply\nbanana:bandana\nzebra\n",
		},
		{
			name:  "paragraph input",
			args:  []string{"levenshtein", "-t", "2", "-R", "paragraph", "--ofs", ":", "--ors", "line"},
			input: "ab\ncd\n\nab\nce\n\nxyz\n",
			want:  "ab\ncd:ab\nce\nxyz\n",
		},
		{
			name:  "null input",
			args:  []string{"osa", "-t", "1", "--irs", "0", "--ors", "line", "--ofs", ":"},
			input: "x\x00y\x00x",
			want:  "x:x\ny\n",
		},
		{
			name:  "jaro",
			args:  []string{"jaro", "-r", "0.9"},
			input: "martha\nmarhta\nxyz\n",
			want:  "martha\nmarhta\n\nxyz\n",
		},
		{
			name:  "jaro winkler",
			args:  []string{"j", "-r", "0.95", "-w", "--ors", "line", "--ofs", ":"},
			input: "martha\nmarhta\n",
			want:  "martha:marhta\n",
		},
		{
			name:  "jaro links empty records",
			args:  []string{"jaro", "-r", "0.5", "--ors", "line", "--ofs", ":"},
			input: "x\n\n\ny\n",
			want:  "x\n:\ny\n",
		},
		{
			name:  "normalized levenshtein",
			args:  []string{"normalized-levenshtein", "-r", "0.5", "--ors", "line", "--ofs", ":"},
			input: "kitten\nsitting\nzz\n",
			want:  "kitten:sitting\nzz\n",
		},
		{
			name:  "duplicates stay distinct by position",
			args:  []string{"osa", "-t", "1", "--ofs", "line", "--ors", "line"},
			input: "a\nb\na\nc\nb\n",
			want:  "a\na\nb\nb\nc\n",
		},
		{
			name:  "dedupe collapses identical records",
			args:  []string{"osa", "-t", "1", "--dedupe", "--ors", "line"},
			input: "a\nb\na\nc\nb\n",
			want:  "a\nb\nc\n",
		},
		{
			name:  "empty input writes nothing",
			args:  []string{"levenshtein", "-t", "2"},
			input: "",
			want:  "",
		},
		{
			name:  "single record",
			args:  []string{"levenshtein", "-t", "2"},
			input: "solo\n",
			want:  "solo\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.input, tt.args...)
			require.Equal(t, 0, code, "stderr: %s", stderr)
			assert.Equal(t, tt.want, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"ratio out of range", []string{"jaro", "-r", "1.5"}, "is not between 0 and 1"},
		{"ratio not a float", []string{"normalized-levenshtein", "-r", "high"}, "high is not a float"},
		{"negative threshold", []string{"levenshtein", "-t", "-3"}, "-3 is negative"},
		{"threshold not a number", []string{"osa", "-t", "two"}, "two not a number"},
		{"missing ratio", []string{"jaro"}, "ratio"},
		{"missing threshold", []string{"osa"}, "threshold"},
		{"bad input separator", []string{"levenshtein", "-t", "1", "--irs", "tab"}, "input record separator"},
		{"bad output separator", []string{"levenshtein", "-t", "1", "--ors", "triple"}, "output record separator"},
		{"unknown flag", []string{"osa", "-t", "1", "--fast"}, "unknown flag"},
		{"no subcommand", nil, "subcommand is required"},
		{"bad workers", []string{"--workers", "-4", "osa", "-t", "1"}, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, "a\nb\n", tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error: ")
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestRun_ValidatesBeforeOpeningInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	code, _, stderr := runCLI(t, "", "jaro", "-r", "7", "-f", missing)
	assert.Equal(t, exitUsage, code)
	assert.NotContains(t, stderr, "Error opening")
}

func TestRun_MissingInputFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	code, stdout, stderr := runCLI(t, "", "levenshtein", "-t", "2", "-f", missing)

	assert.Equal(t, exitIO, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error opening '"+missing+"': ")
	assert.Contains(t, stderr, "no such file or directory")
}

func TestRun_OutputFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("apple\napply\npear\n"), 0o644))

	code, stdout, stderr := runCLI(t, "", "levenshtein", "-t", "2", "-f", in, "-o", out, "--ors", "line")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "apple\napply\npear\n", string(data))
}

func TestRun_CannotCreateOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	code, stdout, stderr := runCLI(t, "a\n", "osa", "-t", "1", "-o", out)

	assert.Equal(t, exitIO, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error creating '"+out+"': ")
}

func TestRun_StdinDash(t *testing.T) {
	code, stdout, _ := runCLI(t, "a\na\n", "osa", "-t", "1", "-f", "-", "-o", "-", "--ors", "line", "--ofs", ":")
	require.Equal(t, 0, code)
	assert.Equal(t, "a:a\n", stdout)
}

func TestRun_ConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simclust.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ors: line\nofs: \":\"\n"), 0o644))

	input := "apple\napply\npear\n"

	code, stdout, stderr := runCLI(t, input, "--config", path, "levenshtein", "-t", "2")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "apple:apply\npear\n", stdout)

	// Environment overrides the file.
	t.Setenv("SIMCLUST_OFS", "line")
	code, stdout, _ = runCLI(t, input, "--config", path, "levenshtein", "-t", "2")
	require.Equal(t, 0, code)
	assert.Equal(t, "apple\napply\npear\n", stdout)

	// Flags override the environment.
	code, stdout, _ = runCLI(t, input, "--config", path, "levenshtein", "-t", "2", "--ofs", "0")
	require.Equal(t, 0, code)
	assert.Equal(t, "apple\x00apply\npear\n", stdout)

	// The config path can come from the environment too.
	t.Setenv("SIMCLUST_CONFIG", path)
	t.Setenv("SIMCLUST_OFS", "")
	code, stdout, _ = runCLI(t, input, "levenshtein", "-t", "2")
	require.Equal(t, 0, code)
	assert.Equal(t, "apple:apply\npear\n", stdout)
}

func TestRun_BadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1"), 0o644))

	code, _, stderr := runCLI(t, "a\n", "--config", path, "osa", "-t", "1")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "loading config")
}

func TestRun_DeterministicAcrossWorkers(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		sb.WriteString(strings.Repeat(string(rune('a'+i%7)), 1+i%5))
		sb.WriteByte('\n')
	}
	input := sb.String()

	_, baseline, _ := runCLI(t, input, "--workers", "1", "levenshtein", "-t", "2")
	require.NotEmpty(t, baseline)
	for _, workers := range []string{"2", "8"} {
		code, stdout, _ := runCLI(t, input, "--workers", workers, "levenshtein", "-t", "2")
		require.Equal(t, 0, code)
		assert.Equal(t, baseline, stdout, "workers=%s", workers)
	}
}

func TestRun_Stats(t *testing.T) {
	color.NoColor = true

	code, stdout, stderr := runCLI(t, "a\nb\na\nc\n", "--stats", "osa", "-t", "1", "--dedupe")
	require.Equal(t, 0, code)
	assert.Equal(t, "a\n\nb\n\nc\n", stdout)
	assert.Contains(t, stderr, "=== Clustering Summary ===")
	assert.Contains(t, stderr, "Metric:     osa")
	assert.Contains(t, stderr, "4 records (1 duplicates collapsed)")
	assert.Contains(t, stderr, "3 evaluated, 0 accepted")
	assert.Contains(t, stderr, "3 clusters, 3 singletons")
}

func TestRun_VerboseLogsRunID(t *testing.T) {
	code, stdout, stderr := runCLI(t, "a\nb\n", "-v", "osa", "-t", "1", "--ors", "line")
	require.Equal(t, 0, code)
	assert.Equal(t, "a\nb\n", stdout)
	assert.Contains(t, stderr, `"run_id"`)
	assert.Contains(t, stderr, `"metric":"osa"`)
	assert.Contains(t, stderr, "clustering completed")
	assert.Contains(t, stderr, `"output":"stdout"`)
}

func TestRun_VerboseLogsDuplicates(t *testing.T) {
	code, stdout, stderr := runCLI(t, "a\nb\na\n", "-v", "osa", "-t", "1", "--dedupe", "--ors", "line")
	require.Equal(t, 0, code)
	assert.Equal(t, "a\nb\n", stdout)
	assert.Contains(t, stderr, "dropped duplicate record")
	assert.Contains(t, stderr, `"position":2,"first":0`)
	assert.Contains(t, stderr, `"kept":[0,1]`)
}

func TestRun_LogLevelFromEnvIgnoresCase(t *testing.T) {
	t.Setenv("SIMCLUST_LOG_LEVEL", "INFO")
	code, _, stderr := runCLI(t, "a\nb\n", "osa", "-t", "1")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stderr, "clustering completed")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, version)
}
