package summarize

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elliottslaughter/rust-gc-notes/internal/analysis"
	"github.com/elliottslaughter/rust-gc-notes/internal/analyzer"
)

func init() {
	color.NoColor = true
}

const sampleLog = `running 3 tests
test [unit] foo::bar ... ok
test [unit] foo::baz ... FAILED
LLVM ERROR: Cannot select: intrinsic %llvm.gcregroot
test [unit] foo::qux ... FAILED
thread 'foo::qux' panicked at 'boom'
failures:
    [unit] foo::baz
    [unit] foo::qux
result: FAILED. 1 passed; 2 failed; 0 ignored
`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	for _, k := range []string{"SUMMARIZE_FORMAT", "SUMMARIZE_SIGNATURES", "SUMMARIZE_LOG_LEVEL", "SUMMARIZE_NO_COLOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tests.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_MissingArgument(t *testing.T) {
	stdout, stderr, err := execute(t, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s), received 0")
	assert.Contains(t, stdout+stderr, "Usage:")
	assert.Contains(t, stdout+stderr, "summarize <log-file>")
}

func TestRoot_TextReport(t *testing.T) {
	stdout, _, err := execute(t, "", writeLog(t, sampleLog))
	require.NoError(t, err)

	assert.Contains(t, stdout, "        unit:   1 ( 33.3%) passed,  0 (  0.0%) ignored,  1 ( 33.3%) gcregroot,  1 ( 33.3%) unknown\n")
	assert.Contains(t, stdout, "test [unit] foo::qux ... FAILED\n\nthread 'foo::qux' panicked at 'boom'\n\n\n")
	assert.NotContains(t, stdout, "test [unit] foo::baz ... FAILED")
}

func TestRoot_JSONReport(t *testing.T) {
	stdout, _, err := execute(t, "", writeLog(t, sampleLog), "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Categories []struct {
			Category  string         `json:"category"`
			Diagnosis map[string]int `json:"diagnosis"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded.Categories, 1)
	assert.Equal(t, map[string]int{"passed": 1, "ignored": 0, "gcregroot": 1, "unknown": 1}, decoded.Categories[0].Diagnosis)
}

func TestRoot_Stdin(t *testing.T) {
	stdout, _, err := execute(t, sampleLog, "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "        unit:")
}

func TestRoot_EmptyLog(t *testing.T) {
	stdout, _, err := execute(t, "", writeLog(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "/========================\\\n      Result Summary     \n\\========================/\n\n"+
		"\n/========================\\\n   Undiagnosed Failures  \n\\========================/\n\n", stdout)
}

func TestRoot_SignaturesFile(t *testing.T) {
	sigs := filepath.Join(t.TempDir(), "sigs.yaml")
	require.NoError(t, os.WriteFile(sigs, []byte("signatures:\n  - name: panic\n    pattern: panicked at\n"), 0o644))

	stdout, _, err := execute(t, "", writeLog(t, sampleLog), "--signatures", sigs)
	require.NoError(t, err)

	assert.Contains(t, stdout, "1 ( 33.3%) gcregroot,  1 ( 33.3%) panic,  0 (  0.0%) unknown")
	assert.NotContains(t, stdout, "test [unit] foo::qux")
}

func TestRoot_UnknownStatusFails(t *testing.T) {
	log := "running 1 tests\ntest [unit] a ... bench\nresult: ok. 1 passed; 0 failed; 0 ignored\n"
	stdout, stderr, err := execute(t, "", writeLog(t, log))

	require.Error(t, err)
	assert.True(t, errors.Is(err, analyzer.ErrUnknownStatus))
	assert.Empty(t, stdout)
	assert.NotContains(t, stderr, "Usage:")
}

func TestRoot_CountMismatchFails(t *testing.T) {
	log := "running 1 tests\ntest [unit] a ... ok\nresult: ok. 0 passed; 1 failed; 0 ignored\n"
	_, _, err := execute(t, "", writeLog(t, log))
	assert.True(t, errors.Is(err, analysis.ErrCountMismatch))
}

func TestRoot_MissingFile(t *testing.T) {
	_, _, err := execute(t, "", filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log")
}

func TestRoot_BadFormat(t *testing.T) {
	_, _, err := execute(t, "", writeLog(t, sampleLog), "--format", "xml")
	assert.ErrorContains(t, err, `unsupported format "xml"`)
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "", writeLog(t, sampleLog), "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Diagnosing")
	assert.NotContains(t, stdout, "Diagnosing")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "summarize dev")
	assert.Contains(t, stdout, "commit: none")
}

func TestSignaturesCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "signatures")
	require.NoError(t, err)
	assert.Equal(t, "#   NAME      PATTERN\n1   gcregroot LLVM ERROR: Cannot select: intrinsic %llvm.gcregroot\n", stdout)
}

func TestPrintError_Details(t *testing.T) {
	var buf bytes.Buffer
	err := errors.WithDetail(errors.New("boom"), "category: unit\npath: a\n")
	printError(&buf, err)

	assert.Equal(t, "Error: boom\n\ncategory: unit\npath: a\n", buf.String())
}
