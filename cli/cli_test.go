package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/clickflow/catalog"
	"github.com/smallnest/clickflow/store"
	"github.com/smallnest/clickflow/workflow"
)

type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("CLICKFLOW_ENGINE_PACING", "0s")
	t.Setenv("CLICKFLOW_ENGINE_RESUME_DELAY", "0s")
	return &harness{t: t, dir: t.TempDir()}
}

func (h *harness) exec(stdin string, args ...string) (string, error) {
	h.t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--store", "file", "--store-path", h.dir, "--log-level", "none"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustExec(args ...string) string {
	h.t.Helper()
	out, err := h.exec("", args...)
	require.NoError(h.t, err, out)
	return out
}

func TestActionsCmd(t *testing.T) {
	h := newHarness(t)
	out := h.mustExec("actions")
	for _, kind := range catalog.Kinds() {
		assert.Contains(t, out, kind)
	}
	assert.Contains(t, out, "message:text*")
}

func TestConfigEditing(t *testing.T) {
	h := newHarness(t)

	out := h.mustExec("config", "show")
	assert.Contains(t, out, "Button: Click Me")
	assert.Contains(t, out, "No actions configured.")

	h.mustExec("config", "label", "Launch", "it")
	h.mustExec("config", "add", "showText", "text=first")
	h.mustExec("config", "add", "increaseButtonSize", "scale=1.5")
	h.mustExec("config", "add", "alert", "message=top", "--at", "1")

	out = h.mustExec("config", "show")
	assert.Contains(t, out, "Button: Launch it")
	alert := strings.Index(out, "Alert")
	text := strings.Index(out, "Show Text")
	require.True(t, alert > 0 && text > 0)
	assert.Less(t, alert, text)

	h.mustExec("config", "edit", "#2", "text=second")
	h.mustExec("config", "move", "#3", "1")
	h.mustExec("config", "remove", "#2")

	exported := h.mustExec("config", "export")
	cfg, err := workflow.ParseYAML([]byte(exported))
	require.NoError(t, err)
	require.Len(t, cfg.Actions, 2)
	assert.Equal(t, "increaseButtonSize", cfg.Actions[0].Kind)
	assert.Equal(t, 1.5, cfg.Actions[0].Params.Float("scale", 0))
	assert.Equal(t, "showText", cfg.Actions[1].Kind)
	assert.Equal(t, "second", cfg.Actions[1].Params.String("text", ""))
}

func TestConfigAddValidation(t *testing.T) {
	h := newHarness(t)

	_, err := h.exec("", "config", "add", "setLocalStorage", "key=k")
	assert.ErrorIs(t, err, catalog.ErrMissingParam)

	_, err = h.exec("", "config", "add", "teleport")
	assert.ErrorIs(t, err, catalog.ErrUnknownKind)

	_, err = h.exec("", "config", "add", "alert", "volume=11")
	assert.Error(t, err)

	_, err = h.exec("", "config", "remove", "#1")
	assert.ErrorIs(t, err, workflow.ErrActionNotFound)
}

func TestConfigImportExportFile(t *testing.T) {
	h := newHarness(t)
	src := filepath.Join(t.TempDir(), "flow.yaml")
	require.NoError(t, os.WriteFile(src, []byte(`buttonLabel: Go
actions:
  - type: showText
    params:
      text: hello
  - type: mystery
`), 0o644))

	out := h.mustExec("config", "import", src)
	assert.Contains(t, out, "Imported 2 actions")
	assert.Contains(t, out, `unknown type "mystery"`)

	dst := filepath.Join(t.TempDir(), "out.yaml")
	h.mustExec("config", "export", dst)
	cfg, err := workflow.LoadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "Go", cfg.ButtonLabel)
	assert.Len(t, cfg.Actions, 2)

	h.mustExec("config", "clear")
	out = h.mustExec("config", "show")
	assert.Contains(t, out, "Button: Click Me")
}

func TestRunClickFollowsReload(t *testing.T) {
	h := newHarness(t)
	h.mustExec("config", "add", "showText", "text=before-reload")
	h.mustExec("config", "add", "refreshPage")
	h.mustExec("config", "add", "showText", "text=after-reload")

	out := h.mustExec("run", "--click")
	assert.Contains(t, out, "before-reload")
	assert.Contains(t, out, "reloading...")
	assert.Contains(t, out, "resuming at step 3")
	assert.Contains(t, out, "after-reload")
	assert.Contains(t, out, "workflow completed")

	out = h.mustExec("status")
	assert.Contains(t, out, "Progress: completed (3 of 3 steps)")
}

func TestRunClickClose(t *testing.T) {
	h := newHarness(t)
	h.mustExec("config", "add", "showText", "text=one")
	h.mustExec("config", "add", "closeWindow")
	h.mustExec("config", "add", "showText", "text=three")

	out := h.mustExec("run", "--click")
	assert.Contains(t, out, "Window closed.")
	assert.NotContains(t, out, "three")

	out = h.mustExec("status")
	assert.Contains(t, out, "resumes at step 3")

	// the next run picks up after the close
	out = h.mustExec("run", "--click")
	assert.Contains(t, out, "three")

	h.mustExec("reset")
	out = h.mustExec("status")
	assert.Contains(t, out, "no run in progress")
}

func TestRunInteractive(t *testing.T) {
	h := newHarness(t)
	h.mustExec("config", "add", "promptAndShow", "promptMessage=Your name?")
	h.mustExec("config", "add", "setLocalStorage", "key=name", "value=saved")

	out, err := h.exec("\nAda\nq\n", "run")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Your name?")
	assert.Contains(t, out, "You entered: Ada")

	out = h.mustExec("store", "get", "name")
	assert.Equal(t, "saved\n", out)
}

func TestRunHTMLOutput(t *testing.T) {
	h := newHarness(t)
	h.mustExec("config", "label", "Shiny")
	h.mustExec("config", "add", "showText", "text=**done**")

	page := filepath.Join(t.TempDir(), "page.html")
	h.mustExec("run", "--click", "--html", page)

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<strong>done</strong>")
	assert.Contains(t, string(data), "Shiny")
}

func TestRunClickClearsPreviousOutput(t *testing.T) {
	h := newHarness(t)
	h.mustExec("config", "add", "showText", "text=hello-again")
	h.mustExec("config", "add", "showImage", "url=https://example.com/a.png")

	page := filepath.Join(t.TempDir(), "page.html")
	out, err := h.exec("\n\nq\n", "run", "--html", page)
	require.NoError(t, err, out)

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "hello-again"))
	assert.Equal(t, 1, strings.Count(string(data), "https://example.com/a.png"))
}

func TestStoreCmd(t *testing.T) {
	h := newHarness(t)

	h.mustExec("store", "set", "theme", "dark")
	assert.Equal(t, "dark\n", h.mustExec("store", "get", "theme"))
	assert.Contains(t, h.mustExec("store", "list"), "theme")

	h.mustExec("store", "delete", "theme")
	_, err := h.exec("", "store", "get", "theme")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestExportHTML(t *testing.T) {
	h := newHarness(t)
	h.mustExec("config", "label", "Press")

	out := h.mustExec("export-html")
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Press")
	assert.Contains(t, out, "no run in progress")
}

func TestInvalidBackend(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--store", "floppy", "status"})
	assert.Error(t, cmd.Execute())
}

func TestDescribeCheckpoint(t *testing.T) {
	assert.Equal(t, "Progress: no run in progress", describeCheckpoint(nil, 2))
	cp := workflow.CheckpointAfter(0, 2)
	assert.Contains(t, describeCheckpoint(&cp, 2), "resumes at step 2")
	assert.Contains(t, describeCheckpoint(&cp, 1), "stale checkpoint")
}

func TestParseParams(t *testing.T) {
	def, _ := catalog.Lookup(catalog.IncreaseButtonSize)
	params, err := parseParams(def, workflow.Params{}, []string{"scale=2"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, params["scale"])

	params, err = parseParams(def, params, []string{"scale="})
	require.NoError(t, err)
	assert.NotContains(t, params, "scale")

	_, err = parseParams(def, workflow.Params{}, []string{"scale"})
	assert.Error(t, err)
}
