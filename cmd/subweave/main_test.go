package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"subweave/internal/config"
	"subweave/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	cfg.Logging.Level = "error"
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode test config: %v", err)
	}
	base := filepath.Dir(cfg.Storage.DatabasePath)
	configPath := testsupport.WriteFile(t, filepath.Join(base, "config.toml"), string(encoded))
	return &cliTestEnv{cfg: cfg, baseDir: base, configPath: configPath}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeInputFile(t *testing.T, env *cliTestEnv, name, content string) string {
	t.Helper()
	return testsupport.WriteFile(t, filepath.Join(env.baseDir, name), content)
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestParseCommandRendersSRT(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeInputFile(t, env, "response.txt",
		"[00m01s000ms-00m03s000ms]Hello there\n[00m03s500ms-00m05s000ms]Welcome back\n")

	out, err := runCLI(t, env, "parse", input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	requireContains(t, out, "00:00:01,000 --> 00:00:03,000")
	requireContains(t, out, "Hello there")
	requireContains(t, out, "Welcome back")
}

func TestParseCommandRejectsGarbage(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeInputFile(t, env, "garbage.txt", "no timestamps in here at all")

	if _, err := runCLI(t, env, "parse", input); err == nil {
		t.Fatal("expected parse to fail on unrecognized input")
	}
}

func TestParseSaveAndTimelineRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeInputFile(t, env, "response.txt",
		"[00m01s000ms-00m03s000ms]First line\n[00m04s000ms-00m06s000ms]Second line\n")

	out, err := runCLI(t, env, "parse", input, "--save", "episode-01")
	if err != nil {
		t.Fatalf("parse --save: %v", err)
	}
	requireContains(t, out, "saved 2 cues")

	out, err = runCLI(t, env, "timeline", "list")
	if err != nil {
		t.Fatalf("timeline list: %v", err)
	}
	requireContains(t, out, "episode-01")

	out, err = runCLI(t, env, "timeline", "export", "episode-01")
	if err != nil {
		t.Fatalf("timeline export: %v", err)
	}
	requireContains(t, out, "First line")
	requireContains(t, out, "00:00:01,000 --> 00:00:03,000")

	out, err = runCLI(t, env, "timeline", "rename", "episode-01", "episode-01-final")
	if err != nil {
		t.Fatalf("timeline rename: %v", err)
	}
	requireContains(t, out, "episode-01-final")

	out, err = runCLI(t, env, "timeline", "delete", "episode-01-final")
	if err != nil {
		t.Fatalf("timeline delete: %v", err)
	}
	requireContains(t, out, "deleted timeline")

	out, err = runCLI(t, env, "timeline", "list")
	if err != nil {
		t.Fatalf("timeline list after delete: %v", err)
	}
	requireContains(t, out, "No timelines stored")

	s := testsupport.MustOpenStore(t, env.cfg)
	timelines, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(timelines) != 0 {
		t.Fatalf("expected empty store after delete, got %d timelines", len(timelines))
	}
}

func TestTimelineImportAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeInputFile(t, env, "episode.srt",
		"1\n00:00:01,000 --> 00:00:03,000\nHello\n\n2\n00:00:04,000 --> 00:00:06,000\nWorld\n")

	out, err := runCLI(t, env, "timeline", "import", "episode", input, "--language", "en")
	if err != nil {
		t.Fatalf("timeline import: %v", err)
	}
	requireContains(t, out, "imported 2 cues")

	out, err = runCLI(t, env, "timeline", "show", "episode")
	if err != nil {
		t.Fatalf("timeline show: %v", err)
	}
	requireContains(t, out, "episode (2 cues)")
	requireContains(t, out, "Hello")

	out, err = runCLI(t, env, "timeline", "list")
	if err != nil {
		t.Fatalf("timeline list: %v", err)
	}
	requireContains(t, out, "English")
}

func TestNormalizeCommandRepairsTiming(t *testing.T) {
	env := setupCLITestEnv(t)
	// Second cue is only 100ms long and should be stretched to 500ms.
	input := writeInputFile(t, env, "rough.srt",
		"1\n00:00:01,000 --> 00:00:03,000\nHello\n\n2\n00:00:05,000 --> 00:00:05,100\nShort\n")

	out, err := runCLI(t, env, "normalize", input)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	requireContains(t, out, "00:00:05,000 --> 00:00:05,500")
}

func TestMergeCommandReplacesWindow(t *testing.T) {
	env := setupCLITestEnv(t)
	base := writeInputFile(t, env, "base.srt",
		"1\n00:00:00,000 --> 00:00:04,000\nOld one\n\n2\n00:00:04,000 --> 00:00:08,000\nOld two\n")
	fresh := writeInputFile(t, env, "fresh.srt",
		"1\n00:00:02,000 --> 00:00:06,000\nNew middle\n")

	out, err := runCLI(t, env, "merge", base, fresh, "--from", "2", "--to", "6")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	requireContains(t, out, "00:00:00,000 --> 00:00:02,000")
	requireContains(t, out, "New middle")
	requireContains(t, out, "00:00:06,000 --> 00:00:08,000")
}

func TestMergeCommandIntoTimeline(t *testing.T) {
	env := setupCLITestEnv(t)
	base := writeInputFile(t, env, "base.srt",
		"1\n00:00:00,000 --> 00:00:05,000\nOriginal\n")
	if _, err := runCLI(t, env, "timeline", "import", "show", base); err != nil {
		t.Fatalf("timeline import: %v", err)
	}

	fresh := writeInputFile(t, env, "fresh.srt",
		"1\n00:00:05,000 --> 00:00:08,000\nAppended\n")
	out, err := runCLI(t, env, "merge", fresh, "--timeline", "show", "--from", "5", "--to", "8")
	if err != nil {
		t.Fatalf("merge --timeline: %v", err)
	}
	requireContains(t, out, "2 total")

	out, err = runCLI(t, env, "timeline", "export", "show")
	if err != nil {
		t.Fatalf("timeline export: %v", err)
	}
	requireContains(t, out, "Original")
	requireContains(t, out, "Appended")
}

func TestSplitCommandDividesLongCue(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeInputFile(t, env, "long.srt",
		"1\n00:00:00,000 --> 00:00:12,000\none two three four five six seven eight\n")

	out, err := runCLI(t, env, "split", input, "--max-weight", "4")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	requireContains(t, out, "one two three four")
	requireContains(t, out, "five six seven eight")
	requireContains(t, out, "2\n")
}

func TestConvertCommandRendersVTT(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeInputFile(t, env, "episode.srt",
		"1\n00:00:01,000 --> 00:00:03,000\nHello\n")

	out, err := runCLI(t, env, "convert", input)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "WEBVTT")
	requireContains(t, out, "00:00:01.000 --> 00:00:03.000")
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "generated", "config.toml")

	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init to refuse overwriting")
	}

	out, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[thresholds]")
	requireContains(t, out, "max_weight")
}
