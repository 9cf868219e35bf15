package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"docblock/internal/docblock"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	return path
}

func TestRenderPathsWritesOutput(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := writeDoc(t, dir, "var.json", `[["@var", "int", "Very short description."]]`)

	results, err := RenderPaths(context.Background(), []string{path}, Options{Write: true})
	if err != nil {
		t.Fatalf("RenderPaths failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.Err != nil {
		t.Fatalf("render failed: %v", res.Err)
	}
	if want := "/** @var int Very short description. */"; res.Output != want {
		t.Fatalf("output mismatch:\nwant %q\ngot  %q", want, res.Output)
	}
	written, err := os.ReadFile(res.OutPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(written) != res.Output+"\n" {
		t.Fatalf("written output mismatch: %q", written)
	}
}

func TestRenderPathsCacheHit(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.json", `["A short description."]`)

	first, err := RenderPaths(context.Background(), []string{path}, Options{})
	if err != nil {
		t.Fatalf("RenderPaths failed: %v", err)
	}
	if first[0].FromCache {
		t.Fatalf("first render must not hit the cache")
	}
	second, err := RenderPaths(context.Background(), []string{path}, Options{})
	if err != nil {
		t.Fatalf("RenderPaths failed: %v", err)
	}
	if !second[0].FromCache {
		t.Fatalf("second render should hit the cache")
	}
	if first[0].Output != second[0].Output {
		t.Fatalf("cache returned different output:\n%q\n%q", first[0].Output, second[0].Output)
	}

	// A config change must miss.
	third, err := RenderPaths(context.Background(), []string{path}, Options{
		Format: docblock.Options{IndentWidth: 4},
	})
	if err != nil {
		t.Fatalf("RenderPaths failed: %v", err)
	}
	if third[0].FromCache {
		t.Fatalf("changed options should invalidate the cache key")
	}
}

func TestRenderPathsWalksDirectories(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeDoc(t, dir, "b.json", `["Second."]`)
	writeDoc(t, dir, "a.json", `["First."]`)
	writeDoc(t, dir, "ignored.txt", "not a document")

	results, err := RenderPaths(context.Background(), []string{dir}, Options{NoCache: true})
	if err != nil {
		t.Fatalf("RenderPaths failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if filepath.Base(results[0].Path) != "a.json" || filepath.Base(results[1].Path) != "b.json" {
		t.Fatalf("results not in sorted order: %v", results)
	}
}

func TestRenderPathsReportsBadDocuments(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	bad := writeDoc(t, dir, "bad.json", `[42]`)
	good := writeDoc(t, dir, "good.json", `["Fine."]`)

	results, err := RenderPaths(context.Background(), []string{bad, good}, Options{NoCache: true})
	if err != nil {
		t.Fatalf("RenderPaths failed: %v", err)
	}
	var badRes, goodRes *Result
	for i := range results {
		switch filepath.Base(results[i].Path) {
		case "bad.json":
			badRes = &results[i]
		case "good.json":
			goodRes = &results[i]
		}
	}
	if badRes == nil || badRes.Err == nil {
		t.Fatalf("expected an error for the malformed document")
	}
	if goodRes == nil || goodRes.Err != nil {
		t.Fatalf("good file should still render, got %+v", goodRes)
	}
}

func TestEventsReachSink(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.json", `["A short description."]`)

	ch := make(chan Event, 64)
	_, err := RenderPaths(context.Background(), []string{path}, Options{
		NoCache:  true,
		Progress: ChannelSink{Ch: ch},
	})
	if err != nil {
		t.Fatalf("RenderPaths failed: %v", err)
	}
	close(ch)

	var sawQueued bool
	var done *Event
	for evt := range ch {
		if evt.File != path {
			t.Fatalf("event for unknown file: %+v", evt)
		}
		// No write was requested, so the write stage must never appear.
		if evt.Stage == StageWrite {
			t.Fatalf("unexpected write-stage event: %+v", evt)
		}
		if evt.Status == StatusQueued {
			sawQueued = true
		}
		if evt.Status == StatusDone {
			e := evt
			done = &e
		}
	}
	if !sawQueued || done == nil {
		t.Fatalf("missing lifecycle events: queued=%v done=%v", sawQueued, done != nil)
	}
	if done.Stage != StageRender {
		t.Fatalf("done event stage: want %q got %q", StageRender, done.Stage)
	}
	if done.Elapsed <= 0 {
		t.Fatalf("done event must carry the elapsed time, got %v", done.Elapsed)
	}
}

func TestDoneEventStageWhenWriting(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.json", `["A short description."]`)

	ch := make(chan Event, 64)
	_, err := RenderPaths(context.Background(), []string{path}, Options{
		NoCache:  true,
		Write:    true,
		Progress: ChannelSink{Ch: ch},
	})
	if err != nil {
		t.Fatalf("RenderPaths failed: %v", err)
	}
	close(ch)

	var done *Event
	for evt := range ch {
		if evt.Status == StatusDone {
			e := evt
			done = &e
		}
	}
	if done == nil {
		t.Fatalf("missing done event")
	}
	if done.Stage != StageWrite {
		t.Fatalf("done event stage: want %q got %q", StageWrite, done.Stage)
	}
	if done.Elapsed <= 0 {
		t.Fatalf("done event must carry the elapsed time, got %v", done.Elapsed)
	}
}
