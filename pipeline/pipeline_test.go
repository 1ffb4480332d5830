package pipeline

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minios-linux/para2github/config"
	"github.com/minios-linux/para2github/console"
	"github.com/minios-linux/para2github/langfile"
	"github.com/minios-linux/para2github/paratranz"
)

type fakeSource struct {
	files        []paratranz.File
	translations map[int][]paratranz.Translation
	failOn       int
	fetched      []int
}

func (f *fakeSource) ListFiles(ctx context.Context) ([]paratranz.File, error) {
	return f.files, nil
}

func (f *fakeSource) ListTranslations(ctx context.Context, id int) ([]paratranz.Translation, error) {
	f.fetched = append(f.fetched, id)
	if id == f.failOn {
		return nil, &paratranz.StatusError{Method: "GET", URL: "x", StatusCode: 500}
	}
	return f.translations[id], nil
}

func quietConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	console.SetOutput(&buf)
	t.Cleanup(func() { console.SetOutput(os.Stderr) })
	return &buf
}

func newWriter(t *testing.T) *Writer {
	t.Helper()
	return &Writer{Root: t.TempDir(), Layout: config.DefaultLayout()}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestWriterPaths(t *testing.T) {
	w := &Writer{Layout: config.DefaultLayout()}

	target := w.TargetPath("kubejs/assets/mod/lang/en_us.json")
	if want := filepath.Join("ZHTWPack", "kubejs", "assets", "mod", "lang", "zh_tw.json"); target != want {
		t.Fatalf("TargetPath() = %q, want %q", target, want)
	}
	if want := filepath.Join("Source", "kubejs", "assets", "mod", "lang", "en_us.json"); w.SourcePath(target) != want {
		t.Fatalf("SourcePath() = %q, want %q", w.SourcePath(target), want)
	}

	// Files at the project root land directly under the output root.
	if got, want := w.TargetPath("en_us.json"), filepath.Join("ZHTWPack", "zh_tw.json"); got != want {
		t.Fatalf("TargetPath(root file) = %q, want %q", got, want)
	}
}

func TestSaveTranslationFollowsSourceOrder(t *testing.T) {
	quietConsole(t)
	w := newWriter(t)
	writeFile(t, filepath.Join(w.Root, "Source", "mod", "lang", "en_us.json"),
		`{"z.key": "Z", "a.key": "A", "m.key": "M"}`)

	m := langfile.FromPairs(
		[]string{"a.key", "m.key", "z.key", "extra.key"},
		[]string{"甲", "丙", "乙", "多餘"},
	)
	rel, err := w.SaveTranslation(m, "mod/lang/en_us.json")
	if err != nil {
		t.Fatalf("SaveTranslation error: %v", err)
	}

	want := "{\n" +
		"  \"z.key\": \"乙\",\n" +
		"  \"a.key\": \"甲\",\n" +
		"  \"m.key\": \"丙\"\n" +
		"}"
	if got := readFile(t, filepath.Join(w.Root, rel)); got != want {
		t.Fatalf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestSaveTranslationWithoutSourceSortsKeys(t *testing.T) {
	log := quietConsole(t)
	w := newWriter(t)

	m := langfile.FromPairs([]string{"b", "c", "a"}, []string{"2", "3", "1"})
	rel, err := w.SaveTranslation(m, "mod/lang/en_us.json")
	if err != nil {
		t.Fatalf("SaveTranslation error: %v", err)
	}

	want := "{\n  \"a\": \"1\",\n  \"b\": \"2\",\n  \"c\": \"3\"\n}"
	if got := readFile(t, filepath.Join(w.Root, rel)); got != want {
		t.Fatalf("output =\n%s\nwant\n%s", got, want)
	}
	if !strings.Contains(log.String(), "[WARN] Source/mod/lang/en_us.json") {
		t.Fatalf("missing fallback warning in %q", log.String())
	}
}

func TestSaveTranslationMissingKeyIsKeyLookupError(t *testing.T) {
	quietConsole(t)
	w := newWriter(t)
	writeFile(t, filepath.Join(w.Root, "Source", "mod", "lang", "en_us.json"),
		`{"known": "K", "new.upstream.key": "N"}`)

	m := langfile.FromPairs([]string{"known"}, []string{"已知"})
	_, err := w.SaveTranslation(m, "mod/lang/en_us.json")

	var kle *KeyLookupError
	if !errors.As(err, &kle) || kle.Key != "new.upstream.key" {
		t.Fatalf("SaveTranslation error = %v, want KeyLookupError(new.upstream.key)", err)
	}
	if !errors.Is(err, ErrKeyLookup) {
		t.Fatalf("errors.Is(err, ErrKeyLookup) = false for %v", err)
	}
}

func TestSaveTranslationInvalidSourceIsFatal(t *testing.T) {
	quietConsole(t)
	w := newWriter(t)
	writeFile(t, filepath.Join(w.Root, "Source", "mod", "lang", "en_us.json"), `{"broken":`)

	if _, err := w.SaveTranslation(langfile.New(), "mod/lang/en_us.json"); err == nil {
		t.Fatal("expected parse error for invalid source file")
	}
}

func TestRun(t *testing.T) {
	log := quietConsole(t)
	w := newWriter(t)
	writeFile(t, filepath.Join(w.Root, "Source", "kubejs", "assets", "mod", "lang", "en_us.json"),
		`{"item.mod.gear": "Gear", "item.mod.bolt": "Bolt"}`)

	src := &fakeSource{
		files: []paratranz.File{
			{ID: 1, Name: "kubejs/assets/mod/lang/en_us.json"},
			{ID: 2, Name: "TM/kubejs/assets/mod/lang/en_us.json"},
			{ID: 3, Name: "kubejs/assets/quests/lang/en_us.json"},
			{ID: 4, Name: "kubejs/assets/quests/lang/chapters/en_us.json"},
		},
		translations: map[int][]paratranz.Translation{
			1: {
				{Key: "item.mod.bolt", Original: "Bolt", Translation: "螺栓", Stage: 1},
				{Key: "item.mod.gear", Original: "Gear", Translation: "", Stage: 0},
			},
			3: {
				{Key: "quest.1.title", Original: "Start", Translation: "開始", Stage: 1},
				{Key: "quest.1.quest_desc_0", Original: "a", Translation: `說"你好"`, Stage: 1},
				{Key: "quest.1.quest_desc_1", Original: "b", Translation: `第二行\n續`, Stage: 1},
			},
			4: {
				{Key: "quest.1.title", Original: "Start", Translation: "起點", Stage: 1},
			},
		},
	}

	sum, err := Run(context.Background(), src, w)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sum.Written != 1 || sum.Skipped != 1 || sum.QuestFiles != 2 || sum.QuestKeys != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	for _, id := range src.fetched {
		if id == 2 {
			t.Fatal("translation memory file was fetched")
		}
	}

	lang := readFile(t, filepath.Join(w.Root, "ZHTWPack", "kubejs", "assets", "mod", "lang", "zh_tw.json"))
	wantLang := "{\n  \"item.mod.gear\": \"Gear\",\n  \"item.mod.bolt\": \"螺栓\"\n}"
	if lang != wantLang {
		t.Fatalf("language file =\n%s\nwant\n%s", lang, wantLang)
	}

	if _, err := os.Stat(filepath.Join(w.Root, "ZHTWPack", "kubejs", "assets", "quests")); !os.IsNotExist(err) {
		t.Fatalf("quest language files must not be written as JSON (stat err = %v)", err)
	}

	quests := readFile(t, filepath.Join(w.Root, sum.QuestsPath))
	wantQuests := "{\n" +
		"    quest.1.title:\"起點\"\n" +
		"    quest.1.quest_desc:[\n" +
		"        \"說\\\"你好\\\"\"\n" +
		"        \"第二行\n續\"\n" +
		"    ]\n" +
		"}"
	if quests != wantQuests {
		t.Fatalf("quest file =\n%s\nwant\n%s", quests, wantQuests)
	}
	if sum.QuestsPath != filepath.Join("ZHTWPack", "config", "ftbquests", "quests", "lang", "zh_tw.snbt") {
		t.Fatalf("QuestsPath = %q", sum.QuestsPath)
	}

	if !strings.Contains(log.String(), "kubejs/assets/mod/lang/zh_tw.json") {
		t.Fatalf("missing download log line in %q", log.String())
	}
}

func TestRunWritesEmptyQuestFile(t *testing.T) {
	quietConsole(t)
	w := newWriter(t)

	sum, err := Run(context.Background(), &fakeSource{}, w)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := readFile(t, filepath.Join(w.Root, sum.QuestsPath)); got != "{\n}" {
		t.Fatalf("quest file = %q, want empty compound", got)
	}
}

func TestRunStopsOnTransportError(t *testing.T) {
	quietConsole(t)
	w := newWriter(t)

	src := &fakeSource{
		files: []paratranz.File{
			{ID: 1, Name: "a/en_us.json"},
			{ID: 2, Name: "b/en_us.json"},
			{ID: 3, Name: "c/en_us.json"},
		},
		failOn: 2,
	}

	_, err := Run(context.Background(), src, w)
	if !errors.Is(err, paratranz.ErrTransport) {
		t.Fatalf("Run error = %v, want transport error", err)
	}
	if len(src.fetched) != 2 {
		t.Fatalf("fetched %v, want run to stop at the failing file", src.fetched)
	}
	if _, err := os.Stat(filepath.Join(w.Root, config.DefaultLayout().QuestsPath())); !os.IsNotExist(err) {
		t.Fatal("quest file written despite failure")
	}
}

func TestRunAgainstHTTPServer(t *testing.T) {
	quietConsole(t)
	w := newWriter(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/9/files/", func(rw http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "tok" {
			http.Error(rw, "unauthorized", http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/projects/9/files/":
			rw.Write([]byte(`[{"id": 5, "name": "config/ftbquests/lang/en_us.json"}]`))
		case "/api/projects/9/files/5/translation":
			rw.Write([]byte(`[{"key": "k", "original": "two words", "translation": "", "stage": 0}]`))
		default:
			http.NotFound(rw, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := paratranz.NewClient(srv.URL+"/api", "tok", 9, 5*time.Second)
	if _, err := Run(context.Background(), client, w); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	got := readFile(t, filepath.Join(w.Root, "ZHTWPack", "config", "ftbquests", "lang", "zh_tw.json"))
	want := "{\n  \"k\": \"two\u00a0words\"\n}"
	if got != want {
		t.Fatalf("language file = %q, want %q", got, want)
	}
}
