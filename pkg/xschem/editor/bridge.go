package editor

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/hierarchy"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/xlog"
)

// ScriptBridge is the embedded scripting console the core drives for
// filesystem path resolution, modal dialogs and named preferences. The core
// only issues bounded command strings and consumes the result as a string;
// errors never cross the bridge.
type ScriptBridge interface {
	Eval(cmd string) (string, error)
}

// Parser is the external .sch/.sym parser/serializer. LoadSymbol satisfies
// symbol.Loader so the same implementation backs the symbol cache.
type Parser interface {
	LoadSchematic(path string) (*doc.Sheet, error)
	SaveSchematic(path string, sheet *doc.Sheet) error
	LoadSymbol(name string) (symbol.Symbol, error)
}

// Fetcher retrieves a remote symbol or schematic by URL. The default
// implementation uses net/http; tests substitute a fake.
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

type httpFetcher struct {
	client *http.Client
}

func (f httpFetcher) Fetch(url string) ([]byte, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("editor: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("editor: fetch %s: status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// webCachePath returns the local cache path for a remote reference:
// ${XSCHEM_TMP_DIR}/xschem_web/<name>.
func webCachePath(url string) string {
	dir := os.Getenv("XSCHEM_TMP_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "xschem_web", filepath.Base(url))
}

// fetchToCache downloads url into the web cache directory, reusing an
// already cached copy, and returns the local path.
func (e *Editor) fetchToCache(url string) (string, error) {
	local := webCachePath(url)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}
	data, err := e.fetcher.Fetch(url)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return "", fmt.Errorf("editor: web cache dir: %w", err)
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return "", fmt.Errorf("editor: web cache write: %w", err)
	}
	return local, nil
}

// sheetLoader adapts the editor's parser (plus the remote web cache and its
// local-lookup fallback) to hierarchy.SheetLoader.
type sheetLoader struct {
	e *Editor
}

func (l sheetLoader) LoadSchematic(path string) (*doc.Sheet, error) {
	if isRemote(path) {
		if local, err := l.e.fetchToCache(path); err == nil {
			path = local
		} else {
			// Remote fetch failure falls back to local filesystem lookup.
			xlog.Dbg(1, "xschem: remote fetch %s failed, falling back to local lookup: %v", path, err)
			if res, evalErr := l.e.bridge.Eval("abs_sym_path " + filepath.Base(path)); evalErr == nil && res != "" {
				path = res
			} else {
				path = filepath.Base(path)
			}
		}
	}
	sheet, err := l.e.parser.LoadSchematic(path)
	if err != nil {
		return nil, err
	}
	if sheet.Path == "" {
		sheet.Path = path
	}
	return sheet, nil
}

// bridgeSaver routes the pre-descend "save modified sheet?" dialog through
// the scripting bridge, mapping its answer onto the tri-state SaveResult.
type bridgeSaver struct {
	e *Editor
}

func (b bridgeSaver) RequestSave(sheet *doc.Sheet) (hierarchy.SaveResult, error) {
	res, err := b.e.bridge.Eval("ask_save")
	if err != nil {
		return hierarchy.SaveCancel, err
	}
	switch res {
	case "yes":
		if r := b.e.Save(); r != ResultOK {
			return hierarchy.SaveCancel, nil
		}
		return hierarchy.SaveYes, nil
	case "no":
		return hierarchy.SaveNo, nil
	default:
		return hierarchy.SaveCancel, nil
	}
}
