// Package editor assembles the core components into one per-window Editor
// value: the sheet, viewport, spatial index, interaction state, undo stack,
// floater cache and hierarchy navigator, plus the narrow interfaces to the
// external collaborators (parser/serializer, rendering backend, scripting
// bridge). Multiple editor windows are simply multiple Editor values.
package editor

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/floater"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/hierarchy"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/interact"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/render"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/selection"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/spatial"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/undo"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/viewport"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/xlog"
)

// Options configures a new Editor. Parser and Bridge are required; the
// remaining fields have usable defaults.
type Options struct {
	Parser  Parser
	Bridge  ScriptBridge
	Backend render.Backend
	Fetcher Fetcher

	Width, Height float64
	Snap          float64
	UndoDepth     int
}

// level is one suspended parent context kept across a hierarchy descend, so
// ascend can reinstall the exact parent sheet and its undo history.
type level struct {
	sheet *doc.Sheet
	undo  *undo.Stack
}

// Editor is the per-window world value. All mutations happen on the single
// task driving the UI loop; between suspension points (dialogs, file I/O)
// document invariants hold.
type Editor struct {
	Sheet    *doc.Sheet
	View     *viewport.Viewport
	Index    *spatial.Index
	Input    *interact.State
	Undo     *undo.Stack
	Floaters *floater.Cache
	Nav      *hierarchy.Navigator
	BBox     selection.BBoxController

	// Title, when set, is invoked with the new modified state whenever the
	// window title should change.
	Title func(modified bool)

	parser  Parser
	bridge  ScriptBridge
	backend render.Backend
	fetcher Fetcher

	levels    []level
	snap      float64
	undoDepth int

	loadedModTime time.Time
	forceSaveAs   bool

	// prevSetModify dedups window-title updates: -1 means "never shown".
	// Scoped per Editor value, one per window.
	prevSetModify int

	netlistFresh bool
}

// New builds an Editor over an empty sheet.
func New(opts Options) (*Editor, error) {
	if opts.Parser == nil {
		return nil, fmt.Errorf("editor: Options.Parser is required")
	}
	if opts.Bridge == nil {
		return nil, fmt.Errorf("editor: Options.Bridge is required")
	}
	if opts.Backend == nil {
		opts.Backend = render.NullBackend{}
	}
	if opts.Fetcher == nil {
		opts.Fetcher = httpFetcher{client: http.DefaultClient}
	}
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}
	if opts.Snap <= 0 {
		opts.Snap = 10
	}
	if opts.UndoDepth <= 0 {
		opts.UndoDepth = 32
	}

	sheet := doc.NewSheet(opts.Parser)
	e := &Editor{
		Sheet:         sheet,
		View:          viewport.New(opts.Width, opts.Height),
		Index:         spatial.New(opts.Snap),
		Input:         interact.New(),
		Floaters:      floater.New(),
		parser:        opts.Parser,
		bridge:        opts.Bridge,
		backend:       opts.Backend,
		fetcher:       opts.Fetcher,
		snap:          opts.Snap,
		undoDepth:     opts.UndoDepth,
		prevSetModify: -1,
	}
	e.Undo = undo.NewStack(sheetCodec{sheet}, opts.UndoDepth)
	e.Nav = hierarchy.New(sheetLoader{e})
	return e, nil
}

// Backend returns the rendering backend the editor draws through.
func (e *Editor) Backend() render.Backend { return e.backend }

// SetModify updates the sheet's modified flag. On a transition to modified
// it invalidates floater caches and the instance-name index (callers must
// invalidate floater caches before the next draw); the window title is
// refreshed only when the displayed state actually changes.
func (e *Editor) SetModify(modified bool) {
	e.Sheet.SetModify(modified, e.Floaters.OnModify(e.Sheet))
	if modified {
		e.netlistFresh = false
	}
	v := 0
	if modified {
		v = 1
	}
	if v != e.prevSetModify {
		e.prevSetModify = v
		if e.Title != nil {
			e.Title(modified)
		}
	}
}

// EnsureIndex rebuilds the spatial index when any freshness bit is clear;
// stale indexes are self-healing. Returns the index ready for queries.
func (e *Editor) EnsureIndex() *spatial.Index {
	if !e.Sheet.PrepHashInst || !e.Sheet.PrepHashWires {
		e.Index.Rebuild(e.Sheet)
		e.Sheet.PrepHashInst = true
		e.Sheet.PrepHashWires = true
	}
	return e.Index
}

// NetlistFresh reports whether netlist-derived caches are still valid; any
// modification clears it.
func (e *Editor) NetlistFresh() bool { return e.netlistFresh }

// MarkNetlistFresh is called by the (external) netlist emitter after it has
// recomputed its caches against the current document.
func (e *Editor) MarkNetlistFresh() { e.netlistFresh = true }

// MatchSymbol resolves name through the sheet's cache, substituting an empty
// placeholder symbol when the load fails: missing symbols are non-fatal.
func (e *Editor) MatchSymbol(name string) int {
	idx, err := e.Sheet.Symbols.MatchSymbol(name)
	if err == nil {
		return idx
	}
	xlog.Dbg(0, "xschem: symbol %s: using placeholder: %v", name, err)
	return e.Sheet.Symbols.InstallPlaceholder(name)
}

// Load replaces the editor's sheet with the schematic at path, resetting the
// undo history and remembering the file's modification time for the
// concurrent-modification check on save.
func (e *Editor) Load(path string) error {
	sheet, err := e.parser.LoadSchematic(path)
	if err != nil {
		return fmt.Errorf("editor: load %q: %w", path, err)
	}
	sheet.Path = path
	e.installSheet(sheet)
	if st, statErr := os.Stat(path); statErr == nil {
		e.loadedModTime = st.ModTime()
	} else {
		e.loadedModTime = time.Time{}
	}
	e.forceSaveAs = false
	e.prevSetModify = -1
	e.SetModify(false)
	return nil
}

func (e *Editor) installSheet(sheet *doc.Sheet) {
	e.Sheet = sheet
	e.Undo = undo.NewStack(sheetCodec{sheet}, e.undoDepth)
	e.Index.Clear()
	sheet.PrepHashInst = false
	sheet.PrepHashWires = false
	e.Floaters = floater.New()
}

// Save writes the sheet back to its own path. An empty path, a prior forced
// save-as, or a file whose mtime changed on disk since load all divert to
// the save-as dialog; the dialog's empty answer is a user cancel.
func (e *Editor) Save() Result {
	path := e.Sheet.Path
	if path == "" || e.forceSaveAs {
		return e.saveAsPrompt()
	}
	if st, err := os.Stat(path); err == nil && !e.loadedModTime.IsZero() && !st.ModTime().Equal(e.loadedModTime) {
		// Someone else wrote the file since we loaded it.
		e.forceSaveAs = true
		return e.saveAsPrompt()
	}
	return e.writeTo(path)
}

func (e *Editor) saveAsPrompt() Result {
	res, err := e.bridge.Eval("save_file_dialog " + e.Sheet.Path)
	if err != nil {
		xlog.Dbg(0, "xschem: save dialog: %v", err)
		return ResultError
	}
	if res == "" {
		return ResultCancel
	}
	return e.writeTo(res)
}

func (e *Editor) writeTo(path string) Result {
	if err := e.parser.SaveSchematic(path, e.Sheet); err != nil {
		xlog.Dbg(0, "xschem: save %s: %v", path, err)
		return ResultError
	}
	e.Sheet.Path = path
	if st, err := os.Stat(path); err == nil {
		e.loadedModTime = st.ModTime()
	}
	e.forceSaveAs = false
	e.SetModify(false)
	return ResultOK
}

// UndoOp pops the most recent snapshot and reinstalls it. A corrupted
// snapshot is the one fatal failure mode and surfaces as an error.
func (e *Editor) UndoOp() error {
	if err := e.Undo.Undo(); err != nil {
		return err
	}
	e.SetModify(true)
	return nil
}

// RedoOp re-applies the most recently undone snapshot.
func (e *Editor) RedoOp() error {
	if err := e.Undo.Redo(); err != nil {
		return err
	}
	e.SetModify(true)
	return nil
}

// Descend descends into the selected instance at instIdx (1-based
// sub-instance instNumber for multi-bit instances; 0 picks the first). The
// gesture aborts cleanly (ok=false, err=nil) on user cancel or a
// non-descendable selection.
func (e *Editor) Descend(instIdx, instNumber int) (ok bool, err error) {
	if instIdx < 0 || instIdx >= len(e.Sheet.Instances) {
		return false, nil
	}
	parent := e.Sheet
	parentUndo := e.Undo
	child, ok, err := hierarchy.Descend(e.Nav, parent, e.View, instIdx, instNumber, bridgeSaver{e})
	if err != nil || !ok {
		return ok, err
	}
	e.levels = append(e.levels, level{sheet: parent, undo: parentUndo})
	e.installSheet(child)
	e.prevSetModify = -1
	e.SetModify(false)
	return true, nil
}

// Ascend pops one hierarchy level, reinstalling the parent sheet, its undo
// history and the saved viewport. The embedded-symbol special case loads the
// symbol definition into the parent before the pop so it survives there.
func (e *Editor) Ascend() (ok bool, err error) {
	if len(e.levels) == 0 {
		return false, nil
	}
	parent := e.levels[len(e.levels)-1]

	embedLoader := func(path string) error {
		sym, loadErr := e.parser.LoadSymbol(path)
		if loadErr != nil {
			return loadErr
		}
		parent.sheet.Symbols.InstallSymbol(sym)
		return nil
	}

	ok, err = hierarchy.Ascend(e.Nav, e.Sheet, e.View, embedLoader)
	if err != nil || !ok {
		return ok, err
	}

	e.levels = e.levels[:len(e.levels)-1]
	e.Sheet = parent.sheet
	e.Undo = parent.undo
	e.Index.Clear()
	e.Sheet.PrepHashInst = false
	e.Sheet.PrepHashWires = false
	e.Floaters = floater.New()
	return true, nil
}

// PlaceWire drives the wire-placement FSM at pt with a fresh spatial index,
// invalidating netlist caches on commit.
func (e *Editor) PlaceWire(pt xgeom.Point) ([]int, error) {
	added, err := e.Input.Place(e.Sheet, e.EnsureIndex(), e.Undo, &e.BBox, pt)
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		e.SetModify(true)
	}
	return added, nil
}

// KissSelected runs the kissing-pin auto-wire pass over the current
// selection as a single undo transaction.
func (e *Editor) KissSelected() ([]spatial.KissResult, error) {
	ix := e.EnsureIndex()
	if err := e.Undo.PushUndo(); err != nil {
		return nil, err
	}
	results := spatial.AutoWireKiss(e.Sheet, ix)
	if len(results) > 0 {
		e.SetModify(true)
	}
	return results, nil
}

// AttachLabels places a label symbol on every unconnected pin of every
// selected instance, bracketed by one undo push and one bbox accumulation.
func (e *Editor) AttachLabels(textRotationDelta xgeom.Rotation, useLabWire, prefixWithInstName bool) ([]spatial.LabelPlacement, error) {
	ix := e.EnsureIndex()
	placements := spatial.AttachLabels(e.Sheet, ix, textRotationDelta, useLabWire, prefixWithInstName)
	if len(placements) == 0 {
		return nil, nil
	}

	e.Undo.BeginBatch()
	e.BBox.Start()
	for _, p := range placements {
		idx, err := e.Sheet.PlaceInstance(p.SymbolName, p.World, p.Rotation, p.Flip)
		if err != nil {
			xlog.Dbg(0, "xschem: attach label %s: %v", p.SymbolName, err)
			continue
		}
		inst := &e.Sheet.Instances[idx]
		inst.Label = p.LabelProperty
		e.BBox.Add(inst.BBox)
	}
	e.BBox.Set()
	if err := e.Undo.EndBatch(); err != nil {
		return nil, err
	}
	e.BBox.End()
	e.SetModify(true)
	return placements, nil
}

// DocumentBBox computes the bounding box of everything on the sheet.
func (e *Editor) DocumentBBox() xgeom.Rect {
	bb := xgeom.EmptyRect()
	for i := range e.Sheet.Instances {
		bb.ExpandRect(e.Sheet.Instances[i].BBox)
	}
	for _, w := range e.Sheet.Wires {
		bb.Expand(w.Start)
		bb.Expand(w.End)
	}
	for _, t := range e.Sheet.Texts {
		bb.Expand(xgeom.Point{X: t.X, Y: t.Y})
	}
	for _, items := range e.Sheet.Geometry {
		for i := range items {
			bb.ExpandRect(geometryBBox(&items[i]))
		}
	}
	return bb
}

func geometryBBox(g *doc.GeometryItem) xgeom.Rect {
	switch g.Kind {
	case doc.GeomLine:
		bb := xgeom.EmptyRect()
		bb.Expand(xgeom.Point{X: g.Line.X1, Y: g.Line.Y1})
		bb.Expand(xgeom.Point{X: g.Line.X2, Y: g.Line.Y2})
		return bb
	case doc.GeomRect:
		return g.RectG.Rect.Normalize()
	case doc.GeomArc:
		bb := xgeom.EmptyRect()
		bb.Expand(xgeom.Point{X: g.ArcG.Center.X - g.ArcG.Radius, Y: g.ArcG.Center.Y - g.ArcG.Radius})
		bb.Expand(xgeom.Point{X: g.ArcG.Center.X + g.ArcG.Radius, Y: g.ArcG.Center.Y + g.ArcG.Radius})
		return bb
	case doc.GeomPolygon:
		return g.Poly.BoundingBox()
	default:
		return xgeom.EmptyRect()
	}
}

// ZoomFull fits the viewport to the whole document (or, when selectedOnly is
// set, to the selection bounding box) and rescales the line width.
func (e *Editor) ZoomFull(flags viewport.FitFlags, selectedOnly bool) {
	var bb xgeom.Rect
	if selectedOnly {
		bb = selection.BoundingBox(e.Sheet)
	} else {
		bb = e.DocumentBBox()
	}
	if bb.IsEmpty() {
		return
	}
	e.View.ZoomToFit(bb, 0, flags)
	e.View.ChangeLineWidth(-1)
}

// Preference reads a named user preference through the scripting bridge.
func (e *Editor) Preference(name string) string {
	res, err := e.bridge.Eval("get_pref " + name)
	if err != nil {
		xlog.Dbg(2, "xschem: get_pref %s: %v", name, err)
		return ""
	}
	return res
}

// SetPreference writes a named user preference through the scripting bridge.
func (e *Editor) SetPreference(name, value string) {
	if _, err := e.bridge.Eval("set_pref " + name + " " + value); err != nil {
		xlog.Dbg(2, "xschem: set_pref %s: %v", name, err)
	}
}
