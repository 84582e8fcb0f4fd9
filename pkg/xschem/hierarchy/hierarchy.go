// Package hierarchy implements the descend/ascend navigation stack: per
// level port-map construction, hilight propagation, and the embedded-symbol
// special case on ascend.
package hierarchy

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/xschem-go/pkg/xschem/attr"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/spatial"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/viewport"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/xhash"
)

// SaveResult is the tri-state save-dialog result.
type SaveResult int

const (
	SaveYes SaveResult = iota
	SaveNo
	SaveCancel
)

// SaveRequester is the narrow collaborator asked to save (or decline to
// save) a modified sheet before descending, routed through the embedded
// scripting bridge in the real system.
type SaveRequester interface {
	RequestSave(sheet *doc.Sheet) (SaveResult, error)
}

// SheetLoader loads a child sheet by filename through the external
// parser.
type SheetLoader interface {
	LoadSchematic(path string) (*doc.Sheet, error)
}

// PortMap maps a child-sheet pin name to the parent-sheet net name it is
// wired to at this hierarchy level.
type PortMap map[string]string

// Frame is one level of the descend stack.
type Frame struct {
	SheetPath           string
	Zoom                viewport.Saved
	ParentInstanceIndex int
	PortMap             PortMap
	// ParentAttrSnapshot is the parent instance's attribute string at
	// descend time, kept for hilight propagation back up on ascend.
	ParentAttrSnapshot string
	// ParentTemplate is the base symbol's "template" attribute, carried the
	// same way xctx->hier_attr[].templ is.
	ParentTemplate string
}

// Navigator owns the descend stack; the stack has no depth limit. Frame 0 is always the root
// (conceptually "no frame pushed yet"); Navigator.frames holds only the
// pushed (non-root) frames, so Depth()==0 means "at the root sheet".
type Navigator struct {
	frames []Frame
	loader SheetLoader
}

// New creates a Navigator backed by loader.
func New(loader SheetLoader) *Navigator {
	return &Navigator{loader: loader}
}

// Depth reports how many levels below the root the navigator currently is.
func (n *Navigator) Depth() int { return len(n.frames) }

// CurrentFrame returns the top-of-stack frame, or false at the root.
func (n *Navigator) CurrentFrame() (*Frame, bool) {
	if len(n.frames) == 0 {
		return nil, false
	}
	return &n.frames[len(n.frames)-1], true
}

// ChildFilename computes the child sheet filename for inst: the instance's
// schematic= override (with @symname substituted) if present, else
// "<symbolname>.sch".
func ChildFilename(inst *doc.Instance, sym *symbol.Symbol) string {
	if ref, ok := symbol.ResolveSchematicRef(inst.Properties, sym.Name); ok {
		return ref
	}
	return symbol.DefaultChildFilename(sym.Name)
}

// Descendable reports whether sym is a type the navigator may descend
// into: "subcircuit" or "primitive" only.
func Descendable(sym *symbol.Symbol) bool {
	return sym.Type == "subcircuit" || sym.Type == "primitive"
}

// ExpandMultiplier expands inst.InstanceName (e.g. "U0[3:0]") into its
// per-bit list and reports the multiplicity.
func ExpandMultiplier(instanceName string) (expanded string, mult int) {
	if instanceName == "" {
		return "", 1
	}
	return xhash.ExpandLabel(instanceName)
}

// BuildPortMap constructs the child frame's pin->net map for the given
// sub-instance number (1-based): each symbol pin's name and
// the instance's corresponding net-name entry are both bus-expanded, then
// zipped per the chosen sub-instance index, with auto-generated "#"-prefixed
// net names suffixed "[index]" for multi-bit instances.
func BuildPortMap(sym *symbol.Symbol, inst *doc.Instance, instNumber, instMult int) PortMap {
	pm := make(PortMap, len(sym.Pins))
	for i, pin := range sym.Pins {
		if pin.Name == "" || i >= len(inst.NetNames) || inst.NetNames[i] == "" {
			continue
		}
		pinExpanded, pinMult := xhash.ExpandLabel(pin.Name)
		netExpanded, netMult := xhash.ExpandLabel(inst.NetNames[i])
		if netMult == 0 {
			netMult = 1
		}

		for k := 1; k <= pinMult; k++ {
			singlePin := xhash.FindNth(pinExpanded, ",", k)
			netPos := ((instNumber-1)*pinMult+k-1)%netMult + 1
			singleNet := xhash.FindNth(netExpanded, ",", netPos)
			if singleNet == "" {
				continue
			}
			if strings.HasPrefix(singleNet, "#") {
				if pinMult > 1 {
					idx := (instMult-instNumber+1)*pinMult - k
					singleNet = fmt.Sprintf("%s[%d]", singleNet[1:], idx)
				} else {
					singleNet = singleNet[1:]
				}
			}
			pm[singlePin] = singleNet
		}
	}
	return pm
}

// Descend enters the selected instance's child sheet. saver is consulted only
// when sheet.Modified; a SaveCancel result aborts the gesture (returns
// ok=false, err=nil). instNumber is 1-based; pass 0 to mean "the only
// sub-instance" when inst isn't a multi-bit instance.
func Descend(n *Navigator, sheet *doc.Sheet, vp *viewport.Viewport, instIdx int, instNumber int, saver SaveRequester) (child *doc.Sheet, ok bool, err error) {
	inst := &sheet.Instances[instIdx]
	sym, resolvedOK := sheet.Symbols.Resolve(inst.SymbolIndex)
	if !resolvedOK || !Descendable(sym) {
		return nil, false, nil
	}

	if sheet.Modified {
		result, saveErr := saver.RequestSave(sheet)
		if saveErr != nil {
			return nil, false, fmt.Errorf("hierarchy: descend: save: %w", saveErr)
		}
		if result == SaveCancel {
			return nil, false, nil
		}
	}

	_, instMult := ExpandMultiplier(inst.InstanceName)
	if instNumber < 1 || instNumber > instMult {
		instNumber = 1
	}

	portMap := BuildPortMap(sym, inst, instNumber, instMult)

	frame := Frame{
		SheetPath:           ChildFilename(inst, sym),
		Zoom:                vp.Save(),
		ParentInstanceIndex: instIdx,
		PortMap:             portMap,
		ParentAttrSnapshot:  inst.Properties,
		ParentTemplate:      attr.Get(sym.Attributes, "template"),
	}

	child, loadErr := n.loader.LoadSchematic(frame.SheetPath)
	if loadErr != nil {
		return nil, false, fmt.Errorf("hierarchy: descend: load %q: %w", frame.SheetPath, loadErr)
	}

	n.frames = append(n.frames, frame)

	for _, netName := range portMap {
		spatial.HilightNet(child, netName)
	}

	return child, true, nil
}

// embeddedMarker is the filename substring that flags an embedded symbol
// definition.
const embeddedMarker = ".xschem_embedded_"

// Ascend pops the current frame, restoring the parent's viewport. If the
// sheet being left is an embedded symbol definition (its path contains
// ".xschem_embedded_"), embedLoader is invoked to load the symbol
// definition before the pop so it survives in the parent; pass a nil
// embedLoader when this path never occurs for a given sheet.
func Ascend(n *Navigator, current *doc.Sheet, vp *viewport.Viewport, embedLoader func(path string) error) (ok bool, err error) {
	if len(n.frames) == 0 {
		return false, nil
	}
	frame := n.frames[len(n.frames)-1]

	if embedLoader != nil && strings.Contains(current.Path, embeddedMarker) {
		if err := embedLoader(current.Path); err != nil {
			return false, fmt.Errorf("hierarchy: ascend: embedded symbol load: %w", err)
		}
	}

	n.frames = n.frames[:len(n.frames)-1]
	vp.Restore(frame.Zoom)
	return true, nil
}
