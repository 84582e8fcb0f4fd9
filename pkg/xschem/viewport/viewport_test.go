package viewport

import (
	"testing"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
)

func TestZoomInOutRoundTrip(t *testing.T) {
	v := New(1000, 500)
	v.UnzoomNoDrift = true
	cursor := xgeom.Point{X: 37, Y: -12}

	origX, origY, origZoom := v.XOrigin, v.YOrigin, v.Zoom

	v.ZoomIn(cursor, 2)
	v.ZoomOut(cursor, 2)

	const eps = 1e-9
	if diff := v.XOrigin - origX; diff > eps || diff < -eps {
		t.Errorf("XOrigin drifted: got %v want %v", v.XOrigin, origX)
	}
	if diff := v.YOrigin - origY; diff > eps || diff < -eps {
		t.Errorf("YOrigin drifted: got %v want %v", v.YOrigin, origY)
	}
	if diff := v.Zoom - origZoom; diff > eps || diff < -eps {
		t.Errorf("Zoom drifted: got %v want %v", v.Zoom, origZoom)
	}
}

func TestZoomToFitScenario(t *testing.T) {
	v := New(1000, 500)
	bbox := xgeom.Rect{X1: 0, Y1: 0, X2: 100, Y2: 50}
	v.ZoomToFit(bbox, 1.0, 0)

	const want = 0.1
	const eps = 1e-12
	if diff := v.Zoom - want; diff > eps || diff < -eps {
		t.Errorf("Zoom = %v, want %v", v.Zoom, want)
	}
}

func TestZoomInRespectsMinZoom(t *testing.T) {
	v := New(100, 100)
	v.Zoom = minZoom / 2
	before := v.Zoom
	v.ZoomIn(xgeom.Point{}, 2)
	if v.Zoom != before {
		t.Errorf("ZoomIn should be a no-op below minZoom, got %v", v.Zoom)
	}
}

func TestSaveRestore(t *testing.T) {
	v := New(800, 600)
	v.XOrigin, v.YOrigin, v.Zoom = 5, 6, 2
	saved := v.Save()

	v.ZoomIn(xgeom.Point{X: 1, Y: 1}, 3)
	v.Restore(saved)

	if v.XOrigin != 5 || v.YOrigin != 6 || v.Zoom != 2 {
		t.Errorf("Restore did not reinstall saved state: %+v", v)
	}
	if v.Mooz != 0.5 {
		t.Errorf("Mooz = %v, want 0.5", v.Mooz)
	}
}
