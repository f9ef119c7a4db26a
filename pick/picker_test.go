package pick

import (
	"errors"
	"testing"

	"github.com/seqsense/pcdpicker/input"
	"github.com/seqsense/pcdpicker/scene"
	"github.com/seqsense/pcgol/mat"
)

type recorder struct {
	hovers []*Result
	picks  []*Result
}

func (r *recorder) OnHover(res *Result) { r.hovers = append(r.hovers, res) }
func (r *recorder) OnPick(res *Result)  { r.picks = append(r.picks, res) }

// testScene has a unit cube at the origin and a point cloud behind it.
func testScene() (*scene.Node, *scene.Node, *scene.Node) {
	root := scene.NewScene()
	cube := scene.NewNode(scene.TypeMesh, "cube")
	cube.Mesh = scene.NewBoxMesh(1, 1, 1)
	cloud := scene.NewNode(scene.TypePoints, "cloud")
	cloud.Meta.PointCloud = true
	if err := cloud.SetPointSlice([]mat.Vec3{{0, 0, 2}, {1, 1, 0}}); err != nil {
		panic(err)
	}
	root.Add(cube, cloud)
	return root, cube, cloud
}

// newTestPicker returns a picker on a 100x100 element looking at testScene.
func newTestPicker(t *testing.T, opts ...Option) (*Picker, *input.Element, *recorder) {
	t.Helper()
	el := input.NewElement(input.Rect{Width: 100, Height: 100})
	rec := &recorder{}
	p, err := New(el, newTestCamera(), append([]Option{WithObserver(rec)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	root, _, _ := testScene()
	p.AttachScene(root)
	return p, el, rec
}

func pointer(typ input.EventType, id int, x, y float32) input.PointerEvent {
	return input.PointerEvent{Type: typ, PointerID: id, ClientX: x, ClientY: y}
}

func TestNew(t *testing.T) {
	el := input.NewElement(input.Rect{Width: 1, Height: 1})
	cam := newTestCamera()

	if _, err := New(nil, cam); !errors.Is(err, ErrNoElement) {
		t.Errorf("Expected %v, got %v", ErrNoElement, err)
	}
	if _, err := New(el, nil); !errors.Is(err, ErrNoCamera) {
		t.Errorf("Expected %v, got %v", ErrNoCamera, err)
	}

	p, err := New(el, cam)
	if err != nil {
		t.Fatal(err)
	}
	if p.devicePixelRatio != 1 {
		t.Errorf("Expected default device pixel ratio 1, got %f", p.devicePixelRatio)
	}
	if n := el.Listeners(input.EventPointerMove); n != 1 {
		t.Errorf("Expected 1 pointermove listener, got %d", n)
	}
	if n := el.Listeners(input.EventPointerDown); n != 1 {
		t.Errorf("Expected 1 pointerdown listener, got %d", n)
	}
	if n := el.Listeners(input.EventPointerUp); n != 0 {
		t.Errorf("Expected no pointerup listener, got %d", n)
	}

	p2, err := New(el, cam, WithDevicePixelRatio(2))
	if err != nil {
		t.Fatal(err)
	}
	if p2.devicePixelRatio != 2 {
		t.Errorf("Expected device pixel ratio 2, got %f", p2.devicePixelRatio)
	}
}

func TestPicker_Hover(t *testing.T) {
	p, el, rec := newTestPicker(t)

	el.Dispatch(pointer(input.EventPointerMove, 1, 50, 50))
	el.Dispatch(pointer(input.EventPointerMove, 1, 0, 0))
	p.DetachScene()
	el.Dispatch(pointer(input.EventPointerMove, 1, 50, 50))

	if len(rec.hovers) != 3 {
		t.Fatalf("Expected 3 hover callbacks, got %d", len(rec.hovers))
	}
	if rec.hovers[0] == nil || rec.hovers[0].Object.Name != "cube" {
		t.Errorf("Expected cube, got %v", rec.hovers[0])
	}
	if rec.hovers[1] != nil {
		t.Errorf("Expected nil for empty space, got %v", rec.hovers[1])
	}
	if rec.hovers[2] != nil {
		t.Errorf("Expected nil without scene, got %v", rec.hovers[2])
	}
	if len(rec.picks) != 0 {
		t.Errorf("Hover must not pick, got %d picks", len(rec.picks))
	}
	if p.Target() != nil {
		t.Errorf("Expected target to be cleared, got %v", p.Target())
	}
}

func TestPicker_ClickAndDrag(t *testing.T) {
	testCases := map[string]struct {
		down, up [2]float32
		picks    int
		object   string
	}{
		"Click": {
			down:   [2]float32{50, 50},
			up:     [2]float32{50, 50},
			picks:  1,
			object: "cube",
		},
		"ClickEmptySpace": {
			down:  [2]float32{0, 0},
			up:    [2]float32{0, 0},
			picks: 1,
		},
		"Drag": {
			down: [2]float32{50, 50},
			up:   [2]float32{50, 51},
		},
		"DragBack": {
			down: [2]float32{10, 10},
			up:   [2]float32{50, 50},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			p, el, rec := newTestPicker(t)

			el.Dispatch(pointer(input.EventPointerDown, 1, tt.down[0], tt.down[1]))
			if n := el.Listeners(input.EventPointerUp); n != 1 {
				t.Fatalf("Expected pointerup listener during press, got %d", n)
			}
			if !p.Pressed(1) {
				t.Error("Pointer must be pressed")
			}
			el.Dispatch(pointer(input.EventPointerMove, 1, tt.up[0], tt.up[1]))
			el.Dispatch(pointer(input.EventPointerUp, 1, tt.up[0], tt.up[1]))

			if n := el.Listeners(input.EventPointerUp); n != 0 {
				t.Errorf("Expected pointerup listener to be removed, got %d", n)
			}
			if p.Pressed(1) {
				t.Error("Pointer must be released")
			}
			if len(rec.picks) != tt.picks {
				t.Fatalf("Expected %d picks, got %d", tt.picks, len(rec.picks))
			}
			if len(rec.hovers) != 1 {
				t.Errorf("Expected hover regardless of press, got %d", len(rec.hovers))
			}
			if tt.picks == 0 {
				return
			}
			res := rec.picks[0]
			if tt.object == "" {
				if res != nil {
					t.Errorf("Expected nil pick, got %v", res)
				}
				return
			}
			if res == nil || res.Object.Name != tt.object {
				t.Fatalf("Expected %s, got %v", tt.object, res)
			}
			if res.Point.Sub(mat.Vec3{0, 0, 0.5}).Norm() > 1e-4 {
				t.Errorf("Expected (0, 0, 0.5), got %v", res.Point)
			}
			if p.Target() != res {
				t.Error("Target must be the last pick")
			}

			el.Dispatch(pointer(input.EventPointerUp, 1, tt.up[0], tt.up[1]))
			if len(rec.picks) != tt.picks {
				t.Error("Pointerup without press must not pick")
			}
		})
	}
}

func TestPicker_Sessions(t *testing.T) {
	p, el, rec := newTestPicker(t)

	el.Dispatch(pointer(input.EventPointerDown, 1, 50, 50))
	el.Dispatch(pointer(input.EventPointerDown, 2, 10, 10))
	if n := el.Listeners(input.EventPointerUp); n != 2 {
		t.Fatalf("Expected 2 pointerup listeners, got %d", n)
	}

	el.Dispatch(pointer(input.EventPointerUp, 2, 20, 20))
	if len(rec.picks) != 0 {
		t.Fatalf("Drag of pointer 2 must not pick, got %d", len(rec.picks))
	}
	if !p.Pressed(1) || p.Pressed(2) {
		t.Error("Only pointer 1 must stay pressed")
	}
	if n := el.Listeners(input.EventPointerUp); n != 1 {
		t.Fatalf("Expected 1 pointerup listener, got %d", n)
	}

	el.Dispatch(pointer(input.EventPointerUp, 1, 50, 50))
	if len(rec.picks) != 1 || rec.picks[0] == nil || rec.picks[0].Object.Name != "cube" {
		t.Fatalf("Expected pointer 1 to pick cube, got %v", rec.picks)
	}
	if n := el.Listeners(input.EventPointerUp); n != 0 {
		t.Errorf("Expected no pointerup listener, got %d", n)
	}
}

func TestPicker_RepeatedDown(t *testing.T) {
	_, el, rec := newTestPicker(t)

	el.Dispatch(pointer(input.EventPointerDown, 1, 10, 10))
	el.Dispatch(pointer(input.EventPointerDown, 1, 50, 50))
	if n := el.Listeners(input.EventPointerUp); n != 1 {
		t.Fatalf("Expected previous pointerup listener to be replaced, got %d", n)
	}

	el.Dispatch(pointer(input.EventPointerUp, 1, 50, 50))
	if len(rec.picks) != 1 {
		t.Fatalf("Expected 1 pick from the restarted press, got %d", len(rec.picks))
	}
}

func TestPicker_NoObserver(t *testing.T) {
	el := input.NewElement(input.Rect{Width: 100, Height: 100})
	p, err := New(el, newTestCamera())
	if err != nil {
		t.Fatal(err)
	}
	root, _, _ := testScene()
	p.AttachScene(root)

	el.Dispatch(pointer(input.EventPointerMove, 1, 50, 50))
	el.Dispatch(pointer(input.EventPointerDown, 1, 50, 50))
	el.Dispatch(pointer(input.EventPointerUp, 1, 50, 50))
	if n := el.Listeners(input.EventPointerUp); n != 0 {
		t.Errorf("Expected pointerup listener to be removed, got %d", n)
	}

	var picked []*Result
	p.SetObserver(ObserverFuncs{Pick: func(r *Result) { picked = append(picked, r) }})
	el.Dispatch(pointer(input.EventPointerMove, 1, 50, 50))
	el.Dispatch(pointer(input.EventPointerDown, 1, 50, 50))
	el.Dispatch(pointer(input.EventPointerUp, 1, 50, 50))
	if len(picked) != 1 || picked[0] == nil {
		t.Errorf("Expected 1 pick, got %v", picked)
	}
}

func TestPicker_ZeroAreaViewport(t *testing.T) {
	p, el, rec := newTestPicker(t)
	el.SetRect(input.Rect{})

	el.Dispatch(pointer(input.EventPointerMove, 1, 0, 0))
	el.Dispatch(pointer(input.EventPointerDown, 1, 0, 0))
	el.Dispatch(pointer(input.EventPointerUp, 1, 0, 0))

	if len(rec.hovers) != 1 || rec.hovers[0] != nil {
		t.Errorf("Expected nil hover, got %v", rec.hovers)
	}
	if len(rec.picks) != 0 {
		t.Errorf("Expected no pick, got %v", rec.picks)
	}
	if n := el.Listeners(input.EventPointerUp); n != 0 {
		t.Errorf("Expected pointerup listener to be removed, got %d", n)
	}
	if p.Target() != nil {
		t.Errorf("Expected nil target, got %v", p.Target())
	}
}

func TestPicker_Close(t *testing.T) {
	p, el, rec := newTestPicker(t)

	el.Dispatch(pointer(input.EventPointerDown, 1, 50, 50))
	p.Close()

	for _, typ := range []input.EventType{input.EventPointerMove, input.EventPointerDown, input.EventPointerUp} {
		if n := el.Listeners(typ); n != 0 {
			t.Errorf("Expected no %s listener after Close, got %d", typ, n)
		}
	}

	el.Dispatch(pointer(input.EventPointerMove, 1, 50, 50))
	el.Dispatch(pointer(input.EventPointerUp, 1, 50, 50))
	if len(rec.hovers) != 0 || len(rec.picks) != 0 {
		t.Errorf("Closed picker must not report, got %d hovers and %d picks", len(rec.hovers), len(rec.picks))
	}
}

func TestPicker_Intersect(t *testing.T) {
	cam := newTestCamera()
	el := input.NewElement(input.Rect{Width: 100, Height: 100})
	p, err := New(el, cam)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if res := p.Intersect(NDC{0, 0}); res != nil {
		t.Errorf("Expected nil without scene, got %v", res)
	}

	root, cube, cloud := testScene()
	p.AttachScene(root)

	t.Run("MeshBeforePointCloud", func(t *testing.T) {
		// The point at (0, 0, 2) is in front of the cube on the same ray.
		res := p.Intersect(NDC{0, 0})
		if res == nil || res.Object != cube {
			t.Fatalf("Expected cube, got %v", res)
		}
	})
	t.Run("PointCloudFallback", func(t *testing.T) {
		// (1, 1, 0) seen from (0, 0, 5) with 90 degrees fov
		res := p.Intersect(NDC{0.2, 0.2})
		if res == nil || res.Object != cloud {
			t.Fatalf("Expected cloud, got %v", res)
		}
		if res.Point.Sub(mat.Vec3{1, 1, 0}).Norm() > 1e-4 {
			t.Errorf("Expected (1, 1, 0), got %v", res.Point)
		}
	})
	t.Run("SelectParent", func(t *testing.T) {
		group := scene.NewNode(scene.TypeGroup, "robot")
		root.Add(group)
		cube.Meta.SelectParent = group
		defer func() { cube.Meta.SelectParent = nil }()

		res := p.Intersect(NDC{0, 0})
		if res == nil || res.Object != group {
			t.Fatalf("Expected select parent, got %v", res)
		}
		if res.Point.Sub(mat.Vec3{0, 0, 0.5}).Norm() > 1e-4 {
			t.Errorf("Expected the hit point (0, 0, 0.5), got %v", res.Point)
		}
	})
	t.Run("SelectParentOfPointCloud", func(t *testing.T) {
		group := scene.NewNode(scene.TypeGroup, "map")
		root.Add(group)
		cloud.Meta.SelectParent = group
		defer func() { cloud.Meta.SelectParent = nil }()

		res := p.Intersect(NDC{0.2, 0.2})
		if res == nil || res.Object != group {
			t.Fatalf("Expected select parent, got %v", res)
		}
		if res.Point.Sub(mat.Vec3{1, 1, 0}).Norm() > 1e-4 {
			t.Errorf("Expected the hit point (1, 1, 0), got %v", res.Point)
		}
	})
	t.Run("DetachScene", func(t *testing.T) {
		p.DetachScene()
		defer p.AttachScene(root)
		if res := p.Intersect(NDC{0, 0}); res != nil {
			t.Errorf("Expected nil, got %v", res)
		}
	})
}
