package scene

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/seqsense/pcdpicker/bvh"
	"github.com/seqsense/pcdpicker/geom"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"gopkg.in/yaml.v3"
)

const (
	defaultFov              = 60
	defaultNear             = 0.1
	defaultFar              = 1000
	defaultDevicePixelRatio = 1
)

var (
	ErrUnknownNodeType   = errors.New("unknown node type")
	ErrUnknownProjection = errors.New("unknown projection type")
	ErrUnknownSide       = errors.New("unknown side")
	ErrSelectParent      = errors.New("select parent not found")
	ErrVectorSize        = errors.New("invalid vector size")
	ErrViewport          = errors.New("viewport must have positive size")
)

// Viewport is the on-screen rectangle of the rendering surface in CSS pixels.
type Viewport struct {
	Left   float32 `yaml:"left"`
	Top    float32 `yaml:"top"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Document is a loaded scene file.
type Document struct {
	Root             *Node
	Camera           *Camera
	Viewport         Viewport
	DevicePixelRatio float32
}

type document struct {
	Camera           cameraConfig `yaml:"camera"`
	Viewport         Viewport     `yaml:"viewport"`
	DevicePixelRatio float32      `yaml:"device_pixel_ratio"`
	Nodes            []nodeConfig `yaml:"nodes"`
}

type cameraConfig struct {
	Type   string    `yaml:"type"`
	Fov    float32   `yaml:"fov"`
	Aspect float32   `yaml:"aspect"`
	Near   float32   `yaml:"near"`
	Far    float32   `yaml:"far"`
	Left   float32   `yaml:"left"`
	Right  float32   `yaml:"right"`
	Top    float32   `yaml:"top"`
	Bottom float32   `yaml:"bottom"`
	Eye    []float32 `yaml:"eye"`
	Target []float32 `yaml:"target"`
	Up     []float32 `yaml:"up"`
}

type rotationConfig struct {
	Axis  []float32 `yaml:"axis"`
	Angle float32   `yaml:"angle"`
}

type nodeConfig struct {
	Name         string          `yaml:"name"`
	Type         string          `yaml:"type"`
	Visible      *bool           `yaml:"visible"`
	Selectable   *bool           `yaml:"selectable"`
	PointCloud   bool            `yaml:"point_cloud"`
	SelectParent string          `yaml:"select_parent"`
	Position     []float32       `yaml:"position"`
	Rotation     *rotationConfig `yaml:"rotation"`
	Scale        []float32       `yaml:"scale"`
	Side         string          `yaml:"side"`
	Box          []float32       `yaml:"box"`
	Plane        []float32       `yaml:"plane"`
	Vertices     [][]float32     `yaml:"vertices"`
	Indices      []int           `yaml:"indices"`
	PCD          string          `yaml:"pcd"`
	Points       [][]float32     `yaml:"points"`
	PointSize    float32         `yaml:"point_size"`
	LeafSize     int             `yaml:"leaf_size"`
	Children     []nodeConfig    `yaml:"children"`
}

// LoadFile reads a YAML scene file.
// Point cloud paths are resolved relative to the file.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, filepath.Dir(path))
}

// Load decodes a YAML scene. dir is used to resolve relative point cloud paths.
func Load(r io.Reader, dir string) (*Document, error) {
	var d document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if d.Viewport.Width <= 0 || d.Viewport.Height <= 0 {
		return nil, ErrViewport
	}
	if d.DevicePixelRatio <= 0 {
		d.DevicePixelRatio = defaultDevicePixelRatio
	}

	cam, err := d.Camera.build(d.Viewport)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	root := NewScene()
	l := &loader{dir: dir}
	for i := range d.Nodes {
		n, err := l.build(&d.Nodes[i])
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	for _, ref := range l.parents {
		p := root.FindByName(ref.name)
		if p == nil {
			return nil, fmt.Errorf("node %q: %w: %q", ref.node.Name, ErrSelectParent, ref.name)
		}
		ref.node.Meta.SelectParent = p
	}

	return &Document{
		Root:             root,
		Camera:           cam,
		Viewport:         d.Viewport,
		DevicePixelRatio: d.DevicePixelRatio,
	}, nil
}

func (c *cameraConfig) build(vp Viewport) (*Camera, error) {
	near, far := c.Near, c.Far
	if near <= 0 {
		near = defaultNear
	}
	if far <= 0 {
		far = defaultFar
	}

	var cam *Camera
	switch c.Type {
	case "", "perspective":
		fov := c.Fov
		if fov <= 0 {
			fov = defaultFov
		}
		aspect := c.Aspect
		if aspect <= 0 {
			aspect = vp.Width / vp.Height
		}
		cam = NewPerspectiveCamera(fov*math.Pi/180, aspect, near, far)
	case "orthographic":
		cam = NewOrthographicCamera(c.Left, c.Right, c.Top, c.Bottom, near, far)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjection, c.Type)
	}

	if c.Eye != nil {
		eye, err := vec3(c.Eye, mat.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("eye: %w", err)
		}
		target, err := vec3(c.Target, mat.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("target: %w", err)
		}
		up, err := vec3(c.Up, mat.Vec3{0, 1, 0})
		if err != nil {
			return nil, fmt.Errorf("up: %w", err)
		}
		cam.LookAt(eye, target, up)
	}
	return cam, nil
}

type loader struct {
	dir     string
	// parents lists select parent references in document order.
	parents []parentRef
}

type parentRef struct {
	node *Node
	name string
}

func (l *loader) build(c *nodeConfig) (*Node, error) {
	typ, err := nodeType(c)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", c.Name, err)
	}
	n := NewNode(typ, c.Name)
	if c.Visible != nil {
		n.Visible = *c.Visible
	}
	if c.Selectable != nil {
		n.Meta.Selectable = *c.Selectable
	}
	n.Meta.PointCloud = c.PointCloud
	if c.SelectParent != "" {
		l.parents = append(l.parents, parentRef{node: n, name: c.SelectParent})
	}

	if n.Position, err = vec3(c.Position, mat.Vec3{}); err != nil {
		return nil, fmt.Errorf("node %q position: %w", c.Name, err)
	}
	if n.Scale, err = vec3(c.Scale, mat.Vec3{1, 1, 1}); err != nil {
		return nil, fmt.Errorf("node %q scale: %w", c.Name, err)
	}
	if c.Rotation != nil {
		axis, err := vec3(c.Rotation.Axis, mat.Vec3{0, 0, 1})
		if err != nil {
			return nil, fmt.Errorf("node %q rotation: %w", c.Name, err)
		}
		n.Rotation = Rotation{Axis: axis, Angle: c.Rotation.Angle * math.Pi / 180}
	}

	if err := l.buildGeometry(n, c); err != nil {
		return nil, fmt.Errorf("node %q: %w", c.Name, err)
	}

	for i := range c.Children {
		child, err := l.build(&c.Children[i])
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func (l *loader) buildGeometry(n *Node, c *nodeConfig) error {
	side, err := parseSide(c.Side)
	if err != nil {
		return err
	}
	switch {
	case c.Box != nil:
		s, err := vec3(c.Box, mat.Vec3{})
		if err != nil {
			return err
		}
		n.Mesh = NewBoxMesh(s[0], s[1], s[2])
	case c.Plane != nil:
		if len(c.Plane) != 2 {
			return ErrVectorSize
		}
		n.Mesh = NewPlaneMesh(c.Plane[0], c.Plane[1])
	case c.Vertices != nil:
		m := &Mesh{Indices: c.Indices}
		for _, v := range c.Vertices {
			vv, err := vec3(v, mat.Vec3{})
			if err != nil {
				return err
			}
			m.Vertices = append(m.Vertices, vv)
		}
		if err := m.Validate(); err != nil {
			return err
		}
		n.Mesh = m
	}
	if n.Mesh != nil {
		n.Mesh.Side = side
	}

	var opts []bvh.Option
	if c.LeafSize > 0 {
		opts = append(opts, bvh.WithMaxLeafPoints(c.LeafSize))
	}
	n.PointSize = c.PointSize
	switch {
	case c.PCD != "":
		pp, err := l.readPCD(c.PCD)
		if err != nil {
			return err
		}
		if err := n.SetPoints(pp, opts...); err != nil {
			return fmt.Errorf("indexing %s: %w", c.PCD, err)
		}
	case c.Points != nil:
		vs := make([]mat.Vec3, 0, len(c.Points))
		for _, p := range c.Points {
			v, err := vec3(p, mat.Vec3{})
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		if err := n.SetPointSlice(vs, opts...); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) readPCD(path string) (*pc.PointCloud, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pp, err := pc.Unmarshal(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return pp, nil
}

func nodeType(c *nodeConfig) (Type, error) {
	switch c.Type {
	case "group":
		return TypeGroup, nil
	case "mesh":
		return TypeMesh, nil
	case "points":
		return TypePoints, nil
	case "":
		switch {
		case c.Box != nil || c.Plane != nil || c.Vertices != nil:
			return TypeMesh, nil
		case c.PCD != "" || c.Points != nil:
			return TypePoints, nil
		default:
			return TypeGroup, nil
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNodeType, c.Type)
	}
}

func parseSide(s string) (geom.Side, error) {
	switch s {
	case "", "front":
		return geom.FrontSide, nil
	case "back":
		return geom.BackSide, nil
	case "double":
		return geom.DoubleSide, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSide, s)
	}
}

func vec3(v []float32, def mat.Vec3) (mat.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mat.Vec3{v[0], v[1], v[2]}, nil
	default:
		return mat.Vec3{}, ErrVectorSize
	}
}
