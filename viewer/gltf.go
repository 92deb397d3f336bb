package viewer

import (
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

const (
	// maxAssetSize bounds the bytes read from a single asset.
	maxAssetSize = 256 << 20
	maxNodeDepth = 64
)

// ErrNoGeometry is returned when a document has no POSITION accessor with
// min/max bounds.
var ErrNoGeometry = errors.New("gltf: no bounded POSITION accessor")

// LoadBounds reads a glTF asset, either the binary container (.glb) or the
// plain JSON form (.gltf), and computes its bounding info from the POSITION
// accessors' min/max, transformed by the default scene's node hierarchy.
// Buffers referenced by external URIs are not supported.
func LoadBounds(r io.Reader) LoadResult {
	var doc gltf.Document
	if err := gltf.NewDecoder(io.LimitReader(r, maxAssetSize)).Decode(&doc); err != nil {
		return Failed{Reason: ReasonInvalidAsset, Err: errors.Wrap(err, "gltf: decoding asset")}
	}
	box, err := documentBounds(&doc)
	if err != nil {
		return Failed{Reason: ReasonInvalidAsset, Err: err}
	}
	return Loaded{Bounds: NewBoundingInfo(box)}
}

func documentBounds(doc *gltf.Document) (Box, error) {
	box := EmptyBox()
	if len(doc.Nodes) == 0 {
		for i := range doc.Meshes {
			box = box.Union(meshBox(doc, i))
		}
	} else {
		for _, n := range roots(doc) {
			box = box.Union(nodeBox(doc, n, mgl64.Ident4(), 0))
		}
	}
	if box.IsEmpty() {
		return box, ErrNoGeometry
	}
	return box, nil
}

// meshBox returns the local bounds of a mesh.
func meshBox(doc *gltf.Document, i int) Box {
	box := EmptyBox()
	if i < 0 || i >= len(doc.Meshes) || doc.Meshes[i] == nil {
		return box
	}
	for _, p := range doc.Meshes[i].Primitives {
		if p == nil {
			continue
		}
		idx, ok := p.Attributes["POSITION"]
		if !ok || idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
			continue
		}
		a := doc.Accessors[idx]
		if len(a.Min) < 3 || len(a.Max) < 3 {
			continue
		}
		box = box.Union(Box{
			Min: Vec3{a.Min[0], a.Min[1], a.Min[2]},
			Max: Vec3{a.Max[0], a.Max[1], a.Max[2]},
		})
	}
	return box
}

// roots returns the root nodes of the default scene, or the nodes nobody
// parents when the document has no scene.
func roots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			s = *doc.Scene
		}
		if doc.Scenes[s] == nil {
			return nil
		}
		return doc.Scenes[s].Nodes
	}
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n == nil {
			continue
		}
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var out []int
	for i := range doc.Nodes {
		if !isChild[i] {
			out = append(out, i)
		}
	}
	return out
}

func nodeBox(doc *gltf.Document, i int, parent mgl64.Mat4, depth int) Box {
	box := EmptyBox()
	if i < 0 || i >= len(doc.Nodes) || doc.Nodes[i] == nil || depth > maxNodeDepth {
		return box
	}
	n := doc.Nodes[i]
	world := parent.Mul4(localTransform(n))
	if n.Mesh != nil {
		local := meshBox(doc, *n.Mesh)
		if !local.IsEmpty() {
			for _, c := range local.Corners() {
				p := mgl64.TransformCoordinate(mgl64.Vec3{c.X, c.Y, c.Z}, world)
				box = box.ExpandPoint(Vec3{p[0], p[1], p[2]})
			}
		}
	}
	for _, c := range n.Children {
		box = box.Union(nodeBox(doc, c, world, depth+1))
	}
	return box
}

// localTransform returns the node's matrix when it is set, else
// translation * rotation * scale. Both are column-major, as in glTF.
func localTransform(n *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(n.Matrix)
	if m != mgl64.Ident4() && m != (mgl64.Mat4{}) {
		return m
	}
	t := n.Translation
	r := n.Rotation
	if r == [4]float64{} {
		r = [4]float64{0, 0, 0, 1}
	}
	s := n.Scale
	if s == [3]float64{} {
		s = [3]float64{1, 1, 1}
	}
	rot := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize().Mat4()
	return mgl64.Translate3D(t[0], t[1], t[2]).Mul4(rot).Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}
