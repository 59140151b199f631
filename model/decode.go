package model

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/seqsense/pcgol/mat"
)

// maxDepth bounds the node hierarchy walk so that cyclic documents terminate.
const maxDepth = 64

// Decode reads a glTF or GLB document from r.
// External buffers are opened from fsys by their URI.
func Decode(r io.Reader, fsys fs.FS) (*Model, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoderFS(r, fsys).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding glTF: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument flattens the default scene of doc.
// Documents without scenes are flattened from their root nodes.
func FromDocument(doc *gltf.Document) (*Model, error) {
	f := &flattener{
		doc:    doc,
		m:      &Model{},
		images: make(map[int]*Image),
	}
	for _, n := range rootNodes(doc) {
		if err := f.node(n, identity, 0); err != nil {
			return nil, err
		}
	}
	if f.m.Vertices() == 0 {
		return nil, ErrEmptyModel
	}
	f.m.updateBounds()
	return f.m, nil
}

func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			s = int(*doc.Scene)
		}
		var nodes []int
		for _, n := range doc.Scenes[s].Nodes {
			nodes = append(nodes, int(n))
		}
		return nodes
	}

	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[int(c)] = true
		}
	}
	var nodes []int
	for i := range doc.Nodes {
		if !child[i] {
			nodes = append(nodes, i)
		}
	}
	return nodes
}

type flattener struct {
	doc    *gltf.Document
	m      *Model
	images map[int]*Image
}

func (f *flattener) node(i int, parent mat.Mat4, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxDepth)
	}
	if i < 0 || len(f.doc.Nodes) <= i {
		return fmt.Errorf("node %d: %w", i, ErrIndexOverrun)
	}
	n := f.doc.Nodes[i]
	world := parent.Mul(localMatrix(n))

	if n.Mesh != nil {
		mi := int(*n.Mesh)
		if len(f.doc.Meshes) <= mi {
			return fmt.Errorf("node %d mesh %d: %w", i, mi, ErrIndexOverrun)
		}
		nt := newNormalTransform(world)
		for pi, p := range f.doc.Meshes[mi].Primitives {
			prim, ok, err := f.primitive(p)
			if err != nil {
				return fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			if !ok {
				f.m.Skipped++
				continue
			}
			for j := range prim.Positions {
				prim.Positions[j] = world.TransformAffine(prim.Positions[j])
				prim.Normals[j] = nt.Transform(prim.Normals[j])
			}
			f.m.Primitives = append(f.m.Primitives, *prim)
		}
	}
	for _, c := range n.Children {
		if err := f.node(int(c), world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func localMatrix(n *gltf.Node) mat.Mat4 {
	var m mat.Mat4
	for i, v := range n.Matrix {
		m[i] = float32(v)
	}
	if m != identity && m != (mat.Mat4{}) {
		return m
	}

	var t, s mat.Vec3
	var q [4]float32
	for i, v := range n.Translation {
		t[i] = float32(v)
	}
	for i, v := range n.Rotation {
		q[i] = float32(v)
	}
	for i, v := range n.Scale {
		s[i] = float32(v)
	}
	if q == ([4]float32{}) {
		q[3] = 1
	}
	if s == (mat.Vec3{}) {
		s = mat.Vec3{1, 1, 1}
	}
	return trs(t, q, s)
}

func (f *flattener) accessor(i int) (*gltf.Accessor, error) {
	if i < 0 || len(f.doc.Accessors) <= i {
		return nil, fmt.Errorf("accessor %d: %w", i, ErrIndexOverrun)
	}
	return f.doc.Accessors[i], nil
}

// primitive returns false for primitives which are not triangle lists
// or have no positions.
func (f *flattener) primitive(p *gltf.Primitive) (*Primitive, bool, error) {
	if p.Mode != gltf.PrimitiveTriangles {
		return nil, false, nil
	}
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, false, nil
	}
	acr, err := f.accessor(int(posIdx))
	if err != nil {
		return nil, false, err
	}
	pos, err := modeler.ReadPosition(f.doc, acr, nil)
	if err != nil {
		return nil, false, err
	}

	var nrm [][3]float32
	if i, ok := p.Attributes[gltf.NORMAL]; ok {
		acr, err := f.accessor(int(i))
		if err != nil {
			return nil, false, err
		}
		if nrm, err = modeler.ReadNormal(f.doc, acr, nil); err != nil {
			return nil, false, err
		}
	}
	var uv [][2]float32
	if i, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := f.accessor(int(i))
		if err != nil {
			return nil, false, err
		}
		if uv, err = modeler.ReadTextureCoord(f.doc, acr, nil); err != nil {
			return nil, false, err
		}
	}

	var indices []uint32
	if p.Indices != nil {
		acr, err := f.accessor(int(*p.Indices))
		if err != nil {
			return nil, false, err
		}
		if indices, err = modeler.ReadIndices(f.doc, acr, nil); err != nil {
			return nil, false, err
		}
	} else {
		indices = make([]uint32, len(pos))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	indices = indices[:len(indices)/3*3]

	out := &Primitive{
		Positions: make([]mat.Vec3, len(indices)),
		Normals:   make([]mat.Vec3, len(indices)),
		TexCoords: make([][2]float32, len(indices)),
	}
	if p.Material != nil {
		out.Material = f.material(int(*p.Material))
	} else {
		out.Material = f.material(-1)
	}
	for j, idx := range indices {
		if int(idx) >= len(pos) {
			return nil, false, fmt.Errorf("index %d of %d vertices: %w", idx, len(pos), ErrIndexOverrun)
		}
		out.Positions[j] = mat.Vec3(pos[idx])
		if int(idx) < len(nrm) {
			out.Normals[j] = mat.Vec3(nrm[idx])
		}
		if int(idx) < len(uv) {
			out.TexCoords[j] = uv[idx]
		}
	}
	if len(nrm) == 0 {
		for j := 0; j < len(out.Positions); j += 3 {
			n := faceNormal(out.Positions[j], out.Positions[j+1], out.Positions[j+2])
			out.Normals[j], out.Normals[j+1], out.Normals[j+2] = n, n, n
		}
	}
	if len(uv) == 0 {
		out.Material.Texture = nil
	}
	return out, true, nil
}

func (f *flattener) material(i int) Material {
	m := Material{BaseColor: [4]float32{1, 1, 1, 1}}
	if i < 0 || len(f.doc.Materials) <= i {
		return m
	}
	pbr := f.doc.Materials[i].PBRMetallicRoughness
	if pbr == nil {
		return m
	}
	if pbr.BaseColorFactor != nil {
		for j, v := range *pbr.BaseColorFactor {
			m.BaseColor[j] = float32(v)
		}
	}
	if pbr.BaseColorTexture != nil {
		m.Texture = f.texture(int(pbr.BaseColorTexture.Index))
	}
	return m
}

func (f *flattener) texture(i int) *Image {
	if i < 0 || len(f.doc.Textures) <= i || f.doc.Textures[i].Source == nil {
		return nil
	}
	src := int(*f.doc.Textures[i].Source)
	if img, ok := f.images[src]; ok {
		return img
	}
	if len(f.doc.Images) <= src {
		return nil
	}
	gi := f.doc.Images[src]
	img := &Image{
		URI:      gi.URI,
		MimeType: gi.MimeType,
	}
	if gi.BufferView != nil {
		data, ok := f.bufferView(int(*gi.BufferView))
		if !ok {
			return nil
		}
		img.Data = data
	}
	f.images[src] = img
	return img
}

func (f *flattener) bufferView(i int) ([]byte, bool) {
	if len(f.doc.BufferViews) <= i {
		return nil, false
	}
	bv := f.doc.BufferViews[i]
	if len(f.doc.Buffers) <= int(bv.Buffer) {
		return nil, false
	}
	data := f.doc.Buffers[int(bv.Buffer)].Data
	begin, end := int(bv.ByteOffset), int(bv.ByteOffset)+int(bv.ByteLength)
	if end > len(data) {
		return nil, false
	}
	return data[begin:end], true
}
