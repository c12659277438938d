package geometry

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/log"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

var logger = log.New("bvh")

// BVHNode is an interior node of a bounding volume hierarchy. Its box is
// the union of its children's boxes, computed once at construction.
type BVHNode struct {
	core.Object
	Left, Right Geometry
	box         core.AABB
	hasBox      bool
}

// Leaf wraps a single geometry and caches its box
type Leaf struct {
	core.Object
	Child  Geometry
	box    core.AABB
	hasBox bool
}

// NewBVH builds a hierarchy over shapes for the shutter interval [t0, t1].
// Each level sorts by bounding box minimum on a random axis and splits at
// the median. There is no cost model, so clustered input can give an
// unbalanced tree.
func NewBVH(shapes []Geometry, t0, t1 float64, sampler core.Sampler) (Geometry, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("bvh: %w", ErrEmptyGeometry)
	}
	// copy so callers can keep using their slice
	list := append([]Geometry(nil), shapes...)
	root := buildBVH(list, t0, t1, sampler)

	stats := CollectStats(root)
	logger.Debugf("built bvh over %d shapes: %d nodes, %d leaves, max depth %d",
		len(shapes), stats.Nodes, stats.Leaves, stats.MaxDepth)
	return root, nil
}

func buildBVH(list []Geometry, t0, t1 float64, sampler core.Sampler) Geometry {
	if len(list) == 1 {
		return newLeaf(list[0], t0, t1)
	}

	axis := core.RandomAxis(sampler)
	keys := make(map[Geometry]float64, len(list))
	for _, g := range list {
		if box, ok := g.BoundingBox(t0, t1); ok {
			keys[g] = box.Min.Axis(axis)
		} else {
			keys[g] = math.Inf(1)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return keys[list[i]] < keys[list[j]]
	})

	mid := len(list) / 2
	node := &BVHNode{
		Left:  buildBVH(list[:mid], t0, t1, sampler),
		Right: buildBVH(list[mid:], t0, t1, sampler),
	}
	leftBox, leftOK := node.Left.BoundingBox(t0, t1)
	rightBox, rightOK := node.Right.BoundingBox(t0, t1)
	switch {
	case leftOK && rightOK:
		node.box, node.hasBox = leftBox.Union(rightBox), true
	case leftOK:
		node.box, node.hasBox = leftBox, true
	case rightOK:
		node.box, node.hasBox = rightBox, true
	}
	return node
}

func newLeaf(child Geometry, t0, t1 float64) *Leaf {
	box, ok := child.BoundingBox(t0, t1)
	return &Leaf{Child: child, box: box, hasBox: ok}
}

// Hit tests the left child first and then the right child only over the
// interval up to the left hit, so the closer of the two wins
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if n.hasBox && !n.box.Hit(ray, tMin, tMax) {
		return nil, false
	}
	if left, ok := n.Left.Hit(ray, tMin, tMax, sampler); ok {
		if right, ok := n.Right.Hit(ray, tMin, left.T, sampler); ok {
			return right, true
		}
		return left, true
	}
	return n.Right.Hit(ray, tMin, tMax, sampler)
}

func (n *BVHNode) BoundingBox(float64, float64) (core.AABB, bool) {
	return n.box, n.hasBox
}

func (n *BVHNode) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return 0.5*n.Left.PDFValue(origin, direction, sampler) + 0.5*n.Right.PDFValue(origin, direction, sampler)
}

func (n *BVHNode) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return n.Left.Random(origin, sampler)
	}
	return n.Right.Random(origin, sampler)
}

func (l *Leaf) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if l.hasBox && !l.box.Hit(ray, tMin, tMax) {
		return nil, false
	}
	return l.Child.Hit(ray, tMin, tMax, sampler)
}

func (l *Leaf) BoundingBox(float64, float64) (core.AABB, bool) {
	return l.box, l.hasBox
}

func (l *Leaf) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return l.Child.PDFValue(origin, direction, sampler)
}

func (l *Leaf) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return l.Child.Random(origin, sampler)
}

// BVHStats summarizes the shape of a hierarchy
type BVHStats struct {
	Nodes        int
	Leaves       int
	MaxDepth     int
	AvgLeafDepth float64
}

// CollectStats walks a hierarchy built by NewBVH
func CollectStats(root Geometry) BVHStats {
	var stats BVHStats
	depthSum := 0
	var walk func(g Geometry, depth int)
	walk = func(g Geometry, depth int) {
		switch n := g.(type) {
		case *BVHNode:
			stats.Nodes++
			walk(n.Left, depth+1)
			walk(n.Right, depth+1)
		case *Leaf:
			stats.Leaves++
			depthSum += depth
			stats.MaxDepth = max(stats.MaxDepth, depth)
		}
	}
	walk(root, 0)
	if stats.Leaves > 0 {
		stats.AvgLeafDepth = float64(depthSum) / float64(stats.Leaves)
	}
	return stats
}

// Table renders the statistics as a text table
func (s BVHStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Nodes", "Leaves", "Max depth", "Avg leaf depth"})
	table.Append([]string{
		fmt.Sprintf("%d", s.Nodes),
		fmt.Sprintf("%d", s.Leaves),
		fmt.Sprintf("%d", s.MaxDepth),
		fmt.Sprintf("%.2f", s.AvgLeafDepth),
	})
	table.Render()
	return buf.String()
}
