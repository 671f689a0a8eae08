package detect

import (
	"sort"
)

// component is one labeled connected region of foreground pixels: its tight
// bounding box (x1/y1 exclusive) and pixel area. Components are an
// intermediate product; they are merged into Clusters and discarded.
type component struct {
	x0, y0, x1, y1 int
	area           int
}

// labelComponents runs two-pass connected-component labeling over a
// row-major background mask (true = background) using 4-connectivity,
// matching the behavior of the classic cross-shaped structuring element.
//
// The first pass assigns provisional labels from the left and top
// neighbors and records label equivalences in a union-find forest; the
// second pass resolves each pixel to its root label and accumulates
// per-root bounding boxes and areas.
func labelComponents(mask []bool, w, h int) []component {
	if w <= 0 || h <= 0 {
		return nil
	}

	labels := make([]int32, w*h)
	parent := []int32{0} // parent[0] unused; labels start at 1

	find := func(x int32) int32 {
		for parent[x] != x {
			parent[x] = parent[parent[x]] // path halving
			x = parent[x]
		}
		return x
	}
	union := func(a, b int32) {
		ra, rb := find(a), find(b)
		if ra < rb {
			parent[rb] = ra
		} else if rb < ra {
			parent[ra] = rb
		}
	}

	// First pass: provisional labels and equivalences.
	next := int32(1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if mask[i] {
				continue
			}

			var left, up int32
			if x > 0 {
				left = labels[i-1]
			}
			if y > 0 {
				up = labels[i-w]
			}

			switch {
			case left == 0 && up == 0:
				parent = append(parent, next)
				labels[i] = next
				next++
			case left != 0 && up == 0:
				labels[i] = left
			case left == 0 && up != 0:
				labels[i] = up
			default:
				labels[i] = left
				if left != up {
					union(left, up)
				}
			}
		}
	}

	// Second pass: resolve roots and accumulate boxes.
	boxes := make(map[int32]*component)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := labels[y*w+x]
			if l == 0 {
				continue
			}
			root := find(l)
			c, ok := boxes[root]
			if !ok {
				c = &component{x0: x, y0: y, x1: x + 1, y1: y + 1}
				boxes[root] = c
			}
			if x < c.x0 {
				c.x0 = x
			}
			if x+1 > c.x1 {
				c.x1 = x + 1
			}
			if y < c.y0 {
				c.y0 = y
			}
			if y+1 > c.y1 {
				c.y1 = y + 1
			}
			c.area++
		}
	}

	out := make([]component, 0, len(boxes))
	for _, c := range boxes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].y0 != out[j].y0 {
			return out[i].y0 < out[j].y0
		}
		return out[i].x0 < out[j].x0
	})
	return out
}

// mergeComponents groups components whose bounding boxes lie within
// proximity pixels of each other (in both axes) and unions each group into
// one Cluster. This keeps anti-aliased fringes and multi-part sprites
// (a body plus a detached weapon) from surfacing as separate sprites.
//
// Merging iterates to a fixed point, since a union box can come within
// range of components its members were not. The result is ordered top to
// bottom, then left to right.
func mergeComponents(comps []component, proximity int) []Cluster {
	clusters := make([]Cluster, 0, len(comps))
	for _, c := range comps {
		clusters = append(clusters, Cluster{
			X0: c.x0, Y0: c.y0, X1: c.x1, Y1: c.y1,
			Area:    c.area,
			Members: 1,
		})
	}

	for merged := true; merged; {
		merged = false
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				if !near(clusters[i], clusters[j], proximity) {
					continue
				}
				clusters[i] = unionOf(clusters[i], clusters[j])
				clusters = append(clusters[:j], clusters[j+1:]...)
				merged = true
				j--
			}
		}
	}

	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].Y0 != clusters[j].Y0 {
			return clusters[i].Y0 < clusters[j].Y0
		}
		return clusters[i].X0 < clusters[j].X0
	})
	return clusters
}

// near reports whether the boxes of a and b, each expanded by proximity,
// overlap on both axes.
func near(a, b Cluster, proximity int) bool {
	if a.X1+proximity < b.X0 || b.X1+proximity < a.X0 {
		return false
	}
	if a.Y1+proximity < b.Y0 || b.Y1+proximity < a.Y0 {
		return false
	}
	return true
}

func unionOf(a, b Cluster) Cluster {
	if b.X0 < a.X0 {
		a.X0 = b.X0
	}
	if b.Y0 < a.Y0 {
		a.Y0 = b.Y0
	}
	if b.X1 > a.X1 {
		a.X1 = b.X1
	}
	if b.Y1 > a.Y1 {
		a.Y1 = b.Y1
	}
	a.Area += b.Area
	a.Members += b.Members
	return a
}
