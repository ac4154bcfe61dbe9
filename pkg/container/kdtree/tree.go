/*
 * Copyright 2020 Dennis Kuhnert
 * Copyright 2020 Ivanov Nikita
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package kdtree is a k-d tree answering exact nearest-neighbour queries.
// Distances must be monotone in every per-axis difference (Euclidean or its
// square both qualify) for the pruning to stay exact.
package kdtree

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-fatigue/fatigue/internal/geom"
)

var ErrEmptyTree = errors.New("kdtree: tree is empty")

type Point interface {
	Dim(idx int) float64
	Dimensions() int
	Points() []float64
}

// LessFn breaks ties between equidistant points; the point for which it
// returns true is preferred.
type LessFn func(p, p1 Point) bool

type Option func(*Tree)

func WithTieBreak(less LessFn) Option {
	return func(t *Tree) {
		t.less = less
	}
}

func New(distFn geom.DistanceFn, opts ...Option) *Tree {
	t := &Tree{
		distFn: distFn,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type Tree struct {
	root   *node
	distFn geom.DistanceFn
	less   LessFn
}

// Build replaces the tree with a balanced one over points.
func (t *Tree) Build(points ...Point) {
	cp := make([]Point, len(points))
	copy(cp, points)
	t.root = buildTreeRecursive(cp, 0)
}

// Nearest returns the stored point closest to p and its distance.
func (t *Tree) Nearest(p Point) (Point, float64, error) {
	if t.root == nil {
		return nil, 0, ErrEmptyTree
	}
	s := search{tree: t, target: p, distance: math.Inf(1)}
	if err := s.visit(t.root, 0); err != nil {
		return nil, 0, err
	}
	return s.best, s.distance, nil
}

type search struct {
	tree     *Tree
	target   Point
	best     Point
	distance float64
}

func (s *search) visit(n *node, dim int) error {
	if n == nil {
		return nil
	}
	d, err := s.tree.distFn(s.target.Points(), n.Key.Points())
	if err != nil {
		return fmt.Errorf("compute nearest error: %w", err)
	}
	s.offer(n.Key, d)

	near, far := n.Left, n.Right
	if s.target.Dim(dim) >= n.Key.Dim(dim) {
		near, far = n.Right, n.Left
	}
	next := (dim + 1) % s.target.Dimensions()
	if err := s.visit(near, next); err != nil {
		return err
	}
	// Ties must be explored too, otherwise the tie-break depends on tree shape.
	if s.planeDistance(n.Key, dim) <= s.distance {
		return s.visit(far, next)
	}
	return nil
}

func (s *search) offer(p Point, d float64) {
	switch {
	case s.best == nil || d < s.distance:
		s.best, s.distance = p, d
	case d == s.distance && s.tree.less != nil && s.tree.less(p, s.best):
		s.best = p
	}
}

// planeDistance is the smallest distance from the target to any point on the
// far side of the splitting plane through key.
func (s *search) planeDistance(key Point, dim int) float64 {
	onPlane := make([]float64, s.target.Dimensions())
	copy(onPlane, s.target.Points())
	onPlane[dim] = key.Dim(dim)
	d, err := s.tree.distFn(s.target.Points(), onPlane)
	if err != nil {
		return math.Abs(key.Dim(dim) - s.target.Dim(dim))
	}
	return d
}

type sortPoints struct {
	dim    int
	points []Point
}

func (b *sortPoints) Len() int {
	return len(b.points)
}

func (b *sortPoints) Less(i, j int) bool {
	return b.points[i].Dim(b.dim) < b.points[j].Dim(b.dim)
}

func (b *sortPoints) Swap(i, j int) {
	b.points[i], b.points[j] = b.points[j], b.points[i]
}

func buildTreeRecursive(points []Point, dim int) *node {
	if len(points) == 0 {
		return nil
	}
	if len(points) == 1 {
		return &node{Key: points[0]}
	}

	sort.Sort(&sortPoints{dim: dim, points: points})
	mid := len(points) / 2
	// equal keys go right so the descent in visit finds them
	for mid > 0 && points[mid-1].Dim(dim) == points[mid].Dim(dim) {
		mid--
	}
	root := points[mid]
	nextDim := (dim + 1) % root.Dimensions()
	return &node{
		Key:   root,
		Left:  buildTreeRecursive(points[:mid], nextDim),
		Right: buildTreeRecursive(points[mid+1:], nextDim),
	}
}
