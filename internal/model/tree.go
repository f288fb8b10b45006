package model

import (
	"fmt"

	"go.yaml.in/yaml/v3"
	"gonum.org/v1/gonum/mat"
)

func init() {
	Register("tree", loadTree)
	Register("forest", loadForest)
}

// Node is one entry of a flattened decision tree. Split nodes route a row to
// Left when x[Feature] <= Threshold and to Right otherwise; leaves carry one
// weight per class in Value.
type Node struct {
	Feature   int       `yaml:"feature"`
	Threshold float64   `yaml:"threshold"`
	Left      int       `yaml:"left"`
	Right     int       `yaml:"right"`
	Value     []float64 `yaml:"value"`
}

func (n Node) leaf() bool { return len(n.Value) > 0 }

// Tree is a validated decision tree whose leaves are normalised class weights.
type Tree struct {
	nodes []Node
}

// NewTree checks node references and normalises leaf weights.
func NewTree(nodes []Node, features, classes int) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("tree has no nodes")
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if n.leaf() {
			if len(n.Value) != classes {
				return nil, fmt.Errorf("node %d: leaf has %d weights, want %d", i, len(n.Value), classes)
			}
			var sum float64
			for _, v := range n.Value {
				if v < 0 {
					return nil, fmt.Errorf("node %d: negative class weight", i)
				}
				sum += v
			}
			if sum == 0 {
				return nil, fmt.Errorf("node %d: leaf weights sum to zero", i)
			}
			norm := make([]float64, len(n.Value))
			for k, v := range n.Value {
				norm[k] = v / sum
			}
			out[i] = Node{Value: norm}
			continue
		}
		if n.Feature < 0 || n.Feature >= features {
			return nil, fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= 0 || child >= len(nodes) || child == i {
				return nil, fmt.Errorf("node %d: child index %d out of range", i, child)
			}
		}
		out[i] = n
	}
	t := &Tree{nodes: out}
	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}
	return t, nil
}

// checkAcyclic walks from the root and fails if any path revisits a node.
func (t *Tree) checkAcyclic() error {
	state := make([]uint8, len(t.nodes)) // 0 unseen, 1 on stack, 2 done
	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case 1:
			return fmt.Errorf("node %d: cycle in tree", i)
		case 2:
			return nil
		}
		state[i] = 1
		if n := t.nodes[i]; !n.leaf() {
			if err := visit(n.Left); err != nil {
				return err
			}
			if err := visit(n.Right); err != nil {
				return err
			}
		}
		state[i] = 2
		return nil
	}
	return visit(0)
}

// leafFor returns the class weights of the leaf reached by row i of X.
func (t *Tree) leafFor(X mat.Matrix, i int) []float64 {
	n := t.nodes[0]
	for !n.leaf() {
		if X.At(i, n.Feature) <= n.Threshold {
			n = t.nodes[n.Left]
		} else {
			n = t.nodes[n.Right]
		}
	}
	return n.Value
}

// Ensemble averages the leaf weights of one or more trees and predicts the
// class with the highest mean weight; ties go to the lower class index.
type Ensemble struct {
	base
	trees []*Tree
}

type treeSpec struct {
	Nodes []Node `yaml:"nodes"`
}

type forestSpec struct {
	Trees []treeSpec `yaml:"trees"`
}

func loadTree(h Header, doc *yaml.Node) (Classifier, error) {
	var s treeSpec
	if err := doc.Decode(&s); err != nil {
		return nil, err
	}
	return NewEnsemble(h, [][]Node{s.Nodes})
}

func loadForest(h Header, doc *yaml.Node) (Classifier, error) {
	var s forestSpec
	if err := doc.Decode(&s); err != nil {
		return nil, err
	}
	if len(s.Trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	nodes := make([][]Node, len(s.Trees))
	for i, t := range s.Trees {
		nodes[i] = t.Nodes
	}
	return NewEnsemble(h, nodes)
}

// NewEnsemble validates every tree against the header.
func NewEnsemble(h Header, trees [][]Node) (*Ensemble, error) {
	e := &Ensemble{base: base{h: h}, trees: make([]*Tree, len(trees))}
	for i, nodes := range trees {
		t, err := NewTree(nodes, len(h.Features), len(h.Classes))
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		e.trees[i] = t
	}
	return e, nil
}

// Size is the number of trees.
func (e *Ensemble) Size() int { return len(e.trees) }

// Probabilities returns the mean class weights for each row.
func (e *Ensemble) Probabilities(X mat.Matrix) (*mat.Dense, error) {
	rows, err := e.checkDims(X)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, nil
	}
	classes := len(e.h.Classes)
	out := mat.NewDense(rows, classes, nil)
	for i := 0; i < rows; i++ {
		acc := out.RawRowView(i)
		for _, t := range e.trees {
			for k, v := range t.leafFor(X, i) {
				acc[k] += v
			}
		}
		for k := range acc {
			acc[k] /= float64(len(e.trees))
		}
	}
	return out, nil
}

func (e *Ensemble) Predict(X mat.Matrix) ([]string, error) {
	p, err := e.Probabilities(X)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	rows, _ := p.Dims()
	idx := make([]int, rows)
	for i := range idx {
		row := p.RawRowView(i)
		best := 0
		for k := 1; k < len(row); k++ {
			if row[k] > row[best] {
				best = k
			}
		}
		idx[i] = best
	}
	return e.tokens(idx), nil
}
