package expr

import (
	"encoding/json"
	"fmt"
)

// node is the JSON form of an expression tree. Leaves set Value, interior
// nodes set Op, Left and Right.
type node struct {
	Value *int64 `json:"value,omitempty"`
	Op    string `json:"op,omitempty"`
	Left  *node  `json:"left,omitempty"`
	Right *node  `json:"right,omitempty"`
}

// Marshal encodes e in its JSON tree form
func Marshal(e Expression) ([]byte, error) {
	n, err := toNode(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

// Decode parses a JSON tree. A positive maxNodes bounds the number of nodes
// accepted; zero or less disables the limit.
func Decode(data []byte, maxNodes int) (Expression, error) {
	var root node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	d := decoder{maxNodes: maxNodes}
	return d.build(&root, "$")
}

type decoder struct {
	maxNodes int
	count    int
}

func (d *decoder) build(n *node, path string) (Expression, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: missing node at %s", ErrMalformed, path)
	}

	d.count++
	if d.maxNodes > 0 && d.count > d.maxNodes {
		return nil, fmt.Errorf("%w: more than %d nodes", ErrTooLarge, d.maxNodes)
	}

	isLeaf := n.Value != nil
	isOp := n.Op != "" || n.Left != nil || n.Right != nil

	switch {
	case isLeaf && isOp:
		return nil, fmt.Errorf("%w: node at %s has both value and op", ErrMalformed, path)
	case isLeaf:
		return Value(*n.Value), nil
	case !isOp:
		return nil, fmt.Errorf("%w: empty node at %s", ErrMalformed, path)
	}

	op, err := ParseOperator(n.Op)
	if err != nil {
		return nil, fmt.Errorf("at %s: %w", path, err)
	}

	left, err := d.build(n.Left, path+".left")
	if err != nil {
		return nil, err
	}
	right, err := d.build(n.Right, path+".right")
	if err != nil {
		return nil, err
	}

	return &Operation{Op: op, Left: left, Right: right}, nil
}

func toNode(e Expression) (*node, error) {
	switch n := e.(type) {
	case Value:
		v := int64(n)
		return &node{Value: &v}, nil
	case *Operation:
		if n == nil {
			return nil, fmt.Errorf("%w: nil operation", ErrMalformed)
		}
		if !n.Op.Valid() {
			return nil, fmt.Errorf("%w: unknown operator %d", ErrMalformed, int(n.Op))
		}
		left, err := toNode(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := toNode(n.Right)
		if err != nil {
			return nil, err
		}
		return &node{Op: n.Op.Name(), Left: left, Right: right}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported node %T", ErrMalformed, e)
	}
}
