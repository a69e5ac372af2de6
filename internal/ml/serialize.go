package ml

import (
	"encoding/json"
	"fmt"

	"github.com/yourusername/courtline/internal/models"
)

// nodeJSON is the wire shape of a tree node. The Type discriminator keeps the
// persisted form readable while the runtime form stays a proper sum type.
type nodeJSON struct {
	Type         string    `json:"type"`
	Prediction   float64   `json:"prediction,omitempty"`
	FeatureIndex int       `json:"feature_index,omitempty"`
	Threshold    float64   `json:"threshold,omitempty"`
	Left         *nodeJSON `json:"left,omitempty"`
	Right        *nodeJSON `json:"right,omitempty"`
}

const (
	nodeTypeLeaf  = "leaf"
	nodeTypeSplit = "split"
)

type forestPayload struct {
	Config ForestConfig `json:"config"`
	Trees  []*nodeJSON  `json:"trees"`
}

// EncodeForest serializes a forest for persistence
func EncodeForest(f *Forest) (json.RawMessage, error) {
	payload := forestPayload{
		Config: f.cfg,
		Trees:  make([]*nodeJSON, len(f.Trees)),
	}
	for i, tree := range f.Trees {
		payload.Trees[i] = encodeNode(tree)
	}
	return json.Marshal(payload)
}

// DecodeForest reconstructs a forest from its persisted payload
func DecodeForest(raw json.RawMessage) (*Forest, error) {
	var payload forestPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	forest := &Forest{
		Trees: make([]Node, len(payload.Trees)),
		cfg:   payload.Config,
	}
	for i, n := range payload.Trees {
		node, err := decodeNode(n)
		if err != nil {
			return nil, err
		}
		forest.Trees[i] = node
	}
	return forest, nil
}

// EncodeLinear serializes a linear model for persistence
func EncodeLinear(m *LinearModel) (json.RawMessage, error) {
	return json.Marshal(m)
}

// DecodeLinear reconstructs a linear model from its persisted payload
func DecodeLinear(raw json.RawMessage) (*LinearModel, error) {
	var model LinearModel
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return &model, nil
}

// LoadPredictor decodes a persisted TrainedModel into a scorer
func LoadPredictor(m *models.TrainedModel) (Predictor, error) {
	switch m.ModelType {
	case models.ModelTypeForest:
		forest, err := DecodeForest(m.Payload)
		if err != nil {
			return nil, err
		}
		return ForestPredictor(forest), nil
	case models.ModelTypeLinear:
		linear, err := DecodeLinear(m.Payload)
		if err != nil {
			return nil, err
		}
		return LinearPredictor(linear), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModelType, m.ModelType)
}

func encodeNode(n Node) *nodeJSON {
	switch node := n.(type) {
	case *Leaf:
		return &nodeJSON{Type: nodeTypeLeaf, Prediction: node.Prediction}
	case *Split:
		return &nodeJSON{
			Type:         nodeTypeSplit,
			FeatureIndex: node.FeatureIndex,
			Threshold:    node.Threshold,
			Left:         encodeNode(node.Left),
			Right:        encodeNode(node.Right),
		}
	}
	return nil
}

func decodeNode(n *nodeJSON) (Node, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: missing node", ErrMalformedPayload)
	}
	switch n.Type {
	case nodeTypeLeaf:
		return &Leaf{Prediction: n.Prediction}, nil
	case nodeTypeSplit:
		left, err := decodeNode(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(n.Right)
		if err != nil {
			return nil, err
		}
		return &Split{
			FeatureIndex: n.FeatureIndex,
			Threshold:    n.Threshold,
			Left:         left,
			Right:        right,
		}, nil
	}
	return nil, fmt.Errorf("%w: node type %q", ErrMalformedPayload, n.Type)
}
