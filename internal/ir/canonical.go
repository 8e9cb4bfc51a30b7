package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces this package's canonical JSON encoding for
// Marking, Graph, and Alignment values: sets are encoded as arrays in
// sorted order (so the encoding is deterministic despite being
// order-insensitive at the data-model level), and every Label/Role string
// is NFC-normalised before encoding so that visually identical labels
// authored with different Unicode compositions compare equal.
//
// It is the input to GraphHash, the stored report of an align run, and the
// format of round-trip testing (§6): parse(serialize(x)) must equal x under
// set equality, never under byte equality.
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case Marking:
		return marshalMarking(val)
	case *Marking:
		return marshalMarking(*val)
	case *Graph:
		return marshalGraph(val)
	case Alignment:
		return marshalAlignment(val)
	case *Alignment:
		return marshalAlignment(*val)
	default:
		return nil, fmt.Errorf("ir: unsupported type for canonical JSON: %T", v)
	}
}

func normLabel(l Label) string { return norm.NFC.String(string(l)) }
func normRole(r Role) string   { return norm.NFC.String(string(r)) }

// canonicalSet renders an EventSet as a JSON array, sorted.
type canonicalSet []Event

func (s canonicalSet) MarshalJSON() ([]byte, error) {
	return json.Marshal([]Event(s))
}

func sortedArray(s EventSet) canonicalSet {
	return canonicalSet(s.Sorted())
}

func marshalMarking(m Marking) ([]byte, error) {
	return json.Marshal(struct {
		Executed canonicalSet `json:"executed"`
		Included canonicalSet `json:"included"`
		Pending  canonicalSet `json:"pending"`
	}{
		Executed: sortedArray(m.Executed),
		Included: sortedArray(m.Included),
		Pending:  sortedArray(m.Pending),
	})
}

// canonicalEventMap renders an EventMap as a JSON object with sorted keys
// and each value a sorted array - the "arrays at any key other than trace
// are sets" half of the §6 contract.
func canonicalEventMap(m EventMap) map[Event]canonicalSet {
	out := make(map[Event]canonicalSet, len(m))
	for e, s := range m {
		out[e] = sortedArray(s)
	}
	return out
}

func marshalGraph(g *Graph) ([]byte, error) {
	labelMap := make(map[Event]string, len(g.LabelMap))
	for e, l := range g.LabelMap {
		labelMap[e] = normLabel(l)
	}
	roleMap := make(map[Event]string, len(g.RoleMap))
	for e, r := range g.RoleMap {
		roleMap[e] = normRole(r)
	}

	events := g.Events.Sorted()

	marking, err := marshalMarking(g.Marking)
	if err != nil {
		return nil, err
	}
	var markingVal json.RawMessage = marking

	return json.Marshal(struct {
		Events        []Event                  `json:"events"`
		LabelMap      map[Event]string         `json:"labelMap"`
		RoleMap       map[Event]string         `json:"roleMap"`
		ConditionsFor map[Event]canonicalSet   `json:"conditionsFor"`
		MilestonesFor map[Event]canonicalSet   `json:"milestonesFor"`
		ResponseTo    map[Event]canonicalSet   `json:"responseTo"`
		ExcludesTo    map[Event]canonicalSet   `json:"excludesTo"`
		IncludesTo    map[Event]canonicalSet   `json:"includesTo"`
		Marking       json.RawMessage          `json:"marking"`
	}{
		Events:        events,
		LabelMap:      labelMap,
		RoleMap:       roleMap,
		ConditionsFor: canonicalEventMap(g.ConditionsFor),
		MilestonesFor: canonicalEventMap(g.MilestonesFor),
		ResponseTo:    canonicalEventMap(g.ResponseTo),
		ExcludesTo:    canonicalEventMap(g.ExcludesTo),
		IncludesTo:    canonicalEventMap(g.IncludesTo),
		Marking:       markingVal,
	})
}

// marshalAlignment encodes an Alignment. Trace is the one reserved key that
// is NOT lifted to a set on parse - move order is the entire point of an
// alignment result.
func marshalAlignment(a Alignment) ([]byte, error) {
	cost := a.Cost
	infeasible := a.IsInfeasible()
	if infeasible {
		cost = -1 // canonical sentinel; "infeasible" flag is authoritative
	}
	return json.Marshal(struct {
		Cost        float64 `json:"cost"`
		Infeasible  bool    `json:"infeasible"`
		Trace       []Event `json:"trace"`
	}{
		Cost:       cost,
		Infeasible: infeasible,
		Trace:      a.Trace,
	})
}

// ParseAlignment decodes canonical JSON produced by MarshalCanonical back
// into an Alignment.
func ParseAlignment(data []byte) (Alignment, error) {
	var raw struct {
		Cost       float64 `json:"cost"`
		Infeasible bool    `json:"infeasible"`
		Trace      []Event `json:"trace"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Alignment{}, err
	}
	if raw.Infeasible {
		return Alignment{Cost: InfCost, Trace: raw.Trace}, nil
	}
	return Alignment{Cost: raw.Cost, Trace: raw.Trace}, nil
}

// ParseMarking decodes canonical JSON produced by MarshalCanonical back
// into a Marking. Every array is lifted back to an EventSet, satisfying
// parse(serialize(x)) = x under set equality.
func ParseMarking(data []byte) (Marking, error) {
	var raw struct {
		Executed []Event `json:"executed"`
		Included []Event `json:"included"`
		Pending  []Event `json:"pending"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Marking{}, err
	}
	return Marking{
		Executed: NewEventSet(raw.Executed...),
		Included: NewEventSet(raw.Included...),
		Pending:  NewEventSet(raw.Pending...),
	}, nil
}

// ParseGraph decodes canonical JSON produced by MarshalCanonical back into
// a Graph, re-validating structural consistency exactly as NewGraph does
// for a freshly compiled one.
func ParseGraph(data []byte) (*Graph, error) {
	var raw struct {
		Events        []Event                    `json:"events"`
		LabelMap      map[Event]string            `json:"labelMap"`
		RoleMap       map[Event]string            `json:"roleMap"`
		ConditionsFor map[Event][]Event           `json:"conditionsFor"`
		MilestonesFor map[Event][]Event           `json:"milestonesFor"`
		ResponseTo    map[Event][]Event           `json:"responseTo"`
		ExcludesTo    map[Event][]Event           `json:"excludesTo"`
		IncludesTo    map[Event][]Event           `json:"includesTo"`
		Marking       json.RawMessage             `json:"marking"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	events := NewEventSet(raw.Events...)

	labelMap := make(map[Event]Label, len(raw.LabelMap))
	for e, l := range raw.LabelMap {
		labelMap[e] = Label(l)
	}
	roleMap := make(map[Event]Role, len(raw.RoleMap))
	for e, r := range raw.RoleMap {
		roleMap[e] = Role(r)
	}

	toEventMap := func(m map[Event][]Event) EventMap {
		out := make(EventMap, len(m))
		for e, targets := range m {
			out[e] = NewEventSet(targets...)
		}
		return out
	}

	marking, err := ParseMarking(raw.Marking)
	if err != nil {
		return nil, fmt.Errorf("parsing marking: %w", err)
	}

	return NewGraph(
		events,
		labelMap,
		roleMap,
		toEventMap(raw.ConditionsFor),
		toEventMap(raw.MilestonesFor),
		toEventMap(raw.ResponseTo),
		toEventMap(raw.ExcludesTo),
		toEventMap(raw.IncludesTo),
		marking,
		nil,
	)
}

// sortedLabels returns the members of a Graph's label set in ascending
// order, for a deterministic iteration order.
func sortedLabels(labels map[Label]struct{}) []Label {
	out := make([]Label, 0, len(labels))
	for l := range labels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
