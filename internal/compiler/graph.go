package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/dcrcore/dcr/internal/ir"
)

// CompileGraph loads every *.cue file under specDir, compiles the first
// `graph: name: { ... }` entry it finds into an *ir.Graph, and returns
// every structural problem found - fail-slow, not fail-fast, so a graph
// author sees every issue in one compile pass (§7).
//
// A relation, role, or marking entry that references an event not declared
// under `event` is always a hard error: compilation never silently drops
// an inconsistent reference.
func CompileGraph(specDir string) (*ir.Graph, []ValidationError) {
	info, err := os.Stat(specDir)
	if err != nil || !info.IsDir() {
		return nil, []ValidationError{{Code: ErrDirNotFound, Field: "dir", Message: fmt.Sprintf("graph spec directory not found: %s", specDir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: specDir, Package: "_"})
	if len(instances) == 0 || instances[0].Err != nil {
		msg := "no CUE instances loaded"
		if len(instances) > 0 {
			msg = instances[0].Err.Error()
		}
		return nil, []ValidationError{{Code: ErrCUELoad, Field: "dir", Message: msg}}
	}

	value := ctx.BuildInstance(instances[0])
	if err := value.Err(); err != nil {
		return nil, []ValidationError{formatCUEError(ErrCUEBuild, "dir", err)}
	}

	graphsVal := value.LookupPath(cue.ParsePath("graph"))
	if !graphsVal.Exists() {
		return nil, []ValidationError{{Code: ErrGraphNotFound, Field: "graph", Message: "no graph { ... } block found"}}
	}

	iter, err := graphsVal.Fields()
	if err != nil {
		return nil, []ValidationError{formatCUEError(ErrGraphNotFound, "graph", err)}
	}
	if !iter.Next() {
		return nil, []ValidationError{{Code: ErrGraphNotFound, Field: "graph", Message: "graph block is empty"}}
	}

	return compileOneGraph(iter.Value())
}

func compileOneGraph(v cue.Value) (*ir.Graph, []ValidationError) {
	var errs []ValidationError

	events := ir.NewEventSet()
	labelMap := make(map[ir.Event]ir.Label)
	roleMap := make(map[ir.Event]ir.Role)

	eventIter, err := v.LookupPath(cue.ParsePath("event")).Fields()
	if err != nil {
		errs = append(errs, formatCUEError(ErrMissingLabel, "event", err))
	} else {
		for eventIter.Next() {
			name := ir.Event(eventIter.Label())
			if events.Contains(name) {
				errs = append(errs, ValidationError{Code: ErrDuplicateEvent, Field: "event." + string(name), Message: "event declared more than once", Pos: eventIter.Value().Pos()})
				continue
			}
			events.Add(name)

			labelVal := eventIter.Value().LookupPath(cue.ParsePath("label"))
			if !labelVal.Exists() {
				errs = append(errs, ValidationError{Code: ErrMissingLabel, Field: "event." + string(name), Message: "label is required", Pos: eventIter.Value().Pos()})
			} else if label, err := labelVal.String(); err == nil {
				labelMap[name] = ir.Label(label)
			} else {
				errs = append(errs, formatCUEError(ErrMissingLabel, "event."+string(name)+".label", err))
			}

			roleVal := eventIter.Value().LookupPath(cue.ParsePath("role"))
			if !roleVal.Exists() {
				errs = append(errs, ValidationError{Code: ErrMissingRole, Field: "event." + string(name), Message: "role is required", Pos: eventIter.Value().Pos()})
			} else if role, err := roleVal.String(); err == nil {
				roleMap[name] = ir.Role(role)
			} else {
				errs = append(errs, formatCUEError(ErrMissingRole, "event."+string(name)+".role", err))
			}
		}
	}

	conditionsFor, relErrs := parseRelation(v, "condition", events)
	errs = append(errs, relErrs...)
	milestonesFor, relErrs := parseRelation(v, "milestone", events)
	errs = append(errs, relErrs...)
	responseTo, relErrs := parseRelation(v, "response", events)
	errs = append(errs, relErrs...)
	excludesTo, relErrs := parseRelation(v, "exclude", events)
	errs = append(errs, relErrs...)
	includesTo, relErrs := parseRelation(v, "include", events)
	errs = append(errs, relErrs...)

	marking, markingErrs := parseMarking(v, events)
	errs = append(errs, markingErrs...)

	if len(errs) > 0 {
		return nil, errs
	}

	g, err := ir.NewGraph(events, labelMap, roleMap, conditionsFor, milestonesFor, responseTo, excludesTo, includesTo, marking, nil)
	if err != nil {
		return nil, []ValidationError{{Code: ErrGraphInconsistent, Field: "graph", Message: err.Error()}}
	}
	return g, nil
}

// parseRelation reads a `field: [["from", "to"], ...]` CUE list into an
// ir.EventMap, flagging any entry that isn't a 2-element pair or that
// references an event outside events. Each pair adds "to" to the set keyed
// by "from": for condition and milestone that makes "to" a condition or
// milestone of "from" (`condition: [["B", "A"]]` means B needs A); for
// response, exclude and include it means firing "from" affects "to".
func parseRelation(v cue.Value, field string, events ir.EventSet) (ir.EventMap, []ValidationError) {
	rel := ir.NewEventMap()
	val := v.LookupPath(cue.ParsePath(field))
	if !val.Exists() {
		return rel, nil
	}

	var errs []ValidationError
	iter, err := val.List()
	if err != nil {
		return rel, []ValidationError{formatCUEError(ErrInvalidRelation, field, err)}
	}

	for iter.Next() {
		pair := iter.Value()
		pairIter, err := pair.List()
		if err != nil {
			errs = append(errs, formatCUEError(ErrInvalidRelation, field, err))
			continue
		}

		var elems []string
		for pairIter.Next() {
			s, err := pairIter.Value().String()
			if err != nil {
				errs = append(errs, formatCUEError(ErrInvalidRelation, field, err))
				continue
			}
			elems = append(elems, s)
		}
		if len(elems) != 2 {
			errs = append(errs, ValidationError{Code: ErrInvalidRelation, Field: field, Message: fmt.Sprintf("expected a 2-element [from, to] pair, got %d elements", len(elems)), Pos: pair.Pos()})
			continue
		}

		from, to := ir.Event(elems[0]), ir.Event(elems[1])
		if !events.Contains(from) {
			errs = append(errs, ValidationError{Code: ErrEventUndeclared, Field: field, Message: fmt.Sprintf("references undeclared event %q", from), Pos: pair.Pos()})
			continue
		}
		if !events.Contains(to) {
			errs = append(errs, ValidationError{Code: ErrEventUndeclared, Field: field, Message: fmt.Sprintf("references undeclared event %q", to), Pos: pair.Pos()})
			continue
		}
		rel.Add(from, to)
	}

	return rel, errs
}

func parseMarking(v cue.Value, events ir.EventSet) (ir.Marking, []ValidationError) {
	m := ir.NewMarking()
	markingVal := v.LookupPath(cue.ParsePath("marking"))
	if !markingVal.Exists() {
		return m, nil
	}

	var errs []ValidationError
	sets := map[string]ir.EventSet{
		"executed": m.Executed,
		"included": m.Included,
		"pending":  m.Pending,
	}
	for field, target := range sets {
		setVal := markingVal.LookupPath(cue.ParsePath(field))
		if !setVal.Exists() {
			continue
		}
		iter, err := setVal.List()
		if err != nil {
			errs = append(errs, ValidationError{Code: ErrInvalidMarkingSet, Field: "marking." + field, Message: err.Error(), Pos: setVal.Pos()})
			continue
		}
		for iter.Next() {
			name, err := iter.Value().String()
			if err != nil {
				errs = append(errs, ValidationError{Code: ErrInvalidMarkingSet, Field: "marking." + field, Message: err.Error(), Pos: iter.Value().Pos()})
				continue
			}
			e := ir.Event(name)
			if !events.Contains(e) {
				errs = append(errs, ValidationError{Code: ErrEventUndeclared, Field: "marking." + field, Message: fmt.Sprintf("references undeclared event %q", e), Pos: iter.Value().Pos()})
				continue
			}
			target.Add(e)
		}
	}

	return m, errs
}
