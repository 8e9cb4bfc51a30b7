package ir

// Event is an opaque identifier for a graph event, unique within a Graph.
type Event string

// Label denotes an observable activity. Many events may share a label;
// this is what makes non-determinism during alignment and replay possible.
type Label string

// Role tags an event with an actor.
type Role string
