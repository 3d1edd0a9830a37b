// Package session owns the dashboard's filter state. The state is mutated
// only through explicit setters, each bumping a version, and is handed out
// as deep-copied snapshots so the compiler and panels never share a mutable
// reference with the session.
package session

import (
	nt "github.com/h4x0r/nfchat-sub002/entity"
	"github.com/h4x0r/nfchat-sub002/predicate"
)

// Session holds one versioned FilterState.
type Session struct {
	state   nt.FilterState
	version int
}

// New creates a session seeded with an initial state, typically from the
// layout file.
func New(initial nt.FilterState) *Session {
	return &Session{state: initial.Clone()}
}

// State returns a snapshot of the current filter state.
func (s *Session) State() nt.FilterState {
	return s.state.Clone()
}

// Version returns the mutation counter; it increments on every setter call.
func (s *Session) Version() int {
	return s.version
}

// Predicate compiles the current state into a WHERE fragment.
func (s *Session) Predicate() string {
	return predicate.Compile(s.state)
}

// SetTimeRange replaces both time bounds; nil means unbounded.
func (s *Session) SetTimeRange(start, end *int64) {
	s.state.TimeRange = nt.TimeRange{}
	if start != nil {
		v := *start
		s.state.TimeRange.Start = &v
	}
	if end != nil {
		v := *end
		s.state.TimeRange.End = &v
	}
	s.version++
}

func (s *Session) AddSrcIP(ip string) {
	s.state.SrcIPs = addString(s.state.SrcIPs, ip)
	s.version++
}

func (s *Session) RemoveSrcIP(ip string) {
	s.state.SrcIPs = removeString(s.state.SrcIPs, ip)
	s.version++
}

func (s *Session) AddDstIP(ip string) {
	s.state.DstIPs = addString(s.state.DstIPs, ip)
	s.version++
}

func (s *Session) RemoveDstIP(ip string) {
	s.state.DstIPs = removeString(s.state.DstIPs, ip)
	s.version++
}

func (s *Session) AddSrcPort(port int) {
	s.state.SrcPorts = addInt(s.state.SrcPorts, port)
	s.version++
}

func (s *Session) RemoveSrcPort(port int) {
	s.state.SrcPorts = removeInt(s.state.SrcPorts, port)
	s.version++
}

func (s *Session) AddDstPort(port int) {
	s.state.DstPorts = addInt(s.state.DstPorts, port)
	s.version++
}

func (s *Session) RemoveDstPort(port int) {
	s.state.DstPorts = removeInt(s.state.DstPorts, port)
	s.version++
}

func (s *Session) AddProtocol(proto int) {
	s.state.Protocols = addInt(s.state.Protocols, proto)
	s.version++
}

func (s *Session) RemoveProtocol(proto int) {
	s.state.Protocols = removeInt(s.state.Protocols, proto)
	s.version++
}

func (s *Session) AddL7Protocol(proto int) {
	s.state.L7Protocols = addInt(s.state.L7Protocols, proto)
	s.version++
}

func (s *Session) RemoveL7Protocol(proto int) {
	s.state.L7Protocols = removeInt(s.state.L7Protocols, proto)
	s.version++
}

// ToggleAttackType adds the label if absent, removes it if present.
func (s *Session) ToggleAttackType(label string) {
	for _, existing := range s.state.AttackTypes {
		if existing == label {
			s.state.AttackTypes = removeString(s.state.AttackTypes, label)
			s.version++
			return
		}
	}
	s.state.AttackTypes = append(s.state.AttackTypes, label)
	s.version++
}

func (s *Session) SetCustomFilter(expr string) {
	s.state.CustomFilter = expr
	s.version++
}

// SetResultCount records the row count of the last execution. Informational
// only; it does not affect the predicate.
func (s *Session) SetResultCount(count int) {
	s.state.ResultCount = count
	s.version++
}

// Clear resets every constraint, leaving the result count.
func (s *Session) Clear() {
	count := s.state.ResultCount
	s.state = nt.FilterState{ResultCount: count}
	s.version++
}

// add/remove helpers preserve insertion order; adds deduplicate since
// duplicate list members carry no meaning in the predicate.

func addString(list []string, val string) []string {
	for _, existing := range list {
		if existing == val {
			return list
		}
	}
	return append(list, val)
}

func removeString(list []string, val string) []string {
	out := list[:0]
	for _, existing := range list {
		if existing != val {
			out = append(out, existing)
		}
	}
	return out
}

func addInt(list []int, val int) []int {
	for _, existing := range list {
		if existing == val {
			return list
		}
	}
	return append(list, val)
}

func removeInt(list []int, val int) []int {
	out := list[:0]
	for _, existing := range list {
		if existing != val {
			out = append(out, existing)
		}
	}
	return out
}
