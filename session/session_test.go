package session

import (
	"reflect"
	"testing"

	nt "github.com/h4x0r/nfchat-sub002/entity"
)

func TestMutatorsPreserveOrderAndDedup(t *testing.T) {
	s := New(nt.FilterState{})

	s.AddSrcIP("9.9.9.9")
	s.AddSrcIP("1.1.1.1")
	s.AddSrcIP("9.9.9.9") // duplicate, ignored
	s.AddDstPort(443)
	s.AddDstPort(80)

	state := s.State()
	if !reflect.DeepEqual(state.SrcIPs, []string{"9.9.9.9", "1.1.1.1"}) {
		t.Errorf("src ips = %v", state.SrcIPs)
	}
	if !reflect.DeepEqual(state.DstPorts, []int{443, 80}) {
		t.Errorf("dst ports = %v", state.DstPorts)
	}

	s.RemoveSrcIP("9.9.9.9")
	if got := s.State().SrcIPs; !reflect.DeepEqual(got, []string{"1.1.1.1"}) {
		t.Errorf("after remove, src ips = %v", got)
	}
}

func TestToggleAttackType(t *testing.T) {
	s := New(nt.FilterState{})

	s.ToggleAttackType("DoS")
	s.ToggleAttackType("Exploits")
	if got := s.State().AttackTypes; !reflect.DeepEqual(got, []string{"DoS", "Exploits"}) {
		t.Fatalf("attack types = %v", got)
	}

	s.ToggleAttackType("DoS")
	if got := s.State().AttackTypes; !reflect.DeepEqual(got, []string{"Exploits"}) {
		t.Errorf("after toggle off, attack types = %v", got)
	}
}

func TestVersionBumpsOnEveryMutation(t *testing.T) {
	s := New(nt.FilterState{})
	if s.Version() != 0 {
		t.Fatalf("fresh session version = %d", s.Version())
	}

	start := int64(1000)
	s.SetTimeRange(&start, nil)
	s.AddProtocol(6)
	s.SetCustomFilter("IN_BYTES > 0")
	s.Clear()

	if s.Version() != 4 {
		t.Errorf("version = %d, want 4", s.Version())
	}
}

func TestPredicateRecompute(t *testing.T) {
	s := New(nt.FilterState{})
	if got := s.Predicate(); got != "1=1" {
		t.Fatalf("empty session predicate = %q", got)
	}

	s.AddSrcIP("59.166.0.2")
	if got := s.Predicate(); got != "IPV4_SRC_ADDR IN ('59.166.0.2')" {
		t.Errorf("predicate = %q", got)
	}

	s.Clear()
	if got := s.Predicate(); got != "1=1" {
		t.Errorf("cleared predicate = %q", got)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := New(nt.FilterState{SrcIPs: []string{"1.1.1.1"}})

	snap := s.State()
	snap.SrcIPs[0] = "2.2.2.2"
	snap.SrcIPs = append(snap.SrcIPs, "3.3.3.3")

	if got := s.State().SrcIPs; !reflect.DeepEqual(got, []string{"1.1.1.1"}) {
		t.Errorf("session state leaked through snapshot: %v", got)
	}
}

func TestSetTimeRangeCopiesBounds(t *testing.T) {
	start, end := int64(100), int64(200)
	s := New(nt.FilterState{})
	s.SetTimeRange(&start, &end)

	start = 999
	state := s.State()
	if *state.TimeRange.Start != 100 || *state.TimeRange.End != 200 {
		t.Errorf("time range aliased caller pointers: %+v", state.TimeRange)
	}
}

func TestClearKeepsResultCount(t *testing.T) {
	s := New(nt.FilterState{})
	s.AddDstIP("2.2.2.2")
	s.SetResultCount(57)
	s.Clear()

	state := s.State()
	if state.ResultCount != 57 {
		t.Errorf("result count = %d, want 57", state.ResultCount)
	}
	if len(state.DstIPs) != 0 {
		t.Errorf("dst ips survived clear: %v", state.DstIPs)
	}
}
