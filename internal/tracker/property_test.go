package tracker_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/fakeyudi/hat/internal/clock"
	"github.com/fakeyudi/hat/internal/tracker"
)

var projectNames = []string{"acme", "beta", "gamma"}

// applyRandomOp draws one command and runs it against e.
func applyRandomOp(t *rapid.T, e *tracker.Engine, clk *clock.FakeClock) (string, tracker.Result, error) {
	kind := rapid.SampledFrom([]string{"new", "delete", "switch", "on", "off", "edit", "undo", "wait"}).Draw(t, "op")
	switch kind {
	case "new":
		res, err := e.New(rapid.SampledFrom(projectNames).Draw(t, "name"))
		return kind, res, err
	case "delete":
		res, err := e.Delete(rapid.SampledFrom(projectNames).Draw(t, "name"))
		return kind, res, err
	case "switch":
		res, err := e.Switch(rapid.SampledFrom(projectNames).Draw(t, "name"))
		return kind, res, err
	case "on":
		res, err := e.On()
		return kind, res, err
	case "off":
		res, err := e.Off(rapid.SampledFrom([]string{"work", "  review ", ""}).Draw(t, "desc"))
		return kind, res, err
	case "edit":
		secs := rapid.Int64Range(-5, 36_000).Draw(t, "edit_secs")
		res, err := e.Edit(time.Duration(secs)*time.Second, rapid.SampledFrom([]string{"", "fixed"}).Draw(t, "edit_desc"))
		return kind, res, err
	case "undo":
		res, err := e.Undo()
		return kind, res, err
	}
	clk.Advance(time.Duration(rapid.Int64Range(0, 7200).Draw(t, "wait_secs")) * time.Second)
	return kind, tracker.Result{}, nil
}

func withoutUndo(ps tracker.PersistedState) tracker.PersistedState {
	ps.Undo = nil
	return ps
}

func checkInvariants(t *rapid.T, ps tracker.PersistedState) {
	if ps.ActiveProject != nil {
		if _, ok := ps.Projects[*ps.ActiveProject]; !ok {
			t.Fatalf("active project %q does not exist", *ps.ActiveProject)
		}
	}
	if ps.Timer != nil {
		if ps.ActiveProject == nil || *ps.ActiveProject != ps.Timer.Project {
			t.Fatalf("timer runs on %q but active project is %v", ps.Timer.Project, ps.ActiveProject)
		}
	}
}

func checkRoundTrip(t *rapid.T, ps tracker.PersistedState) {
	st, err := tracker.FromPersisted(ps)
	if err != nil {
		t.Fatalf("FromPersisted: %v", err)
	}
	if got := tracker.ToPersisted(st); !reflect.DeepEqual(got, ps) {
		t.Fatalf("state round-trip mismatch:\n got %+v\nwant %+v", got, ps)
	}

	data, err := json.Marshal(ps)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded tracker.PersistedState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, ps) {
		t.Fatalf("JSON round-trip mismatch:\n got %+v\nwant %+v", decoded, ps)
	}
}

// Feature: hat, Property 1: every reachable state satisfies the invariants
// and survives an encode/decode cycle unchanged.
func TestReachableStatesRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := newMemStore()
		clk := clock.Fake(epoch)
		e := tracker.NewEngine(store, clk, nil, sequentialIDs())

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			before, saves := store.state, store.saves
			kind, _, err := applyRandomOp(t, e, clk)
			if err != nil {
				if store.saves != saves || !reflect.DeepEqual(before, store.state) {
					t.Fatalf("%s failed with %v but changed the state", kind, err)
				}
				var opErr *tracker.OpError
				if !errors.As(err, &opErr) {
					t.Fatalf("%s: error %v is not an *OpError", kind, err)
				}
			}
			checkInvariants(t, store.state)
			checkRoundTrip(t, store.state)
		}
	})
}

// Feature: hat, Property 2: undoing a recorded operation restores the state
// it was applied to, and a second undo has nothing left to reverse.
func TestUndoRestoresPriorState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := newMemStore()
		clk := clock.Fake(epoch)
		e := tracker.NewEngine(store, clk, nil, sequentialIDs())

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			before := store.state
			kind, _, err := applyRandomOp(t, e, clk)
			recorded := kind != "switch" && kind != "undo" && kind != "wait"
			if err != nil || !recorded {
				continue
			}
			if !rapid.Bool().Draw(t, "undo_now") {
				continue
			}
			clk.Advance(time.Duration(rapid.Int64Range(0, 600).Draw(t, "undo_wait")) * time.Second)
			if _, err := e.Undo(); err != nil {
				t.Fatalf("undo after %s: %v", kind, err)
			}
			if !reflect.DeepEqual(withoutUndo(store.state), withoutUndo(before)) {
				t.Fatalf("undo after %s did not restore the state:\n got %+v\nwant %+v", kind, store.state, before)
			}
			if _, err := e.Undo(); !errors.Is(err, tracker.ErrNothingToUndo) {
				t.Fatalf("second undo: got %v, want ErrNothingToUndo", err)
			}
		}
	})
}

// Feature: hat, Property 3: on followed by off logs exactly the elapsed
// whole seconds.
func TestOnOffLogsElapsed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := newMemStore()
		clk := clock.Fake(epoch.Add(time.Duration(rapid.Int64Range(0, 999).Draw(t, "start_ms")) * time.Millisecond))
		e := tracker.NewEngine(store, clk, nil, sequentialIDs())

		if _, err := e.New("acme"); err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, err := e.On(); err != nil {
			t.Fatalf("On: %v", err)
		}
		secs := rapid.Int64Range(0, 200_000).Draw(t, "secs")
		clk.Advance(time.Duration(secs) * time.Second)

		res, err := e.Off("work")
		if err != nil {
			t.Fatalf("Off: %v", err)
		}
		if res.Duration != time.Duration(secs)*time.Second {
			t.Fatalf("logged %v, want %ds", res.Duration, secs)
		}
		got := store.state.Projects["acme"].Entries
		if len(got) != 1 || got[0].DurationSeconds != uint64(secs) {
			t.Fatalf("entries = %+v, want one entry of %ds", got, secs)
		}
	})
}
