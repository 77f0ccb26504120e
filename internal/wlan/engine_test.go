package wlan

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSession is a scriptable Session for engine tests. Interfaces() returns
// the next element of interfaces on each call, sticking at the last one, so
// tests can model the adapter-enable re-enumeration.
type fakeSession struct {
	interfaces    [][]Interface
	interfacesErr error
	enumCalls     int

	saved      map[string][]string
	savedErr   map[string]error
	visible    map[string]map[string]struct{}
	visibleErr map[string]error

	// rejects lists profiles whose connect request fails synchronously.
	rejects map[string]bool
	// connectable lists profiles that reach the connected state when polled.
	connectable map[string]bool

	connects []string
	current  string
	scans    int
	polls    int
	closed   int
}

func (f *fakeSession) Interfaces() ([]Interface, error) {
	f.enumCalls++
	if f.interfacesErr != nil {
		return nil, f.interfacesErr
	}
	i := f.enumCalls - 1
	if i >= len(f.interfaces) {
		i = len(f.interfaces) - 1
	}
	return f.interfaces[i], nil
}

func (f *fakeSession) SavedProfiles(iface Interface) ([]string, error) {
	if err := f.savedErr[iface.ID]; err != nil {
		return nil, err
	}
	return f.saved[iface.ID], nil
}

func (f *fakeSession) Scan(iface Interface) error {
	f.scans++
	return nil
}

func (f *fakeSession) VisibleNetworks(iface Interface) (map[string]struct{}, error) {
	if err := f.visibleErr[iface.ID]; err != nil {
		return nil, err
	}
	return f.visible[iface.ID], nil
}

func (f *fakeSession) Connect(iface Interface, profile string) error {
	f.connects = append(f.connects, profile)
	if f.rejects[profile] {
		return &ConnectRequestError{Profile: profile, Err: errors.New("rejected")}
	}
	f.current = profile
	return nil
}

func (f *fakeSession) State(iface Interface) (InterfaceState, bool) {
	f.polls++
	if f.current != "" && f.connectable[f.current] {
		return StateConnected, true
	}
	return StateAssociating, true
}

func (f *fakeSession) Close() error {
	f.closed++
	return nil
}

// testEngine builds an Engine around sess with waits collapsed so tests run
// instantly but the poll loop still makes a bounded number of rounds.
func testEngine(sess *fakeSession, strategy Strategy, reachable func() bool) *Engine {
	e := NewEngine(
		func() (Session, error) { return sess, nil },
		func(ctx context.Context) bool { return reachable() },
		nil,
		strategy,
	)
	e.ScanSettle = 0
	e.AdapterSettle = 0
	e.PollInterval = time.Millisecond
	e.PollBudget = 3 * time.Millisecond
	return e
}

func singleInterface() []Interface {
	return []Interface{{ID: "iface-a", Name: "Wi-Fi"}}
}

func TestRecover_StopsAtFirstVerifiedProfile(t *testing.T) {
	sess := &fakeSession{
		interfaces:  [][]Interface{singleInterface()},
		saved:       map[string][]string{"iface-a": {"Office", "Home", "Guest"}},
		connectable: map[string]bool{"Office": true, "Home": true, "Guest": true},
	}
	// Reachable only once associated to Home.
	engine := testEngine(sess, AllStrategy(), func() bool { return sess.current == "Home" })

	outcome := engine.Recover(context.Background())

	if !outcome.OK {
		t.Fatalf("outcome = %+v, want success", outcome)
	}
	if outcome.Profile != "Home" {
		t.Errorf("Profile = %q, want Home", outcome.Profile)
	}
	if outcome.Attempted != 2 {
		t.Errorf("Attempted = %d, want 2 (Office then Home)", outcome.Attempted)
	}
	for _, p := range sess.connects {
		if p == "Guest" {
			t.Error("Guest was attempted after success")
		}
	}
	if sess.closed != 1 {
		t.Errorf("session closed %d times, want exactly 1", sess.closed)
	}
}

func TestRecover_NoInterfaceAndEnablerFails(t *testing.T) {
	sess := &fakeSession{interfaces: [][]Interface{nil}}
	enablerCalls := 0
	engine := testEngine(sess, ScanOnlyStrategy(), func() bool { return true })
	engine.EnableAdapter = func() bool {
		enablerCalls++
		return false
	}

	outcome := engine.Recover(context.Background())

	if outcome.OK {
		t.Fatal("outcome OK, want failure")
	}
	if outcome.Reason != ReasonNoInterface {
		t.Errorf("Reason = %v, want ReasonNoInterface", outcome.Reason)
	}
	if outcome.Attempted != 0 || len(sess.connects) != 0 {
		t.Errorf("profiles were attempted: %v", sess.connects)
	}
	if enablerCalls != 1 {
		t.Errorf("enabler called %d times, want 1", enablerCalls)
	}
	if sess.enumCalls != 1 {
		t.Errorf("interfaces enumerated %d times, want 1 (no retry when enabler fails)", sess.enumCalls)
	}
	if sess.closed != 1 {
		t.Errorf("session closed %d times, want 1", sess.closed)
	}
}

func TestRecover_AdapterFallbackRetriesEnumerationOnce(t *testing.T) {
	// First enumeration: nothing. After the enabler reports success, the
	// interface appears.
	sess := &fakeSession{
		interfaces:  [][]Interface{nil, singleInterface()},
		saved:       map[string][]string{"iface-a": {"Home"}},
		connectable: map[string]bool{"Home": true},
	}
	engine := testEngine(sess, AllStrategy(), func() bool { return sess.current == "Home" })
	engine.EnableAdapter = func() bool { return true }

	outcome := engine.Recover(context.Background())

	if !outcome.OK || outcome.Profile != "Home" {
		t.Fatalf("outcome = %+v, want success via Home", outcome)
	}
	if sess.enumCalls != 2 {
		t.Errorf("interfaces enumerated %d times, want 2", sess.enumCalls)
	}
}

func TestRecover_PollingIsBounded(t *testing.T) {
	// State never reaches connected and the probe never passes: every
	// attempt must terminate within the fixed budget, not hang.
	sess := &fakeSession{
		interfaces: [][]Interface{singleInterface()},
		saved:      map[string][]string{"iface-a": {"Home", "Office"}},
	}
	engine := testEngine(sess, AllStrategy(), func() bool { return false })

	done := make(chan Outcome, 1)
	go func() { done <- engine.Recover(context.Background()) }()

	var outcome Outcome
	select {
	case outcome = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Recover did not terminate within the polling budget")
	}

	if outcome.OK {
		t.Fatal("outcome OK, want exhaustion")
	}
	if outcome.Reason != ReasonExhausted {
		t.Errorf("Reason = %v, want ReasonExhausted", outcome.Reason)
	}
	if outcome.Attempted != 2 {
		t.Errorf("Attempted = %d, want 2", outcome.Attempted)
	}
	// 2 profiles x (PollBudget / PollInterval) rounds, nothing open-ended.
	if wantPolls := 2 * 3; sess.polls != wantPolls {
		t.Errorf("state polled %d times, want %d", sess.polls, wantPolls)
	}
}

func TestRecover_EndToEndScanOnlyScenario(t *testing.T) {
	// Office is saved but out of range; Home is in range but provides no
	// Internet; Guest is in range and works.
	sess := &fakeSession{
		interfaces: [][]Interface{singleInterface()},
		saved:      map[string][]string{"iface-a": {"Office", "Home", "Guest"}},
		visible: map[string]map[string]struct{}{
			"iface-a": visibleSet("Home", "Guest"),
		},
		connectable: map[string]bool{"Home": true, "Guest": true},
	}
	engine := testEngine(sess, ScanOnlyStrategy(), func() bool { return sess.current == "Guest" })

	outcome := engine.Recover(context.Background())

	if !outcome.OK || outcome.Profile != "Guest" {
		t.Fatalf("outcome = %+v, want success via Guest", outcome)
	}
	wantOrder := []string{"Home", "Guest"}
	if len(sess.connects) != len(wantOrder) {
		t.Fatalf("connect attempts = %v, want %v", sess.connects, wantOrder)
	}
	for i, p := range wantOrder {
		if sess.connects[i] != p {
			t.Errorf("connect attempt %d = %q, want %q", i, sess.connects[i], p)
		}
	}
	if sess.scans != 1 {
		t.Errorf("scan requested %d times, want 1", sess.scans)
	}
}

func TestRecover_SessionOpenFailure(t *testing.T) {
	openErr := &SessionOpenError{Err: errors.New("service not running")}
	engine := NewEngine(
		func() (Session, error) { return nil, openErr },
		func(ctx context.Context) bool { return true },
		nil,
		ScanOnlyStrategy(),
	)

	outcome := engine.Recover(context.Background())

	if outcome.OK {
		t.Fatal("outcome OK, want failure")
	}
	if outcome.Reason != ReasonNoSession {
		t.Errorf("Reason = %v, want ReasonNoSession", outcome.Reason)
	}
	if !errors.Is(outcome.Err, openErr) {
		t.Errorf("Err = %v, want the open error", outcome.Err)
	}
}

func TestRecover_SkipsInterfaceOnProfileQueryError(t *testing.T) {
	ifaceA := Interface{ID: "iface-a"}
	ifaceB := Interface{ID: "iface-b"}
	sess := &fakeSession{
		interfaces:  [][]Interface{{ifaceA, ifaceB}},
		saved:       map[string][]string{"iface-b": {"Home"}},
		savedErr:    map[string]error{"iface-a": &ProfileQueryError{Interface: ifaceA, Err: errors.New("gone")}},
		connectable: map[string]bool{"Home": true},
	}
	engine := testEngine(sess, AllStrategy(), func() bool { return sess.current == "Home" })

	outcome := engine.Recover(context.Background())

	if !outcome.OK || outcome.Profile != "Home" {
		t.Fatalf("outcome = %+v, want success via Home on second interface", outcome)
	}
}

func TestRecover_ConnectRejectionSkipsProfileWithoutRetry(t *testing.T) {
	sess := &fakeSession{
		interfaces:  [][]Interface{singleInterface()},
		saved:       map[string][]string{"iface-a": {"Bad", "Home"}},
		rejects:     map[string]bool{"Bad": true},
		connectable: map[string]bool{"Home": true},
	}
	engine := testEngine(sess, AllStrategy(), func() bool { return sess.current == "Home" })

	outcome := engine.Recover(context.Background())

	if !outcome.OK || outcome.Profile != "Home" {
		t.Fatalf("outcome = %+v, want success via Home", outcome)
	}
	badAttempts := 0
	for _, p := range sess.connects {
		if p == "Bad" {
			badAttempts++
		}
	}
	if badAttempts != 1 {
		t.Errorf("Bad attempted %d times, want exactly 1 (no retry)", badAttempts)
	}
}

func TestRecover_NoCandidatesReason(t *testing.T) {
	sess := &fakeSession{
		interfaces: [][]Interface{singleInterface()},
		saved:      map[string][]string{"iface-a": {"Office"}},
		visible: map[string]map[string]struct{}{
			"iface-a": visibleSet(), // scan saw nothing in range
		},
	}
	engine := testEngine(sess, ScanOnlyStrategy(), func() bool { return true })

	outcome := engine.Recover(context.Background())

	if outcome.OK {
		t.Fatal("outcome OK, want failure")
	}
	if outcome.Reason != ReasonNoCandidates {
		t.Errorf("Reason = %v, want ReasonNoCandidates", outcome.Reason)
	}
	if len(sess.connects) != 0 {
		t.Errorf("profiles attempted: %v, want none", sess.connects)
	}
}

func TestRecover_ContextCancellationAborts(t *testing.T) {
	sess := &fakeSession{
		interfaces: [][]Interface{singleInterface()},
		saved:      map[string][]string{"iface-a": {"Home"}},
	}
	engine := testEngine(sess, AllStrategy(), func() bool { return false })
	engine.PollInterval = 50 * time.Millisecond
	engine.PollBudget = 10 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Outcome, 1)
	go func() { done <- engine.Recover(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case outcome := <-done:
		if outcome.OK {
			t.Error("outcome OK after cancellation")
		}
		if outcome.Reason != ReasonCancelled {
			t.Errorf("Reason = %v, want %v", outcome.Reason, ReasonCancelled)
		}
		if sess.closed != 1 {
			t.Errorf("session closed %d times, want 1", sess.closed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Recover did not return after cancellation")
	}
}

func TestRecover_CancellationBeforeFirstAttempt(t *testing.T) {
	// Cancellation during the scan settle wait, before any connect was
	// issued, reports a cancelled pass rather than an exhausted one.
	sess := &fakeSession{
		interfaces: [][]Interface{singleInterface()},
		saved:      map[string][]string{"iface-a": {"Home"}},
		visible: map[string]map[string]struct{}{
			"iface-a": visibleSet("Home"),
		},
	}
	engine := testEngine(sess, ScanOnlyStrategy(), func() bool { return false })
	engine.ScanSettle = 10 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Outcome, 1)
	go func() { done <- engine.Recover(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case outcome := <-done:
		if outcome.Reason != ReasonCancelled {
			t.Errorf("Reason = %v, want %v", outcome.Reason, ReasonCancelled)
		}
		if outcome.Attempted != 0 {
			t.Errorf("Attempted = %d, want 0", outcome.Attempted)
		}
		if len(sess.connects) != 0 {
			t.Errorf("connects = %v, want none", sess.connects)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Recover did not return after cancellation")
	}
}
