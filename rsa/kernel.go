package rsa

import "math"

// fragmentationSample names the three metrics summed across every edge's
// spectrum at each sampling point.
type fragmentationSample struct {
	absolute FragmentationMetric
	entropy  FragmentationMetric
	external FragmentationMetric
}

// Kernel drives the discrete-event simulation: the priority-queue event
// loop, the per-event statistics bookkeeping, warm-up discard, and periodic
// fragmentation sampling. It owns the Carriers map and mutates it
// exclusively through Dispatch/Release.
type Kernel struct {
	config *Configuration

	queue    *EventQueue
	carriers Carriers
	router   *Router

	statistics Statistics
	snapshots  []Statistics

	kToIgnore     float64
	ignoredFirstK bool
	fragmentation fragmentationSample
}

// NewKernel constructs a Kernel from configuration: one Spectrum per graph
// edge, then Reset.
func NewKernel(config *Configuration) *Kernel {
	k := &Kernel{
		config:    config,
		queue:     NewEventQueue(),
		carriers:  make(Carriers),
		router:    NewRouter(),
		kToIgnore: 0.1 * config.TimeUnits,
		fragmentation: fragmentationSample{
			absolute: AbsoluteFragmentation,
			entropy:  EntropyBasedWith(minFSUs(config.RequestTypes)),
			external: ExternalFragmentation,
		},
	}

	for _, e := range config.Graph.Edges() {
		key := cantorPair(e.Source, e.Destination)
		k.carriers[key] = NewSpectrum(config.FSUsPerLink)
	}

	k.Reset()
	return k
}

// minFSUs returns the smallest FSUs footprint across every configured
// RequestType, the entropy-fragmentation metric's minFSUs parameter.
func minFSUs(requestTypes []*RequestType) int {
	if len(requestTypes) == 0 {
		return 1
	}
	min := requestTypes[0].FSUs
	for _, rt := range requestTypes[1:] {
		if rt.FSUs < min {
			min = rt.FSUs
		}
	}
	return min
}

// Reset clears statistics, snapshots, per-type counters, re-seeds the PRNG
// with its current seed, installs a fresh random-routing strategy, and
// enqueues (and counts) the first arrival.
func (k *Kernel) Reset() {
	k.statistics = Statistics{}
	k.snapshots = nil
	k.ignoredFirstK = false

	for _, rt := range k.config.RequestTypes {
		rt.Counting = 0
		rt.Blocking = 0
	}

	k.config.Rand.SetSeed(k.config.Rand.Seed())
	k.router.SetStrategy(NewRandomRouting(k.config.Graph, k.config.Rand))
	k.scheduleNextArrival()
}

// HasNext reports whether another event is due within TimeUnits.
func (k *Kernel) HasNext() bool {
	return !k.queue.Empty() && k.queue.Top().Time <= k.config.TimeUnits
}

// Run drains the event queue until HasNext is false.
func (k *Kernel) Run() {
	for k.HasNext() {
		k.Next()
	}
}

// Statistics returns the current (mutable-copy) statistics snapshot.
func (k *Kernel) Statistics() Statistics { return k.statistics }

// Snapshots returns every fragmentation sample recorded so far.
func (k *Kernel) Snapshots() []Statistics {
	out := make([]Statistics, len(k.snapshots))
	copy(out, k.snapshots)
	return out
}

// Next pops and processes exactly one event.
func (k *Kernel) Next() {
	event := k.queue.PopNext()
	k.statistics.Time = event.Time

	k.applyWarmUpDiscard()

	// Departures do not sample or schedule a further arrival — every
	// arrival already schedules its own successor (scheduleNextArrival
	// below), so the queue carries exactly one pending arrival at all
	// times without the departure branch needing to contribute one.
	if event.Kind == EventDeparture {
		k.statistics.ActiveRequests--
		k.config.Logger.Infof("Request for %d FSU(s) departing at %.3f", event.Request.Type.FSUs, event.Time)
		Release(k.carriers, event.Request)
		return
	}

	k.dispatchArrival(event)
	k.sampleIfDue(event.Time)
	k.scheduleNextArrival()
}

// applyWarmUpDiscard: once IgnoreFirst is set and simulated time crosses
// 10% of TimeUnits, statistics and every RequestType's running counters are
// zeroed exactly once. ActiveRequests is deliberately excluded so in-flight
// requests are not double-counted.
func (k *Kernel) applyWarmUpDiscard() {
	if !k.config.IgnoreFirst || k.ignoredFirstK || k.statistics.Time <= k.kToIgnore {
		return
	}
	k.ignoredFirstK = true

	active := k.statistics.ActiveRequests
	k.statistics = Statistics{Time: k.statistics.Time, ActiveRequests: active}

	for _, rt := range k.config.RequestTypes {
		rt.Counting = 0
		rt.Blocking = 0
	}

	k.config.Logger.Infof("Discard first %.3f time units", k.statistics.Time)
}

func (k *Kernel) dispatchArrival(event Event) {
	event.Request.Accepted = false

	if k.statistics.ActiveRequests < int64(k.config.FSUsPerLink) && Dispatch(k.carriers, event.Request) {
		k.statistics.ActiveRequests++
		event.Request.Accepted = true
		k.config.Logger.Infof("Accept request for %d FSU(s) at %.3f", event.Request.Type.FSUs, k.statistics.Time)
		k.scheduleDeparture(event)
		return
	}

	k.config.Logger.Infof("Blocking request for %d FSU(s) at %.3f", event.Request.Type.FSUs, event.Time)
	k.statistics.TotalFSUsBlocked += uint64(event.Request.Type.FSUs)
	for _, rt := range k.config.RequestTypes {
		if rt.FSUs == event.Request.Type.FSUs {
			rt.Blocking++
			break
		}
	}
	k.statistics.TotalRequestsBlocked++
}

func (k *Kernel) scheduleDeparture(event Event) {
	k.queue.Schedule(Event{
		Time:    k.statistics.Time + k.config.Rand.Next("service"),
		Kind:    EventDeparture,
		Request: event.Request,
	})
}

// scheduleNextArrival runs from Reset and after every arrival (never after
// a departure), so the queue carries exactly one pending arrival at all
// times: draw a request type, compute a random route, and enqueue the
// arrival.
func (k *Kernel) scheduleNextArrival() {
	index := int(k.config.Rand.Next("fsus"))
	if index < 0 || index >= len(k.config.RequestTypes) {
		index = 0
	}
	requestType := k.config.RequestTypes[index]
	requestType.Counting++

	route, ok := k.router.Compute(NullVertex, NullVertex)
	if !ok {
		// No route available (disconnected/degenerate graph); nothing to
		// schedule. Normal operation always has a route.
		return
	}

	request := &Request{Type: requestType, Route: route}

	k.queue.Schedule(Event{
		Time:    k.statistics.Time + k.config.Rand.Next("arrival"),
		Kind:    EventArrival,
		Request: request,
	})

	k.statistics.TotalFSUsRequested += uint64(requestType.FSUs)
	k.statistics.TotalRequests++
}

// sampleIfDue appends a fragmentation snapshot when no snapshot has been
// taken yet, or the gap since the last one reaches SamplingTime.
func (k *Kernel) sampleIfDue(eventTime float64) {
	due := len(k.snapshots) == 0 || math.Abs(k.snapshots[len(k.snapshots)-1].Time-eventTime) >= k.config.SamplingTime
	if !due {
		return
	}

	k.statistics.AbsoluteFrag = 0
	k.statistics.EntropyFrag = 0
	k.statistics.ExternalFrag = 0

	for _, spectrum := range k.carriers {
		k.statistics.AbsoluteFrag += k.fragmentation.absolute(spectrum)
		k.statistics.EntropyFrag += k.fragmentation.entropy(spectrum)
		k.statistics.ExternalFrag += k.fragmentation.external(spectrum)
	}

	k.snapshots = append(k.snapshots, k.statistics)
}
