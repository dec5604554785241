package dispatcher

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mvgboard/mvgboard/pkg/departures"
	"github.com/mvgboard/mvgboard/pkg/journeyplanner"
	"github.com/mvgboard/mvgboard/pkg/mvv"
)

// DefaultCooldown is the fixed wait between queued fetches, there to respect
// upstream rate limits.
const DefaultCooldown = 500 * time.Millisecond

const fetchTimeout = 15 * time.Second

type State int32

const (
	StateIdle State = iota
	StateProcessing
)

// Recorder receives every delivered result, eg for archival.
type Recorder interface {
	Record(result departures.Result)
}

// Dispatcher drains a FIFO queue of departure requests with a single worker,
// so at most one upstream fetch (plus its enrichment sub-fetch) is in flight
// at any time, process-wide. The queue is the only shared mutable state and
// is owned exclusively by the worker goroutine. Once dequeued a request runs
// to completion; there is no cancellation and no deduplication.
type Dispatcher struct {
	// Cooldown between jobs while the queue is non-empty.
	Cooldown time.Duration

	client    *mvv.Client
	estimator *journeyplanner.Estimator

	queue chan job
	state atomic.Int32

	resultStore *resultStore
	recorder    Recorder
}

type job struct {
	request departures.Request
	results chan departures.Result
}

func NewDispatcher(client *mvv.Client) *Dispatcher {
	return &Dispatcher{
		Cooldown: DefaultCooldown,

		client:    client,
		estimator: &journeyplanner.Estimator{Client: client},

		queue: make(chan job, 64),
	}
}

// SetRecorder registers a sink for delivered results. Must be called before
// Start.
func (d *Dispatcher) SetRecorder(recorder Recorder) {
	d.recorder = recorder
}

func (d *Dispatcher) Start() {
	go d.worker()
}

// Stop shuts the queue down once the pending requests have drained. Only
// used by tests - in the service the dispatcher lives for the process
// lifetime.
func (d *Dispatcher) Stop() {
	close(d.queue)
}

func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Submit enqueues a request and returns the channel its result will be
// delivered on. Requests are serviced in strict enqueue order.
func (d *Dispatcher) Submit(request departures.Request) <-chan departures.Result {
	results := make(chan departures.Result, 1)
	d.queue <- job{request: request, results: results}

	return results
}

func (d *Dispatcher) worker() {
	for next := range d.queue {
		d.state.Store(int32(StateProcessing))

		result := d.process(next.request)
		d.deliver(result)

		next.results <- result
		close(next.results)

		if len(d.queue) > 0 {
			time.Sleep(d.Cooldown)
		} else {
			d.state.Store(int32(StateIdle))
		}
	}
}

// process runs one full fetch cycle. Failures never escape as errors - a
// failing departures fetch degrades to an empty result so one broken stop
// cannot block the queue or other requesters' results.
func (d *Dispatcher) process(request departures.Request) departures.Result {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	now := time.Now()

	rawDepartures, err := d.client.Departures(ctx, request.StopID, now)
	if err != nil {
		log.Error().Err(err).
			Str("stop", request.StopID).
			Str("identifier", request.Identifier).
			Msg("Failed to fetch departures")

		return departures.Result{
			Identifier:  request.Identifier,
			Departures:  []departures.Departure{},
			Failure:     departures.FailureReasonUpstreamFetch,
			GeneratedAt: now,
		}
	}

	normalized := departures.Normalize(rawDepartures, now, request)

	if request.DestinationStopID != "" && len(normalized) > 0 {
		normalized = d.estimator.EstimateArrivals(ctx, normalized, request.StopID, request.DestinationStopID, now)
	}

	log.Info().
		Str("stop", request.StopID).
		Str("identifier", request.Identifier).
		Int("departures", len(normalized)).
		Msg("Delivering departures")

	return departures.Result{
		Identifier:  request.Identifier,
		Departures:  normalized,
		GeneratedAt: now,
	}
}

func (d *Dispatcher) deliver(result departures.Result) {
	if d.resultStore != nil {
		d.resultStore.Put(result)
	}

	if d.recorder != nil {
		d.recorder.Record(result)
	}
}
