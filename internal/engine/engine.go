package engine

import (
	"sync"

	"github.com/tiron-sh/tiron/internal/runbook"
	"github.com/tiron-sh/tiron/internal/transport"
)

// TransportFactory builds the transport used to reach one host. The
// caller supplies one (SSH for a real host, Local for localhost) so
// the engine never has to decide between them itself.
type TransportFactory func(node *runbook.Node) (transport.Transport, error)

// Engine sequences a runbook's runs against the hosts they target.
type Engine struct {
	NewTransport TransportFactory
}

// New returns an Engine dispatching hosts through newTransport.
func New(newTransport TransportFactory) *Engine {
	return &Engine{NewTransport: newTransport}
}

// RunAll executes runs strictly in sequence, aborting the remaining
// ones the moment one fails, and returns whether every run that
// actually executed succeeded.
func (e *Engine) RunAll(runs []*runbook.Run, sink Sink) bool {
	for _, run := range runs {
		if !e.runOne(run, sink) {
			return false
		}
	}
	return true
}

func (e *Engine) runOne(run *runbook.Run, sink Sink) bool {
	sink <- Event{Kind: EventRunStarted, RunID: run.ID, RunName: run.Name}

	var wg sync.WaitGroup
	results := make([]bool, len(run.Hosts))

	for i, host := range run.Hosts {
		wg.Add(1)
		go func(i int, host *runbook.Node) {
			defer wg.Done()
			results[i] = e.runHost(run, host, sink)
		}(i, host)
	}
	wg.Wait()

	success := true
	for _, ok := range results {
		if !ok {
			success = false
			break
		}
	}

	sink <- Event{Kind: EventRunCompleted, RunID: run.ID, RunName: run.Name, Success: success}
	return success
}
