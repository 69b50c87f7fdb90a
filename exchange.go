package followredirect

import (
	"io"
	"net/http"
	"time"
)

// exchangeState mirrors the phases of a single redirect-following call:
// construct the state machine, buffer the original body, then send hops
// until the state machine returns.
type exchangeState int

const (
	stateLazy exchangeState = iota
	stateBuffering
	stateRequesting
)

// exchange drives one top-level call to completion. It owns the state
// machine and the body buffer exclusively; nothing is shared across calls.
type exchange struct {
	client  *Client
	request *http.Request

	state   exchangeState
	machine *stateMachine
	buffer  *bodyBuffer
	stats   Stats
}

func newExchange(c *Client, req *http.Request) *exchange {
	return &exchange{client: c, request: req, state: stateLazy}
}

// run executes the Lazy -> Buffering -> Requesting transitions, looping in
// Requesting for every Continue decision. Any error terminates the whole
// call; there is no partial result and no retry.
func (e *exchange) run() (*http.Response, error) {
	started := time.Now()
	for {
		switch e.state {
		case stateLazy:
			if err := e.begin(); err != nil {
				return nil, err
			}
		case stateBuffering:
			if err := e.bufferBody(); err != nil {
				return nil, err
			}
		case stateRequesting:
			resp, done, err := e.send()
			if err != nil {
				return nil, err
			}
			if done {
				e.stats.Duration = time.Since(started)
				if e.client.statsCollector != nil {
					e.client.statsCollector(e.stats)
				}
				return resp, nil
			}
		}
	}
}

func (e *exchange) begin() error {
	machine, err := newStateMachine(e.request, e.client.maxRedirects, e.client.normalizeDefaultPorts)
	if err != nil {
		return err
	}
	e.machine = machine
	if e.request.Body != nil {
		e.buffer = newBodyBuffer(e.request.Body)
		e.state = stateBuffering
		return nil
	}
	e.state = stateRequesting
	return nil
}

func (e *exchange) bufferBody() error {
	body, err := e.buffer.drain(e.request.Context())
	if err != nil {
		return err
	}
	e.machine.setBody(body)
	e.stats.RequestBytes = int64(len(body))
	e.state = stateRequesting
	return nil
}

// send materializes one wire request, delegates it to the transport, and
// feeds the response back into the state machine. done is true when the
// response is terminal.
func (e *exchange) send() (resp *http.Response, done bool, err error) {
	req, err := e.machine.wireRequest(e.request.Context())
	if err != nil {
		return nil, false, err
	}

	e.client.debuggingRequest(req)
	e.client.logCurlCommand(req)

	resp, err = e.client.transport.RoundTrip(req)
	if err != nil {
		return nil, false, &TransportError{Err: err}
	}
	e.stats.Requests++

	e.client.debuggingResponse(resp)

	d, err := e.machine.handleResponse(resp)
	if err != nil {
		discardBody(resp)
		return nil, false, err
	}
	if d == decisionContinue {
		// The hop response will never be seen by the caller; drain it
		// so the transport can reuse the connection.
		discardBody(resp)
		return nil, false, nil
	}
	return resp, true, nil
}

// discardBody drains and closes an intermediate response body before the
// next hop is sent.
func discardBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
