// ABOUTME: Round-trip probe against the health endpoint
// ABOUTME: Classifies latency as local (<50ms), fast (<500ms) or slow (>=500ms)

package sdk

import (
	"context"
	"net/http"
	"time"
)

// LatencyClass categorizes API round-trip time.
type LatencyClass int

const (
	LatencyLocal LatencyClass = iota // <50ms
	LatencyFast                      // <500ms
	LatencySlow                      // >=500ms
)

func (l LatencyClass) String() string {
	switch l {
	case LatencyLocal:
		return "local"
	case LatencyFast:
		return "fast"
	case LatencySlow:
		return "slow"
	default:
		return "unknown"
	}
}

// PingResult is the outcome of Ping.
type PingResult struct {
	RTT     time.Duration
	Latency LatencyClass
	Health  *Health
}

const pingTimeout = 5 * time.Second

// Ping fetches the health report and measures the round trip, retries
// included. The whole probe is bounded by a five second timeout.
func (c *Client) Ping(ctx context.Context) (*PingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	var h Health
	if err := c.do(ctx, http.MethodGet, EndpointHealth, nil, &h); err != nil {
		return nil, err
	}
	rtt := time.Since(start)
	return &PingResult{RTT: rtt, Latency: classifyLatency(rtt), Health: &h}, nil
}

func classifyLatency(rtt time.Duration) LatencyClass {
	switch {
	case rtt < 50*time.Millisecond:
		return LatencyLocal
	case rtt < 500*time.Millisecond:
		return LatencyFast
	default:
		return LatencySlow
	}
}
