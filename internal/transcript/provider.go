package transcript

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// eventLine is one line of a JSON-lines transcript stream. A line with an
// error field reports a provider failure instead of a result.
type eventLine struct {
	Event
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// DecodeEvents streams JSON-lines recognition results from r.
// Both channels are closed when r is exhausted or ctx is cancelled.
func DecodeEvents(ctx context.Context, r io.Reader) (<-chan Event, <-chan error) {
	events := make(chan Event)
	errs := make(chan error, 1)

	go func() {
		defer close(events)
		defer close(errs)

		scanner := bufio.NewScanner(r)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			var el eventLine
			if err := json.Unmarshal([]byte(line), &el); err != nil {
				errs <- &ProviderError{Code: "malformed", Message: fmt.Sprintf("line %d: %v", lineNo, err)}
				return
			}
			if el.Error != "" {
				errs <- &ProviderError{Code: el.Code, Message: el.Error}
				return
			}

			select {
			case events <- el.Event:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errs <- &ProviderError{Code: "io", Message: err.Error()}
		}
	}()

	return events, errs
}
