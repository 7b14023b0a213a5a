package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
)

// HTTPSource pulls punches from a gateway endpoint that answers GET with a
// JSON array of raw punches. Legacy devices that cannot push sit behind
// such gateways.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Pull implements attendance.PunchSource.
func (s *HTTPSource) Pull(ctx context.Context) ([]attendance.RawPunch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pull request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to pull punches from %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("punch gateway %s returned status %d", s.url, resp.StatusCode)
	}

	var punches []attendance.RawPunch
	if err := json.NewDecoder(resp.Body).Decode(&punches); err != nil {
		return nil, fmt.Errorf("failed to decode punches from %s: %w", s.url, err)
	}
	return punches, nil
}
