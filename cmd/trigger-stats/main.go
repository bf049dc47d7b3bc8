// Command trigger-stats asks a running server to recompute region statistics
// through the cron endpoint.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"greentech_backend/internal/logger"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	key := flag.String("key", os.Getenv("CRON_SECRET"), "cron secret")
	region := flag.String("region", "", "refresh a single region by slug")
	timeout := flag.Duration("timeout", 2*time.Minute, "request timeout")
	flag.Parse()

	defer logger.Sync()

	if *key == "" {
		logger.Fatal("No cron key given; pass -key or set CRON_SECRET")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := trigger(ctx, *baseURL, *key, *region)
	if err != nil {
		logger.Fatal("Trigger failed", "error", err)
	}

	out, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(out))
	if !resp.Success {
		os.Exit(1)
	}
}

func trigger(ctx context.Context, baseURL, key, region string) (*dto.CronRefreshResponse, error) {
	query := url.Values{"key": {key}}
	if region != "" {
		query.Set("region", region)
	}
	endpoint := baseURL + "/api/cron/update-region-stats?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		var errResp apperrors.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("server returned %d: %s", res.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("server returned %d", res.StatusCode)
	}

	var out dto.CronRefreshResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
