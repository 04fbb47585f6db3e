package httpmiddleware

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

type HttpRequestStruct struct {
	Method  string
	Url     string
	Body    io.Reader
	Headers map[string]string
	Timeout time.Duration
}

var defaultClient = &http.Client{Timeout: 60 * time.Second}

// HttpRequest performs a single request and returns the response body.
// Non-2xx statuses are returned as errors carrying the status and body so
// callers can log the upstream failure.
func HttpRequest(args HttpRequestStruct) ([]byte, error) {
	req, err := http.NewRequest(args.Method, args.Url, args.Body)
	if err != nil {
		return nil, err
	}

	for key, value := range args.Headers {
		req.Header.Set(key, value)
	}

	client := defaultClient
	if args.Timeout > 0 {
		client = &http.Client{Timeout: args.Timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, fmt.Errorf("request to %s failed with status %d: %s", args.Url, resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
