package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// BaseURLFunc supplies the server base URL at execution time.
type BaseURLFunc func() string

// postJSON posts a JSON body and decodes the JSON response.
func postJSON(base, path string, body any) (map[string]any, int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}
	resp, err := http.Post(base+path, "application/json", bytes.NewReader(b))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	return decodeJSON(resp)
}

// getJSON fetches a path with query values and decodes the JSON response.
func getJSON(base, path string, q url.Values) (map[string]any, int, error) {
	u := base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	resp, err := http.Get(u)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	return decodeJSON(resp)
}

func decodeJSON(resp *http.Response) (map[string]any, int, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	out := map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, resp.StatusCode, fmt.Errorf("bad response (%s): %s", resp.Status, data)
		}
	}
	return out, resp.StatusCode, nil
}

// fail converts an error body into a CLI error.
func fail(obj map[string]any, status int) error {
	if msg, ok := obj["error"].(string); ok && msg != "" {
		return fmt.Errorf("server: %s (%d)", msg, status)
	}
	return fmt.Errorf("server returned status %d", status)
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
