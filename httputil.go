package fundwatch

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// contains http utils to deal with remote quote services

// diskCache implements a simple disk cache for HTTP responses, with entries
// expiring on a fixed window. It bounds the outbound request rate: within
// one window the same provider URL is hit at most once.
type diskCache struct {
	base   http.RoundTripper
	window time.Duration
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the cache key embeds the current window bucket, so entries in the
	// local tmp dir expire on their own.
	bucket := time.Now().Truncate(c.window).Unix()
	key := fmt.Sprintf("%d %s %s", bucket, req.Method, req.URL.String())
	key = fmt.Sprintf("fundwatch-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// NewCachingClient returns an http.Client with a short request timeout and
// a response cache expiring every window. The cache is an optimization to
// bound the outbound request rate during auto-refresh, not a correctness
// requirement; a window of a few tens of seconds is typical for fund
// estimates, a few minutes for gold.
func NewCachingClient(window, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &diskCache{base: http.DefaultTransport, window: window},
	}
}

// Wget performs an HTTP GET with the given extra headers and returns the
// raw body. Some providers gate responses on headers like Referer, so the
// caller's headers are passed through verbatim.
func Wget(client *http.Client, addr string, header http.Header) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot execute http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("cannot read receiving http body: %w", err)
	}
	return buf.Bytes(), nil
}

// Jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func Jwget(client *http.Client, addr string, data interface{}) error {
	body, err := Wget(client, addr, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
