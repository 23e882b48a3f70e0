package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	lokiBatchSize   = 20
	lokiMaxPending  = 1000
	lokiFlushPeriod = time.Second
	lokiPushTimeout = 5 * time.Second
)

// LokiWriter ships log lines to Loki's push API. Write only buffers; a single background
// goroutine does every push, so a slow Loki never holds up the logger.
type LokiWriter struct {
	endpoint string
	job      string
	client   *http.Client

	mu      sync.Mutex
	pending [][2]string
	dropped int

	kick    chan struct{}
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

type lokiPushRequest struct {
	Streams []lokiStream `json:"streams"`
}

// NewLokiWriter returns nil when url or job is empty.
func NewLokiWriter(url, job string) *LokiWriter {
	if url == "" || job == "" {
		return nil
	}
	w := &LokiWriter{
		endpoint: strings.TrimSuffix(url, "/") + "/loki/api/v1/push",
		job:      job,
		client:   &http.Client{Timeout: lokiPushTimeout},
		kick:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()
	return w
}

// Write implements io.Writer. Each non-empty line becomes one entry. Past lokiMaxPending
// buffered lines the oldest are dropped.
func (w *LokiWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.pending = append(w.pending, [2]string{strconv.FormatInt(time.Now().UnixNano(), 10), string(line)})
	}
	w.trimLocked()
	full := len(w.pending) >= lokiBatchSize
	w.mu.Unlock()

	if full {
		select {
		case w.kick <- struct{}{}:
		default:
		}
	}
	return len(p), nil
}

func (w *LokiWriter) trimLocked() {
	if over := len(w.pending) - lokiMaxPending; over > 0 {
		w.pending = w.pending[over:]
		w.dropped += over
	}
}

func (w *LokiWriter) run() {
	defer close(w.stopped)
	ticker := time.NewTicker(lokiFlushPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			w.push()
			return
		case <-ticker.C:
			w.push()
		case <-w.kick:
			w.push()
		}
	}
}

// push sends everything buffered. A failed batch goes back in front of newer lines.
func (w *LokiWriter) push() {
	w.mu.Lock()
	batch, dropped := w.pending, w.dropped
	w.pending, w.dropped = nil, 0
	w.mu.Unlock()

	// logrus writes through this writer, so problems go to stderr instead.
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "loki: buffer full, dropped %d lines\n", dropped)
	}
	if len(batch) == 0 {
		return
	}
	if err := w.send(batch); err != nil {
		fmt.Fprintf(os.Stderr, "loki: push of %d lines failed: %v\n", len(batch), err)
		w.mu.Lock()
		w.pending = append(batch, w.pending...)
		w.trimLocked()
		w.mu.Unlock()
	}
}

func (w *LokiWriter) send(batch [][2]string) error {
	raw, err := json.Marshal(lokiPushRequest{Streams: []lokiStream{{
		Stream: map[string]string{"job": w.job},
		Values: batch,
	}}})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, w.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Close stops the background goroutine after a last push of what is buffered.
func (w *LokiWriter) Close() error {
	w.once.Do(func() {
		close(w.stop)
		<-w.stopped
	})
	return nil
}
