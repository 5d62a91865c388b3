package handler

import (
	"encoding/json"
	"fmt"

	"github.com/labstack/echo/v4"
)

const (
	sseEventProgress = "progress"
	sseEventDeleted  = "deleted"
)

// sseWriter frames server-sent events onto an echo response.
type sseWriter struct {
	res *echo.Response
}

func newSSEWriter(res *echo.Response) *sseWriter {
	h := res.Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	res.WriteHeader(200)
	res.Flush()
	return &sseWriter{res: res}
}

func (w *sseWriter) event(name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", name, err)
	}
	if _, err := fmt.Fprintf(w.res, "event: %s\ndata: %s\n\n", name, payload); err != nil {
		return err
	}
	w.res.Flush()
	return nil
}

// ping writes a comment line so idle proxies keep the connection open.
func (w *sseWriter) ping() error {
	if _, err := fmt.Fprint(w.res, ": ping\n\n"); err != nil {
		return err
	}
	w.res.Flush()
	return nil
}
