package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DefaultKeepAlive is how often an idle event stream sends a comment line.
const DefaultKeepAlive = 25 * time.Second

// Stream writes every value received from updates as a server-sent event named event,
// until updates closes or the client goes away.
func Stream[T any](c echo.Context, event string, updates <-chan T, keepAlive time.Duration) error {
	res := c.Response()
	header := res.Header()
	header.Set(echo.HeaderContentType, "text/event-stream")
	header.Set(echo.HeaderCacheControl, "no-cache")
	header.Set(echo.HeaderConnection, "keep-alive")
	header.Set("X-Accel-Buffering", "no")

	// Streams outlive the server write timeout.
	rc := http.NewResponseController(res.Writer)
	_ = rc.SetWriteDeadline(time.Time{})

	res.WriteHeader(http.StatusOK)
	res.Flush()

	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := res.Write([]byte(": keep-alive\n\n")); err != nil {
				return nil
			}
			res.Flush()
		case v, ok := <-updates:
			if !ok {
				return nil
			}
			if err := writeEvent(res, event, v); err != nil {
				return err
			}
			res.Flush()
		}
	}
}

func writeEvent(res *echo.Response, event string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode event")
	}

	buf := make([]byte, 0, len(event)+len(payload)+16)
	buf = append(buf, "event: "...)
	buf = append(buf, event...)
	buf = append(buf, "\ndata: "...)
	buf = append(buf, payload...)
	buf = append(buf, "\n\n"...)

	if _, err := res.Write(buf); err != nil {
		return errors.Wrap(err, "failed to write event")
	}

	return nil
}
