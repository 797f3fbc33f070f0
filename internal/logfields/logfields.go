package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyBytes      = "bytes"
	KeyBlocks     = "blocks"
	KeyLine       = "line"
	KeyColumn     = "column"
	KeyOutcome    = "outcome"
	KeyEvent      = "event"
	KeyMethod     = "method"
	KeyURLPath    = "url_path"
	KeyStatus     = "status"
	KeyRequestID  = "request_id"
	KeyRemoteAddr = "remote_addr"
	KeyUserAgent  = "user_agent"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr        { return slog.String(KeyOutput, p) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Bytes(n int) slog.Attr            { return slog.Int(KeyBytes, n) }
func Blocks(n int) slog.Attr           { return slog.Int(KeyBlocks, n) }
func Line(n int) slog.Attr             { return slog.Int(KeyLine, n) }
func Column(n int) slog.Attr           { return slog.Int(KeyColumn, n) }
func Outcome(o string) slog.Attr       { return slog.String(KeyOutcome, o) }
func Event(e string) slog.Attr         { return slog.String(KeyEvent, e) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func URLPath(p string) slog.Attr       { return slog.String(KeyURLPath, p) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
