package diag

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"
)

// 级别定义。Off 为缺省：诊断日志完全关闭，
// 不与 "pr: ..." 用户诊断争抢 stderr。
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	Off
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "off"
	}
}

// Logger 为最小结构化日志器：单行 JSON 输出到 stderr。
// 级别由 PR_LOG 环境变量选择；未设置时为 no-op。
// nil Logger 上的所有方法安全为 no-op。
type Logger struct {
	level Level
	mu    sync.Mutex
	out   *os.File
}

// NewLogger 按级别名初始化；空串或未知名关闭日志。
func NewLogger(level string) *Logger {
	return &Logger{level: parseLevel(strings.TrimSpace(level)), out: os.Stderr}
}

func parseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return Debug
	case "info":
		return Info
	case "warn":
		return Warn
	case "error":
		return Error
	default:
		return Off
	}
}

// Event 为标准事件结构。
type Event struct {
	Level string `json:"level"`
	TS    string `json:"ts"`
	Comp  string `json:"comp"`
	Stage string `json:"stage"` // start|finish|error
	Code  string `json:"code,omitempty"`
	DurMS int64  `json:"dur_ms,omitempty"`
	Count int64  `json:"count,omitempty"`
	Msg   string `json:"msg"`
}

func (l *Logger) log(lv Level, ev Event) {
	if l == nil || lv < l.level {
		return
	}
	ev.Level = lv.String()
	ev.TS = time.Now().UTC().Format(time.RFC3339)
	b, _ := json.Marshal(ev)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(append(b, '\n'))
}

// Start 记录 start 事件；返回计时器用于 Finish。
func (l *Logger) Start(comp, msg string) *Timer {
	l.log(Info, Event{Comp: comp, Stage: "start", Msg: msg})
	return &Timer{l: l, comp: comp, t0: time.Now()}
}

// Error 记录 error 事件。
func (l *Logger) Error(comp string, code Code, msg string) {
	l.log(Error, Event{Comp: comp, Stage: "error", Code: string(code), Msg: msg})
}

// Debugf 输出调试级事件。
func (l *Logger) Debugf(comp, msg string) {
	l.log(Debug, Event{Comp: comp, Stage: "start", Msg: msg})
}

// Timer 用于 start→finish 计时。
type Timer struct {
	l    *Logger
	comp string
	t0   time.Time
}

// Finish 记录 finish；count 为本段产出量（页数/行数）。
func (t *Timer) Finish(msg string, count int64) {
	if t == nil || t.l == nil {
		return
	}
	t.l.log(Info, Event{Comp: t.comp, Stage: "finish", DurMS: time.Since(t.t0).Milliseconds(), Count: count, Msg: msg})
}
