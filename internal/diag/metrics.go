package diag

import "sync/atomic"

// 进程级最小指标。仅用于 finish 事件与测试观察，无导出器。
var (
	// LinesRead: 本次运行读入的逻辑行总数。
	LinesRead atomic.Int64
	// PagesWritten: 本次运行写出的页总数。
	PagesWritten atomic.Int64
)

// ResetMetrics 清零指标（测试用）。
func ResetMetrics() {
	LinesRead.Store(0)
	PagesWritten.Store(0)
}
