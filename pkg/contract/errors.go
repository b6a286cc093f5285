package contract

import "fmt"

// Kind: 错误类别。每类对应一条固定格式的用户可见诊断。
type Kind int

const (
	// KindInput: 已打开的流在读取中失败。
	KindInput Kind = iota
	// KindNotExists: 路径查找失败。
	KindNotExists
	// KindIsDirectory / KindIsSocket / KindUnknownFiletype: 不可分页的文件类型。
	KindIsDirectory
	KindIsSocket
	KindUnknownFiletype
	// KindEncounteredErrors: 选项校验失败或其他运行期错误。
	KindEncounteredErrors
)

// Error: 类别化错误。Path 原样携带出错路径；Cause 保留底层 I/O 错误。
// Error() 的文案与 pr 的诊断格式逐字一致（含 "pr: " 前缀）。
type Error struct {
	Kind  Kind
	Path  string
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInput:
		return fmt.Sprintf("pr: Reading from input %s gave error", e.Path)
	case KindNotExists:
		return fmt.Sprintf("pr: cannot open %s, No such file or directory", e.Path)
	case KindIsDirectory:
		return fmt.Sprintf("pr: %s: Is a directory", e.Path)
	case KindIsSocket:
		return fmt.Sprintf("pr: cannot open %s, Operation not supported on socket", e.Path)
	case KindUnknownFiletype:
		return fmt.Sprintf("pr: %s: unknown filetype", e.Path)
	default:
		return "pr: " + e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Errorf: KindEncounteredErrors 的便捷构造（校验类错误）。
func Errorf(format string, a ...any) *Error {
	return &Error{Kind: KindEncounteredErrors, Msg: fmt.Sprintf(format, a...)}
}
