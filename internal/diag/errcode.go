package diag

import (
	"errors"
	"os"

	"gopr/pkg/contract"
)

// Code 是最小错误分类代码，仅用于日志汇总，与退出码解耦。
type Code string

const (
	CodeUnknown     Code = "unknown"
	CodeInput       Code = "input"
	CodeNotExists   Code = "not_exists"
	CodeFiletype    Code = "filetype"
	CodeInvalidOpts Code = "invalid_opts"
	CodeIO          Code = "io"
)

// Classify 将错误归为最小分类。仅依赖类别化错误与标准库错误类型，
// 不做字符串匹配。
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	var ce *contract.Error
	if errors.As(err, &ce) {
		switch ce.Kind {
		case contract.KindInput:
			return CodeInput
		case contract.KindNotExists:
			return CodeNotExists
		case contract.KindIsDirectory, contract.KindIsSocket, contract.KindUnknownFiletype:
			return CodeFiletype
		default:
			return CodeInvalidOpts
		}
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}
