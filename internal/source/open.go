package source

import (
	"io"
	"os"

	"gopr/pkg/contract"
)

// FileStdin: 表示标准输入的单横线哨兵操作数。
const FileStdin = "-"

// Open 打开一个命名输入。"-" 返回标准输入（不可关闭包装）；
// 其余路径先探测元数据并按文件类型分类：
//   - 常规文件/符号链接目标 → 打开读取；
//   - 目录 → IsDirectory；套接字 → IsSocket；
//   - 块/字符设备、FIFO 及其他 → UnknownFiletype；
//   - 元数据不可得 → NotExists。
//
// 非 Unix 平台上 os.FileMode 不产出套接字/设备位，自然退化为
// 常规/目录/未知三类。
func Open(path string) (io.ReadCloser, *contract.Error) {
	if path == FileStdin {
		return io.NopCloser(os.Stdin), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, &contract.Error{Kind: contract.KindNotExists, Path: path, Cause: err}
	}
	mode := info.Mode()
	switch {
	case mode&os.ModeSocket != 0:
		return nil, &contract.Error{Kind: contract.KindIsSocket, Path: path}
	case mode&(os.ModeDevice|os.ModeCharDevice|os.ModeNamedPipe) != 0:
		return nil, &contract.Error{Kind: contract.KindUnknownFiletype, Path: path}
	case mode.IsDir():
		return nil, &contract.Error{Kind: contract.KindIsDirectory, Path: path}
	case mode.IsRegular():
		f, oerr := os.Open(path)
		if oerr != nil {
			return nil, &contract.Error{Kind: contract.KindInput, Path: path, Cause: oerr}
		}
		return f, nil
	default:
		return nil, &contract.Error{Kind: contract.KindUnknownFiletype, Path: path}
	}
}
