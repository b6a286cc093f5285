package source

import (
	"bufio"
	"io"

	"github.com/karrick/gobls"

	"gopr/pkg/contract"
)

const (
	// readBufSize: 行读取的底层缓冲大小。
	readBufSize = 64 * 1024
	formFeed    = 0x0C
)

// Scanner 把字节流转成逻辑行序列：按换行符切行（去掉行尾换行），
// 再按内嵌换页符拆分并标注 FormFeedsAfter。读取失败时产出单个
// 携带类别化错误的行，之后流终止。
// 用法与 bufio.Scanner 相同：for s.Scan() { s.Line() }。
type Scanner struct {
	path    string
	fileID  contract.FileID
	ls      gobls.Scanner
	pending []contract.Line
	cur     contract.Line
	done    bool
}

// NewScanner 以 64KiB 缓冲封装 r。path 仅用于错误文案。
func NewScanner(r io.Reader, path string, fileID contract.FileID) *Scanner {
	return &Scanner{
		path:   path,
		fileID: fileID,
		ls:     gobls.NewScanner(bufio.NewReaderSize(r, readBufSize)),
	}
}

func (s *Scanner) Scan() bool {
	for len(s.pending) == 0 {
		if s.done {
			return false
		}
		if !s.ls.Scan() {
			s.done = true
			if err := s.ls.Err(); err != nil {
				s.cur = contract.Line{
					FileID: s.fileID,
					Err:    &contract.Error{Kind: contract.KindInput, Path: s.path, Cause: err},
				}
				return true
			}
			return false
		}
		s.pending = SplitFormFeeds(s.ls.Text())
	}
	s.cur = s.pending[0]
	s.cur.FileID = s.fileID
	s.pending = s.pending[1:]
	return true
}

// Line 返回最近一次 Scan 产出的逻辑行。
func (s *Scanner) Line() contract.Line { return s.cur }

// SplitFormFeeds 按换页符拆分一条原始行。每条逻辑行标注其后紧随的
// 换页符个数；行尾的换页符计入末段，不产生空尾段。
func SplitFormFeeds(raw string) []contract.Line {
	var out []contract.Line
	var chunk []byte
	ff := 0
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if b == formFeed {
			ff++
			continue
		}
		if ff > 0 {
			out = append(out, contract.Line{Text: string(chunk), FormFeedsAfter: ff})
			chunk = chunk[:0]
			ff = 0
		}
		chunk = append(chunk, b)
	}
	return append(out, contract.Line{Text: string(chunk), FormFeedsAfter: ff})
}
