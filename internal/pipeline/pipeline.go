// Package pipeline 对一个文件组执行完整流水线，是唯一的协调点：
// 行源 → 换页拆分 → 分页 →（单文件直写 / 并列 k 路归并）→ 排版。
// 任一阶段出错即中止本组并上抛首错；已冲刷的输出不回退。
package pipeline

import (
	"container/heap"
	"errors"
	"io"

	"gopr/internal/diag"
	"gopr/internal/layout"
	"gopr/internal/opts"
	"gopr/internal/pager"
	"gopr/internal/source"
	"gopr/pkg/contract"
)

// Run 执行一个文件组。单路径走逐页直写；多路径即并列模式（-m）。
func Run(o *opts.OutputOptions, paths []string, pr *layout.Printer, lg *diag.Logger) error {
	if len(paths) == 1 {
		return runSingle(o, paths[0], pr, lg)
	}
	return runMerge(o, paths, pr, lg)
}

func runSingle(o *opts.OutputOptions, path string, pr *layout.Printer, lg *diag.Logger) error {
	rc, perr := source.Open(path)
	if perr != nil {
		return perr
	}
	defer rc.Close()

	t := lg.Start("pipeline", "paginate "+path)
	p := pager.New(o, source.NewScanner(rc, path, 0))
	pages := 0
	for p.Scan() {
		if err := pr.Page(o, p.Page(), p.PageNumber()); err != nil {
			lg.Error("pipeline", diag.Classify(err), err.Error())
			return wrap(err)
		}
		pages++
		diag.PagesWritten.Add(1)
		diag.LinesRead.Add(int64(len(p.Page())))
	}
	t.Finish("paginated "+path, int64(pages))
	return nil
}

// runMerge 并列模式：
//  1. 先急切打开全部路径，首个打开错误中止整组（输出尚未开始）；
//  2. 每文件各跑一个分页器，行打上 PageNumber 与 GroupKey；
//  3. 以 (GroupKey, LineNumber) 为序做 k 路堆归并；
//  4. 按 GroupKey 对应页号聚组，页号推进时冲刷上一页。
//
// 行内携带的读取错误直接以首错中止。末页总是冲刷（可为空页）。
func runMerge(o *opts.OutputOptions, paths []string, pr *layout.Printer, lg *diag.Logger) error {
	n := len(paths)
	closers := make([]io.Closer, 0, n)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	t := lg.Start("pipeline", "merge")
	h := &lineHeap{}
	for i, path := range paths {
		rc, perr := source.Open(path)
		if perr != nil {
			lg.Error("pipeline", diag.Classify(perr), perr.Error())
			return perr
		}
		closers = append(closers, rc)
		st := &mergeStream{
			p: pager.New(o, source.NewScanner(rc, path, contract.FileID(i))),
			n: n,
		}
		if st.next() {
			*h = append(*h, st)
		}
	}
	heap.Init(h)

	pageCounter := o.StartPage
	var lines contract.Page
	pages := 0
	for h.Len() > 0 {
		st := (*h)[0]
		ln := st.cur
		if st.next() {
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
		}

		if ln.Err != nil {
			lg.Error("pipeline", diag.Classify(ln.Err), ln.Err.Error())
			return wrap(ln.Err)
		}
		if ln.PageNumber != pageCounter {
			if err := pr.Page(o, lines, pageCounter); err != nil {
				return wrap(err)
			}
			pages++
			diag.PagesWritten.Add(1)
			lines = nil
			pageCounter = ln.PageNumber
		}
		lines = append(lines, ln)
		diag.LinesRead.Add(1)
	}
	if err := pr.Page(o, lines, pageCounter); err != nil {
		return wrap(err)
	}
	diag.PagesWritten.Add(1)
	t.Finish("merged", int64(pages+1))
	return nil
}

// wrap 保证上抛的错误总是类别化的：排版期写失败归入运行期错误类。
func wrap(err error) error {
	var ce *contract.Error
	if errors.As(err, &ce) {
		return ce
	}
	return contract.Errorf("%v", err)
}

// mergeStream 把一个文件的页流摊平为带归并键的行流。
type mergeStream struct {
	p   *pager.Pager
	n   int
	buf contract.Page
	i   int
	cur contract.Line
}

func (s *mergeStream) next() bool {
	for s.i >= len(s.buf) {
		if !s.p.Scan() {
			return false
		}
		pageNo := s.p.PageNumber()
		s.buf = s.p.Page()
		s.i = 0
		for j := range s.buf {
			s.buf[j].PageNumber = pageNo
			s.buf[j].GroupKey = pageNo*s.n + int(s.buf[j].FileID)
		}
	}
	s.cur = s.buf[s.i]
	s.i++
	return true
}

// lineHeap: 以 (GroupKey, LineNumber) 为全序的 k 路归并堆。
// GroupKey 相同蕴含同一文件，LineNumber 的平手裁决保持文件内顺序。
type lineHeap []*mergeStream

func (h lineHeap) Len() int { return len(h) }
func (h lineHeap) Less(i, j int) bool {
	a, b := h[i].cur, h[j].cur
	if a.GroupKey == b.GroupKey {
		return a.LineNumber < b.LineNumber
	}
	return a.GroupKey < b.GroupKey
}
func (h lineHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *lineHeap) Push(x any)        { *h = append(*h, x.(*mergeStream)) }
func (h *lineHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
