// Package pager 把逻辑行流聚合为页。
//
//   - 容量：每页读入 LinesToReadPerPage() 行（双倍行距减半、多列乘列数）；
//   - 页集：一页加上其后因连续换页符产生的空页（k 个换页符 → k-1 空页）；
//   - 窗口：页按 1 基全局编号，仅产出 [StartPage, EndPage] 内的页，
//     越过上界后不再读取输入。
package pager

import (
	"gopr/internal/opts"
	"gopr/internal/source"
	"gopr/pkg/contract"
)

// Pager 的用法与 bufio.Scanner 相同：for p.Scan() { p.Page() }。
type Pager struct {
	src       *source.Scanner
	capacity  int
	startLine int
	o         *opts.OutputOptions

	lineCount int
	pageIdx   int // 已编号页数（窗口外同样计数）
	queue     []contract.Page
	cur       contract.Page
	curNo     int
	eof       bool
}

// New 创建分页器。行号自 StartLineNumber 起在本文件内连续分配。
func New(o *opts.OutputOptions, src *source.Scanner) *Pager {
	return &Pager{
		src:       src,
		capacity:  o.LinesToReadPerPage(),
		startLine: o.StartLineNumber(),
		o:         o,
	}
}

// Scan 推进到窗口内的下一页；窗口上界越过后返回 false 并停止读取。
func (p *Pager) Scan() bool {
	for {
		if len(p.queue) == 0 {
			if p.eof {
				return false
			}
			set := p.nextPageSet()
			if set == nil {
				p.eof = true
				return false
			}
			p.queue = set
		}
		pg := p.queue[0]
		p.queue = p.queue[1:]
		p.pageIdx++
		no := p.pageIdx
		if no < p.o.StartPage {
			continue
		}
		if p.o.EndPageSet && no > p.o.EndPage {
			p.eof = true
			return false
		}
		p.cur, p.curNo = pg, no
		return true
	}
}

// Page 返回当前页的行。
func (p *Pager) Page() contract.Page { return p.cur }

// PageNumber 返回当前页的 1 基全局页号。
func (p *Pager) PageNumber() int { return p.curNo }

// nextPageSet 汇集一个页集：拉行入页并编号，直至容量满或遇到
// 换页符（关闭本页，k 个换页符再补 k-1 个空页）。
// 输入耗尽且本页为空时返回 nil。
func (p *Pager) nextPageSet() []contract.Page {
	var first contract.Page
	for p.src.Scan() {
		ln := p.src.Line()
		// 行首换页符产出的空文本段只断页：不占行号，不产出空白行。
		carrier := ln.Err == nil && ln.Text == "" && ln.FormFeedsAfter > 0
		if !carrier {
			ln.LineNumber = p.lineCount + p.startLine
			p.lineCount++
			first = append(first, ln)
		}

		if ln.FormFeedsAfter > 0 {
			set := make([]contract.Page, 0, ln.FormFeedsAfter)
			set = append(set, first)
			for i := 1; i < ln.FormFeedsAfter; i++ {
				set = append(set, contract.Page{})
			}
			return set
		}
		if len(first) == p.capacity {
			return []contract.Page{first}
		}
	}
	if len(first) == 0 {
		return nil
	}
	return []contract.Page{first}
}
