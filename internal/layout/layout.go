// Package layout 把一页逻辑行排版为页眉、正文网格、页尾与页终止符。
//
// 网格有四种形态：单列、纵排多列（先填满第 0 列）、横排多列（-a，
// 逐行轮转）与并列（-m，第 f 列只放第 f 个文件的行）。
package layout

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"gopr/internal/opts"
	"gopr/pkg/contract"
)

// Printer 持有输出汇。一页作为一次整体写出并冲刷；
// 页写出期间持锁，避免并发写方交错字节。
type Printer struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: bufio.NewWriter(w)}
}

// Page 输出一页。行内携带的读取错误在其输出点上抛（先冲刷已排版部分）。
func (p *Printer) Page(o *opts.OutputOptions, lines contract.Page, pageNo int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if o.DisplayHeaderAndTrailer {
		p.w.WriteString(o.LineSeparator)
		p.w.WriteString(o.LineSeparator)
		fmt.Fprintf(p.w, "%s %s Page %d", o.LastModifiedTime, o.Header, pageNo)
		p.w.WriteString(o.LineSeparator)
		p.w.WriteString(o.LineSeparator)
		p.w.WriteString(o.LineSeparator)
	}

	if err := p.writeColumns(o, lines); err != nil {
		p.w.Flush()
		return err
	}

	// 页尾：五行空行，行间四个分隔符；换页模式下省略。
	if o.DisplayHeaderAndTrailer && !o.FormFeedUsed {
		for i := 0; i < trailerLines-1; i++ {
			p.w.WriteString(o.LineSeparator)
		}
	}
	if o.PageSeparator != "\n" || o.DisplayHeaderAndTrailer {
		p.w.WriteString(o.PageSeparator)
	}
	return p.w.Flush()
}

const trailerLines = 5

// writeColumns 逐行写出正文网格。
// 缺失单元的处理按模式不同：并列模式写空白单元；其余模式中，
// 缺失标志本页数据尽——换页模式或无页眉页尾时立即结束正文，
// 有页眉页尾时以空行填充至页底。
func (p *Printer) writeColumns(o *opts.OutputOptions, lines contract.Page) error {
	rows := o.RowsPerPage()
	cols := o.GridColumns()
	sep := o.ContentLineSeparator
	across := o.Column != nil && o.Column.Across

	// 并列模式：把每个文件的连续行段按列填充，空位补 nil。
	// contentRows 为最长列的行数，其后的行不再有任何实单元。
	var filled []*contract.Line
	contentRows := rows
	if o.MergeFiles > 0 {
		filled = make([]*contract.Line, 0, rows*cols)
		offset := 0
		contentRows = 0
		for col := 0; col < cols; col++ {
			inserted := 0
			for offset < len(lines) && int(lines[offset].FileID) == col {
				filled = append(filled, &lines[offset])
				offset++
				inserted++
			}
			if inserted > contentRows {
				contentRows = inserted
			}
			for ; inserted < rows; inserted++ {
				filled = append(filled, nil)
			}
		}
	}

	cellAt := func(r, c int) *contract.Line {
		var idx int
		switch {
		case across:
			idx = r*cols + c
		case o.MergeFiles > 0:
			if i := rows*c + r; i < len(filled) {
				return filled[i]
			}
			return nil
		default:
			idx = rows*c + r
		}
		if idx < len(lines) {
			return &lines[idx]
		}
		return nil
	}

	var blank contract.Line
	for r := 0; r < rows; r++ {
		// 并列模式内容尽后：换页/无页眉页尾即收尾，否则以空行填页。
		if o.MergeFiles > 0 && r >= contentRows {
			if o.FormFeedUsed || !o.DisplayHeaderAndTrailer {
				break
			}
			p.w.WriteString(sep)
			continue
		}
		// 本行实际存在的单元数决定分隔符附加：部分行尾部不补分隔符。
		indexes := cols
		if o.MergeFiles == 0 {
			indexes = 0
			for c := 0; c < cols; c++ {
				if cellAt(r, c) == nil {
					break
				}
				indexes++
			}
		}

		wrote := false
		missing := false
		for c := 0; c < cols; c++ {
			cell := cellAt(r, c)
			if cell == nil {
				if o.MergeFiles > 0 {
					p.w.WriteString(formatCell(o, &blank, cols, c, cols))
					continue
				}
				missing = true
				break
			}
			if cell.Err != nil {
				return cell.Err
			}
			p.w.WriteString(formatCell(o, cell, cols, c, indexes))
			wrote = true
		}

		if !missing {
			p.w.WriteString(sep)
			continue
		}
		if wrote {
			p.w.WriteString(sep)
		}
		if o.FormFeedUsed || !o.DisplayHeaderAndTrailer {
			break
		}
		if !wrote {
			p.w.WriteString(sep)
		}
	}
	return nil
}
