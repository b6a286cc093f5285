package layout

import (
	"bytes"
	"strings"
	"testing"

	"gopr/internal/opts"
	"gopr/pkg/contract"
)

// render: 单页排版为字符串
func render(t *testing.T, o *opts.OutputOptions, lines contract.Page, pageNo int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewPrinter(&buf).Page(o, lines, pageNo); err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	return buf.String()
}

// bare: 页眉页尾关闭的基准选项
func bare(contentLines int) *opts.OutputOptions {
	return &opts.OutputOptions{
		LineSeparator:        "\n",
		ContentLineSeparator: "\n",
		PageSeparator:        "\n",
		ContentLinesPerPage:  contentLines,
		StartPage:            1,
	}
}

func row(texts ...string) contract.Page {
	var p contract.Page
	for i, s := range texts {
		p = append(p, contract.Line{LineNumber: i + 1, Text: s})
	}
	return p
}

func TestPageNumberedBody(t *testing.T) {
	o := bare(56)
	o.Number = &opts.NumberingMode{Width: 5, Separator: "\t", FirstNumber: 1}
	got := render(t, o, row("x", "y"), 1)
	if got != "    1\tx\n    2\ty\n" {
		t.Fatalf("编号正文不符: %q", got)
	}
}

func TestPageAcrossColumns(t *testing.T) {
	o := bare(3)
	o.Column = &opts.ColumnMode{Columns: 3, Width: 72, Separator: ",", Across: true}
	o.ColSepForPrinting = ","
	got := render(t, o, row("1", "2", "3", "4", "5", "6", "7"), 1)
	if got != "1,2,3\n4,5,6\n7\n" {
		t.Fatalf("横排不符: %q", got)
	}
}

func TestPageDownColumns(t *testing.T) {
	o := bare(3)
	o.Column = &opts.ColumnMode{Columns: 2, Width: 72, Separator: "|"}
	o.ColSepForPrinting = "|"
	got := render(t, o, row("1", "2", "3", "4", "5", "6"), 1)
	if got != "1|4\n2|5\n3|6\n" {
		t.Fatalf("纵排不符: %q", got)
	}
}

func mergePage(cols ...[]string) contract.Page {
	var p contract.Page
	for f, lines := range cols {
		for i, s := range lines {
			p = append(p, contract.Line{FileID: contract.FileID(f), LineNumber: i + 1, Text: s})
		}
	}
	return p
}

func TestPageMerge(t *testing.T) {
	o := bare(56)
	o.MergeFiles = 2
	o.ColSepForPrinting = ","
	got := render(t, o, mergePage([]string{"a", "b"}, []string{"1", "2"}), 1)
	if got != "a,1\nb,2\n" {
		t.Fatalf("并列不符: %q", got)
	}
}

func TestPageMergeUneven(t *testing.T) {
	o := bare(56)
	o.MergeFiles = 2
	o.ColSepForPrinting = ","
	got := render(t, o, mergePage([]string{"a"}, []string{"1", "2"}), 1)
	if got != "a,1\n,2\n" {
		t.Fatalf("短列应以空白单元补位: %q", got)
	}
}

func TestPageHeaderAndTrailer(t *testing.T) {
	o := bare(56)
	o.DisplayHeaderAndTrailer = true
	o.Header = "a"
	o.LastModifiedTime = "Aug 30 12:00 2026"
	got := render(t, o, row("a", "b", "c"), 1)

	want := "\n\nAug 30 12:00 2026 a Page 1\n\n\n" +
		"a\nb\nc\n" + strings.Repeat("\n", 53) +
		strings.Repeat("\n", 4) + "\n"
	if got != want {
		t.Fatalf("整页不符: %q", got)
	}
	if n := strings.Count(got, "\n"); n != 66 {
		t.Fatalf("整页应恰为 66 行, 实际 %d", n)
	}
}

func TestPageFormFeedTerminator(t *testing.T) {
	o := bare(10)
	o.FormFeedUsed = true
	o.PageSeparator = "\x0C"
	got := render(t, o, row("alpha"), 1)
	if got != "alpha\n\x0C" {
		t.Fatalf("换页终止不符: %q", got)
	}
}

func TestPageCellError(t *testing.T) {
	o := bare(56)
	fail := &contract.Error{Kind: contract.KindInput, Path: "x"}
	var buf bytes.Buffer
	err := NewPrinter(&buf).Page(o, contract.Page{{Text: "ok"}, {Err: fail}}, 1)
	if err != fail {
		t.Fatalf("行内错误应上抛: %v", err)
	}
	if buf.String() != "ok\n" {
		t.Fatalf("错误前的正文应已冲刷: %q", buf.String())
	}
}

func TestFormatCellWidth(t *testing.T) {
	o := &opts.OutputOptions{LineWidth: 10, ColSepForPrinting: ","}
	// minWidth = (10-1)/2 = 4
	if got := formatCell(o, &contract.Line{Text: "abcdef"}, 2, 0, 2); got != "abcd," {
		t.Fatalf("超宽应截断: %q", got)
	}
	if got := formatCell(o, &contract.Line{Text: "x"}, 2, 0, 2); got != "x   ," {
		t.Fatalf("不足应补齐: %q", got)
	}
	if got := formatCell(o, &contract.Line{Text: "x"}, 2, 1, 2); got != "x   " {
		t.Fatalf("末单元不带分隔符: %q", got)
	}
}

func TestFormatCellOffsetAndJoin(t *testing.T) {
	o := &opts.OutputOptions{OffsetSpaces: "  ", ColSepForPrinting: ",", JoinLines: true}
	if got := formatCell(o, &contract.Line{Text: "v"}, 2, 0, 2); got != "  v" {
		t.Fatalf("-J 应去掉分隔符并保留缩进: %q", got)
	}
}

func TestFormatLineNumber(t *testing.T) {
	o := &opts.OutputOptions{Number: &opts.NumberingMode{Width: 2, Separator: ":"}}
	if got := formatLineNumber(o, 123, 0); got != "23:" {
		t.Fatalf("超宽行号应左截断: %q", got)
	}
	if got := formatLineNumber(o, 7, 0); got != " 7:" {
		t.Fatalf("行号应右对齐: %q", got)
	}
	o.MergeFiles = 2
	if got := formatLineNumber(o, 7, 1); got != "" {
		t.Fatalf("并列模式仅首列编号: %q", got)
	}
	if got := formatLineNumber(o, 0, 0); got != "" {
		t.Fatalf("空白单元不编号: %q", got)
	}
}
