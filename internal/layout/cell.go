package layout

import (
	"strconv"
	"strings"

	"gopr/internal/opts"
	"gopr/pkg/contract"
)

// formatCell 生成一个可打印单元，依次施加：
//  1. 行号前缀（并列模式仅第 0 列；行号 0 视为空白单元不编号）；
//  2. 显示宽度估算：字节长 + 7×制表符数（制表符按宽度 8 计）；
//  3. 列宽约束（LineWidth > 0 时）：先补空格至 minWidth，
//     再按 Unicode 标量截断到 minWidth；
//  4. 缩进前缀（-o）；
//  5. 列分隔符：非本行最后一个单元且未启用 -J 时附加。
//
// indexes 为本行实际写出的单元数：部分行的末单元不带分隔符。
func formatCell(o *opts.OutputOptions, ln *contract.Line, columns, index, indexes int) string {
	complete := formatLineNumber(o, ln.LineNumber, index) + ln.Text

	sep := ""
	if index+1 != indexes && !o.JoinLines {
		sep = o.ColSepForPrinting
	}

	body := complete
	if o.LineWidth > 0 {
		minWidth := (o.LineWidth - (columns - 1)) / columns
		if minWidth < 0 {
			minWidth = 0
		}
		displayLen := len(complete) + strings.Count(complete, "\t")*7
		if displayLen < minWidth {
			complete += strings.Repeat(" ", minWidth-displayLen)
		}
		r := []rune(complete)
		if len(r) > minWidth {
			r = r[:minWidth]
		}
		body = string(r)
	}

	return o.OffsetSpaces + body + sep
}

// formatLineNumber 返回右对齐的行号前缀（含行号分隔符）。
// 超宽行号左截断，保留末 width 位数字。
func formatLineNumber(o *opts.OutputOptions, lineNumber, index int) string {
	show := o.Number != nil && (o.MergeFiles == 0 || index == 0)
	if !show || lineNumber == 0 {
		return ""
	}
	s := strconv.Itoa(lineNumber)
	w := o.Number.Width
	if len(s) >= w {
		s = s[len(s)-w:]
	} else {
		s = strings.Repeat(" ", w-len(s)) + s
	}
	return s + o.Number.Separator
}
