package opts

import (
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"gopr/pkg/contract"
)

const (
	linesPerPage         = 66
	linesPerPageFormFeed = 63
	headerLinesPerPage   = 5
	trailerLinesPerPage  = 5

	defaultColumnWidth            = 72
	defaultColumnWidthWithSOption = 512
	defaultColumnSeparator        = "\t"

	// %b %d %H:%M %Y
	timeLayout = "Jan 02 15:04 2006"
)

// NumberingMode: -n 行号模式。
type NumberingMode struct {
	Width       int
	Separator   string
	FirstNumber int
}

// ColumnMode: --column/-COUNT 多列模式。
type ColumnMode struct {
	Columns   int
	Width     int
	Separator string
	Across    bool
}

// OutputOptions: 每文件组构建一次的只读配置。构建期完成全部校验，
// 运行期各组件只读共享。
type OutputOptions struct {
	Number                  *NumberingMode
	Header                  string
	DoubleSpace             bool
	LineSeparator           string
	ContentLineSeparator    string
	LastModifiedTime        string
	StartPage               int
	EndPage                 int
	EndPageSet              bool
	DisplayHeaderAndTrailer bool
	ContentLinesPerPage     int
	PageSeparator           string
	Column                  *ColumnMode
	// MergeFiles: 0 表示关闭；否则为并列模式（-m）的文件数。
	MergeFiles   int
	OffsetSpaces string
	FormFeedUsed bool
	JoinLines    bool
	// ColSepForPrinting: 输出期实际使用的列分隔串。
	ColSepForPrinting string
	// LineWidth: 0 表示不补齐/不截断（-J，或显式 -s/-S 且未给 -w）。
	LineWidth int
	// SuppressErrors: -r，仅抑制诊断输出，不改变退出码。
	SuppressErrors bool
}

// GridColumns 返回输出网格的列数：并列文件数、多列数或 1。
func (o *OutputOptions) GridColumns() int {
	if o.MergeFiles > 0 {
		return o.MergeFiles
	}
	if o.Column != nil {
		return o.Column.Columns
	}
	return 1
}

// RowsPerPage 返回每页正文行数（双倍行距减半，整除）。
func (o *OutputOptions) RowsPerPage() int {
	if o.DoubleSpace {
		return o.ContentLinesPerPage / 2
	}
	return o.ContentLinesPerPage
}

// LinesToReadPerPage 返回组装一页需要读入的行数：
// 正文行数（双倍行距减半）乘以多列数；单列与并列模式乘数为 1。
func (o *OutputOptions) LinesToReadPerPage() int {
	cols := 1
	if o.Column != nil {
		cols = o.Column.Columns
	}
	return o.RowsPerPage() * cols
}

// StartLineNumber 返回起始行号；未启用 -n 时恒为 1。
func (o *OutputOptions) StartLineNumber() int {
	if o.Number != nil {
		return o.Number.FirstNumber
	}
	return 1
}

// InWindow 判断 1 基页号是否落入 [StartPage, EndPage] 窗口。
func (o *OutputOptions) InWindow(page int) bool {
	return page >= o.StartPage && (!o.EndPageSet || page <= o.EndPage)
}

// parseUsize 读取一个以字符串注册的数值旗标。
// display 为诊断中显示的旗标名（如 "-l"、"-column"）。
func parseUsize(fs *pflag.FlagSet, name, display string) (int, bool, *contract.Error) {
	if !fs.Changed(name) {
		return 0, false, nil
	}
	raw, _ := fs.GetString(name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, true, contract.Errorf("invalid %s argument '%s'", display, raw)
	}
	return int(n), true, nil
}

// Build 由解析后的旗标、文件组与原始参数串构建 OutputOptions。
// freeArgs 用于提取旧式 +page/-column 操作数；now 提供页眉时间
//（stdin 与并列模式使用墙钟，单文件使用文件修改时间）。
func Build(fs *pflag.FlagSet, paths []string, freeArgs string, now func() time.Time) (*OutputOptions, *contract.Error) {
	formFeedUsed := boolFlag(fs, "form-feed") || boolFlag(fs, "form-feed-legacy")
	merge := boolFlag(fs, "merge")
	across := boolFlag(fs, "across")
	join := boolFlag(fs, "join-lines")
	doubleSpace := boolFlag(fs, "double-space")

	if merge && fs.Changed("column") {
		return nil, contract.Errorf("cannot specify number of columns when printing in parallel")
	}
	if merge && across {
		return nil, contract.Errorf("cannot specify both printing across and printing in parallel")
	}

	mergeFiles := 0
	if merge {
		mergeFiles = len(paths)
	}

	header := ""
	if fs.Changed("header") {
		header, _ = fs.GetString("header")
	} else if !merge && paths[0] != "-" {
		header = paths[0]
	}

	firstNumber := 1
	if v, set, err := parseUsize(fs, "first-line-number", "-N"); err != nil {
		return nil, err
	} else if set {
		firstNumber = v
	}

	var number *NumberingMode
	if fs.Changed("number-lines") {
		raw, _ := fs.GetString("number-lines")
		nm := NumberingMode{Width: 5, Separator: defaultColumnSeparator, FirstNumber: firstNumber}
		if raw != "" {
			if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
				nm.Width = int(v)
			} else {
				r, size := utf8.DecodeRuneInString(raw)
				nm.Separator = string(r)
				if w, werr := strconv.ParseUint(raw[size:], 10, 32); werr == nil {
					nm.Width = int(w)
				}
			}
		}
		number = &nm
	}

	lastModified := ""
	if merge || paths[0] == "-" {
		lastModified = now().Format(timeLayout)
	} else {
		lastModified = fileLastModifiedTime(paths[0])
	}

	// +page 的优先级低于 --pages。
	startPage := 1
	endPage, endSet := 0, false
	if m := plusRange.FindStringSubmatch(freeArgs); m != nil {
		spec := strings.TrimSpace(m[1])
		parts := strings.SplitN(spec, ":", 2)
		v, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, contract.Errorf("invalid + argument '%s'", spec)
		}
		startPage = int(v)
		if len(parts) == 2 {
			v2, err2 := strconv.ParseUint(parts[1], 10, 32)
			if err2 != nil {
				return nil, contract.Errorf("invalid + argument '%s'", spec)
			}
			endPage, endSet = int(v2), true
		}
	}
	if fs.Changed("pages") {
		raw, _ := fs.GetString("pages")
		parts := strings.SplitN(raw, ":", 2)
		v, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, contract.Errorf("invalid --pages argument '%s'", raw)
		}
		startPage = int(v)
		if len(parts) == 2 {
			v2, err2 := strconv.ParseUint(parts[1], 10, 32)
			if err2 != nil {
				return nil, contract.Errorf("invalid --pages argument '%s'", raw)
			}
			endPage, endSet = int(v2), true
		}
	}
	if endSet && startPage > endPage {
		return nil, contract.Errorf("invalid --pages argument '%d:%d'", startPage, endPage)
	}

	defaultLen := linesPerPage
	if formFeedUsed {
		defaultLen = linesPerPageFormFeed
	}
	pageLength := defaultLen
	if v, set, err := parseUsize(fs, "length", "-l"); err != nil {
		return nil, err
	} else if set {
		pageLength = v
	}

	// 页长不超过页眉+页尾（10 行）时抑制两者，整页用作正文。
	small := pageLength <= headerLinesPerPage+trailerLinesPerPage
	displayHT := !small && !boolFlag(fs, "omit-header")
	contentLines := pageLength
	if !small {
		contentLines = pageLength - (headerLinesPerPage + trailerLinesPerPage)
	}

	pageSeparator := "\n"
	if boolFlag(fs, "form-feed") {
		pageSeparator = "\x0C"
	}

	sepExplicit := fs.Changed("separator") || fs.Changed("sep-string")
	columnSeparator := defaultColumnSeparator
	if fs.Changed("separator") {
		columnSeparator, _ = fs.GetString("separator")
	}
	// -S 串覆盖 -s 字符。
	if fs.Changed("sep-string") {
		columnSeparator, _ = fs.GetString("sep-string")
	}

	defWidth := defaultColumnWidth
	if fs.Changed("width") && fs.Changed("separator") {
		defWidth = defaultColumnWidthWithSOption
	}
	columnWidth := defWidth
	if v, set, err := parseUsize(fs, "width", "-w"); err != nil {
		return nil, err
	} else if set {
		columnWidth = v
	}

	pageWidth := 0
	if !join {
		if v, set, err := parseUsize(fs, "page-width", "-W"); err != nil {
			return nil, err
		} else if set {
			pageWidth = v
		}
	}

	// --column 的优先级高于 -COUNT。
	colVal, colSet := 0, false
	if v, set, err := parseUsize(fs, "column", "-column"); err != nil {
		return nil, err
	} else if set {
		colVal, colSet = v, true
	} else if m := dashCount.FindStringSubmatch(freeArgs); m != nil {
		v2, err2 := strconv.ParseUint(m[1], 10, 32)
		if err2 != nil {
			return nil, contract.Errorf("invalid - argument '%s'", m[1])
		}
		colVal, colSet = int(v2), true
	}
	if colSet && colVal == 0 {
		return nil, contract.Errorf("invalid -column argument '0'")
	}

	var column *ColumnMode
	if colSet {
		column = &ColumnMode{Columns: colVal, Width: columnWidth, Separator: columnSeparator, Across: across}
	}

	offset := 0
	if v, set, err := parseUsize(fs, "indent", "-o"); err != nil {
		return nil, err
	} else if set {
		offset = v
	}

	colSepForPrinting := ""
	if column != nil {
		colSepForPrinting = column.Separator
	} else if merge {
		colSepForPrinting = columnSeparator
	}

	columnsToPrint := 1
	if mergeFiles > 0 {
		columnsToPrint = mergeFiles
	} else if column != nil {
		columnsToPrint = column.Columns
	}

	lineWidth := 0
	switch {
	case join:
		lineWidth = 0
	case columnsToPrint > 1:
		// 显式分隔符且未给 -w 时关闭列补齐与截断。
		if sepExplicit && !fs.Changed("width") {
			lineWidth = 0
		} else {
			lineWidth = columnWidth
		}
	default:
		lineWidth = pageWidth
	}

	contentSep := "\n"
	if doubleSpace {
		contentSep = "\n\n"
	}

	return &OutputOptions{
		Number:                  number,
		Header:                  header,
		DoubleSpace:             doubleSpace,
		LineSeparator:           "\n",
		ContentLineSeparator:    contentSep,
		LastModifiedTime:        lastModified,
		StartPage:               startPage,
		EndPage:                 endPage,
		EndPageSet:              endSet,
		DisplayHeaderAndTrailer: displayHT,
		ContentLinesPerPage:     contentLines,
		PageSeparator:           pageSeparator,
		Column:                  column,
		MergeFiles:              mergeFiles,
		OffsetSpaces:            strings.Repeat(" ", offset),
		FormFeedUsed:            formFeedUsed,
		JoinLines:               join,
		ColSepForPrinting:       colSepForPrinting,
		LineWidth:               lineWidth,
		SuppressErrors:          boolFlag(fs, "no-file-warnings"),
	}, nil
}

func boolFlag(fs *pflag.FlagSet, name string) bool {
	v, _ := fs.GetBool(name)
	return v
}

// fileLastModifiedTime 返回文件修改时间的页眉文案；取不到元数据时为空串。
func fileLastModifiedTime(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return info.ModTime().Format(timeLayout)
}
