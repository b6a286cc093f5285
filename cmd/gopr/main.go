// 命令行入口：参数预处理 → 旗标解析 → 每文件组构建选项并执行流水线。
// 退出码：0 成功；任一组失败为 1（-r 仅抑制诊断文案，不改变退出码）。
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopr/internal/diag"
	"gopr/internal/layout"
	"gopr/internal/opts"
	"gopr/internal/pipeline"
	"gopr/pkg/contract"
)

const (
	progName = "pr"
	progVer  = "0.1.0"
)

const usageText = `Usage: pr [OPTION]... [FILE]...
Paginate or columnate FILE(s) for printing.

With no FILE, or when FILE is -, read standard input.

  +FIRST_PAGE[:LAST_PAGE]  begin [stop] printing with page FIRST_[LAST_]PAGE
  -COLUMN, --column=COLUMN  output COLUMN columns and print columns down
  -a, --across          print columns across rather than down
  -d, --double-space    double space the output
  -F, -f, --form-feed   use form feeds instead of newlines to separate pages
  -h, --header=HEADER   use a centered HEADER instead of filename in page header
  -J, --join-lines      merge full lines, turns off -W line truncation
  -l, --length=PAGE_LENGTH
                        set the page length to PAGE_LENGTH (66) lines
  -m, --merge           print all files in parallel, one in each column
  -n[SEP[DIGITS]], --number-lines[=SEP[DIGITS]]
                        number lines, use DIGITS (5) digits, then SEP (TAB)
  -N, --first-line-number=NUMBER
                        start counting with NUMBER at 1st line of first page
  -o, --indent=MARGIN   offset each line with MARGIN (zero) spaces
  -r, --no-file-warnings
                        omit warning when a file cannot be opened
  -s[CHAR], --separator[=CHAR]
                        separate columns by a single character, default TAB
  -S[STRING], --sep-string[=STRING]
                        separate columns by STRING
  -t, --omit-header     omit page headers and trailers
  -w, --width=PAGE_WIDTH
                        set page width to PAGE_WIDTH (72) for multi-column
  -W, --page-width=PAGE_WIDTH
                        set page width to PAGE_WIDTH (72) always
      --pages=FIRST_PAGE[:LAST_PAGE]
                        begin [stop] printing with page FIRST_[LAST_]PAGE
      --help            display this help and exit
  -V, --version         output version information and exit
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 承载全部流程，main 仅做退出码转换（可测试性）。
func run(argv []string, stdout, stderr io.Writer) int {
	lg := diag.NewLogger(os.Getenv("PR_LOG"))

	pre := opts.Preprocess(argv)
	fs := opts.NewFlagSet()
	fs.SetOutput(io.Discard)
	if err := fs.Parse(pre.Args); err != nil {
		fmt.Fprintf(stderr, "pr: %v\n", err)
		return 1
	}
	if v, _ := fs.GetBool("version"); v {
		fmt.Fprintf(stdout, "%s %s\n", progName, progVer)
		return 0
	}
	if h, _ := fs.GetBool("help"); h {
		fmt.Fprint(stdout, usageText)
		return 0
	}

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	// -m 时全部文件为一组；否则逐文件独立分页。
	var groups [][]string
	if merged, _ := fs.GetBool("merge"); merged {
		groups = [][]string{files}
	} else {
		for _, f := range files {
			groups = append(groups, []string{f})
		}
	}

	pr := layout.NewPrinter(stdout)
	code := 0
	for _, g := range groups {
		o, berr := opts.Build(fs, g, pre.FreeForm, time.Now)
		if berr != nil {
			fmt.Fprintln(stderr, berr.Error())
			return 1
		}
		if err := pipeline.Run(o, g, pr, lg); err != nil {
			code = 1
			if !suppressed(o, err) {
				fmt.Fprintln(stderr, err.Error())
			}
		}
	}
	return code
}

// suppressed: -r 仅对打不开文件类诊断生效，读取中途的错误仍然输出。
func suppressed(o *opts.OutputOptions, err error) bool {
	if !o.SuppressErrors {
		return false
	}
	var ce *contract.Error
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Kind {
	case contract.KindNotExists, contract.KindIsDirectory, contract.KindIsSocket, contract.KindUnknownFiletype:
		return true
	}
	return false
}
