package opts

import (
	"regexp"
	"strings"

	"github.com/spf13/pflag"
)

// 旧式操作数与可选贴身参数是 getopt 系解析器无法表达的部分，
// 在进入 pflag 之前统一改写/提取：
//   +FIRST[:LAST]、-COUNT   —— 丢弃 token，稍后从 FreeForm 正则提取；
//   -n[char][width]         —— 改写为 --number-lines=...；
//   -s[char] / -S[string]   —— 改写为 --separator=... / --sep-string=...。
var (
	legacyOperand = regexp.MustCompile(`^[-+]\d+.*`)
	// -n 后接独立 token 时，以该启发式判断其是否为行号参数。
	// 已知局限：含数字的文件名（如 file2.txt）会被误收。
	numArg    = regexp.MustCompile(`(.\d+)|(\d+)|^[^-]$`)
	plusRange = regexp.MustCompile(`\s*\+(\d+:*\d*)\s*`)
	dashCount = regexp.MustCompile(`\s*-(\d+)\s*`)
)

// Preprocessed: 预处理结果。Args 交给 pflag；FreeForm 为原始参数的
// 空格串联，供 +page/-column 的正则提取使用。
type Preprocessed struct {
	Args     []string
	FreeForm string
}

// Preprocess 改写参数向量。匹配 ^[-+]\d+.* 的操作数被静默丢弃，
// 因此无法打开一个字面名为 "-3" 的文件（保留的已知局限）。
func Preprocess(argv []string) Preprocessed {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		a := argv[i]
		switch {
		case a == "-n":
			val := ""
			if i+1 < len(argv) && numArg.MatchString(strings.TrimSpace(argv[i+1])) {
				val = argv[i+1]
				i++
			}
			out = append(out, "--number-lines="+val)
		case strings.HasPrefix(a, "-n") && !strings.HasPrefix(a, "--"):
			out = append(out, "--number-lines="+a[2:])
		case a == "-s":
			out = append(out, "--separator=\t")
		case strings.HasPrefix(a, "-s") && !strings.HasPrefix(a, "--"):
			out = append(out, "--separator="+a[2:])
		case a == "-S":
			out = append(out, "--sep-string=")
		case strings.HasPrefix(a, "-S") && !strings.HasPrefix(a, "--"):
			out = append(out, "--sep-string="+a[2:])
		case legacyOperand.MatchString(a):
			// +page / -column：由 Build 从 FreeForm 提取。
		default:
			out = append(out, a)
		}
	}
	return Preprocessed{Args: out, FreeForm: strings.Join(argv, " ")}
}

// NewFlagSet 注册 pr 的全部旗标。-n/-s/-S 不注册短旗标：
// 它们的贴身可选参数由 Preprocess 改写为长旗标。
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("pr", pflag.ContinueOnError)
	fs.String("pages", "", "begin and stop printing with page FIRST_PAGE[:LAST_PAGE]")
	fs.StringP("header", "h", "", "use the string header to replace the file name in the header line")
	fs.BoolP("double-space", "d", false, "produce output that is double spaced")
	fs.String("number-lines", "", "provide [char][width] digit line numbering (see -n)")
	fs.StringP("first-line-number", "N", "", "start counting with NUMBER at 1st line of first page printed")
	fs.BoolP("omit-header", "t", false, "write neither the five-line header nor the five-line trailer")
	fs.StringP("length", "l", "", "override the 66-line default and reset the page length")
	fs.BoolP("no-file-warnings", "r", false, "omit warning when a file cannot be opened")
	fs.BoolP("form-feed", "F", false, "use a form feed for new pages instead of newlines")
	fs.BoolP("form-feed-legacy", "f", false, "same as -F but pause before the first page if stdout is a terminal (pause not implemented)")
	fs.StringP("width", "w", "", "set the width of the line for multiple text-column output")
	fs.StringP("page-width", "W", "", "set page width and truncate single-column lines, unless -J is set")
	fs.BoolP("across", "a", false, "fill columns across the page in round-robin order")
	fs.String("column", "", "produce multi-column output arranged down each column")
	fs.String("separator", "", "separate text columns by the single character char (see -s)")
	fs.String("sep-string", "", "separate columns by STRING (see -S)")
	fs.BoolP("merge", "m", false, "merge files, writing one line from each side by side")
	fs.StringP("indent", "o", "", "precede each line of output by offset spaces")
	fs.BoolP("join-lines", "J", false, "merge full lines; turns off -W truncation and column alignment")
	fs.Bool("help", false, "display this help and exit")
	fs.BoolP("version", "V", false, "output version information and exit")
	return fs
}
