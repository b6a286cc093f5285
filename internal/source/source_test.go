package source

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopr/pkg/contract"
)

func TestSplitFormFeeds(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []contract.Line
	}{
		{"无换页符", "abc", []contract.Line{{Text: "abc"}}},
		{"空行", "", []contract.Line{{Text: ""}}},
		{"行中单个", "a\x0Cb", []contract.Line{{Text: "a", FormFeedsAfter: 1}, {Text: "b"}}},
		{"行中连续", "a\x0C\x0Cb", []contract.Line{{Text: "a", FormFeedsAfter: 2}, {Text: "b"}}},
		{"行首", "\x0Cb", []contract.Line{{Text: "", FormFeedsAfter: 1}, {Text: "b"}}},
		{"行尾", "a\x0C", []contract.Line{{Text: "a", FormFeedsAfter: 1}}},
		{"仅换页符", "\x0C\x0C", []contract.Line{{Text: "", FormFeedsAfter: 2}}},
	}
	for _, c := range cases {
		if got := SplitFormFeeds(c.raw); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%s: 拆分不符: %+v", c.name, got)
		}
	}
}

func TestScannerLines(t *testing.T) {
	s := NewScanner(strings.NewReader("alpha\n\x0Cbeta\nlast"), "t", 3)
	var texts []string
	var ffs []int
	for s.Scan() {
		ln := s.Line()
		if ln.Err != nil {
			t.Fatalf("不应出错: %v", ln.Err)
		}
		if ln.FileID != 3 {
			t.Fatalf("FileID 应透传, got %d", ln.FileID)
		}
		texts = append(texts, ln.Text)
		ffs = append(ffs, ln.FormFeedsAfter)
	}
	if !reflect.DeepEqual(texts, []string{"alpha", "", "beta", "last"}) {
		t.Fatalf("行序列不符: %q", texts)
	}
	if !reflect.DeepEqual(ffs, []int{0, 1, 0, 0}) {
		t.Fatalf("换页标注不符: %v", ffs)
	}
}

// 读取中途失败时应产出单个携带错误的行, 之后流终止
type failReader struct {
	data string
	done bool
}

func (r *failReader) Read(p []byte) (int, error) {
	if !r.done {
		r.done = true
		return copy(p, r.data), nil
	}
	return 0, errors.New("boom")
}

func TestScannerReadError(t *testing.T) {
	s := NewScanner(&failReader{data: "ok\n"}, "bad.txt", 0)
	if !s.Scan() || s.Line().Text != "ok" {
		t.Fatalf("首行应正常产出")
	}
	if !s.Scan() {
		t.Fatalf("错误应以行的形式产出")
	}
	ln := s.Line()
	if ln.Err == nil || ln.Err.Error() != "pr: Reading from input bad.txt gave error" {
		t.Fatalf("错误文案不符: %v", ln.Err)
	}
	if s.Scan() {
		t.Fatalf("错误之后流应终止")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	reg := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(reg, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rc, perr := Open(reg)
	if perr != nil {
		t.Fatalf("常规文件应可打开: %v", perr)
	}
	rc.Close()

	if _, perr = Open(filepath.Join(dir, "nope")); perr == nil || perr.Kind != contract.KindNotExists {
		t.Fatalf("缺失路径应为 NotExists, got %v", perr)
	}
	if _, perr = Open(dir); perr == nil || perr.Kind != contract.KindIsDirectory {
		t.Fatalf("目录应为 IsDirectory, got %v", perr)
	}
	if rc, perr = Open(FileStdin); perr != nil || rc == nil {
		t.Fatalf("哨兵操作数应返回标准输入: %v", perr)
	}
}
