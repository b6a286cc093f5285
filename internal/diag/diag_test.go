package diag

import (
	"errors"
	"testing"

	"gopr/pkg/contract"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, CodeUnknown},
		{"普通错误", errors.New("x"), CodeUnknown},
		{"读取失败", &contract.Error{Kind: contract.KindInput}, CodeInput},
		{"不存在", &contract.Error{Kind: contract.KindNotExists}, CodeNotExists},
		{"目录", &contract.Error{Kind: contract.KindIsDirectory}, CodeFiletype},
		{"套接字", &contract.Error{Kind: contract.KindIsSocket}, CodeFiletype},
		{"校验类", contract.Errorf("bad"), CodeInvalidOpts},
	}
	for _, c := range cases {
		if got := Classify(c.err); got != c.want {
			t.Fatalf("%s: 分类不符: %s", c.name, got)
		}
	}
}

// nil Logger 的全部方法必须安全
func TestLoggerNilSafe(t *testing.T) {
	var lg *Logger
	tm := lg.Start("comp", "msg")
	tm.Finish("done", 1)
	lg.Error("comp", CodeIO, "boom")
	lg.Debugf("comp", "msg")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": Debug,
		"INFO":  Info,
		"warn":  Warn,
		"error": Error,
		"":      Off,
		"junk":  Off,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("%q: 级别不符: %v", in, got)
		}
	}
}

func TestMetricsReset(t *testing.T) {
	LinesRead.Add(3)
	PagesWritten.Add(2)
	ResetMetrics()
	if LinesRead.Load() != 0 || PagesWritten.Load() != 0 {
		t.Fatalf("指标应清零")
	}
}
