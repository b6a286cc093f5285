package contract

// FileID: 输入文件在其文件组内的序号（0..n-1）。
// 单文件模式恒为 0；并列模式（-m）下用于把行归属到输出列。
type FileID int

// Line: 分页流水线的原子单元——经换页符拆分后的逻辑行。
// 约束：
//  1. LineNumber 自起始行号起在单文件内严格 +1 递增；
//  2. FormFeedsAfter = k（k≥1）表示此行之后强制 k 次换页，
//     其中后 k-1 页为空页；
//  3. PageNumber/GroupKey 由分页器/归并器在放页时回填；
//  4. Err 非 nil 时该行承载一次延迟上报的读取错误，Text 无效。
type Line struct {
	FileID     FileID
	LineNumber int
	PageNumber int
	// GroupKey = PageNumber*N + FileID（N 为组内文件数），
	// 是并列归并的全序键：同页内按文件序，跨页按页序。
	GroupKey       int
	Text           string
	Err            error
	FormFeedsAfter int
}

// Page: 落入同一输出页的行序列。允许为空（换页符产生的空页）。
type Page []Line
