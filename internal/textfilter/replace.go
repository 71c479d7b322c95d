package textfilter

import "strings"

// Replacement 是一条字形替换规则：将 From 全局替换为 To。
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ReplacementTable 是有序的替换表。
// 按顺序逐条应用，每条都作用于上一条处理后的字符串，
// 因此前一条的输出可能被后一条再次匹配。
type ReplacementTable []Replacement

// DefaultReplacements 是合成引擎容易出错的字形及其安全替代。
// 新增条目无需改动其他代码。
var DefaultReplacements = ReplacementTable{
	{From: "’", To: "'"}, // 右单引号 ’ -> ASCII 撇号
}

// Apply 按表顺序对 s 执行全局替换。
func (t ReplacementTable) Apply(s string) string {
	for _, r := range t {
		if r.From == "" {
			continue
		}
		s = strings.ReplaceAll(s, r.From, r.To)
	}
	return s
}

// With 返回在当前表之后追加 extra 的新表，不修改原表。
func (t ReplacementTable) With(extra ...Replacement) ReplacementTable {
	out := make(ReplacementTable, 0, len(t)+len(extra))
	out = append(out, t...)
	return append(out, extra...)
}

// Normalize 使用默认替换表规范化字形。
func Normalize(s string) string {
	return DefaultReplacements.Apply(s)
}
