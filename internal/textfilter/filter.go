// Package textfilter 在文本送入语音合成引擎之前对其进行清洗。
//
// 处理顺序固定为：字形规范化 -> 去除外层引号 -> 字母数字检查 -> 白名单过滤。
// 结果为空字符串表示"不要合成"，调用方必须据此跳过合成。
// 包内只读取不可变的全局表，所有函数均可并发调用。
package textfilter

// Filter 是可配置的清洗流水线。零值等价于默认行为。
type Filter struct {
	// Replacements 为 nil 时使用 DefaultReplacements。
	Replacements ReplacementTable
	Boundary     BoundaryPolicy
}

// Default 返回与 FilterStringInput 行为一致的 Filter。
func Default() Filter {
	return Filter{Replacements: DefaultReplacements, Boundary: BoundaryAlways}
}

// Apply 清洗 s。返回空字符串表示输入不值得合成。
func (f Filter) Apply(s string) string {
	table := f.Replacements
	if table == nil {
		table = DefaultReplacements
	}

	s = table.Apply(s)
	s = StripQuotesWith(s, f.Boundary)
	if !HasAlphanumeric(s) {
		return ""
	}
	return WhitelistFilter(s)
}

// FilterStringInput 使用默认配置清洗 s。
func FilterStringInput(s string) string {
	return Default().Apply(s)
}
