package textfilter

import "fmt"

// BoundaryPolicy 决定 StripQuotes 如何处理首尾字符。
type BoundaryPolicy int

const (
	// BoundaryAlways 无条件删除第一个和最后一个字符，不论其内容。
	BoundaryAlways BoundaryPolicy = iota
	// BoundaryQuotesOnly 仅当首/尾字符本身是引号类符号时才删除。
	BoundaryQuotesOnly
)

// String 返回策略在配置文件中的名称。
func (p BoundaryPolicy) String() string {
	switch p {
	case BoundaryAlways:
		return "always"
	case BoundaryQuotesOnly:
		return "quotes"
	default:
		return fmt.Sprintf("BoundaryPolicy(%d)", int(p))
	}
}

// ParseBoundaryPolicy 解析配置中的策略名称，空字符串视为 "always"。
func ParseBoundaryPolicy(name string) (BoundaryPolicy, error) {
	switch name {
	case "", "always":
		return BoundaryAlways, nil
	case "quotes", "quotes_only":
		return BoundaryQuotesOnly, nil
	default:
		return BoundaryAlways, fmt.Errorf("不支持的首尾处理策略: %q", name)
	}
}

// isQuoteLike 判断 r 是否为引号类符号（字形规范化之后仍可能出现的几种）。
func isQuoteLike(r rune) bool {
	switch r {
	case '\'', '"', '“', '”', '‘', '’':
		return true
	}
	return false
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// StripQuotes 以 BoundaryAlways 策略去除外层引号，同时保留缩写中的撇号。
func StripQuotes(s string) string {
	return StripQuotesWith(s, BoundaryAlways)
}

// StripQuotesWith 去除首尾字符（按 policy）以及内部不属于缩写的撇号。
//
// 内部撇号只有在左右两侧都是 ASCII 字母时（如 don't）才保留。
// 邻居判断始终读取原始字符序列，删除不会造成下标偏移。
// 长度为 1 的字符串在 BoundaryAlways 下返回空串。
func StripQuotesWith(s string, policy BoundaryPolicy) string {
	runes := []rune(s)
	n := len(runes)
	if n == 0 {
		return ""
	}

	out := make([]rune, 0, n)
	for i, r := range runes {
		if i == 0 || i == n-1 {
			if policy == BoundaryAlways || isQuoteLike(r) {
				continue
			}
			out = append(out, r)
			continue
		}
		if r == '\'' && !(isASCIIAlpha(runes[i-1]) && isASCIIAlpha(runes[i+1])) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
