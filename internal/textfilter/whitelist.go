package textfilter

// whitelist 是合成引擎可安全朗读的 48 个字符（小写形式）。
var whitelist = func() map[rune]struct{} {
	const chars = "abcdefghijklmnopqrstuvwxyz1234567890$£!.?,'&;: -"
	m := make(map[rune]struct{}, 48)
	for _, r := range chars {
		m[r] = struct{}{}
	}
	return m
}()

// toASCIILower 只折叠 ASCII 大写字母，其余字符原样返回。
func toASCIILower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// IsWhitelisted 判断 r 是否在白名单内（不区分大小写）。
func IsWhitelisted(r rune) bool {
	_, ok := whitelist[toASCIILower(r)]
	return ok
}

// HasAlphanumeric 判断 s 是否至少包含一个 ASCII 字母或数字。
// 注意 £ 虽在白名单中，但不算字母数字。
func HasAlphanumeric(s string) bool {
	for _, r := range s {
		if isASCIIAlpha(r) || (r >= '0' && r <= '9') {
			return true
		}
	}
	return false
}

// WhitelistFilter 删除所有不在白名单中的字符，保留字符的原始大小写。
func WhitelistFilter(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if IsWhitelisted(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
