package tts

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iabetor/pisay/internal/textfilter"
)

// span 是原文中的字节区间 [start, end)。
// 分段只记录区间，输出时从原文切片，不会插入任何字符。
type span struct {
	start, end int
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', ';', '\n':
		return true
	}
	return false
}

// sentenceSpans 在句末符号之后切分文本，且要求符号后紧跟空白或文本结束，
// 这样 "3.5"、"!!!" 这类连续符号不会被拆开。返回的区间首尾相接、覆盖全文。
func sentenceSpans(text string, base span) []span {
	var spans []span
	start := base.start
	for i, r := range text[base.start:base.end] {
		if !isSentenceEnd(r) {
			continue
		}
		end := base.start + i + utf8.RuneLen(r)
		if end < base.end {
			next, _ := utf8.DecodeRuneInString(text[end:base.end])
			if !unicode.IsSpace(next) {
				continue
			}
		}
		spans = append(spans, span{start, end})
		start = end
	}
	if start < base.end {
		spans = append(spans, span{start, base.end})
	}
	return spans
}

// wordSpans 在空白之后切分区间，单词超过 maxChars 时按字符硬切。
func wordSpans(text string, base span, maxChars int) []span {
	var spans []span
	start := base.start
	inSpace := false
	for i, r := range text[base.start:base.end] {
		pos := base.start + i
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && pos > start {
			spans = append(spans, span{start, pos})
			start = pos
		}
		inSpace = false
	}
	if start < base.end {
		spans = append(spans, span{start, base.end})
	}

	var out []span
	for _, s := range spans {
		for runeLen(text, s) > maxChars {
			cut := s.start
			for n := 0; n < maxChars; n++ {
				_, size := utf8.DecodeRuneInString(text[cut:s.end])
				cut += size
			}
			out = append(out, span{s.start, cut})
			s.start = cut
		}
		out = append(out, s)
	}
	return out
}

// runeLen 返回区间去掉首尾空白后的字符数。
func runeLen(text string, s span) int {
	return utf8.RuneCountInString(strings.TrimSpace(text[s.start:s.end]))
}

// splitChunks 将文本按句分割后合并为大段，每段不超过 maxChars 个字符。
// 单句超长时按空白切分，仍超长则硬切。maxChars <= 0 时不分段。
// 不含字母数字的段并入相邻段，引擎不会收到纯符号文本。
func splitChunks(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var pieces []span
	for _, s := range sentenceSpans(text, span{0, len(text)}) {
		if runeLen(text, s) <= maxChars {
			pieces = append(pieces, s)
			continue
		}
		pieces = append(pieces, wordSpans(text, s, maxChars)...)
	}

	var merged []span
	for _, p := range pieces {
		if n := len(merged); n > 0 && runeLen(text, span{merged[n-1].start, p.end}) <= maxChars {
			merged[n-1].end = p.end
			continue
		}
		merged = append(merged, p)
	}

	var spans []span
	for i, s := range merged {
		if textfilter.HasAlphanumeric(text[s.start:s.end]) || len(merged) == 1 {
			spans = append(spans, s)
			continue
		}
		switch {
		case len(spans) > 0:
			spans[len(spans)-1].end = s.end
		case i+1 < len(merged):
			merged[i+1].start = s.start
		default:
			spans = append(spans, s)
		}
	}

	chunks := make([]string, 0, len(spans))
	for _, s := range spans {
		if c := strings.TrimSpace(text[s.start:s.end]); c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}
