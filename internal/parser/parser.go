// Package parser 解析手写订单文本
//
// 订单文本形如 "黄鱼烧卷x 2， 黑米饭  x3，"：条目之间用全角逗号加空格分隔，
// 每个条目是 <菜名><x><数量>。文本是人工录入的，空格、全半角、菜名简写都不规范，
// 解析必须逐条降级：单个条目坏了只丢该条目，绝不中断整行或整表。
package parser

import (
	"strings"

	"github.com/dnhuang/delivery-analyzer/internal/catalog"
)

// EntrySeparator 条目分隔符：全角逗号后跟一个半角空格。
// 录入习惯固定是这个组合，行尾通常多一个分隔符。
const EntrySeparator = "， "

// quantityMarker 数量标记，菜名和数量之间的半角 x
const quantityMarker = "x"

// ParseItems 把一行订单文本解析成每个目录项的数量
//
// 返回的切片与目录列一一对应，未出现的目录项为 0。文本为空、条目残缺、
// 菜名匹配不到都只是静默跳过，永不报错。
func ParseItems(text string, c *catalog.Catalog) []int {
	quantities := make([]int, c.Len())

	text = strings.TrimSpace(text)
	if text == "" {
		return quantities
	}

	// 行尾分隔符会产生一个空的末尾条目，交给下面的逐条过滤处理，
	// 不能整体丢掉最后一段：行尾只写 "，" 不带空格时最后一段是真实条目。
	entries := strings.Split(text, EntrySeparator)

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" || !strings.Contains(entry, quantityMarker) {
			continue
		}

		// 菜名里可能含 x（如 "双拼x套餐"），按最后一个 x 切分
		cut := strings.LastIndex(entry, quantityMarker)
		namePart := strings.TrimSpace(entry[:cut])
		qtyPart := strings.TrimSpace(entry[cut+len(quantityMarker):])

		qty, ok := leadingInt(qtyPart)
		if !ok {
			continue
		}

		if idx := resolveItem(namePart, c); idx >= 0 {
			quantities[idx] = qty
		}
	}

	return quantities
}

// resolveItem 把条目菜名解析到目录列，找不到返回 -1
//
// 按目录声明顺序逐项尝试，首个命中即停（既定的优先级策略）。
// 双向包含各测两次：原始去空格前后各一轮，容忍录入时的随手空格。
func resolveItem(namePart string, c *catalog.Catalog) int {
	nameNorm := strings.ReplaceAll(namePart, " ", "")

	for i, item := range c.Items() {
		base := item.BaseName
		baseNorm := strings.ReplaceAll(base, " ", "")

		if strings.Contains(namePart, base) || strings.Contains(base, namePart) ||
			strings.Contains(nameNorm, baseNorm) || strings.Contains(baseNorm, nameNorm) {
			return i
		}
	}
	return -1
}

// leadingInt 取字符串开头连续的十进制数字，没有数字则失败
func leadingInt(s string) (int, bool) {
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	return n, digits > 0
}
