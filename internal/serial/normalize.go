// Package serial 将设备序列号归一化为可比较的规范形式。
//
// 归一化结果是设备与标签之间的连接键，步骤顺序固定：
//  1. 空串直接返回空串
//  2. 去除首尾空白
//  3. 连续空白折叠为一个 ASCII 空格
//  4. 完整大小写映射转大写（与 locale 无关，ß → SS，ﬀ → FF）
//  5. Unicode NFKC 规范化
package serial

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxLength 规范形式允许的最大字符数，与 devices.serial_norm 列宽一致
// NFKC 可能使字符串变长（如 U+FDFA 展开为 18 个字符），需在写入前校验
const MaxLength = 255

// Normalize 返回 raw 的规范形式，任何输入都有确定输出
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.Join(strings.Fields(s), " ")
	// Caser 带状态，不能跨 goroutine 共享
	s = cases.Upper(language.Und).String(s)
	return norm.NFKC.String(s)
}

// NormalizePtr 对可空输入归一化，nil 保持为 nil
func NormalizePtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	n := Normalize(*raw)
	return &n
}
