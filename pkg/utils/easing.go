// Package utils 提供通用工具函数
package utils

import "math"

// 数值工具
//
// 模拟内核中的插值、截断与平滑都走这里，保证各系统使用同一套公式。

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b（t 不做截断）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp 反向插值，返回 v 在 [a, b] 上的位置，结果截断到 [0, 1]
// a == b 时返回 0
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ClampInt 将整数 v 限制在 [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ExpSmoothing 帧率无关的指数平滑
// 返回 current 朝 target 靠近后的值，系数为 1 - e^(-sharpness*dt)
// sharpness 或 dt 非正时原样返回 current
func ExpSmoothing(current, target, sharpness, dt float64) float64 {
	if sharpness <= 0 || dt <= 0 {
		return current
	}
	return Lerp(current, target, 1-math.Exp(-sharpness*dt))
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
