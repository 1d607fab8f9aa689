//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 桌面构建（go build ./...）也会遍历到本目录，
// 没有 mobile 标签时这里只提供一个空的导出函数，不嵌入调参文件。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
