//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 普通构建只编译此文件。ebitenmobile 绑定入口在 mobile.go 中，
// 仅在使用 -tags mobile 时编译，使用内置默认配置，不需要嵌入数据文件。
package mobile

// Dummy 是一个空导出函数，使 ./mobile 在桌面端构建时也是合法的包
func Dummy() {}
