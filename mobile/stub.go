//go:build !mobile

// 普通构建时 mobile 包只有这个文件，真正的绑定代码需要 -tags mobile
package mobile

// Dummy 保证包在桌面构建时仍然可以被 gomobile 以外的工具引用
func Dummy() {}
