// Package xconf 基于 koanf 的配置加载器。
//
// 负责从文件或字节数据加载 YAML/JSON、反序列化到结构体，以及文件变更后的热重载。
// 默认值和校验由调用方（如 internal/settings）负责。
//
// # 并发
//
// Reload 通过互斥锁串行化，解析成功后原子替换内部 koanf 实例；解析失败时保留旧配置。
// Client 返回当前快照，Reload 后旧快照仍可读但已过期，需要时重新调用 Client。
//
// # 监视
//
// Watch 监视配置文件所在目录（兼容编辑器先写临时文件再 rename 的保存方式），
// 在防抖窗口结束后 Reload 并回调。Run 阻塞直到 ctx 取消，返回时释放 fsnotify 资源，
// 回调总是在 Run 所在 goroutine 中执行。
package xconf
