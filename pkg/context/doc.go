// Package context 提供请求上下文相关的子包。
//
// 子包列表：
//   - xctx: 类型化的可组合请求上下文（追踪标识、授权结果、原始凭据、logger），
//     扩展层、Wrapper 以及与 context.Context 的桥接
//
// 设计原则：
//   - 能力由方法集表达，缺少能力在编译期报错
//   - 请求上下文通过 context.Context 传递，不使用全局变量
package context
