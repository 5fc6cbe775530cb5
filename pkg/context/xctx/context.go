package xctx

import (
	"context"
	"log/slog"

	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/util/xid"
)

// XSpanID 追踪标识，链式调用时原样传给下游
type XSpanID string

// String 实现 fmt.Stringer
func (s XSpanID) String() string {
	return string(s)
}

// GenerateSpanID 生成 UUID v4 追踪标识。
// 熵源不可用时 panic，与 crypto/rand 失败即终止的策略一致。
func GenerateSpanID() XSpanID {
	return XSpanID(xid.Must(xid.UUID()))
}

// Logger 请求级日志句柄。xlog.Logger 满足此接口。
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)
}

// =============================================================================
// 能力接口（封闭集合）
// =============================================================================

// HasSpanID 持有追踪标识
type HasSpanID interface {
	SpanIDSlot() *Slot[XSpanID]
}

// HasAuthorization 持有授权结果（nil 表示未授权）
type HasAuthorization interface {
	AuthorizationSlot() *Slot[*xauth.Authorization]
}

// HasAuthData 持有原始凭据（nil 表示无凭据）
type HasAuthData interface {
	AuthDataSlot() *Slot[*xauth.AuthData]
}

// Carrier 持有封闭集合中的全部值
type Carrier interface {
	HasSpanID
	HasAuthorization
	HasAuthData
}

// HasLogger 持有请求级 logger
type HasLogger interface {
	Logger() Logger
	SetLogger(l Logger)
}

// SpanIDOf 读取追踪标识
func SpanIDOf[C HasSpanID](c C) XSpanID {
	return c.SpanIDSlot().Get()
}

// AuthorizationOf 读取授权结果
func AuthorizationOf[C HasAuthorization](c C) *xauth.Authorization {
	return c.AuthorizationSlot().Get()
}

// AuthDataOf 读取原始凭据
func AuthDataOf[C HasAuthData](c C) *xauth.AuthData {
	return c.AuthDataSlot().Get()
}

// =============================================================================
// Context 基础上下文
// =============================================================================

// Context 请求上下文。
//
// 服务端每个入站请求创建一个，客户端每次构造出站调用创建一个。
// 服务链式调用时，入站上下文的追踪标识会传给下游请求。
type Context struct {
	spanID        Slot[XSpanID]
	authorization Slot[*xauth.Authorization]
	authData      Slot[*xauth.AuthData]
	logger        Logger
}

// 编译时接口检查
var (
	_ Carrier   = (*Context)(nil)
	_ HasLogger = (*Context)(nil)
)

// New 创建空上下文，追踪标识为空字符串
func New() *Context {
	return &Context{}
}

// NewWithSpanID 创建带追踪标识的上下文
func NewWithSpanID(spanID string) *Context {
	return &Context{spanID: NewSlot(XSpanID(spanID))}
}

// SpanIDSlot 实现 HasSpanID
func (c *Context) SpanIDSlot() *Slot[XSpanID] {
	return &c.spanID
}

// AuthorizationSlot 实现 HasAuthorization
func (c *Context) AuthorizationSlot() *Slot[*xauth.Authorization] {
	return &c.authorization
}

// AuthDataSlot 实现 HasAuthData
func (c *Context) AuthDataSlot() *Slot[*xauth.AuthData] {
	return &c.authData
}

// AuthBasic 设置 Basic 认证凭据
func (c *Context) AuthBasic(username, password string) {
	c.authData.Set(xauth.Basic(username, password))
}

// AuthBearer 设置 Bearer Token 凭据
func (c *Context) AuthBearer(token string) {
	c.authData.Set(xauth.Bearer(token))
}

// AuthAPIKey 设置 API Key 凭据
func (c *Context) AuthAPIKey(key string) {
	c.authData.Set(xauth.APIKey(key))
}

// Logger 返回请求级 logger，未设置时返回 nil
func (c *Context) Logger() Logger {
	return c.logger
}

// SetLogger 设置请求级 logger。logger 按引用持有，Clone 不复制它。
func (c *Context) SetLogger(l Logger) {
	c.logger = l
}

// Clone 返回副本：授权结果和凭据深拷贝，logger 与原上下文共享
func (c *Context) Clone() *Context {
	if c == nil {
		return nil
	}
	return &Context{
		spanID:        c.spanID,
		authorization: NewSlot(c.authorization.Get().Clone()),
		authData:      NewSlot(c.authData.Get().Clone()),
		logger:        c.logger,
	}
}

// LogValue 实现 slog.LogValuer。凭据只输出方案和用户名。
func (c *Context) LogValue() slog.Value {
	if c == nil {
		return slog.StringValue("<nil>")
	}
	attrs := make([]slog.Attr, 0, 3)
	attrs = append(attrs, slog.String(KeySpanID, string(c.spanID.Get())))
	if a := c.authorization.Get(); a != nil {
		attrs = append(attrs, slog.Any("authorization", a))
	}
	if d := c.authData.Get(); d != nil {
		attrs = append(attrs, slog.Any("auth_data", d))
	}
	return slog.GroupValue(attrs...)
}
