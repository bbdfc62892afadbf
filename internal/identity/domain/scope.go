package domain

// ScopeLevel 数据可见范围级别
type ScopeLevel string

const (
	// ScopeAll 可见全部记录
	ScopeAll ScopeLevel = "all"
	// ScopeOwn 仅可见本人提交的记录
	ScopeOwn ScopeLevel = "own"
	// ScopeBasic 仅可见非敏感的汇总视图
	ScopeBasic ScopeLevel = "basic"
)

// DataScope 数据可见范围，角色的纯函数推导结果。
// 每个列表/详情查询返回数据前都必须套用该过滤。
type DataScope struct {
	Level    ScopeLevel
	Username string
}

// ResolveScope 根据角色推导数据可见范围
func ResolveScope(role Role, username string) DataScope {
	switch role {
	case RoleAdmin, RoleAuditor:
		return DataScope{Level: ScopeAll, Username: username}
	case RoleOperator:
		return DataScope{Level: ScopeOwn, Username: username}
	default:
		return DataScope{Level: ScopeBasic, Username: username}
	}
}

// OwnerOnly 返回 own 范围下的归属过滤用户名
func (s DataScope) OwnerOnly() (string, bool) {
	if s.Level == ScopeOwn {
		return s.Username, true
	}
	return "", false
}

// Identity 已认证的调用方身份，由请求层显式传入，不使用全局状态
type Identity struct {
	Username string
	Role     Role
}

// Scope 推导调用方的数据可见范围
func (id Identity) Scope() DataScope {
	return ResolveScope(id.Role, id.Username)
}
