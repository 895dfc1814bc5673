package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// selfServicePolicies 所有后台角色都可访问的个人接口
var selfServicePolicies = []Policy{
	{Object: "/admin/profile", Action: "GET"},
	{Object: "/admin/password", Action: "PUT"},
	{Object: "/admin/authz/me", Action: "GET"},
}

// BuiltinRoleSeeds 门店预置角色矩阵
// owner 拥有全部后台路由；manager 负责菜单、库存、员工与活动；
// kitchen 只处理订单进度；support 处理订单查询与会员积分。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: RoleKitchen,
			Policies: append([]Policy{
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/status-flow", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/orders/:id/stop-auto-progress", Action: "POST"},
				{Object: "/admin/inventory", Action: "GET"},
				{Object: "/admin/inventory/low-stock", Action: "GET"},
				{Object: "/admin/inventory/:id/adjust", Action: "POST"},
				{Object: "/admin/menu-items", Action: "GET"},
			}, selfServicePolicies...),
		},
		{
			Role: RoleSupport,
			Policies: append([]Policy{
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/customers", Action: "GET"},
				{Object: "/admin/customers/:id/loyalty", Action: "GET"},
				{Object: "/admin/customers/:id/loyalty/transactions", Action: "GET"},
				{Object: "/admin/customers/:id/points", Action: "POST"},
				{Object: "/admin/campaigns", Action: "GET"},
			}, selfServicePolicies...),
		},
		{
			Role:     RoleManager,
			Inherits: []string{RoleKitchen, RoleSupport},
			Policies: []Policy{
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/menu-items", Action: "*"},
				{Object: "/admin/menu-items/:id", Action: "*"},
				{Object: "/admin/inventory", Action: "*"},
				{Object: "/admin/inventory/:id", Action: "*"},
				{Object: "/admin/staff", Action: "*"},
				{Object: "/admin/staff/:id", Action: "*"},
				{Object: "/admin/campaigns", Action: "*"},
				{Object: "/admin/campaigns/:id", Action: "*"},
				{Object: "/admin/customers/:id/status", Action: "PATCH"},
				{Object: "/admin/reports/*", Action: "GET"},
			},
		},
		{
			Role:     RoleOwner,
			Inherits: []string{RoleManager},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
