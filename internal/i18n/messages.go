package i18n

// messages 按语言组织的文案表，键缺失时回退默认语言
var messages = map[string]map[string]string{
	LocaleEnUS: {
		"error.bad_request":                     "Invalid request",
		"error.validation_failed":               "Some fields are invalid",
		"error.not_found":                       "Resource not found",
		"error.conflict":                        "Resource already exists",
		"error.save_failed":                     "Save failed",
		"error.unauthorized":                    "Unauthorized",
		"error.forbidden":                       "You do not have permission to perform this action",
		"error.too_many_requests":               "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable":          "Rate limiter unavailable, please retry later",
		"error.auth_header_missing":             "Missing Authorization header",
		"error.auth_header_invalid":             "Authorization header must be a Bearer token",
		"error.token_invalid":                   "Invalid or expired token",
		"error.token_revoked":                   "Session expired, please sign in again",
		"error.admin_id_invalid":                "Invalid admin identity",
		"error.admin_id_type_invalid":           "Invalid admin identity type",
		"error.user_id_invalid":                 "Invalid user identity",
		"error.user_id_type_invalid":            "Invalid user identity type",
		"error.admin_login_invalid":             "Incorrect username or password",
		"error.login_invalid":                   "Incorrect email or password",
		"error.login_failed":                    "Sign in failed",
		"error.login_too_many":                  "Too many sign-in attempts, please retry in %d seconds",
		"error.register_failed":                 "Registration failed",
		"error.email_exists":                    "This email is already registered",
		"error.user_disabled":                   "This account has been disabled",
		"error.user_not_found":                  "Customer not found",
		"error.user_fetch_failed":               "Failed to load customer",
		"error.user_update_failed":              "Failed to update customer",
		"error.password_change_failed":          "Failed to change password",
		"error.password_old_invalid":            "Current password is incorrect",
		"error.password_min_length":             "Password must be at least %d characters",
		"error.password_require_upper":          "Password must contain an uppercase letter",
		"error.password_require_lower":          "Password must contain a lowercase letter",
		"error.password_require_number":         "Password must contain a number",
		"error.password_require_special":        "Password must contain a special character",
		"error.captcha_required":                "Please complete the captcha",
		"error.captcha_invalid":                 "Captcha is incorrect",
		"error.captcha_config_invalid":          "Captcha is misconfigured",
		"error.captcha_generate_failed":         "Failed to generate captcha",
		"error.captcha_verify_failed":           "Failed to verify captcha",
		"error.authz_fetch_failed":              "Failed to load permissions",
		"error.category_fetch_failed":           "Failed to load categories",
		"error.category_not_found":              "Category not found",
		"error.category_save_failed":            "Failed to save category",
		"error.category_delete_failed":          "Failed to delete category",
		"error.category_in_use":                 "Category still has menu items",
		"error.slug_exists":                     "Slug already exists",
		"error.menu_fetch_failed":               "Failed to load menu",
		"error.menu_item_not_found":             "Menu item not found",
		"error.menu_item_unavailable":           "This dish is currently unavailable",
		"error.menu_item_save_failed":           "Failed to save menu item",
		"error.menu_item_delete_failed":         "Failed to delete menu item",
		"error.cart_fetch_failed":               "Failed to load cart",
		"error.cart_update_failed":              "Failed to update cart",
		"error.cart_empty":                      "Your cart is empty",
		"error.cart_item_not_found":             "Cart item not found",
		"error.quantity_invalid":                "Quantity must be a positive whole number",
		"error.quantity_too_large":              "Quantity exceeds the per-dish limit",
		"error.subtotal_invalid":                "Subtotal must be a non-negative amount",
		"error.payment_method_invalid":          "Unsupported payment method",
		"error.order_id_invalid":                "Invalid order id",
		"error.order_not_found":                 "Order not found",
		"error.order_fetch_failed":              "Failed to load order",
		"error.order_create_failed":             "Failed to place order",
		"error.order_preview_failed":            "Failed to preview order",
		"error.order_update_failed":             "Failed to update order",
		"error.order_status_invalid":            "Unknown order status",
		"error.order_status_transition_invalid": "Order status can only move forward",
		"error.loyalty_fetch_failed":            "Failed to load loyalty account",
		"error.loyalty_adjust_failed":           "Failed to adjust points",
		"error.points_invalid":                  "Points adjustment must not be zero",
		"error.points_insufficient":             "Not enough points",
		"error.inventory_fetch_failed":          "Failed to load inventory",
		"error.inventory_item_not_found":        "Inventory item not found",
		"error.inventory_save_failed":           "Failed to save inventory item",
		"error.inventory_delete_failed":         "Failed to delete inventory item",
		"error.sku_exists":                      "SKU already exists",
		"error.stock_insufficient":              "Not enough stock",
		"error.staff_fetch_failed":              "Failed to load staff",
		"error.staff_not_found":                 "Staff member not found",
		"error.staff_save_failed":               "Failed to save staff member",
		"error.staff_delete_failed":             "Failed to delete staff member",
		"error.campaign_fetch_failed":           "Failed to load campaigns",
		"error.campaign_not_found":              "Campaign not found",
		"error.campaign_save_failed":            "Failed to save campaign",
		"error.campaign_delete_failed":          "Failed to delete campaign",
		"error.campaign_code_exists":            "Campaign code already exists",
		"error.campaign_window_invalid":         "Campaign end must be after its start",
		"error.report_fetch_failed":             "Failed to load report",
		"error.report_range_invalid":            "Invalid report range",
	},
	LocaleZhCN: {
		"error.bad_request":                     "请求参数错误",
		"error.validation_failed":               "部分字段校验未通过",
		"error.not_found":                       "资源不存在",
		"error.conflict":                        "资源已存在",
		"error.save_failed":                     "保存失败",
		"error.unauthorized":                    "未授权",
		"error.forbidden":                       "无权执行该操作",
		"error.too_many_requests":               "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":          "限流服务不可用，请稍后重试",
		"error.auth_header_missing":             "缺少 Authorization 请求头",
		"error.auth_header_invalid":             "Authorization 格式应为 Bearer Token",
		"error.token_invalid":                   "Token 无效或已过期",
		"error.token_revoked":                   "登录已失效，请重新登录",
		"error.admin_id_invalid":                "管理员身份无效",
		"error.admin_id_type_invalid":           "管理员身份类型无效",
		"error.user_id_invalid":                 "用户身份无效",
		"error.user_id_type_invalid":            "用户身份类型无效",
		"error.admin_login_invalid":             "用户名或密码错误",
		"error.login_invalid":                   "邮箱或密码错误",
		"error.login_failed":                    "登录失败",
		"error.login_too_many":                  "登录尝试过多，请 %d 秒后重试",
		"error.register_failed":                 "注册失败",
		"error.email_exists":                    "该邮箱已注册",
		"error.user_disabled":                   "账号已被禁用",
		"error.user_not_found":                  "顾客不存在",
		"error.user_fetch_failed":               "获取顾客信息失败",
		"error.user_update_failed":              "更新顾客信息失败",
		"error.password_change_failed":          "修改密码失败",
		"error.password_old_invalid":            "原密码错误",
		"error.password_min_length":             "密码长度至少 %d 位",
		"error.password_require_upper":          "密码需包含大写字母",
		"error.password_require_lower":          "密码需包含小写字母",
		"error.password_require_number":         "密码需包含数字",
		"error.password_require_special":        "密码需包含特殊字符",
		"error.captcha_required":                "请完成验证码",
		"error.captcha_invalid":                 "验证码错误",
		"error.captcha_config_invalid":          "验证码配置错误",
		"error.captcha_generate_failed":         "生成验证码失败",
		"error.captcha_verify_failed":           "验证码校验失败",
		"error.authz_fetch_failed":              "获取权限失败",
		"error.category_fetch_failed":           "获取分类失败",
		"error.category_not_found":              "分类不存在",
		"error.category_save_failed":            "保存分类失败",
		"error.category_delete_failed":          "删除分类失败",
		"error.category_in_use":                 "分类下仍有菜品",
		"error.slug_exists":                     "Slug 已存在",
		"error.menu_fetch_failed":               "获取菜单失败",
		"error.menu_item_not_found":             "菜品不存在",
		"error.menu_item_unavailable":           "该菜品暂不可售",
		"error.menu_item_save_failed":           "保存菜品失败",
		"error.menu_item_delete_failed":         "删除菜品失败",
		"error.cart_fetch_failed":               "获取购物车失败",
		"error.cart_update_failed":              "更新购物车失败",
		"error.cart_empty":                      "购物车为空",
		"error.cart_item_not_found":             "购物车项不存在",
		"error.quantity_invalid":                "数量必须为正整数",
		"error.quantity_too_large":              "数量超过单品上限",
		"error.subtotal_invalid":                "小计金额必须为非负数",
		"error.payment_method_invalid":          "不支持的支付方式",
		"error.order_id_invalid":                "订单 ID 无效",
		"error.order_not_found":                 "订单不存在",
		"error.order_fetch_failed":              "获取订单失败",
		"error.order_create_failed":             "下单失败",
		"error.order_preview_failed":            "订单预览失败",
		"error.order_update_failed":             "更新订单失败",
		"error.order_status_invalid":            "未知的订单状态",
		"error.order_status_transition_invalid": "订单状态只能向后推进",
		"error.loyalty_fetch_failed":            "获取积分账户失败",
		"error.loyalty_adjust_failed":           "调整积分失败",
		"error.points_invalid":                  "调整积分不能为 0",
		"error.points_insufficient":             "积分不足",
		"error.inventory_fetch_failed":          "获取库存失败",
		"error.inventory_item_not_found":        "库存物料不存在",
		"error.inventory_save_failed":           "保存库存物料失败",
		"error.inventory_delete_failed":         "删除库存物料失败",
		"error.sku_exists":                      "SKU 已存在",
		"error.stock_insufficient":              "库存不足",
		"error.staff_fetch_failed":              "获取员工失败",
		"error.staff_not_found":                 "员工不存在",
		"error.staff_save_failed":               "保存员工失败",
		"error.staff_delete_failed":             "删除员工失败",
		"error.campaign_fetch_failed":           "获取活动失败",
		"error.campaign_not_found":              "活动不存在",
		"error.campaign_save_failed":            "保存活动失败",
		"error.campaign_delete_failed":          "删除活动失败",
		"error.campaign_code_exists":            "活动编码已存在",
		"error.campaign_window_invalid":         "活动结束时间必须晚于开始时间",
		"error.report_fetch_failed":             "获取报表失败",
		"error.report_range_invalid":            "报表时间范围无效",
	},
}
