package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列名称与任务类型常量
const (
	QueueDefault  = "default"
	TaskCartPrune = "cart:prune"
)

// 购物车默认配置常量
const (
	// CartPruneAfterHoursDefault 购物车行默认保留时长（小时）
	CartPruneAfterHoursDefault = 24 * 30
	// CartPruneIntervalMinutesDefault 清理任务默认触发间隔（分钟）
	CartPruneIntervalMinutesDefault = 60
)

// 分页默认值常量
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
