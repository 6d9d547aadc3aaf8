package components

// TimerComponent 通用重复计时器
// 用于处理周期性行为（如语音提示）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "voice"
	TargetTime  float64 // 周期（秒），<= 0 表示停用
	CurrentTime float64 // 当前周期内已过时间（秒）
	JustFired   bool    // 本次 tick 是否至少完成了一个周期
}
