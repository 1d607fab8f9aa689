package components

// CollisionComponent 定义实体的命中半径
// 命中检测在 X/Z 平面进行：子弹采样点到实体中心的距离不超过
// 子弹探测半径 + Radius 时视为命中
type CollisionComponent struct {
	Radius float64 // 实体自身的命中半径（世界单位）
}
