package systems

import "github.com/decker502/infinistacker/pkg/types"

// Hittable 可被子弹伤害的目标
type Hittable interface {
	// HitCenter 命中检测使用的中心点
	HitCenter() types.Vec3
	// HitRadius 目标自身的命中半径
	HitRadius() float64
	// TryDamage 造成伤害；目标已死亡时返回 false（未消耗子弹）
	TryDamage(amount int, hitPoint types.Vec3) bool
}

// HittableSource 一组可被命中的目标（敌群、冰块、升级方块）
type HittableSource interface {
	// EachHittable 按确定的顺序遍历当前活跃目标，visit 返回 false 时停止
	EachHittable(visit func(h Hittable) bool)
}

// CollisionSystem 子弹命中判定
//
// 对一个采样点，按注册顺序查询各目标源，源内按池槽位升序；
// 平面距离不超过 探测半径 + 目标半径 且 TryDamage 返回 true 的第一个目标胜出。
// 每个采样点至多命中一个目标。
type CollisionSystem struct {
	radius  float64
	sources []HittableSource

	// 查询状态，避免每次查询分配闭包
	queryPoint  types.Vec3
	queryDamage int
	queryHit    bool
	visitFn     func(h Hittable) bool

	hits int
}

// NewCollisionSystem 创建命中判定系统
// radius 为子弹探测半径
func NewCollisionSystem(radius float64, sources ...HittableSource) *CollisionSystem {
	c := &CollisionSystem{
		radius:  max(0, radius),
		sources: sources,
	}
	c.visitFn = c.visit
	return c
}

// AddSource 追加一个目标源，优先级低于已注册的源
func (c *CollisionSystem) AddSource(source HittableSource) {
	if source != nil {
		c.sources = append(c.sources, source)
	}
}

// Resolve 对 point 附近的第一个合格目标造成 damage 点伤害
// 返回是否有目标消耗了这次命中
func (c *CollisionSystem) Resolve(point types.Vec3, damage int) bool {
	c.queryPoint = point
	c.queryDamage = damage
	c.queryHit = false

	for _, source := range c.sources {
		source.EachHittable(c.visitFn)
		if c.queryHit {
			c.hits++
			return true
		}
	}
	return false
}

func (c *CollisionSystem) visit(h Hittable) bool {
	if h.HitCenter().PlanarDistance(c.queryPoint) > c.radius+h.HitRadius() {
		return true
	}
	if h.TryDamage(c.queryDamage, c.queryPoint) {
		c.queryHit = true
		return false
	}
	return true
}

// Radius 子弹探测半径
func (c *CollisionSystem) Radius() float64 {
	return c.radius
}

// Hits 累计命中次数
func (c *CollisionSystem) Hits() int {
	return c.hits
}
