package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/infinistacker/pkg/components"
	"github.com/decker502/infinistacker/pkg/config"
	"github.com/decker502/infinistacker/pkg/ecs"
	"github.com/decker502/infinistacker/pkg/entities"
	"github.com/decker502/infinistacker/pkg/game"
	"github.com/decker502/infinistacker/pkg/types"
)

const gateHeight = 1.05

// GateSystem 闸门对
//
// 周期性在远端生成一对闸门（一侧增益、一侧减员，左右随机），闸门匀速逼近。
// 闸门首次越过小队所在平面时，按小队相对车道中心的位置选择一侧并结算，
// 小队不在闸门车道内时只标记为已结算。
type GateSystem struct {
	pool       *ecs.Pool[components.GatePairComponent]
	tuning     config.GateTuning
	laneCenter float64
	squad      *game.Squad
	feedback   game.Feedback
	rng        *rand.Rand

	enabled bool
	timer   float64
	spawned int
	applied int
}

// NewGateSystem 创建闸门系统
// laneCenter 为闸门所在车道的中心 X
func NewGateSystem(factory entities.Factory, tuning config.GateTuning, laneCenter float64, squad *game.Squad, feedback game.Feedback, rng *rand.Rand) *GateSystem {
	factory = entities.OrProxy(factory)
	s := &GateSystem{
		tuning:     tuning,
		laneCenter: laneCenter,
		squad:      squad,
		feedback:   game.OrNullFeedback(feedback),
		rng:        rng,
	}
	s.pool = ecs.NewPool(
		func(ecs.EntityID) components.GatePairComponent {
			return components.GatePairComponent{
				LeftView:  factory.Create(types.KindGate),
				RightView: factory.Create(types.KindGate),
			}
		},
		func(g *components.GatePairComponent) {
			g.LeftView.SetActive(false)
			g.RightView.SetActive(false)
			*g = components.GatePairComponent{LeftView: g.LeftView, RightView: g.RightView}
		},
	)
	return s
}

// SetEnabled 启用或禁用；禁用时清零计时
func (s *GateSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.timer = 0
	}
}

// Enabled 是否启用
func (s *GateSystem) Enabled() bool {
	return s.enabled
}

// Reset 回收全部闸门并清零统计
func (s *GateSystem) Reset() {
	s.pool.ReleaseAll()
	s.timer = 0
	s.spawned = 0
	s.applied = 0
}

// Update 生成、推进并结算闸门
func (s *GateSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}

	if s.tuning.Interval > 0 {
		s.timer += deltaTime
		for s.timer >= s.tuning.Interval {
			s.timer -= s.tuning.Interval
			s.SpawnImmediatePair()
		}
	}

	squadPos := s.squad.Position()
	s.pool.Each(func(id ecs.EntityID, g *components.GatePairComponent) bool {
		g.Z -= s.tuning.Speed * deltaTime
		s.syncViews(g)

		if !g.Applied && g.Z <= squadPos.Z+s.tuning.CrossEpsilon {
			s.resolve(g, s.squad.Position().X)
			if !s.enabled {
				return false
			}
		}

		if g.Z <= s.tuning.DespawnZ {
			s.pool.Release(id)
		}
		return true
	})
}

// resolve 结算一对闸门，只调用一次
func (s *GateSystem) resolve(g *components.GatePairComponent, squadX float64) {
	g.Applied = true
	if math.Abs(squadX-s.laneCenter) > s.tuning.ActivationHalfWidth {
		return
	}

	op := g.Right
	g.Chosen = components.GateSideRight
	if squadX < s.laneCenter {
		op = g.Left
		g.Chosen = components.GateSideLeft
	}

	before := s.squad.Count()
	s.squad.ApplyGateOperation(op)
	s.applied++
	log.Printf("[GateSystem] 通过闸门 %s: %d -> %d", op, before, s.squad.Count())
	if !s.enabled {
		return
	}
	s.feedback.Shake(0.07, 0.07)
	s.feedback.LightImpact()
}

// SpawnImmediatePair 立即在远端生成一对闸门
func (s *GateSystem) SpawnImmediatePair() {
	positive, negative := s.RollOperations()
	_, g := s.pool.Acquire()
	g.Z = s.tuning.SpawnZ
	if s.rng.Float64() < 0.5 {
		g.Left, g.Right = positive, negative
	} else {
		g.Left, g.Right = negative, positive
	}
	s.syncViews(g)
	g.LeftView.SetActive(true)
	g.RightView.SetActive(true)
	s.spawned++
}

// RollOperations 随机生成一组增益运算和减员运算
func (s *GateSystem) RollOperations() (positive, negative components.GateOperation) {
	if s.rng.Float64() < s.tuning.AddChance {
		positive = components.GateOperation{Type: components.GateAdd, Value: s.rollRange(s.tuning.AddMin, s.tuning.AddMax)}
	} else {
		positive = components.GateOperation{Type: components.GateMultiply, Value: s.rollRange(s.tuning.MultiplyMin, s.tuning.MultiplyMax)}
	}
	negative = components.GateOperation{Type: components.GateSubtract, Value: s.rollRange(s.tuning.SubtractMin, s.tuning.SubtractMax)}
	return positive, negative
}

// rollRange 返回 [lo, hi] 内的随机整数
func (s *GateSystem) rollRange(lo, hi int) int {
	if hi <= lo {
		return max(0, lo)
	}
	return max(0, lo+s.rng.Intn(hi-lo+1))
}

func (s *GateSystem) syncViews(g *components.GatePairComponent) {
	g.LeftView.SetPosition(types.Vec3{X: s.laneCenter - s.tuning.ChoiceOffset, Y: gateHeight, Z: g.Z})
	g.RightView.SetPosition(types.Vec3{X: s.laneCenter + s.tuning.ChoiceOffset, Y: gateHeight, Z: g.Z})
}

// Each 遍历在场的闸门对（供渲染使用）
func (s *GateSystem) Each(fn func(g *components.GatePairComponent)) {
	s.pool.Each(func(_ ecs.EntityID, g *components.GatePairComponent) bool {
		fn(g)
		return true
	})
}

// LaneCenter 闸门车道中心 X
func (s *GateSystem) LaneCenter() float64 {
	return s.laneCenter
}

// ChoiceOffset 左右闸门相对车道中心的偏移
func (s *GateSystem) ChoiceOffset() float64 {
	return s.tuning.ChoiceOffset
}

// ActiveCount 在场的闸门对数
func (s *GateSystem) ActiveCount() int {
	return s.pool.ActiveCount()
}

// Spawned 本局生成的闸门对数
func (s *GateSystem) Spawned() int {
	return s.spawned
}

// Applied 本局实际结算的闸门数
func (s *GateSystem) Applied() int {
	return s.applied
}
