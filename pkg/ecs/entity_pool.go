// Package ecs 提供实体池化存储
//
// 每一类可回收实体（敌人、子弹、命中特效、障碍物、升级方块、闸门对）都由一个
// Pool 独占持有：记录保存在连续数组中，空闲槽位用索引栈管理，
// "活跃" 与 "池中" 只是槽位索引的划分，不存在悬挂句柄。
package ecs

// EntityID 是池内实体的唯一标识符
// 取值为槽位索引 + 1，0 保留为无效ID
type EntityID int

// InvalidEntity 无效实体ID
const InvalidEntity EntityID = 0

type poolSlot[T any] struct {
	item   T
	active bool
}

// Pool 槽位表形式的实体池
//
// Acquire 优先复用已释放的槽位，否则追加新槽位（无硬上限，数量上限由持有者控制）。
// Release 重置记录并把槽位压回空闲栈。一个槽位不会同时处于活跃集和空闲栈中。
//
// 注意：Acquire 可能扩容底层数组，之前取得的 *T 指针在扩容后失效，
// 调用方应保存 EntityID 而不是指针。
type Pool[T any] struct {
	slots       []poolSlot[T]
	free        []int // 空闲槽位索引栈
	activeCount int

	construct func(id EntityID) T // 新建槽位时调用，可为 nil
	reset     func(item *T)       // 获取/释放时调用，可为 nil
}

// NewPool 创建新的实体池
//
// 参数:
//   - construct: 新建槽位时构造记录（如向实体工厂申请表现句柄），可为 nil
//   - reset: 将记录恢复为初始状态，在每次获取和释放时调用，可为 nil
func NewPool[T any](construct func(id EntityID) T, reset func(item *T)) *Pool[T] {
	return &Pool[T]{
		slots:     make([]poolSlot[T], 0, 16),
		free:      make([]int, 0, 16),
		construct: construct,
		reset:     reset,
	}
}

// Prewarm 预先创建槽位，直到总槽位数不少于 n
func (p *Pool[T]) Prewarm(n int) {
	for len(p.slots) < n {
		idx := p.grow()
		p.free = append(p.free, idx)
	}
}

func (p *Pool[T]) grow() int {
	idx := len(p.slots)
	var item T
	if p.construct != nil {
		item = p.construct(EntityID(idx + 1))
	}
	p.slots = append(p.slots, poolSlot[T]{item: item})
	return idx
}

// Acquire 取得一个活跃记录
// 返回实体ID和指向记录的指针，记录字段已被重置
func (p *Pool[T]) Acquire() (EntityID, *T) {
	var idx int
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = p.grow()
	}

	slot := &p.slots[idx]
	if p.reset != nil {
		p.reset(&slot.item)
	}
	slot.active = true
	p.activeCount++
	return EntityID(idx + 1), &slot.item
}

// Release 将活跃记录归还到池中
// 如果ID无效或记录已不在活跃集中，返回 false 且不产生任何副作用
func (p *Pool[T]) Release(id EntityID) bool {
	idx := int(id) - 1
	if idx < 0 || idx >= len(p.slots) || !p.slots[idx].active {
		return false
	}

	slot := &p.slots[idx]
	slot.active = false
	if p.reset != nil {
		p.reset(&slot.item)
	}
	p.free = append(p.free, idx)
	p.activeCount--
	return true
}

// ReleaseAll 释放所有活跃记录
func (p *Pool[T]) ReleaseAll() {
	for i := range p.slots {
		if p.slots[i].active {
			p.Release(EntityID(i + 1))
		}
	}
}

// Get 获取活跃记录
func (p *Pool[T]) Get(id EntityID) (*T, bool) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(p.slots) || !p.slots[idx].active {
		return nil, false
	}
	return &p.slots[idx].item, true
}

// IsActive 检查ID是否位于活跃集
func (p *Pool[T]) IsActive(id EntityID) bool {
	idx := int(id) - 1
	return idx >= 0 && idx < len(p.slots) && p.slots[idx].active
}

// Each 按槽位索引升序遍历活跃记录，fn 返回 false 时停止
// 遍历期间允许释放记录（包括当前记录）和获取新记录
func (p *Pool[T]) Each(fn func(id EntityID, item *T) bool) {
	for i := 0; i < len(p.slots); i++ {
		if !p.slots[i].active {
			continue
		}
		if !fn(EntityID(i+1), &p.slots[i].item) {
			return
		}
	}
}

// ActiveCount 返回活跃记录数
func (p *Pool[T]) ActiveCount() int {
	return p.activeCount
}

// FreeCount 返回空闲槽位数
func (p *Pool[T]) FreeCount() int {
	return len(p.free)
}

// Len 返回已创建的槽位总数（活跃 + 空闲）
func (p *Pool[T]) Len() int {
	return len(p.slots)
}
