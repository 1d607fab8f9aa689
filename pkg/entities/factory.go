// Package entities 定义模拟核心与表现层之间的实体工厂边界
//
// 模拟核心只需要实体的位置读写和激活开关，模型/材质等外观构建完全由外部完成。
// 每个池化槽位在首次创建时向工厂申请一个句柄，并在整个生命周期内复用它。
package entities

import "github.com/decker502/infinistacker/pkg/types"

// Handle 可定位、可开关的表现句柄
type Handle interface {
	Position() types.Vec3
	SetPosition(pos types.Vec3)
	SetActive(active bool)
	IsActive() bool
}

// Factory 按实体类别生成表现句柄
type Factory interface {
	Create(kind types.EntityKind) Handle
}

// Proxy 无渲染的句柄实现，只记录状态
// 用于无头运行、测试以及直接读取池状态渲染的宿主
type Proxy struct {
	kind   types.EntityKind
	pos    types.Vec3
	active bool
}

// Kind 返回句柄所属类别
func (p *Proxy) Kind() types.EntityKind { return p.kind }

// Position 返回当前位置
func (p *Proxy) Position() types.Vec3 { return p.pos }

// SetPosition 设置位置
func (p *Proxy) SetPosition(pos types.Vec3) { p.pos = pos }

// SetActive 设置激活状态
func (p *Proxy) SetActive(active bool) { p.active = active }

// IsActive 返回激活状态
func (p *Proxy) IsActive() bool { return p.active }

// ProxyFactory 生成 Proxy 句柄，并统计每个类别创建的句柄数量
type ProxyFactory struct {
	created map[types.EntityKind]int
}

// NewProxyFactory 创建代理工厂
func NewProxyFactory() *ProxyFactory {
	return &ProxyFactory{
		created: make(map[types.EntityKind]int),
	}
}

// Create 创建一个未激活的代理句柄
func (f *ProxyFactory) Create(kind types.EntityKind) Handle {
	f.created[kind]++
	return &Proxy{kind: kind}
}

// CreatedCount 返回某类别已创建的句柄数量
// 池化正常时该数量等于该类别的峰值并发数，而不是累计生成次数
func (f *ProxyFactory) CreatedCount(kind types.EntityKind) int {
	return f.created[kind]
}

// OrProxy 在 factory 为 nil 时返回代理工厂
func OrProxy(factory Factory) Factory {
	if factory == nil {
		return NewProxyFactory()
	}
	return factory
}
