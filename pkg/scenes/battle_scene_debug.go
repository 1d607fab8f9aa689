package scenes

import "log"

// 快速测试钩子，只在 Playing 状态下生效，宿主绑定到数字键 1-6

const (
	debugSoldiers   = 10
	debugWaveSize   = 12
	debugBaseDamage = 100
)

// DebugAddSoldiers 小队 +10
func (s *BattleScene) DebugAddSoldiers() bool {
	if !s.IsPlaying() {
		return false
	}
	s.squad.AddSoldiers(debugSoldiers)
	log.Printf("[BattleScene] 调试: 小队 +%d -> %d", debugSoldiers, s.squad.Count())
	return true
}

// DebugSpawnWave 立即生成一波 12 个敌人
func (s *BattleScene) DebugSpawnWave() bool {
	if !s.IsPlaying() {
		return false
	}
	n := s.spawner.SpawnImmediateWave(debugWaveSize)
	log.Printf("[BattleScene] 调试: 生成敌人 %d/%d", n, debugWaveSize)
	return true
}

// DebugSpawnGatePair 立即生成一对闸门
func (s *BattleScene) DebugSpawnGatePair() bool {
	if !s.IsPlaying() {
		return false
	}
	s.gates.SpawnImmediatePair()
	return true
}

// DebugDamageBase 基地扣 100
func (s *BattleScene) DebugDamageBase() bool {
	if !s.IsPlaying() {
		return false
	}
	s.base.ApplyDamage(debugBaseDamage)
	return true
}

// DebugSpawnObstacle 立即生成一个冰块
func (s *BattleScene) DebugSpawnObstacle() bool {
	if !s.IsPlaying() {
		return false
	}
	s.obstacles.SpawnImmediate()
	return true
}

// DebugSpawnUpgradeBlock 立即生成一个升级方块
func (s *BattleScene) DebugSpawnUpgradeBlock() bool {
	if !s.IsPlaying() {
		return false
	}
	s.blocks.SpawnImmediate()
	return true
}

// DebugHook 按编号（1-6）触发调试钩子
func (s *BattleScene) DebugHook(n int) bool {
	switch n {
	case 1:
		return s.DebugAddSoldiers()
	case 2:
		return s.DebugSpawnWave()
	case 3:
		return s.DebugSpawnGatePair()
	case 4:
		return s.DebugDamageBase()
	case 5:
		return s.DebugSpawnObstacle()
	case 6:
		return s.DebugSpawnUpgradeBlock()
	default:
		return false
	}
}
