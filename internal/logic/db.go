package logic

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate 对查询加行级写锁
// sqlite 不支持 SELECT ... FOR UPDATE，测试环境下依赖其库级写串行化
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// userLockOrder 返回按 id 升序的加锁顺序，避免交叉加锁死锁
func userLockOrder(a, b int64) []int64 {
	if a <= b {
		return []int64{a, b}
	}
	return []int64{b, a}
}
