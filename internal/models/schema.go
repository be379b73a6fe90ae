package models

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// ResetSchema 启动时准备表结构
// resetProficiencies 为 true 时先无条件删除能力表，历史能力数据随之丢失，
// 其余四张表只在不存在时创建，已有数据保留。
// 外键列只是普通整数列，不建立数据库级约束。
func ResetSchema(db *gorm.DB, resetProficiencies bool) error {
	if db == nil {
		return fmt.Errorf("数据库未初始化")
	}

	if resetProficiencies {
		if err := db.Migrator().DropTable(&Proficiency{}); err != nil {
			return fmt.Errorf("删除能力表失败: %w", err)
		}
		slog.Info("能力表已重置")
	}

	err := db.AutoMigrate(
		&Goal{},
		&Proficiency{},
		&SLO{},
		&AssessmentArea{},
		&Course{},
	)
	if err != nil {
		return fmt.Errorf("数据库表迁移失败: %w", err)
	}

	slog.Info("数据库表迁移完成")
	return nil
}
