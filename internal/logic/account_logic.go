package logic

import (
	"errors"
	"fmt"

	"github.com/blues/fms/internal/model"
	"gorm.io/gorm"
)

// AccountLogic 账户业务逻辑
// 余额只在这里变动，每次变动同步追加流水
type AccountLogic struct {
	db *gorm.DB
}

// NewAccountLogic 创建账户业务逻辑
func NewAccountLogic(db *gorm.DB) *AccountLogic {
	return &AccountLogic{db: db}
}

// CreateUser 创建用户
func (a *AccountLogic) CreateUser(user *model.UserModel) error {
	if user.Name == "" {
		return errors.New("用户名不能为空")
	}
	if user.Amount < 0 {
		return errors.New("余额不能为负数")
	}
	if user.Role == "" {
		user.Role = model.UserRoleFreelancer
	}

	if err := a.db.Create(user).Error; err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}
	return nil
}

// GetUser 获取用户
func (a *AccountLogic) GetUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := a.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// GetUserHistory 获取用户资金流水，按时间倒序分页
func (a *AccountLogic) GetUserHistory(userId int64, page, pageSize int) ([]model.HistoryAmountModel, int64, error) {
	var total int64
	if err := a.db.Model(&model.HistoryAmountModel{}).
		Where("user_id = ?", userId).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计流水总数失败: %w", err)
	}

	var history []model.HistoryAmountModel
	offset := (page - 1) * pageSize
	if err := a.db.Where("user_id = ?", userId).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&history).Error; err != nil {
		return nil, 0, fmt.Errorf("查询流水失败: %w", err)
	}

	return history, total, nil
}

// transfer 在事务内把金额从项目方转给成员，并写入两条流水
// 调用方必须传入结算事务的 tx，保证与其余步骤同生共死
func (a *AccountLogic) transfer(tx *gorm.DB, fromId, toId, projectId, amount int64) error {
	// 按 id 升序加锁，避免两笔方向相反的结算互相等待
	for _, id := range userLockOrder(fromId, toId) {
		var u model.UserModel
		if err := lockForUpdate(tx).First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("锁定用户失败: %w", err)
		}
	}

	if err := tx.Model(&model.UserModel{}).Where("id = ?", fromId).
		Update("amount", gorm.Expr("amount - ?", amount)).Error; err != nil {
		return fmt.Errorf("扣减项目方余额失败: %w", err)
	}
	if err := tx.Model(&model.UserModel{}).Where("id = ?", toId).
		Update("amount", gorm.Expr("amount + ?", amount)).Error; err != nil {
		return fmt.Errorf("增加成员余额失败: %w", err)
	}

	entries := []model.HistoryAmountModel{
		{UserId: toId, ProjectId: projectId, Amount: amount, Direction: model.DirectionFromProject},
		{UserId: fromId, ProjectId: projectId, Amount: amount, Direction: model.DirectionToProject},
	}
	if err := tx.Create(&entries).Error; err != nil {
		return fmt.Errorf("写入流水失败: %w", err)
	}

	return nil
}
