package logic

import (
	"testing"
	"time"

	"github.com/blues/fms/internal/database"
	"github.com/blues/fms/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 内存数据库，每个测试独立一份
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库多连接会各自拿到独立的数据库，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role model.UserRole, amount int64) *model.UserModel {
	t.Helper()
	// email 有唯一索引，用名字派生一个避免冲突
	user := &model.UserModel{Name: name, Email: name + "@test.local", Role: role, Amount: amount}
	require.NoError(t, NewAccountLogic(db).CreateUser(user))
	return user
}

func createProject(t *testing.T, db *gorm.DB, ownerId int64) *model.ProjectModel {
	t.Helper()
	project := &model.ProjectModel{Title: "测试项目", OwnerId: ownerId}
	require.NoError(t, NewProjectLogic(db).CreateProject(project))
	return project
}

// createMemberProject 建立成员合约，salaries 按顺序构成里程碑计划
func createMemberProject(t *testing.T, db *gorm.DB, projectId, userId int64, salaries ...int64) *model.MemberProjectModel {
	t.Helper()

	var total int64
	mp := &model.MemberProjectModel{
		UserId:         userId,
		ProjectId:      projectId,
		DateToComplete: time.Now().AddDate(0, 3, 0),
	}
	for i, s := range salaries {
		total += s
		mp.Milestones = append(mp.Milestones, model.MilestoneModel{
			SequenceNo: i + 1,
			Salary:     s,
			DayToDone:  time.Now().AddDate(0, i+1, 0),
		})
	}
	mp.Salary = total

	require.NoError(t, NewProjectLogic(db).CreateMemberProject(mp))
	return mp
}

func getUser(t *testing.T, db *gorm.DB, id int64) *model.UserModel {
	t.Helper()
	var user model.UserModel
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func getMemberProject(t *testing.T, db *gorm.DB, id int64) *model.MemberProjectModel {
	t.Helper()
	var mp model.MemberProjectModel
	require.NoError(t, db.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_no ASC")
	}).First(&mp, id).Error)
	return &mp
}

func getProject(t *testing.T, db *gorm.DB, id int64) *model.ProjectModel {
	t.Helper()
	var project model.ProjectModel
	require.NoError(t, db.First(&project, id).Error)
	return &project
}
