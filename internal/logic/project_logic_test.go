package logic

import (
	"testing"
	"time"

	"github.com/blues/fms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMemberProjectValidatesPlan(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)
	projectLogic := NewProjectLogic(db)

	base := func() *model.MemberProjectModel {
		return &model.MemberProjectModel{
			UserId:         freelancer.Id,
			ProjectId:      project.Id,
			Salary:         300,
			DateToComplete: time.Now().AddDate(0, 3, 0),
			Milestones: []model.MilestoneModel{
				{SequenceNo: 1, Salary: 100},
				{SequenceNo: 2, Salary: 200},
			},
		}
	}

	// 金额之和不等于合约金额
	mp := base()
	mp.Milestones[1].Salary = 150
	assert.Error(t, projectLogic.CreateMemberProject(mp))

	// 序号不连续
	mp = base()
	mp.Milestones[1].SequenceNo = 3
	assert.Error(t, projectLogic.CreateMemberProject(mp))

	// 空计划
	mp = base()
	mp.Milestones = nil
	assert.Error(t, projectLogic.CreateMemberProject(mp))

	// 非正金额
	mp = base()
	mp.Milestones[0].Salary = 0
	assert.Error(t, projectLogic.CreateMemberProject(mp))

	// 合法计划通过，里程碑初始状态正确
	mp = base()
	require.NoError(t, projectLogic.CreateMemberProject(mp))
	got := getMemberProject(t, db, mp.Id)
	require.Len(t, got.Milestones, 2)
	for _, ms := range got.Milestones {
		assert.Equal(t, model.MilestoneStatusNotReady, ms.Status)
		assert.Equal(t, ms.Salary, ms.SalaryUnpaid)
		assert.Nil(t, ms.DayToPayment)
	}

	// 同一成员不能重复加入
	assert.Error(t, projectLogic.CreateMemberProject(base()))
}

func TestCreateMemberProjectUpdatesProjectStatus(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)

	assert.Equal(t, model.ProjectStatusPending, getProject(t, db, project.Id).Status)

	createMemberProject(t, db, project.Id, freelancer.Id, 100, 200)

	// 成员尚未开工
	assert.Equal(t, model.ProjectStatusMemberReady, getProject(t, db, project.Id).Status)
}

func TestUpdatePhaseStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)
	mp := createMemberProject(t, db, project.Id, freelancer.Id, 100, 200)

	projectLogic := NewProjectLogic(db)

	// 不允许直接推进到 complete 或回退
	assert.Error(t, projectLogic.UpdatePhaseStatus(project.Id, freelancer.Id, model.MilestoneStatusComplete))
	assert.Error(t, projectLogic.UpdatePhaseStatus(project.Id, freelancer.Id, model.MilestoneStatusNotReady))

	require.NoError(t, projectLogic.UpdatePhaseStatus(project.Id, freelancer.Id, model.MilestoneStatusProcessing))
	got := getMemberProject(t, db, mp.Id)
	assert.Equal(t, model.MilestoneStatusProcessing, got.Milestones[0].Status)

	require.NoError(t, projectLogic.UpdatePhaseStatus(project.Id, freelancer.Id, model.MilestoneStatusPaying))
	got = getMemberProject(t, db, mp.Id)
	assert.Equal(t, model.MilestoneStatusPaying, got.Milestones[0].Status)

	// paying 不能回到 processing
	assert.Error(t, projectLogic.UpdatePhaseStatus(project.Id, freelancer.Id, model.MilestoneStatusProcessing))
}

func TestGetOverviewProgress(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 2000)
	f1 := createUser(t, db, "成员1", model.UserRoleFreelancer, 0)
	f2 := createUser(t, db, "成员2", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)
	mp1 := createMemberProject(t, db, project.Id, f1.Id, 100, 200)
	mp2 := createMemberProject(t, db, project.Id, f2.Id, 500)

	escrow := NewEscrowLogic(db)
	require.NoError(t, escrow.Escrow(mp1.Id, owner.Id, 100))
	require.NoError(t, escrow.Escrow(mp2.Id, owner.Id, 400))
	require.NoError(t, NewPaymentLogic(db).PayForMember(project.Id, f1.Id, owner.Id))

	overview, err := NewProjectLogic(db).GetOverviewProgress(project.Id)
	require.NoError(t, err)

	assert.Equal(t, int64(800), overview.TotalSalary)
	assert.Equal(t, int64(400), overview.TotalEscrowed)
	assert.Equal(t, int64(100), overview.TotalPaid)
	assert.Equal(t, int64(700), overview.TotalUnpaid)
	require.Len(t, overview.Members, 2)

	for _, member := range overview.Members {
		switch member.UserId {
		case f1.Id:
			assert.Equal(t, int64(100), member.Paid)
			assert.Equal(t, int64(200), member.Unpaid)
			require.NotNil(t, member.CurrentPhase)
			assert.Equal(t, 2, member.CurrentPhase.SequenceNo)
		case f2.Id:
			assert.Equal(t, int64(0), member.Paid)
			assert.Equal(t, int64(500), member.Unpaid)
			require.NotNil(t, member.CurrentPhase)
			assert.Equal(t, 1, member.CurrentPhase.SequenceNo)
		}
	}
}

func TestRederiveStatusRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)
	createMemberProject(t, db, project.Id, freelancer.Id, 100)

	// 人为制造状态漂移
	require.NoError(t, db.Model(&model.ProjectModel{}).
		Where("id = ?", project.Id).
		Update("status", model.ProjectStatusProcessing).Error)

	status, err := NewProjectLogic(db).RederiveStatus(project.Id)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusMemberReady, status)
	assert.Equal(t, model.ProjectStatusMemberReady, getProject(t, db, project.Id).Status)
}
