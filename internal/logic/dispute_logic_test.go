package logic

import (
	"testing"

	"github.com/blues/fms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDisputeFreezesActivePhase(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)
	mp := createMemberProject(t, db, project.Id, freelancer.Id, 100, 200)

	// 成员已开工，冻结应记住 processing
	require.NoError(t, NewProjectLogic(db).UpdatePhaseStatus(project.Id, freelancer.Id, model.MilestoneStatusProcessing))

	dispute, err := NewDisputeLogic(db).OpenDispute(project.Id, freelancer.Id, owner.Id, "交付物不完整")
	require.NoError(t, err)
	assert.NotEmpty(t, dispute.RefNo)
	assert.Equal(t, model.DisputeStatusOpen, dispute.Status)
	assert.Equal(t, model.MilestoneStatusProcessing, dispute.FrozenStatus)
	require.NotNil(t, dispute.MilestoneId)

	got := getMemberProject(t, db, mp.Id)
	first := got.Milestones[0]
	assert.Equal(t, model.MilestoneStatusDisputed, first.Status)
	require.NotNil(t, first.DisputeId)
	assert.Equal(t, dispute.Id, *first.DisputeId)
}

func TestOpenDisputeAuthorization(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	other := createUser(t, db, "路人", model.UserRoleFreelancer, 0)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)
	createMemberProject(t, db, project.Id, freelancer.Id, 100)

	// 发起人必须是项目方或该成员本人
	_, err := NewDisputeLogic(db).OpenDispute(project.Id, freelancer.Id, other.Id, "无关人员")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = NewDisputeLogic(db).OpenDispute(project.Id, freelancer.Id, freelancer.Id, "报酬未支付")
	assert.NoError(t, err)
}

func TestOpenDisputeWithoutMemberProject(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)

	// 没有成员合约时只创建纠纷记录，不冻结任何里程碑
	dispute, err := NewDisputeLogic(db).OpenDispute(project.Id, freelancer.Id, owner.Id, "未签约纠纷")
	require.NoError(t, err)
	assert.Nil(t, dispute.MilestoneId)
}

func TestResolveDisputeRestoresPhase(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)
	mp := createMemberProject(t, db, project.Id, freelancer.Id, 100, 200)

	disputeLogic := NewDisputeLogic(db)
	require.NoError(t, NewProjectLogic(db).UpdatePhaseStatus(project.Id, freelancer.Id, model.MilestoneStatusPaying))

	dispute, err := disputeLogic.OpenDispute(project.Id, freelancer.Id, owner.Id, "验收有争议")
	require.NoError(t, err)

	require.NoError(t, disputeLogic.ResolveDispute(dispute.Id))

	// 恢复到冻结前的 paying，dispute_id 清空
	got := getMemberProject(t, db, mp.Id)
	first := got.Milestones[0]
	assert.Equal(t, model.MilestoneStatusPaying, first.Status)
	assert.Nil(t, first.DisputeId)

	var resolved model.DisputeModel
	require.NoError(t, db.First(&resolved, dispute.Id).Error)
	assert.Equal(t, model.DisputeStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	// 重复解决被拒绝
	assert.Error(t, disputeLogic.ResolveDispute(dispute.Id))
}

func TestSettlementResumesAfterResolve(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)
	mp := createMemberProject(t, db, project.Id, freelancer.Id, 100, 200)

	require.NoError(t, NewEscrowLogic(db).Escrow(mp.Id, owner.Id, 100))

	disputeLogic := NewDisputeLogic(db)
	payment := NewPaymentLogic(db)

	dispute, err := disputeLogic.OpenDispute(project.Id, freelancer.Id, owner.Id, "交付延期")
	require.NoError(t, err)

	assert.ErrorIs(t, payment.PayForMember(project.Id, freelancer.Id, owner.Id), ErrMilestoneDisputed)

	require.NoError(t, disputeLogic.ResolveDispute(dispute.Id))
	require.NoError(t, payment.PayForMember(project.Id, freelancer.Id, owner.Id))

	assert.Equal(t, int64(100), getUser(t, db, freelancer.Id).Amount)
}

func TestGetProjectDisputes(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "项目方", model.UserRoleOwner, 1000)
	freelancer := createUser(t, db, "成员", model.UserRoleFreelancer, 0)
	project := createProject(t, db, owner.Id)
	createMemberProject(t, db, project.Id, freelancer.Id, 100)

	disputeLogic := NewDisputeLogic(db)
	dispute, err := disputeLogic.OpenDispute(project.Id, freelancer.Id, owner.Id, "第一起")
	require.NoError(t, err)
	require.NoError(t, disputeLogic.ResolveDispute(dispute.Id))

	disputes, err := disputeLogic.GetProjectDisputes(project.Id)
	require.NoError(t, err)
	assert.Len(t, disputes, 1)
}
