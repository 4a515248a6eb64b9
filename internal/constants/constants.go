package constants

// 血液单位状态常量
const (
	BloodUnitStatusStored = "stored"
	BloodUnitStatusUsed   = "used"
)

// 用血申请状态常量
const (
	RequestStatusPending   = "pending"
	RequestStatusDelivered = "delivered"
)

// 申请紧急程度常量
const (
	UrgencyNormal   = "normal"
	UrgencyUrgent   = "urgent"
	UrgencyCritical = "critical"
)

// 登记流程状态常量
const (
	RegistrationStateCollectingInfo           = "collecting_info"
	RegistrationStateAwaitingScreening        = "awaiting_screening"
	RegistrationStateRejected                 = "rejected"
	RegistrationStateAwaitingDonationDecision = "awaiting_donation_decision"
	RegistrationStateDonationInProgress       = "donation_in_progress"
	RegistrationStateCompleted                = "completed"
)

// 业务时间窗口（天）
const (
	// DonorCooldownDays 两次献血之间的最短间隔
	DonorCooldownDays = 90
	// BloodUnitShelfLifeDays 血液单位保质期（入库日起算）
	BloodUnitShelfLifeDays = 90
	// ExpiryAlertWindowDays 到期预警窗口
	ExpiryAlertWindowDays = 7
)

// BloodGroups 支持的血型集合
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodGroup 判断血型是否合法
func IsValidBloodGroup(group string) bool {
	for _, g := range BloodGroups {
		if g == group {
			return true
		}
	}
	return false
}

// IsValidUrgency 判断紧急程度是否合法
func IsValidUrgency(urgency string) bool {
	switch urgency {
	case UrgencyNormal, UrgencyUrgent, UrgencyCritical:
		return true
	}
	return false
}

// 检测结果常量
const (
	TestResultClear = "Clear"
)

// DeliveryConditionDefault 默认交付条件说明
const DeliveryConditionDefault = "cold chain maintained"

// 异步任务名称常量
const (
	TaskRequestStatusNotify = "request:status_notify"
	TaskInventoryExpiryScan = "inventory:expiry_scan"
)

// QueueDefault 默认队列名称
const QueueDefault = "default"
