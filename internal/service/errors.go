package service

import "errors"

// 业务错误定义，handler 层通过 errors.Is 映射为接口错误码。
var (
	// 通用
	ErrInvalidInput = errors.New("invalid input")

	// 登记流程
	ErrRegistrationTokenInvalid = errors.New("registration session not found or expired")
	ErrRegistrationStateInvalid = errors.New("operation not allowed in current registration state")
	ErrRegistrationStoreFailed  = errors.New("failed to persist registration state")
	ErrValidationFailed         = errors.New("required fields are missing or invalid")
	ErrBloodGroupInvalid        = errors.New("invalid blood group")
	ErrDonorEmailExists         = errors.New("donor email already registered")

	// 献血者
	ErrDonorNotFound    = errors.New("donor not found")
	ErrDonorFetchFailed = errors.New("failed to fetch donor")
	ErrDonorIneligible  = errors.New("donor is within donation cooldown period")

	// 献血记录
	ErrDonationDateInvalid   = errors.New("donation date cannot be in the future")
	ErrDonationAmountInvalid = errors.New("donation amount invalid")
	ErrDonationRecordFailed  = errors.New("failed to record donation")
	ErrDonationTypeNotFound  = errors.New("donation type not found")

	// 用血申请与交付
	ErrRequestNotFound         = errors.New("blood request not found")
	ErrRequestFetchFailed      = errors.New("failed to fetch blood request")
	ErrRequestCreateFailed     = errors.New("failed to create blood request")
	ErrRequestAlreadyDelivered = errors.New("blood request already delivered")
	ErrUnitNotFound            = errors.New("blood unit not found")
	ErrUnitUnavailable         = errors.New("blood unit no longer available")
	ErrUnitBloodGroupMismatch  = errors.New("blood unit group does not match request")
	ErrUnitExpired             = errors.New("blood unit has expired")
	ErrFulfillmentFailed       = errors.New("failed to fulfill blood request")

	// 基础档案
	ErrCenterNotFound    = errors.New("blood center not found")
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrHospitalNotFound  = errors.New("hospital not found")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrDirectoryFailed   = errors.New("directory operation failed")

	// 队列
	ErrQueueUnavailable = errors.New("task queue unavailable")
)
