package api

import (
	"errors"

	"github.com/bloodlink-next/internal/http/response"
	"github.com/bloodlink-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var registrationErrorRules = []mappedHandlerError{
	{target: service.ErrRegistrationTokenInvalid, code: response.CodeNotFound, key: "error.registration_token_invalid"},
	{target: service.ErrRegistrationStateInvalid, code: response.CodeConflict, key: "error.registration_state_invalid"},
	{target: service.ErrValidationFailed, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrBloodGroupInvalid, code: response.CodeBadRequest, key: "error.blood_group_invalid"},
	{target: service.ErrDonorEmailExists, code: response.CodeConflict, key: "error.donor_email_exists"},
}

var donationErrorRules = []mappedHandlerError{
	{target: service.ErrDonorNotFound, code: response.CodeNotFound, key: "error.donor_not_found"},
	{target: service.ErrDonationTypeNotFound, code: response.CodeNotFound, key: "error.donation_type_not_found"},
	{target: service.ErrCenterNotFound, code: response.CodeNotFound, key: "error.center_not_found"},
	{target: service.ErrStaffNotFound, code: response.CodeNotFound, key: "error.staff_not_found"},
	{target: service.ErrDonorIneligible, code: response.CodeConflict, key: "error.donor_ineligible"},
	{target: service.ErrDonationDateInvalid, code: response.CodeBadRequest, key: "error.donation_date_invalid"},
	{target: service.ErrDonationAmountInvalid, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.validation_failed"},
}

var requestErrorRules = []mappedHandlerError{
	{target: service.ErrValidationFailed, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrBloodGroupInvalid, code: response.CodeBadRequest, key: "error.blood_group_invalid"},
	{target: service.ErrHospitalNotFound, code: response.CodeNotFound, key: "error.hospital_not_found"},
	{target: service.ErrDoctorNotFound, code: response.CodeNotFound, key: "error.doctor_not_found"},
	{target: service.ErrPatientNotFound, code: response.CodeNotFound, key: "error.patient_not_found"},
	{target: service.ErrRequestNotFound, code: response.CodeNotFound, key: "error.request_not_found"},
}

var fulfillmentErrorRules = []mappedHandlerError{
	{target: service.ErrRequestNotFound, code: response.CodeNotFound, key: "error.request_not_found"},
	{target: service.ErrRequestAlreadyDelivered, code: response.CodeConflict, key: "error.request_already_delivered"},
	{target: service.ErrUnitNotFound, code: response.CodeNotFound, key: "error.unit_not_found"},
	{target: service.ErrUnitUnavailable, code: response.CodeConflict, key: "error.unit_unavailable"},
	{target: service.ErrUnitBloodGroupMismatch, code: response.CodeBadRequest, key: "error.unit_blood_group_mismatch"},
	{target: service.ErrUnitExpired, code: response.CodeBadRequest, key: "error.unit_expired"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.validation_failed"},
}

var directoryErrorRules = []mappedHandlerError{
	{target: service.ErrValidationFailed, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrBloodGroupInvalid, code: response.CodeBadRequest, key: "error.blood_group_invalid"},
	{target: service.ErrCenterNotFound, code: response.CodeNotFound, key: "error.center_not_found"},
	{target: service.ErrStaffNotFound, code: response.CodeNotFound, key: "error.staff_not_found"},
	{target: service.ErrHospitalNotFound, code: response.CodeNotFound, key: "error.hospital_not_found"},
	{target: service.ErrDoctorNotFound, code: response.CodeNotFound, key: "error.doctor_not_found"},
	{target: service.ErrPatientNotFound, code: response.CodeNotFound, key: "error.patient_not_found"},
}

func respondRegistrationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, registrationErrorRules, response.CodeInternal, "error.registration_submit_failed")
}

func respondDonationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, donationErrorRules, response.CodeInternal, "error.donation_record_failed")
}

func respondRequestError(c *gin.Context, err error) {
	respondWithMappedError(c, err, requestErrorRules, response.CodeInternal, "error.request_create_failed")
}

func respondFulfillmentError(c *gin.Context, err error) {
	respondWithMappedError(c, err, fulfillmentErrorRules, response.CodeInternal, "error.fulfillment_failed")
}

func respondDirectoryError(c *gin.Context, err error) {
	respondWithMappedError(c, err, directoryErrorRules, response.CodeInternal, "error.directory_create_failed")
}
