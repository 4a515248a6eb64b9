package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleEnUS 英文
	LocaleEnUS = "en-US"
	// LocaleZhCN 简体中文
	LocaleZhCN = "zh-CN"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleEnUS

// ResolveLocale 解析请求语言，优先级：query lang > Accept-Language > 默认
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		if normalized, ok := normalizeLocale(lang); ok {
			return normalized
		}
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if normalized, ok := normalizeLocale(tag); ok {
			return normalized
		}
	}
	return DefaultLocale
}

// T 返回指定语言的文案，缺失时回退默认语言，再缺失返回 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回带参数格式化的文案
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func normalizeLocale(tag string) (string, bool) {
	switch strings.ToLower(tag) {
	case "en", "en-us", "en_us":
		return LocaleEnUS, true
	case "zh", "zh-cn", "zh_cn", "zh-hans":
		return LocaleZhCN, true
	}
	return "", false
}

var catalog = map[string]map[string]string{
	LocaleEnUS: {
		"error.bad_request":                  "invalid request",
		"error.not_found":                    "resource not found",
		"error.internal":                     "internal server error",
		"error.too_many_requests":            "too many requests, please retry later",
		"error.validation_failed":            "required fields are missing or invalid",
		"error.blood_group_invalid":          "invalid blood group",
		"error.registration_token_invalid":   "registration session not found or expired",
		"error.registration_state_invalid":   "operation not allowed in current registration state",
		"error.screening_failed":             "medical screening did not pass",
		"error.donor_not_found":              "donor not found",
		"error.donor_email_exists":           "a donor with this email already exists",
		"error.donor_ineligible":             "donor is within the donation cooldown period",
		"error.donation_date_invalid":        "donation date cannot be in the future",
		"error.donation_record_failed":       "failed to record donation",
		"error.request_not_found":            "blood request not found",
		"error.request_already_delivered":    "blood request has already been delivered",
		"error.request_create_failed":        "failed to create blood request",
		"error.unit_not_found":               "blood unit not found",
		"error.unit_unavailable":             "blood unit is no longer available",
		"error.unit_blood_group_mismatch":    "blood unit group does not match the request",
		"error.unit_expired":                 "blood unit has expired",
		"error.fulfillment_failed":           "failed to fulfill blood request",
		"error.inventory_fetch_failed":       "failed to load inventory",
		"error.analytics_fetch_failed":       "failed to load analytics",
		"error.center_not_found":             "blood center not found",
		"error.staff_not_found":              "staff member not found",
		"error.hospital_not_found":           "hospital not found",
		"error.doctor_not_found":             "doctor not found",
		"error.patient_not_found":            "patient not found",
		"error.donation_type_not_found":      "donation type not found",
		"error.directory_create_failed":      "failed to create record",
		"error.directory_fetch_failed":       "failed to load records",
		"error.directory_update_failed":      "failed to update record",
		"error.directory_delete_failed":      "failed to delete record",
		"error.registration_start_failed":    "failed to start registration",
		"error.registration_submit_failed":   "failed to submit registration",
		"error.queue_unavailable":            "task queue is unavailable",
	},
	LocaleZhCN: {
		"error.bad_request":                  "请求参数无效",
		"error.not_found":                    "资源不存在",
		"error.internal":                     "服务器内部错误",
		"error.too_many_requests":            "请求过于频繁，请稍后重试",
		"error.validation_failed":            "必填字段缺失或无效",
		"error.blood_group_invalid":          "血型无效",
		"error.registration_token_invalid":   "登记会话不存在或已过期",
		"error.registration_state_invalid":   "当前登记状态不允许该操作",
		"error.screening_failed":             "体检筛查未通过",
		"error.donor_not_found":              "献血者不存在",
		"error.donor_email_exists":           "该邮箱已注册献血者",
		"error.donor_ineligible":             "献血者处于献血冷却期内",
		"error.donation_date_invalid":        "献血日期不能晚于今天",
		"error.donation_record_failed":       "献血记录创建失败",
		"error.request_not_found":            "用血申请不存在",
		"error.request_already_delivered":    "用血申请已完成交付",
		"error.request_create_failed":        "用血申请创建失败",
		"error.unit_not_found":               "血液单位不存在",
		"error.unit_unavailable":             "血液单位已不可用",
		"error.unit_blood_group_mismatch":    "血液单位血型与申请不匹配",
		"error.unit_expired":                 "血液单位已过期",
		"error.fulfillment_failed":           "用血申请交付失败",
		"error.inventory_fetch_failed":       "库存查询失败",
		"error.analytics_fetch_failed":       "统计查询失败",
		"error.center_not_found":             "血站不存在",
		"error.staff_not_found":              "工作人员不存在",
		"error.hospital_not_found":           "医院不存在",
		"error.doctor_not_found":             "医生不存在",
		"error.patient_not_found":            "患者不存在",
		"error.donation_type_not_found":      "献血类型不存在",
		"error.directory_create_failed":      "记录创建失败",
		"error.directory_fetch_failed":       "记录查询失败",
		"error.directory_update_failed":      "记录更新失败",
		"error.directory_delete_failed":      "记录删除失败",
		"error.registration_start_failed":    "登记启动失败",
		"error.registration_submit_failed":   "登记提交失败",
		"error.queue_unavailable":            "任务队列不可用",
	},
}
