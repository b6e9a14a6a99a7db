// Package i18n holds the user-facing message catalog. English is the
// fallback for every key.
package i18n

import "fmt"

var catalogs = map[string]map[string]string{
	"en": {
		"provider.added":      "provider %q added",
		"provider.updated":    "provider %q updated",
		"provider.removed":    "provider %q removed",
		"provider.not_found":  "provider %q not found",
		"provider.default":    "default provider set to %q",
		"provider.disabled":   "default provider %q disabled",
		"provider.enabled":    "default provider %q enabled",
		"service.added":       "service %q added",
		"service.removed":     "service %q removed",
		"service.not_found":   "service %q not found",
		"model.set":           "default model set to %q",
		"preset.applied":      "permission preset %q applied",
		"preset.unknown":      "unknown permission preset %q",
		"migrate.done":        "config migrated (%s)",
		"migrate.clean":       "config already up to date",
		"migrate.warn":        "migration skipped: %v",
		"backup.created":      "backup written to %s",
		"backup.restored":     "restored %s",
		"credential.saved":    "credential %s saved",
		"credential.removed":  "credential %s removed",
	},
	"zh": {
		"provider.added":      "已添加供应商 %q",
		"provider.updated":    "已更新供应商 %q",
		"provider.removed":    "已删除供应商 %q",
		"provider.not_found":  "未找到供应商 %q",
		"provider.default":    "默认供应商已设为 %q",
		"provider.disabled":   "默认供应商 %q 已停用",
		"provider.enabled":    "默认供应商 %q 已启用",
		"service.added":       "已添加服务 %q",
		"service.removed":     "已删除服务 %q",
		"service.not_found":   "未找到服务 %q",
		"model.set":           "默认模型已设为 %q",
		"preset.applied":      "已应用权限预设 %q",
		"preset.unknown":      "未知权限预设 %q",
		"migrate.done":        "配置已迁移 (%s)",
		"migrate.clean":       "配置已是最新",
		"migrate.warn":        "迁移已跳过: %v",
		"backup.created":      "备份已写入 %s",
		"backup.restored":     "已还原 %s",
		"credential.saved":    "凭据 %s 已保存",
		"credential.removed":  "凭据 %s 已删除",
	},
}

// T formats the message for key in lang, falling back to English and
// finally to the key itself.
func T(lang, key string, args ...any) string {
	if msgs, ok := catalogs[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return fmt.Sprintf(msg, args...)
		}
	}
	if msg, ok := catalogs["en"][key]; ok {
		return fmt.Sprintf(msg, args...)
	}
	return key
}

// Languages returns the supported language codes.
func Languages() []string {
	return []string{"en", "zh"}
}
