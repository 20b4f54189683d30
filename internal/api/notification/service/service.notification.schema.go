// Package notifsvc - Service cho domain Notification: preference, feed, delivery.
package notifsvc

import (
	notifmodels "meta_learning/internal/api/notification/models"
)

// ChannelSchema là cấu hình tĩnh của một kênh trong một loại notification.
// NonEditable = true: người dùng không được đổi giá trị kênh này.
type ChannelSchema struct {
	Default     bool
	NonEditable bool
}

// TypeSchema là cấu hình tĩnh của một loại notification: kênh → schema.
type TypeSchema struct {
	Channels map[string]ChannelSchema
}

// AppSchema là cấu hình tĩnh của một app notification.
type AppSchema struct {
	EnabledByDefault bool
	Types            map[string]TypeSchema
}

// notificationAppSchema là schema tĩnh của toàn bộ app notification.
// Preference document chỉ lưu giá trị; tính editable và default luôn lấy từ đây.
var notificationAppSchema = map[string]AppSchema{
	notifmodels.AppDiscussions: {
		EnabledByDefault: true,
		Types: map[string]TypeSchema{
			"core": {Channels: map[string]ChannelSchema{
				notifmodels.ChannelWeb:   {Default: true, NonEditable: true},
				notifmodels.ChannelEmail: {Default: true},
				notifmodels.ChannelPush:  {Default: true},
			}},
			"new_response": {Channels: map[string]ChannelSchema{
				notifmodels.ChannelWeb:   {Default: true},
				notifmodels.ChannelEmail: {Default: true},
				notifmodels.ChannelPush:  {Default: false},
			}},
			"new_comment": {Channels: map[string]ChannelSchema{
				notifmodels.ChannelWeb:   {Default: true},
				notifmodels.ChannelEmail: {Default: false},
				notifmodels.ChannelPush:  {Default: false},
			}},
		},
	},
	notifmodels.AppUpdates: {
		EnabledByDefault: true,
		Types: map[string]TypeSchema{
			"course_updates": {Channels: map[string]ChannelSchema{
				notifmodels.ChannelWeb:   {Default: true},
				notifmodels.ChannelEmail: {Default: true},
				notifmodels.ChannelPush:  {Default: false},
			}},
		},
	},
	notifmodels.AppGrading: {
		EnabledByDefault: true,
		Types: map[string]TypeSchema{
			"grade_available": {Channels: map[string]ChannelSchema{
				notifmodels.ChannelWeb:   {Default: true, NonEditable: true},
				notifmodels.ChannelEmail: {Default: true},
				notifmodels.ChannelPush:  {Default: true},
			}},
		},
	},
	notifmodels.AppEnrollments: {
		EnabledByDefault: true,
		Types: map[string]TypeSchema{
			"enrolled": {Channels: map[string]ChannelSchema{
				notifmodels.ChannelWeb:   {Default: true, NonEditable: true},
				notifmodels.ChannelEmail: {Default: true},
				notifmodels.ChannelPush:  {Default: false},
			}},
		},
	},
}

// KnownApps trả về danh sách tên app có trong schema
func KnownApps() []string {
	apps := make([]string, 0, len(notificationAppSchema))
	for name := range notificationAppSchema {
		apps = append(apps, name)
	}
	return apps
}

// HasApp kiểm tra app có trong schema không
func HasApp(app string) bool {
	_, ok := notificationAppSchema[app]
	return ok
}

// IsChannelEditable kiểm tra một ô (app, type, channel) có cho phép người dùng sửa không.
// Ô không tồn tại trong schema cũng trả về false.
func IsChannelEditable(app, notificationType, channel string) bool {
	appSchema, ok := notificationAppSchema[app]
	if !ok {
		return false
	}
	typeSchema, ok := appSchema.Types[notificationType]
	if !ok {
		return false
	}
	channelSchema, ok := typeSchema.Channels[channel]
	if !ok {
		return false
	}
	return !channelSchema.NonEditable
}

// DefaultPreferenceApps dựng cấu hình preference mặc định từ schema
func DefaultPreferenceApps() map[string]notifmodels.AppPreference {
	apps := make(map[string]notifmodels.AppPreference, len(notificationAppSchema))
	for appName, appSchema := range notificationAppSchema {
		types := make(map[string]notifmodels.TypePreference, len(appSchema.Types))
		for typeName, typeSchema := range appSchema.Types {
			channels := make(notifmodels.TypePreference, len(typeSchema.Channels))
			for channelName, channelSchema := range typeSchema.Channels {
				channels[channelName] = channelSchema.Default
			}
			types[typeName] = channels
		}
		apps[appName] = notifmodels.AppPreference{
			Enabled: appSchema.EnabledByDefault,
			Types:   types,
		}
	}
	return apps
}

// OverlayPreferenceApps phủ giá trị đã lưu lên cấu hình mặc định.
// App/type/kênh thiếu trong document (vd: schema thêm mới sau khi document được tạo)
// nhận giá trị default; ô non-editable luôn lấy giá trị từ schema.
func OverlayPreferenceApps(stored map[string]notifmodels.AppPreference) map[string]notifmodels.AppPreference {
	result := DefaultPreferenceApps()
	for appName, storedApp := range stored {
		base, ok := result[appName]
		if !ok {
			// App không còn trong schema — bỏ qua giá trị đã lưu
			continue
		}
		base.Enabled = storedApp.Enabled
		for typeName, storedType := range storedApp.Types {
			baseType, ok := base.Types[typeName]
			if !ok {
				continue
			}
			for channelName, value := range storedType {
				if _, ok := baseType[channelName]; !ok {
					continue
				}
				if !IsChannelEditable(appName, typeName, channelName) {
					continue
				}
				baseType[channelName] = value
			}
		}
		result[appName] = base
	}
	return result
}

// ChannelEnabledFor kiểm tra một kênh có bật cho (app, type) theo cấu hình đã overlay.
// App tắt thì mọi kênh coi như tắt.
func ChannelEnabledFor(apps map[string]notifmodels.AppPreference, app, notificationType, channel string) bool {
	appPref, ok := apps[app]
	if !ok || !appPref.Enabled {
		return false
	}
	typePref, ok := appPref.Types[notificationType]
	if !ok {
		return false
	}
	return typePref[channel]
}
