// Package notifdto - DTO đầu vào cho domain Notification.
package notifdto

// PreferenceCourseParams params từ URL khi thao tác preference của một khóa học
type PreferenceCourseParams struct {
	CourseID string `uri:"courseId" validate:"required" transform:"str_objectid"`
}

// PreferenceChannelUpdateInput dữ liệu đầu vào khi đổi giá trị một ô preference
// (app, loại notification, kênh). Ô non-editable theo schema bị từ chối.
type PreferenceChannelUpdateInput struct {
	App              string `json:"app" validate:"required"`
	NotificationType string `json:"notificationType" validate:"required"`
	Channel          string `json:"channel" validate:"required,oneof=web email push"`
	Value            bool   `json:"value"`
}

// PreferenceAppToggleInput dữ liệu đầu vào khi bật/tắt toàn bộ notification của một app
type PreferenceAppToggleInput struct {
	App     string `json:"app" validate:"required"`
	Enabled bool   `json:"enabled"`
}

// MarkSeenInput dữ liệu đầu vào khi đánh dấu đã thấy.
// AppName rỗng nghĩa là mọi app.
type MarkSeenInput struct {
	AppName string `json:"appName,omitempty" validate:"omitempty,oneof=discussions updates grading enrollments"`
}

// MarkReadInput dữ liệu đầu vào khi đánh dấu đã đọc.
// NotificationID khác rỗng thì chỉ notification đó được đánh dấu và appName bị bỏ qua.
type MarkReadInput struct {
	NotificationID string `json:"notificationId,omitempty" transform:"str_objectid_ptr,optional"`
	AppName        string `json:"appName,omitempty" validate:"omitempty,oneof=discussions updates grading enrollments"`
}
