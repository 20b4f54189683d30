package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các kênh gửi notification
const (
	ChannelWeb   = "web"   // Feed trong ứng dụng
	ChannelEmail = "email" // Email qua SMTP
	ChannelPush  = "push"  // Push qua Firebase Cloud Messaging
)

// TypePreference là cấu hình kênh của một loại notification: kênh → bật/tắt.
type TypePreference map[string]bool

// AppPreference là cấu hình notification của một app trong một khóa học.
// Enabled = false tắt toàn bộ notification của app bất kể cấu hình từng loại.
type AppPreference struct {
	Enabled bool                      `json:"enabled" bson:"enabled"`
	Types   map[string]TypePreference `json:"types" bson:"types"`
}

// NotificationPreference là tài liệu preference của một người dùng trong một khóa học.
// Cấu trúc lồng: app → {enabled, type → kênh → bool}. Các ô non-editable do schema
// tĩnh quy định (xem notificationAppSchema) — không lưu trong document.
type NotificationPreference struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của preference document

	UserID   primitive.ObjectID `json:"userId" bson:"userId" index:"single:1,compound:preference_user_course_unique"`     // Người dùng
	CourseID primitive.ObjectID `json:"courseId" bson:"courseId" index:"single:1,compound:preference_user_course_unique"` // Khóa học

	Apps map[string]AppPreference `json:"apps" bson:"apps"` // app → cấu hình

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu dữ liệu (phân quyền)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
