// Package models - Các model thuộc domain Notification: feed, preference, delivery.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các app phát notification. Mỗi notification thuộc về đúng một app.
const (
	AppDiscussions = "discussions" // Thảo luận trong khóa học
	AppUpdates     = "updates"     // Cập nhật nội dung khóa học
	AppGrading     = "grading"     // Chấm điểm
	AppEnrollments = "enrollments" // Ghi danh
)

// Notification là một mục trong feed thông báo của người dùng.
// LastRead/LastSeen nil nghĩa là chưa đọc/chưa thấy; mark read/seen là idempotent —
// đánh dấu lại một notification đã đọc không thay đổi gì.
type Notification struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của notification

	UserID   primitive.ObjectID `json:"userId" bson:"userId" index:"single:1,compound:notification_user_created"` // Người nhận
	CourseID primitive.ObjectID `json:"courseId" bson:"courseId" index:"single:1"`                                // Khóa học liên quan

	AppName          string `json:"appName" bson:"appName" index:"single:1"` // App phát notification: discussions, updates, grading, enrollments
	NotificationType string `json:"notificationType" bson:"notificationType"` // Loại notification trong app (vd: core, new_response)

	Content    string                 `json:"content" bson:"content"`                                   // Nội dung hiển thị
	ContentURL string                 `json:"contentUrl,omitempty" bson:"contentUrl,omitempty"`         // Link đích khi bấm vào notification
	Context    map[string]interface{} `json:"context,omitempty" bson:"context,omitempty"`               // Dữ liệu bổ sung để render

	// CourseName được flatten từ Context.courseName khi ghi (tag extract chạy trong
	// utility.ToMap), để feed hiển thị tên khóa học không cần join.
	CourseName string `json:"courseName,omitempty" bson:"courseName,omitempty" extract:"Context\\.courseName,optional"`

	LastRead *int64 `json:"lastRead,omitempty" bson:"lastRead,omitempty"` // Thời điểm đọc (nil = chưa đọc)
	LastSeen *int64 `json:"lastSeen,omitempty" bson:"lastSeen,omitempty"` // Thời điểm thấy trong feed (nil = chưa thấy)

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu dữ liệu (phân quyền)

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1,compound:notification_user_created"` // Thời gian tạo (trục retention + sort feed)
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`                                                      // Thời gian cập nhật
}
