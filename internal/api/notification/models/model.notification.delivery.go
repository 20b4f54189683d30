package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của một delivery item trong hàng đợi gửi
const (
	DeliveryStatusPending    = "pending"
	DeliveryStatusProcessing = "processing"
	DeliveryStatusSent       = "sent"
	DeliveryStatusFailed     = "failed"
)

// NotificationDelivery là một mục trong hàng đợi gửi notification ra kênh ngoài
// (email qua SMTP, push qua FCM). Kênh web không qua hàng đợi — notification
// xuất hiện thẳng trong feed.
type NotificationDelivery struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của delivery item

	NotificationID primitive.ObjectID `json:"notificationId" bson:"notificationId" index:"single:1"` // Notification cần gửi
	UserID         primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`                 // Người nhận

	Channel   string `json:"channel" bson:"channel"`                        // email hoặc push
	Recipient string `json:"recipient" bson:"recipient"`                    // Địa chỉ email hoặc device token
	Subject   string `json:"subject,omitempty" bson:"subject,omitempty"`    // Tiêu đề (email) / title (push)
	Body      string `json:"body" bson:"body"`                              // Nội dung gửi

	Status     string `json:"status" bson:"status" index:"single:1" default:"pending"` // pending, processing, sent, failed
	RetryCount int    `json:"retryCount" bson:"retryCount"`                            // Số lần đã thử lại
	MaxRetries int    `json:"maxRetries" bson:"maxRetries" default:"3"`                // Số lần thử tối đa trước khi failed
	LastError  string `json:"lastError,omitempty" bson:"lastError,omitempty"`          // Lỗi của lần gửi gần nhất
	SentAt     *int64 `json:"sentAt,omitempty" bson:"sentAt,omitempty"`                // Thời điểm gửi thành công

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu dữ liệu (phân quyền)

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"` // Thời gian enqueue
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`                  // Thời gian cập nhật
}
