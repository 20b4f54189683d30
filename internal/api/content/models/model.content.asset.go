package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaticAsset đại diện cho một static file thuộc khóa học (ảnh, tài liệu, ...).
// Name là duy nhất trong phạm vi một khóa học; ContentHash (SHA-256 hex) dùng để
// phát hiện xung đột khi copy asset giữa các khóa học.
type StaticAsset struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của asset

	CourseID    primitive.ObjectID `json:"courseId" bson:"courseId" index:"single:1,compound:asset_course_name_unique"` // Khóa học chứa asset
	Name        string             `json:"name" bson:"name" index:"compound:asset_course_name_unique"`                  // Tên file (duy nhất trong course)
	ContentHash string             `json:"contentHash" bson:"contentHash" index:"single:1"`                             // SHA-256 hex của nội dung file
	ContentType string             `json:"contentType,omitempty" bson:"contentType,omitempty"`                          // MIME type
	Size        int64              `json:"size" bson:"size"`                                                            // Kích thước file (bytes)
	Data        []byte             `json:"-" bson:"data,omitempty"`                                                     // Nội dung file

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu dữ liệu (phân quyền)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
