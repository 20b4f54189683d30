// Package models - Các model thuộc domain Content: khóa học, block nội dung, static asset, thư viện.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseStatus định nghĩa các trạng thái của khóa học
const (
	CourseStatusActive   = "active"   // Đang hoạt động
	CourseStatusArchived = "archived" // Đã lưu trữ
	CourseStatusDeleted  = "deleted"  // Đã xóa (soft delete)
)

// Course đại diện cho một khóa học trên nền tảng
type Course struct {
	_Relationships struct{}           `relationship:"collection:course_blocks,field:courseId,message:Không thể xóa khóa học vì có %d block nội dung. Vui lòng xóa nội dung trước.|collection:enrollments,field:courseId,message:Không thể xóa khóa học vì có %d học viên đang ghi danh."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của khóa học

	Name        string `json:"name" bson:"name" index:"text"`                  // Tên khóa học
	Description string `json:"description,omitempty" bson:"description,omitempty"` // Mô tả khóa học
	Language    string `json:"language" bson:"language" index:"single:1"`      // Mã ngôn ngữ của khóa học (vd: en, vi, fr) - dùng cho auto language tagging
	Status      string `json:"status" bson:"status" index:"single:1" default:"active"` // Trạng thái: active, archived, deleted

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu khóa học (phân quyền + org scope của taxonomy)

	// ===== METADATA =====
	Metadata  map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"` // Metadata bổ sung (tùy chọn)
	CreatedAt int64                  `json:"createdAt" bson:"createdAt"`                   // Thời gian tạo
	UpdatedAt int64                  `json:"updatedAt" bson:"updatedAt"`                   // Thời gian cập nhật
}
