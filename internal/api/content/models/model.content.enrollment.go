package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentMode định nghĩa các chế độ ghi danh
const (
	EnrollmentModeAudit    = "audit"    // Học miễn phí, không chứng chỉ
	EnrollmentModeVerified = "verified" // Có xác minh danh tính, có chứng chỉ
	EnrollmentModeHonor    = "honor"    // Honor code
)

// CourseEnrollment liên kết một người dùng với một khóa học.
// Insert enrollment phát data-change event; notification domain lắng nghe để tạo
// notification chào mừng cho học viên mới.
type CourseEnrollment struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của enrollment

	UserID   primitive.ObjectID `json:"userId" bson:"userId" index:"single:1,compound:enrollment_user_course_unique"`     // Người dùng ghi danh
	CourseID primitive.ObjectID `json:"courseId" bson:"courseId" index:"single:1,compound:enrollment_user_course_unique"` // Khóa học được ghi danh
	Mode     string             `json:"mode" bson:"mode" default:"audit"`                                                 // Chế độ ghi danh: audit, verified, honor
	IsActive bool               `json:"isActive" bson:"isActive" index:"single:1" default:"true"`                         // Enrollment còn hiệu lực không

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu dữ liệu (phân quyền)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian ghi danh
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
