package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockType định nghĩa các loại block trong cây nội dung khóa học
const (
	BlockTypeChapter    = "chapter"    // Chương (cấp cao nhất dưới course)
	BlockTypeSequential = "sequential" // Bài học (subsection)
	BlockTypeVertical   = "vertical"   // Unit chứa các leaf block
	BlockTypeHTML       = "html"       // Nội dung HTML
	BlockTypeVideo      = "video"      // Video
	BlockTypeProblem    = "problem"    // Bài tập
)

// CourseBlock đại diện cho một node trong cây nội dung của khóa học.
// Các block anh em được sắp thứ tự bằng position; thêm block mới luôn append vào cuối (position = max + 1).
type CourseBlock struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của block

	// ===== CONTENT HIERARCHY =====
	CourseID primitive.ObjectID  `json:"courseId" bson:"courseId" index:"single:1,compound:block_course_parent"`              // Khóa học chứa block
	ParentID *primitive.ObjectID `json:"parentId,omitempty" bson:"parentId,omitempty" index:"single:1,compound:block_course_parent"` // ID của parent block (nil nếu là root của course)
	Position int                 `json:"position" bson:"position"`                                                            // Thứ tự giữa các sibling (tăng dần)

	BlockType   string `json:"blockType" bson:"blockType" index:"single:1"` // Loại block: chapter, sequential, vertical, html, video, problem
	DisplayName string `json:"displayName" bson:"displayName"`              // Tên hiển thị của block

	// Definition chứa nội dung thực của block (html text, video url, problem config, ...)
	Definition map[string]interface{} `json:"definition,omitempty" bson:"definition,omitempty"`

	// ===== PROVENANCE =====
	// CopiedFromBlockID chỉ được set trên root của subtree được paste từ clipboard,
	// trỏ về block nguồn. Các descendant không mang provenance.
	CopiedFromBlockID *primitive.ObjectID `json:"copiedFromBlockId,omitempty" bson:"copiedFromBlockId,omitempty"`

	// SourceLibraryBlockID được set khi block có nguồn gốc từ thư viện nội dung dùng chung.
	// Field này phải ổn định qua copy/paste và re-sync để không làm mồ côi progress của học viên.
	SourceLibraryBlockID *primitive.ObjectID `json:"sourceLibraryBlockId,omitempty" bson:"sourceLibraryBlockId,omitempty" index:"single:1"`

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu dữ liệu (phân quyền)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
