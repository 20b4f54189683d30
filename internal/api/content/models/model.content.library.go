package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentLibrary đại diện cho một thư viện nội dung dùng chung giữa các khóa học
type ContentLibrary struct {
	_Relationships struct{}           `relationship:"collection:library_blocks,field:libraryId,message:Không thể xóa thư viện vì có %d block. Vui lòng xóa block trước."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của thư viện

	Name        string `json:"name" bson:"name" index:"text"`                       // Tên thư viện
	Description string `json:"description,omitempty" bson:"description,omitempty"`  // Mô tả thư viện
	Version     int64  `json:"version" bson:"version"`                              // Version tăng mỗi lần publish, dùng để biết block trong course đã cũ

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu thư viện (phân quyền)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// LibraryBlock đại diện cho một block trong thư viện nội dung.
// Khi được kéo vào khóa học, CourseBlock tương ứng mang SourceLibraryBlockID trỏ về block này.
type LibraryBlock struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của block trong thư viện

	LibraryID   primitive.ObjectID     `json:"libraryId" bson:"libraryId" index:"single:1"` // Thư viện chứa block
	BlockType   string                 `json:"blockType" bson:"blockType"`                  // Loại block: html, video, problem
	DisplayName string                 `json:"displayName" bson:"displayName"`              // Tên hiển thị
	Definition  map[string]interface{} `json:"definition,omitempty" bson:"definition,omitempty"` // Nội dung block
	Position    int                    `json:"position" bson:"position"`                    // Thứ tự trong thư viện

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu dữ liệu (phân quyền)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
